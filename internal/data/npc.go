package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// NpcTemplate holds static data for an NPC type loaded from YAML.
type NpcTemplate struct {
	TemplateID int32   `yaml:"template_id"`
	Name       string  `yaml:"name"`
	Profession string  `yaml:"profession"` // merchant, guard, blacksmith, villager, ...
	Model      string  `yaml:"model"`
	Scale      float64 `yaml:"scale"`
	Palette    int32   `yaml:"palette"`
	MoveSpeed  float64 `yaml:"move_speed"` // units per second
	Radius     float64 `yaml:"radius"`     // collision radius
	Mass       float64 `yaml:"mass"`
}

// SpawnEntry defines where and how many NPCs to spawn, plus the static
// obstacles (building footprints, wells, stalls) of the town.
type SpawnEntry struct {
	TemplateID int32   `yaml:"template_id"` // 0 with Obstacle=true means bare collider
	Count      int     `yaml:"count"`
	X          float64 `yaml:"x"`
	Y          float64 `yaml:"y"`
	Z          float64 `yaml:"z"`
	Scatter    float64 `yaml:"scatter"` // max radial offset applied per instance
	Direction  float64 `yaml:"direction"`
	Obstacle   bool    `yaml:"obstacle"`
	Radius     float64 `yaml:"radius"` // obstacle collision radius
}

type npcListFile struct {
	Npcs []NpcTemplate `yaml:"npcs"`
}

type spawnListFile struct {
	Spawns []SpawnEntry `yaml:"spawns"`
}

// NpcTable holds all NPC templates indexed by TemplateID.
type NpcTable struct {
	templates map[int32]*NpcTemplate
}

// LoadNpcTable loads NPC templates from a YAML file.
func LoadNpcTable(path string) (*NpcTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read npc_list: %w", err)
	}
	var f npcListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse npc_list: %w", err)
	}
	t := &NpcTable{templates: make(map[int32]*NpcTemplate, len(f.Npcs))}
	for i := range f.Npcs {
		tmpl := &f.Npcs[i]
		t.templates[tmpl.TemplateID] = tmpl
	}
	return t, nil
}

func (t *NpcTable) Get(id int32) *NpcTemplate {
	return t.templates[id]
}

func (t *NpcTable) Count() int {
	return len(t.templates)
}

// LoadSpawnList loads the spawn list from a YAML file.
func LoadSpawnList(path string) ([]SpawnEntry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spawn_list: %w", err)
	}
	var f spawnListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse spawn_list: %w", err)
	}
	return f.Spawns, nil
}
