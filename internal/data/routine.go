package data

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// RoutineStep is one action in a daily-routine block. Action is one of
// "move_to" (Location), "work" (Duration seconds), "wait" (Duration).
type RoutineStep struct {
	Action   string  `yaml:"action"`
	Location string  `yaml:"location"`
	Duration float64 `yaml:"duration"`
}

// RoutineBlock is the task sequence a profession runs from Hour until
// the next block's hour.
type RoutineBlock struct {
	Hour  float64       `yaml:"hour"`
	Steps []RoutineStep `yaml:"steps"`
}

type routine struct {
	Profession string         `yaml:"profession"`
	Blocks     []RoutineBlock `yaml:"blocks"`
}

type routineListFile struct {
	Routines []routine `yaml:"routines"`
}

// RoutineTable holds daily schedules per profession, blocks sorted by
// hour ascending.
type RoutineTable struct {
	byProfession map[string][]RoutineBlock
}

// LoadRoutineTable loads daily routines from a YAML file.
func LoadRoutineTable(path string) (*RoutineTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read routine_list: %w", err)
	}
	var f routineListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse routine_list: %w", err)
	}
	t := &RoutineTable{byProfession: make(map[string][]RoutineBlock, len(f.Routines))}
	for _, r := range f.Routines {
		blocks := append([]RoutineBlock(nil), r.Blocks...)
		sort.SliceStable(blocks, func(i, j int) bool { return blocks[i].Hour < blocks[j].Hour })
		t.byProfession[r.Profession] = blocks
	}
	return t, nil
}

// BlockFor picks the schedule block covering the given hour for a
// profession: the latest block whose hour is <= hour, wrapping to the
// day's last block before the first block's hour. Returns nil when the
// profession has no routine.
func (t *RoutineTable) BlockFor(profession string, hour float64) *RoutineBlock {
	blocks := t.byProfession[profession]
	if len(blocks) == 0 {
		return nil
	}
	pick := len(blocks) - 1 // wrap: before the first block, yesterday's last applies
	for i := range blocks {
		if blocks[i].Hour <= hour {
			pick = i
		} else {
			break
		}
	}
	return &blocks[pick]
}

func (t *RoutineTable) Count() int {
	return len(t.byProfession)
}
