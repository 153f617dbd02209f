package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/townforge/townsim/internal/mathx"
)

// Location is a named point of the town that routine schedules refer to
// (market, forge, tavern, home districts).
type Location struct {
	Name string  `yaml:"name"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	Z    float64 `yaml:"z"`
}

type locationListFile struct {
	Locations []Location `yaml:"locations"`
}

// LocationTable resolves routine location names to world positions.
type LocationTable struct {
	byName map[string]*Location
}

// LoadLocationTable loads named locations from a YAML file.
func LoadLocationTable(path string) (*LocationTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read location_list: %w", err)
	}
	var f locationListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse location_list: %w", err)
	}
	t := &LocationTable{byName: make(map[string]*Location, len(f.Locations))}
	for i := range f.Locations {
		loc := &f.Locations[i]
		t.byName[loc.Name] = loc
	}
	return t, nil
}

// Resolve returns the position for a location name.
func (t *LocationTable) Resolve(name string) (mathx.Vec3, bool) {
	loc, ok := t.byName[name]
	if !ok {
		return mathx.Vec3{}, false
	}
	return mathx.Vec3{X: loc.X, Y: loc.Y, Z: loc.Z}, true
}

func (t *LocationTable) Count() int {
	return len(t.byName)
}
