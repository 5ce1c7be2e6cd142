// Package catalog loads the immutable crop and equipment type tables.
// The simulation core only ever reads these; a deployment can override the
// embedded defaults with its own YAML directory.
package catalog

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

// PlantType describes one plantable crop species.
type PlantType struct {
	ID             string  `yaml:"id" json:"id"`
	Name           string  `yaml:"name" json:"name"`
	DaysToMature   float64 `yaml:"days_to_mature" json:"days_to_mature"`
	BaseYield      float64 `yaml:"base_yield" json:"base_yield"`
	YieldPrecision int     `yaml:"yield_precision" json:"yield_precision"` // decimal places
	MaxFreshDays   float64 `yaml:"max_fresh_days" json:"max_fresh_days"`
	GroceryValue   float64 `yaml:"grocery_value" json:"grocery_value"` // per harvested unit, fully fresh
}

// MushroomType describes one cultivatable mushroom species, including the
// environmental window it fruits best in.
type MushroomType struct {
	ID             string  `yaml:"id" json:"id"`
	Name           string  `yaml:"name" json:"name"`
	DaysToMature   float64 `yaml:"days_to_mature" json:"days_to_mature"`
	BaseYield      float64 `yaml:"base_yield" json:"base_yield"`
	YieldPrecision int     `yaml:"yield_precision" json:"yield_precision"`
	MaxFreshDays   float64 `yaml:"max_fresh_days" json:"max_fresh_days"`
	GroceryValue   float64 `yaml:"grocery_value" json:"grocery_value"`
	HumidityMin    float64 `yaml:"humidity_min" json:"humidity_min"` // 0..1
	HumidityMax    float64 `yaml:"humidity_max" json:"humidity_max"`
	TempMinC       float64 `yaml:"temp_min_c" json:"temp_min_c"`
	TempMaxC       float64 `yaml:"temp_max_c" json:"temp_max_c"`
	NeedsFreshAir  bool    `yaml:"needs_fresh_air" json:"needs_fresh_air"`
}

// EquipmentType describes a passive item that modifies growth or storage.
type EquipmentType struct {
	ID          string  `yaml:"id" json:"id"`
	Name        string  `yaml:"name" json:"name"`
	Kind        string  `yaml:"kind" json:"kind"` // "pot", "light", "rack", "kitchen"
	GrowthBonus float64 `yaml:"growth_bonus" json:"growth_bonus"`
}

// Catalog is the full set of type tables, keyed by type id.
type Catalog struct {
	Plants    map[string]PlantType
	Mushrooms map[string]MushroomType
	Equipment map[string]EquipmentType
}

// Plant looks up a plant type. The second return is false for unknown ids;
// callers are expected to degrade to a no-op rather than fail the tick.
func (c *Catalog) Plant(id string) (PlantType, bool) {
	p, ok := c.Plants[id]
	return p, ok
}

// Mushroom looks up a mushroom type.
func (c *Catalog) Mushroom(id string) (MushroomType, bool) {
	m, ok := c.Mushrooms[id]
	return m, ok
}

// EquipmentByID looks up an equipment type.
func (c *Catalog) EquipmentByID(id string) (EquipmentType, bool) {
	e, ok := c.Equipment[id]
	return e, ok
}

// LoadDefault loads the embedded type tables.
func LoadDefault() (*Catalog, error) {
	read := func(name string) ([]byte, error) {
		return defaultsFS.ReadFile("defaults/" + name)
	}
	return load(read)
}

// LoadDir loads type tables from a directory containing plants.yaml,
// mushrooms.yaml and equipment.yaml.
func LoadDir(dir string) (*Catalog, error) {
	read := func(name string) ([]byte, error) {
		return os.ReadFile(filepath.Join(dir, name))
	}
	return load(read)
}

func load(read func(name string) ([]byte, error)) (*Catalog, error) {
	c := &Catalog{
		Plants:    make(map[string]PlantType),
		Mushrooms: make(map[string]MushroomType),
		Equipment: make(map[string]EquipmentType),
	}

	var plants []PlantType
	if err := readYAML(read, "plants.yaml", &plants); err != nil {
		return nil, err
	}
	for _, p := range plants {
		c.Plants[p.ID] = p
	}

	var mushrooms []MushroomType
	if err := readYAML(read, "mushrooms.yaml", &mushrooms); err != nil {
		return nil, err
	}
	for _, m := range mushrooms {
		c.Mushrooms[m.ID] = m
	}

	var equipment []EquipmentType
	if err := readYAML(read, "equipment.yaml", &equipment); err != nil {
		return nil, err
	}
	for _, e := range equipment {
		c.Equipment[e.ID] = e
	}

	return c, nil
}

func readYAML(read func(name string) ([]byte, error), name string, out any) error {
	b, err := read(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(b, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}
