// Package importer reads goal collections from YAML files, so a goal
// list can be seeded, shared or restored in one step.
package importer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ImportSchema is the top-level YAML structure for a goal import.
type ImportSchema struct {
	Goals []GoalImport `yaml:"goals"`
}

// GoalImport defines one goal in the import file. Zero values fall
// back to the catchsup defaults.
type GoalImport struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`

	// At uses the CLI syntax: "auto", a named range, HH:MM or
	// HH:MM-HH:MM.
	At string `yaml:"at,omitempty"`

	// Cadence is daily, weekly, monthly or disabled.
	Cadence  string  `yaml:"cadence,omitempty"`
	Interval float64 `yaml:"interval,omitempty"`
	// Weekdays uses three-letter names: [mon, wed, fri].
	Weekdays []string `yaml:"weekdays,omitempty"`
	// Days are days of the month: [1, 15].
	Days []int `yaml:"days,omitempty"`

	DurationMin float64 `yaml:"duration_min,omitempty"`
}

// LoadFile reads and parses an import file.
func LoadFile(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading import file: %w", err)
	}
	var schema ImportSchema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
