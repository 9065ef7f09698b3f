package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Fixture describes one smoke-test run against an embedded example
// root: which example to build, and what the run is expected to
// produce.
type Fixture struct {
	ID          string `yaml:"id"`
	Example     string `yaml:"example"`
	Description string `yaml:"description"`
	ExpectError bool   `yaml:"expect_error"`
	MinDefs     int    `yaml:"min_defs"`
}

// LoadFixture reads a Fixture from a YAML file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file: %w", err)
	}

	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture YAML: %w", err)
	}

	if f.Example == "" {
		return nil, fmt.Errorf("fixture missing required field: example")
	}
	if _, ok := findExample(f.Example); !ok {
		return nil, fmt.Errorf("fixture references unknown example %q", f.Example)
	}

	return &f, nil
}
