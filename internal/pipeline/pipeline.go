// Package pipeline models a concrete pipeline configuration, the document
// an operator writes to wire sources, transforms, and sinks together.
// Loading only decodes; Check verifies the decoded file against a built
// component schema.
package pipeline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Component is one configured component instance. Type selects the
// component definition, Inputs names the upstream components, and Options
// collects every remaining key as written.
type Component struct {
	Type    string         `yaml:"type"`
	Inputs  []string       `yaml:"inputs"`
	Options map[string]any `yaml:",inline"`
}

// File is one parsed pipeline configuration. Globals collects every
// top-level key that is not a component table, such as data_dir.
type File struct {
	Sources    map[string]*Component `yaml:"sources"`
	Transforms map[string]*Component `yaml:"transforms"`
	Sinks      map[string]*Component `yaml:"sinks"`
	Globals    map[string]any        `yaml:",inline"`
}

// Parse decodes one pipeline configuration document.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Load reads and decodes the pipeline configuration at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return f, nil
}
