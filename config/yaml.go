package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ── YAML provider ─────────────────────────────────────────────────────────────

// NewYAML loads a YAML document from path and returns a Map provider over
// its nested sections.
//
//	provider, err := config.NewYAML("app.yaml")
//	v, err := provider.Get("database.port", "5432", config.FormatInt)
func NewYAML(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return ParseYAML(data)
}

// ParseYAML builds a Map provider from raw YAML bytes.
func ParseYAML(data []byte) (*Map, error) {
	values := make(map[string]any)
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}
	return NewMap(values), nil
}
