package store

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"trade-journal/internal/models"
)

// playbookVersion is written into every exported playbook.
const playbookVersion = 1

type playbookFile struct {
	Version    int               `yaml:"version"`
	Strategies []models.Strategy `yaml:"strategies"`
}

// WritePlaybook exports strategies as YAML. Win rates are derived, not exported.
func WritePlaybook(w io.Writer, strategies []models.Strategy) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(playbookFile{Version: playbookVersion, Strategies: strategies}); err != nil {
		return fmt.Errorf("failed to encode playbook: %w", err)
	}
	return enc.Close()
}

// ReadPlaybook parses a YAML playbook. Strategies without a title are rejected.
func ReadPlaybook(r io.Reader) ([]models.Strategy, error) {
	var f playbookFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode playbook: %w", err)
	}
	if f.Version > playbookVersion {
		return nil, fmt.Errorf("unsupported playbook version %d", f.Version)
	}
	for i, s := range f.Strategies {
		if s.Title == "" {
			return nil, fmt.Errorf("strategy %d has no title", i+1)
		}
	}
	return f.Strategies, nil
}
