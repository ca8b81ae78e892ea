package source

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML shape of a source catalog file.
type fileConfig struct {
	Sources []Source `yaml:"sources"`
}

// LoadFile reads a YAML source catalog, replacing the built-in defaults.
// Every entry needs at least an id, a name, a base URL and a search URL.
func LoadFile(path string) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("source: read %s: %w", path, err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("source: parse %s: %w", path, err)
	}
	if len(cfg.Sources) == 0 {
		return nil, fmt.Errorf("source: %s defines no sources", path)
	}

	for i := range cfg.Sources {
		s := &cfg.Sources[i]
		if s.ID == "" || s.Name == "" || s.BaseURL == "" || s.SearchURL == "" {
			return nil, fmt.Errorf("source: entry %d: id, name, base_url and search_url are required", i)
		}
		if err := s.Compile(); err != nil {
			return nil, err
		}
	}
	return cfg.Sources, nil
}
