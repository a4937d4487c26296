package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type file struct {
	Zones    []Zone    `yaml:"zones"`
	Packages []Package `yaml:"packages"`
}

// LoadFile reads zones and packages from a YAML file. An empty path returns the built-in tables.
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog document
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(f.Zones) == 0 || len(f.Packages) == 0 {
		return nil, fmt.Errorf("catalog must define zones and packages")
	}
	return New(f.Zones, f.Packages)
}

// Marshal renders a catalog back to YAML
func Marshal(c *Catalog) ([]byte, error) {
	return yaml.Marshal(file{Zones: c.zones, Packages: c.packages})
}
