package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/tessro/dial/internal/core"
)

// stationFile is the on-disk layout of an extra station list:
//
//	[[station]]
//	id = "my-station"
//	...
//
// or, in YAML, a top-level "stations:" sequence.
type stationFile struct {
	Station  []core.Station `toml:"station"`
	Stations []core.Station `yaml:"stations"`
}

// LoadFile reads stations from a .toml, .yaml or .yml file.
func LoadFile(path string) ([]core.Station, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read station file: %w", err)
	}

	var f stationFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &f); err != nil {
			return nil, fmt.Errorf("parse toml: %w", err)
		}
		return f.Station, nil
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		return f.Stations, nil
	default:
		return nil, fmt.Errorf("unsupported station file type %q", ext)
	}
}

// Open builds the built-in catalog extended with the stations in path.
// An empty path yields the built-in catalog.
func Open(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	extra, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return New(Merge(builtin, extra))
}
