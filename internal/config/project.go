package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigFileName is the name of the project configuration file
const ConfigFileName = "mindvault.toml"

// DiscoverProjectConfig finds and parses the mindvault.toml file by
// traversing up the directory tree from startDir. It returns the path that
// was used, or an empty path and layer when no file exists.
func DiscoverProjectConfig(startDir string) (string, Layer, error) {
	dir := startDir

	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			l, err := ParseProjectConfig(configPath)
			return configPath, l, err
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", Layer{}, nil
		}
		dir = parent
	}
}

// ParseProjectConfig parses the mindvault.toml file at the given path
func ParseProjectConfig(path string) (Layer, error) {
	l, err := parseFile(path)
	if err != nil {
		return Layer{}, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}
