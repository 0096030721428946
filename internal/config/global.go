package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	// GlobalConfigDir is the name of the global config directory in home
	GlobalConfigDir = ".mindvault"

	// GlobalConfigFileName is the name of the global config file
	GlobalConfigFileName = "config.toml"
)

// LoadGlobalConfig loads the global configuration from ~/.mindvault/config.toml.
// Returns an empty layer (not an error) if the file doesn't exist.
func LoadGlobalConfig() (Layer, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Layer{}, fmt.Errorf("failed to get home directory: %w", err)
	}

	return LoadGlobalConfigFromDir(homeDir)
}

// LoadGlobalConfigFromDir loads global config using the specified directory as home.
func LoadGlobalConfigFromDir(homeDir string) (Layer, error) {
	configPath := filepath.Join(homeDir, GlobalConfigDir, GlobalConfigFileName)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Layer{}, nil
	}

	l, err := parseFile(configPath)
	if err != nil {
		return Layer{}, fmt.Errorf("global config: %w", err)
	}
	return l, nil
}

func parseFile(path string) (Layer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layer{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var raw fileConfig
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return Layer{}, fmt.Errorf("failed to parse TOML: %w", err)
	}
	return raw.layer()
}
