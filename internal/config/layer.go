package config

import (
	"fmt"
	"time"

	"github.com/mindvault/mindvault/internal/store"
)

// Layer is one source of settings. Zero values leave the settings of lower
// layers in place.
type Layer struct {
	ServerHost  string
	ServerPort  int
	EnableMCP   *bool
	DBDriver    string
	DBDSN       string
	DBTimeout   time.Duration
	LogLevel    string
	LogEncoding string
	LogFile     string
}

// fileConfig represents the raw TOML structure shared by the global and
// project files.
type fileConfig struct {
	Server   serverConfig   `toml:"server"`
	Database databaseConfig `toml:"database"`
	Log      logConfig      `toml:"log"`
}

// serverConfig represents the [server] section in TOML
type serverConfig struct {
	Host string `toml:"host"`
	Port *int   `toml:"port"`
	MCP  *bool  `toml:"mcp"`
}

// databaseConfig represents the [database] section in TOML
type databaseConfig struct {
	Driver  string `toml:"driver"`
	DSN     string `toml:"dsn"`
	Timeout string `toml:"timeout"`
}

// logConfig represents the [log] section in TOML
type logConfig struct {
	Level    string `toml:"level"`
	Encoding string `toml:"encoding"`
	File     string `toml:"file"`
}

func (f fileConfig) layer() (Layer, error) {
	l := Layer{
		ServerHost:  f.Server.Host,
		EnableMCP:   f.Server.MCP,
		DBDriver:    f.Database.Driver,
		DBDSN:       f.Database.DSN,
		LogLevel:    f.Log.Level,
		LogEncoding: f.Log.Encoding,
		LogFile:     f.Log.File,
	}
	if f.Server.Port != nil {
		if err := validatePort(*f.Server.Port); err != nil {
			return Layer{}, err
		}
		l.ServerPort = *f.Server.Port
	}
	if f.Database.Driver != "" {
		if _, err := store.ParseDialect(f.Database.Driver); err != nil {
			return Layer{}, err
		}
	}
	if f.Database.Timeout != "" {
		d, err := parseTimeout(f.Database.Timeout)
		if err != nil {
			return Layer{}, err
		}
		l.DBTimeout = d
	}
	return l, nil
}

// validatePort checks if the port is in the valid range (1-65535)
func validatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", port)
	}
	return nil
}

func parseTimeout(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid database timeout %q: %w", s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid database timeout %q: must be positive", s)
	}
	return d, nil
}
