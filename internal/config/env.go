package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/mindvault/mindvault/internal/store"
)

// Environment variable names.
const (
	EnvHost        = "MINDVAULT_HOST"
	EnvPort        = "MINDVAULT_PORT"
	EnvMCP         = "MINDVAULT_MCP"
	EnvDBDriver    = "MINDVAULT_DB_DRIVER"
	EnvDBDSN       = "MINDVAULT_DB_DSN"
	EnvDBTimeout   = "MINDVAULT_DB_TIMEOUT"
	EnvLogLevel    = "MINDVAULT_LOG_LEVEL"
	EnvLogEncoding = "MINDVAULT_LOG_ENCODING"
	EnvLogFile     = "MINDVAULT_LOG_FILE"
)

// DotEnvFileName is read from the working directory when present.
const DotEnvFileName = ".env"

type lookupFunc func(key string) (string, bool)

// LoadEnv reads the process environment on top of the .env file in dir.
// Variables already set in the environment win over the file.
func LoadEnv(dir string) (Layer, error) {
	dotenv := map[string]string{}
	path := filepath.Join(dir, DotEnvFileName)
	if _, err := os.Stat(path); err == nil {
		vals, err := godotenv.Read(path)
		if err != nil {
			return Layer{}, fmt.Errorf("failed to read %s: %w", path, err)
		}
		dotenv = vals
	}

	return envLayer(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	})
}

func envLayer(lookup lookupFunc) (Layer, error) {
	l := Layer{
		ServerHost:  getString(lookup, EnvHost),
		DBDSN:       getString(lookup, EnvDBDSN),
		LogLevel:    getString(lookup, EnvLogLevel),
		LogEncoding: getString(lookup, EnvLogEncoding),
		LogFile:     getString(lookup, EnvLogFile),
	}

	if v := getString(lookup, EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return Layer{}, fmt.Errorf("%s: invalid port %q", EnvPort, v)
		}
		if err := validatePort(port); err != nil {
			return Layer{}, fmt.Errorf("%s: %w", EnvPort, err)
		}
		l.ServerPort = port
	}
	if v := getString(lookup, EnvMCP); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return Layer{}, fmt.Errorf("%s: invalid boolean %q", EnvMCP, v)
		}
		l.EnableMCP = &enabled
	}
	if v := getString(lookup, EnvDBDriver); v != "" {
		if _, err := store.ParseDialect(v); err != nil {
			return Layer{}, fmt.Errorf("%s: %w", EnvDBDriver, err)
		}
		l.DBDriver = v
	}
	if v := getString(lookup, EnvDBTimeout); v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return Layer{}, fmt.Errorf("%s: %w", EnvDBTimeout, err)
		}
		l.DBTimeout = d
	}
	return l, nil
}

func getString(lookup lookupFunc, key string) string {
	if v, ok := lookup(key); ok {
		return v
	}
	return ""
}
