package config

import (
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/mindvault/mindvault/internal/logging"
	"github.com/mindvault/mindvault/internal/store"
)

const (
	// DefaultServerHost is the default server host
	DefaultServerHost = "localhost"

	// DefaultServerPort is the default server port
	DefaultServerPort = 7432

	// DefaultDatabaseFile is the sqlite file created under the global config
	// directory.
	DefaultDatabaseFile = "mindvault.db"
)

// Config represents the final merged configuration. Precedence order
// (highest to lowest):
// 1. Flags (applied by the caller with Apply)
// 2. Environment variables and .env
// 3. Project config (mindvault.toml)
// 4. Global config (~/.mindvault/config.toml)
// 5. Built-in defaults
type Config struct {
	ServerHost  string
	ServerPort  int
	EnableMCP   bool
	DBDriver    store.Dialect
	DBDSN       string
	DBTimeout   time.Duration
	LogLevel    string
	LogEncoding string
	// LogFile is an extra JSON log destination. Empty disables it.
	LogFile string

	// ProjectFile is the mindvault.toml that was applied, if any.
	ProjectFile string
}

// Defaults returns the built-in configuration for homeDir.
func Defaults(homeDir string) *Config {
	return &Config{
		ServerHost:  DefaultServerHost,
		ServerPort:  DefaultServerPort,
		EnableMCP:   true,
		DBDriver:    store.DialectSQLite,
		DBDSN:       filepath.Join(homeDir, GlobalConfigDir, DefaultDatabaseFile),
		DBTimeout:   store.DefaultOperationTimeout,
		LogLevel:    "info",
		LogEncoding: "json",
	}
}

// ResolveConfig loads every source relative to the user's home directory and
// the current working directory.
func ResolveConfig() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return ResolveConfigFrom(homeDir, cwd)
}

// ResolveConfigFrom resolves config using the specified home and working
// directories.
func ResolveConfigFrom(homeDir, workDir string) (*Config, error) {
	cfg := Defaults(homeDir)

	globalLayer, err := LoadGlobalConfigFromDir(homeDir)
	if err != nil {
		return nil, err
	}
	if err := cfg.Apply(globalLayer); err != nil {
		return nil, err
	}

	path, projectLayer, err := DiscoverProjectConfig(workDir)
	if err != nil {
		return nil, err
	}
	if err := cfg.Apply(projectLayer); err != nil {
		return nil, err
	}
	cfg.ProjectFile = path

	envLayer, err := LoadEnv(workDir)
	if err != nil {
		return nil, err
	}
	if err := cfg.Apply(envLayer); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Apply overrides cfg with the non-zero settings of l.
func (c *Config) Apply(l Layer) error {
	if l.ServerHost != "" {
		c.ServerHost = l.ServerHost
	}
	if l.ServerPort != 0 {
		if err := validatePort(l.ServerPort); err != nil {
			return err
		}
		c.ServerPort = l.ServerPort
	}
	if l.EnableMCP != nil {
		c.EnableMCP = *l.EnableMCP
	}
	if l.DBDriver != "" {
		d, err := store.ParseDialect(l.DBDriver)
		if err != nil {
			return err
		}
		c.DBDriver = d
	}
	if l.DBDSN != "" {
		c.DBDSN = l.DBDSN
	}
	if l.DBTimeout > 0 {
		c.DBTimeout = l.DBTimeout
	}
	if l.LogLevel != "" {
		c.LogLevel = l.LogLevel
	}
	if l.LogEncoding != "" {
		c.LogEncoding = l.LogEncoding
	}
	if l.LogFile != "" {
		c.LogFile = l.LogFile
	}
	return nil
}

// Addr returns the host:port the server listens on and clients dial.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.ServerHost, strconv.Itoa(c.ServerPort))
}

// Store returns the database settings.
func (c *Config) Store() store.Config {
	return store.Config{
		Dialect:          c.DBDriver,
		DSN:              c.DBDSN,
		OperationTimeout: c.DBTimeout,
	}
}

// Logging returns the logger settings.
func (c *Config) Logging() logging.Config {
	return logging.Config{Level: c.LogLevel, Encoding: c.LogEncoding, File: c.LogFile}
}
