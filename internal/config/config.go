// Package config loads salesdash settings from defaults, an optional YAML
// file, SALESDASH_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix namespaces environment overrides, e.g. SALESDASH_SERVER_PORT.
const EnvPrefix = "SALESDASH"

// Storage backends
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Data    DataConfig    `mapstructure:"data" yaml:"data"`
	Query   QueryConfig   `mapstructure:"query" yaml:"query"`
	Import  ImportConfig  `mapstructure:"import" yaml:"import"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port" yaml:"port"`
	QueryTimeout time.Duration `mapstructure:"query_timeout" yaml:"query_timeout"`
	Preload      bool          `mapstructure:"preload" yaml:"preload"`
}

type StorageConfig struct {
	Backend  string         `mapstructure:"backend" yaml:"backend"`
	SQLite   SQLiteConfig   `mapstructure:"sqlite" yaml:"sqlite"`
	Postgres PostgresConfig `mapstructure:"postgres" yaml:"postgres"`
}

type SQLiteConfig struct {
	Path   string `mapstructure:"path" yaml:"path"`
	Driver string `mapstructure:"driver" yaml:"driver"`
}

type PostgresConfig struct {
	DSN    string `mapstructure:"dsn" yaml:"dsn"`
	Schema string `mapstructure:"schema" yaml:"schema"`
}

type DataConfig struct {
	CSV string `mapstructure:"csv" yaml:"csv"`
}

type QueryConfig struct {
	Timezone    string `mapstructure:"timezone" yaml:"timezone"`
	MaxPageSize int    `mapstructure:"max_page_size" yaml:"max_page_size"`
}

type ImportConfig struct {
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// SetDefaults registers every default value on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5151)
	v.SetDefault("server.query_timeout", 30*time.Second)
	v.SetDefault("server.preload", true)
	v.SetDefault("storage.backend", BackendMemory)
	v.SetDefault("storage.sqlite.path", "./salesdash.db")
	v.SetDefault("storage.sqlite.driver", "sqlite")
	v.SetDefault("storage.postgres.dsn", "")
	v.SetDefault("storage.postgres.schema", "salesdash")
	v.SetDefault("data.csv", "./data/sales.csv")
	v.SetDefault("query.timezone", "Local")
	v.SetDefault("query.max_page_size", 1000)
	v.SetDefault("import.batch_size", 20000)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// New returns a viper instance with defaults and environment overrides set.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads cfgFile, or salesdash.yaml from the standard locations when
// cfgFile is empty, and decodes the merged settings. A missing default
// config file is not an error.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "salesdash"))
		}
		v.SetConfigName("salesdash")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Storage.SQLite.Path = ExpandPath(cfg.Storage.SQLite.Path)
	cfg.Data.CSV = ExpandPath(cfg.Data.CSV)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendMemory, BackendSQLite, BackendPostgres:
	default:
		return fmt.Errorf("invalid storage backend %q (want memory, sqlite or postgres)", c.Storage.Backend)
	}
	if c.Storage.Backend == BackendPostgres && c.Storage.Postgres.DSN == "" {
		return fmt.Errorf("storage.postgres.dsn is required for the postgres backend")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Query.MaxPageSize < 0 {
		return fmt.Errorf("query.max_page_size must not be negative")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves query.timezone. "Local" and "" mean the host zone.
func (c *Config) Location() (*time.Location, error) {
	switch c.Query.Timezone {
	case "", "Local", "local":
		return time.Local, nil
	case "UTC", "utc":
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Query.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid query.timezone %q: %w", c.Query.Timezone, err)
	}
	return loc, nil
}

// YAML renders the effective configuration.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}
