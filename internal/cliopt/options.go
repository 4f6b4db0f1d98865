package cliopt

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/salesdash/salesdash/internal/config"
	"github.com/salesdash/salesdash/internal/logger"
)

// GlobalOptions are parsed once at the CLI root and passed to subcommands.
//
// NOTE: This is a separate package to avoid import cycles between the root
// command and per-command code.
type GlobalOptions struct {
	ConfigFile string

	Viper  *viper.Viper
	Config *config.Config
	Log    zerolog.Logger

	Stdout io.Writer
	Stderr io.Writer
}

func DefaultGlobalOptions() *GlobalOptions {
	return &GlobalOptions{
		Viper:  config.New(),
		Log:    zerolog.Nop(),
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// globalFlags maps each persistent flag to its config key.
var globalFlags = []struct {
	name, key, usage string
}{
	{"backend", "storage.backend", "record store: memory|sqlite|postgres (default memory)"},
	{"sqlite-path", "storage.sqlite.path", "sqlite database file, or a directory to hold salesdash.db"},
	{"sqlite-driver", "storage.sqlite.driver", "sqlite driver: sqlite (pure Go) or sqlite3 (cgo)"},
	{"pg-dsn", "storage.postgres.dsn", "postgres DSN"},
	{"pg-schema", "storage.postgres.schema", "postgres schema (default salesdash)"},
	{"csv", "data.csv", "CSV file read by the memory backend (default ./data/sales.csv)"},
	{"timezone", "query.timezone", "IANA zone for calendar dates (default Local)"},
	{"log-level", "logging.level", "log level: debug|info|warn|error (default info)"},
	{"log-format", "logging.format", "log format: console|json (default console)"},
}

// BindGlobalFlags registers the persistent flags and binds them to config
// keys. Unset flags leave the config file, environment and defaults in charge.
func BindGlobalFlags(fs *pflag.FlagSet, g *GlobalOptions) {
	fs.StringVar(&g.ConfigFile, "config", "", "config file (default ./salesdash.yaml or $HOME/.config/salesdash/salesdash.yaml)")
	for _, f := range globalFlags {
		fs.String(f.name, "", f.usage)
		_ = g.Viper.BindPFlag(f.key, fs.Lookup(f.name))
	}
}

// Load resolves the effective configuration and builds the logger.
func (g *GlobalOptions) Load() error {
	cfg, err := config.Load(g.Viper, g.ConfigFile)
	if err != nil {
		return err
	}
	log, err := logger.New(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Writer: g.Stderr,
	})
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	g.Config = cfg
	g.Log = log
	return nil
}
