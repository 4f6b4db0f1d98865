package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, 5151, cfg.Server.Port)
	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, "sqlite", cfg.Storage.SQLite.Driver)
	assert.Equal(t, "salesdash", cfg.Storage.Postgres.Schema)
	assert.Equal(t, "./data/sales.csv", cfg.Data.CSV)
	assert.Equal(t, 1000, cfg.Query.MaxPageSize)
	assert.Equal(t, 20000, cfg.Import.BatchSize)
	assert.Equal(t, 30*time.Second, cfg.Server.QueryTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "salesdash.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 8080
storage:
  backend: sqlite
  sqlite:
    path: /tmp/sales.db
query:
  timezone: UTC
`), 0o644))
	t.Setenv("SALESDASH_SERVER_PORT", "9090")
	t.Setenv("SALESDASH_STORAGE_SQLITE_DRIVER", "sqlite3")

	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port, "env overrides file")
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "/tmp/sales.db", cfg.Storage.SQLite.Path)
	assert.Equal(t, "sqlite3", cfg.Storage.SQLite.Driver)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Server:  ServerConfig{Port: 5151},
			Storage: StorageConfig{Backend: BackendMemory},
			Query:   QueryConfig{Timezone: "Local"},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown backend", func(c *Config) { c.Storage.Backend = "mongo" }},
		{"postgres without dsn", func(c *Config) { c.Storage.Backend = BackendPostgres }},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }},
		{"bad timezone", func(c *Config) { c.Query.Timezone = "Mars/Olympus" }},
		{"negative page cap", func(c *Config) { c.Query.MaxPageSize = -1 }},
	}

	ok := base()
	require.NoError(t, ok.Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestYAML(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load(New(), "")
	require.NoError(t, err)

	out, err := cfg.YAML()
	require.NoError(t, err)

	var back Config
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, cfg.Storage, back.Storage)
	assert.Contains(t, string(out), "max_page_size: 1000")
}

func TestExpandPath(t *testing.T) {
	t.Setenv("SALES_DIR", "/data")
	assert.Equal(t, "/data/x.csv", ExpandPath("$SALES_DIR/x.csv"))
	assert.Equal(t, "", ExpandPath(""))
}
