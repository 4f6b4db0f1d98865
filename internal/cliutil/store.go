package cliutil

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/salesdash/salesdash/internal/config"
	"github.com/salesdash/salesdash/salesdash"
	"github.com/salesdash/salesdash/salesdash/loader"
	"github.com/salesdash/salesdash/salesdash/memstore"
	"github.com/salesdash/salesdash/salesdash/storage"
	"github.com/salesdash/salesdash/salesdash/storage/postgres"
	"github.com/salesdash/salesdash/salesdash/storage/sqlite"
)

// NewAdapter builds the SQL adapter selected by cfg.
func NewAdapter(cfg *config.Config) (storage.Adapter, error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		return sqlite.NewWithDriver(ResolveSQLitePath(cfg.Storage.SQLite.Path), cfg.Storage.SQLite.Driver), nil
	case config.BackendPostgres:
		return postgres.New(cfg.Storage.Postgres.DSN, cfg.Storage.Postgres.Schema), nil
	default:
		return nil, salesdash.New(salesdash.ErrConfig,
			fmt.Sprintf("backend %q has no SQL store; use --backend sqlite or postgres", cfg.Storage.Backend))
	}
}

// StoreOptions derives store options from cfg.
func StoreOptions(cfg *config.Config, log zerolog.Logger) (salesdash.StoreOptions, error) {
	loc, err := cfg.Location()
	if err != nil {
		return salesdash.StoreOptions{}, salesdash.Wrap(salesdash.ErrConfig, "timezone", err)
	}
	opts := salesdash.DefaultStoreOptions()
	opts.Location = loc
	opts.Logger = log
	return opts, nil
}

// OpenStore opens the SQL store, creating it first when create is set.
func OpenStore(ctx context.Context, cfg *config.Config, log zerolog.Logger, create bool) (*salesdash.Store, error) {
	adapter, err := NewAdapter(cfg)
	if err != nil {
		return nil, err
	}
	opts, err := StoreOptions(cfg, log)
	if err != nil {
		return nil, err
	}
	if create {
		return salesdash.Create(ctx, adapter, opts)
	}
	return salesdash.Open(ctx, adapter, opts)
}

// EngineOptions derives engine options from cfg.
func EngineOptions(cfg *config.Config, log zerolog.Logger) (salesdash.EngineOptions, error) {
	loc, err := cfg.Location()
	if err != nil {
		return salesdash.EngineOptions{}, salesdash.Wrap(salesdash.ErrConfig, "timezone", err)
	}
	opts := salesdash.DefaultEngineOptions()
	opts.Location = loc
	opts.MaxPageSize = cfg.Query.MaxPageSize
	opts.Logger = log
	return opts, nil
}

// Opened is a ready-to-use engine plus what the HTTP health check reports.
type Opened struct {
	Engine  *salesdash.Engine
	Backend string
	Ready   func() bool
	// Preload is non-nil for backends that load lazily.
	Preload func(ctx context.Context) error
}

// OpenEngine builds the engine over the configured backend. The memory
// backend reads the configured CSV lazily on first use.
func OpenEngine(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Opened, error) {
	engineOpts, err := EngineOptions(cfg, log)
	if err != nil {
		return nil, err
	}

	if cfg.Storage.Backend == config.BackendMemory {
		store := memstore.New(
			loader.FileLoader(cfg.Data.CSV, loader.Options{Location: engineOpts.Location, Logger: log}),
			memstore.Options{Logger: log},
		)
		return &Opened{
			Engine:  salesdash.NewEngine(store, engineOpts),
			Backend: config.BackendMemory,
			Ready:   store.Ready,
			Preload: store.Preload,
		}, nil
	}

	store, err := OpenStore(ctx, cfg, log, false)
	if err != nil {
		return nil, err
	}
	return &Opened{
		Engine:  salesdash.NewEngine(store, engineOpts),
		Backend: string(store.Backend()),
		Ready:   func() bool { return true },
	}, nil
}
