package salesdash

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/salesdash/salesdash/salesdash/query"
)

// Backend evaluates criteria against one record store.
type Backend interface {
	Query(ctx context.Context, c query.Criteria) (query.Page, error)
	FilterOptions(ctx context.Context) (query.FilterOptions, error)
	Summary(ctx context.Context, c query.Criteria) (query.Summary, error)
	Close() error
}

// StoreOptions configures a SQL store
type StoreOptions struct {
	// Location is attached to the dates of records read back from the store.
	Location *time.Location
	Logger   zerolog.Logger
}

// DefaultStoreOptions returns sensible defaults
func DefaultStoreOptions() StoreOptions {
	return StoreOptions{
		Location: time.Local,
		Logger:   zerolog.Nop(),
	}
}

// EngineOptions configures an Engine
type EngineOptions struct {
	Location    *time.Location
	MaxPageSize int
	Logger      zerolog.Logger
}

// DefaultEngineOptions returns sensible defaults
func DefaultEngineOptions() EngineOptions {
	return EngineOptions{
		Location:    time.Local,
		MaxPageSize: DefaultMaxPageSize,
		Logger:      zerolog.Nop(),
	}
}

func (o EngineOptions) normalizeOptions() query.NormalizeOptions {
	n := query.DefaultNormalizeOptions()
	if o.Location != nil {
		n.Location = o.Location
	}
	if o.MaxPageSize > 0 {
		n.MaxPageSize = o.MaxPageSize
	}
	return n
}
