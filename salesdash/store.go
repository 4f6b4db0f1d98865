package salesdash

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/salesdash/salesdash/salesdash/ops"
	"github.com/salesdash/salesdash/salesdash/query"
	"github.com/salesdash/salesdash/salesdash/record"
	"github.com/salesdash/salesdash/salesdash/storage"
)

// Store is a record store backed by a SQL database
type Store struct {
	adapter storage.Adapter
	db      *sql.DB
	opts    StoreOptions
}

var _ Backend = (*Store)(nil)

// Create creates the store tables and metadata
func Create(ctx context.Context, adapter storage.Adapter, opts StoreOptions) (*Store, error) {
	db, err := adapter.Connect(ctx)
	if err != nil {
		return nil, Wrap(ErrIO, "connect to database", err)
	}

	if err := adapter.CreateStore(ctx, db); err != nil {
		db.Close()
		return nil, Wrap(ErrSQL, "create store", err)
	}

	return &Store{adapter: adapter, db: db, opts: opts}, nil
}

// Open opens an existing store
func Open(ctx context.Context, adapter storage.Adapter, opts StoreOptions) (*Store, error) {
	db, err := adapter.Connect(ctx)
	if err != nil {
		return nil, Wrap(ErrIO, "connect to database", err)
	}

	version, err := adapter.OpenStore(ctx, db)
	if err != nil {
		db.Close()
		return nil, Wrap(ErrSchema, "open store", err)
	}
	if version != storage.SchemaVersion {
		db.Close()
		return nil, New(ErrSchema, fmt.Sprintf("unsupported schema version %q (want %q)", version, storage.SchemaVersion))
	}

	return &Store{adapter: adapter, db: db, opts: opts}, nil
}

// Close closes the store
func (s *Store) Close() error {
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return Wrap(ErrIO, "close database", err)
		}
	}
	return s.adapter.Close()
}

// Backend reports which database engine serves the store
func (s *Store) Backend() storage.Backend {
	return s.adapter.Backend()
}

// ID identifies the underlying database, for locks and log lines
func (s *Store) ID() string {
	return s.adapter.StoreID()
}

// Query returns one page of sales matching c
func (s *Store) Query(ctx context.Context, c query.Criteria) (query.Page, error) {
	res, err := s.query(ctx, c, false)
	if err != nil {
		return query.Page{}, err
	}
	return res.Page, nil
}

// Explain runs the query and also returns the SQL and the compiled steps
func (s *Store) Explain(ctx context.Context, c query.Criteria) (*ops.QueryResult, error) {
	return s.query(ctx, c, true)
}

func (s *Store) query(ctx context.Context, c query.Criteria, explain bool) (*ops.QueryResult, error) {
	res, err := ops.Query(ctx, s.db, s.adapter, c, ops.QueryOptions{
		Location: s.opts.Location,
		Explain:  explain,
		Logger:   s.opts.Logger,
	})
	if err != nil {
		return nil, Wrap(ErrSQL, "query sales", err)
	}
	return res, nil
}

// FilterOptions returns the distinct values of every filterable dimension
func (s *Store) FilterOptions(ctx context.Context) (query.FilterOptions, error) {
	opts, err := ops.DistinctOptions(ctx, s.db)
	if err != nil {
		return query.FilterOptions{}, Wrap(ErrSQL, "list filter options", err)
	}
	return opts, nil
}

// Summary aggregates every sale matching c
func (s *Store) Summary(ctx context.Context, c query.Criteria) (query.Summary, error) {
	sum, err := ops.Summary(ctx, s.db, s.adapter, c)
	if err != nil {
		return query.Summary{}, Wrap(ErrSQL, "summarize sales", err)
	}
	return sum, nil
}

// InsertBatch appends records in one transaction. Insertion order is the
// order ties are broken in when sorting.
func (s *Store) InsertBatch(ctx context.Context, records []record.Transaction) (int, error) {
	n, err := ops.InsertBatch(ctx, s.db, s.adapter, records)
	if err != nil {
		return 0, Wrap(ErrSQL, "insert batch", err)
	}
	return n, nil
}

// Clear deletes every stored sale
func (s *Store) Clear(ctx context.Context) error {
	if err := ops.Clear(ctx, s.db, s.adapter); err != nil {
		return Wrap(ErrSQL, "clear sales", err)
	}
	return nil
}

// Count returns the number of stored sales
func (s *Store) Count(ctx context.Context) (int, error) {
	n, err := ops.Count(ctx, s.db, s.adapter)
	if err != nil {
		return 0, Wrap(ErrSQL, "count sales", err)
	}
	return n, nil
}

// Optimize runs database maintenance
func (s *Store) Optimize(ctx context.Context) error {
	if err := s.adapter.Optimize(ctx, s.db); err != nil {
		return Wrap(ErrSQL, "optimize", err)
	}
	return nil
}
