// Package memstore keeps the whole record collection in memory and
// evaluates queries by scanning it.
package memstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/salesdash/salesdash/salesdash"
	"github.com/salesdash/salesdash/salesdash/query"
	"github.com/salesdash/salesdash/salesdash/record"
)

// Loader produces the full record collection. It is called at most once.
type Loader func(ctx context.Context) ([]record.Transaction, error)

// Options configures a Store
type Options struct {
	Logger zerolog.Logger
}

// Store is an in-memory record store loaded lazily behind a load-once guard.
// The first caller starts the load; every caller, including later ones,
// observes the same outcome.
type Store struct {
	loader Loader
	log    zerolog.Logger

	once sync.Once
	done chan struct{}

	// Written once before done is closed, read-only afterwards.
	records []record.Transaction
	options query.FilterOptions
	err     error
}

var _ salesdash.Backend = (*Store)(nil)

// New returns a store that loads its records through loader on first use.
func New(loader Loader, opts Options) *Store {
	return &Store{
		loader: loader,
		log:    opts.Logger,
		done:   make(chan struct{}),
	}
}

// FromRecords returns a store that is already loaded with records.
func FromRecords(records []record.Transaction) *Store {
	s := New(nil, Options{Logger: zerolog.Nop()})
	s.once.Do(func() {
		s.finish(records, nil)
	})
	return s
}

// start kicks off the load exactly once. The load is detached from the
// caller's cancellation so an impatient first caller cannot poison it.
func (s *Store) start(ctx context.Context) {
	s.once.Do(func() {
		loadCtx := context.WithoutCancel(ctx)
		go func() {
			started := time.Now()
			records, err := s.runLoader(loadCtx)
			if err != nil {
				s.log.Error().Err(err).Msg("record load failed")
			} else {
				s.log.Info().
					Int("records", len(records)).
					Dur("took", time.Since(started)).
					Msg("records loaded")
			}
			s.finish(records, err)
		}()
	})
}

func (s *Store) runLoader(ctx context.Context) (records []record.Transaction, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("loader panic: %v", r)
		}
	}()
	return s.loader(ctx)
}

func (s *Store) finish(records []record.Transaction, err error) {
	if err != nil {
		s.err = salesdash.LoadError(err)
	} else {
		s.records = truncateDates(records)
		s.options = query.DistinctOptions(s.records)
	}
	close(s.done)
}

// truncateDates returns records with dates cut to millisecond precision,
// the resolution of the SQL stores. Input records are not modified.
func truncateDates(records []record.Transaction) []record.Transaction {
	var out []record.Transaction
	for i := range records {
		d := records[i].Date
		if d == nil || d.Nanosecond()%int(time.Millisecond) == 0 {
			continue
		}
		if out == nil {
			out = append([]record.Transaction(nil), records...)
		}
		t := d.Truncate(time.Millisecond)
		out[i].Date = &t
	}
	if out == nil {
		return records
	}
	return out
}

// wait blocks until the load has finished or ctx is done.
func (s *Store) wait(ctx context.Context) error {
	s.start(ctx)
	select {
	case <-s.done:
		return s.err
	case <-ctx.Done():
		return salesdash.Wrap(salesdash.ErrNotLoaded, "waiting for records", ctx.Err())
	}
}

// Ready reports whether the load has finished, successfully or not.
func (s *Store) Ready() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// Preload starts the load if needed and waits for it.
func (s *Store) Preload(ctx context.Context) error {
	return s.wait(ctx)
}

// Len returns the number of loaded records, or 0 before the load finishes.
func (s *Store) Len() int {
	if !s.Ready() || s.err != nil {
		return 0
	}
	return len(s.records)
}

func (s *Store) Query(ctx context.Context, c query.Criteria) (query.Page, error) {
	if err := s.wait(ctx); err != nil {
		return query.Page{}, err
	}
	return query.Execute(s.records, c), nil
}

func (s *Store) FilterOptions(ctx context.Context) (query.FilterOptions, error) {
	if err := s.wait(ctx); err != nil {
		return query.FilterOptions{}, err
	}
	return s.options, nil
}

func (s *Store) Summary(ctx context.Context, c query.Criteria) (query.Summary, error) {
	if err := s.wait(ctx); err != nil {
		return query.Summary{}, err
	}
	return query.Summarize(query.Filter(query.Compose(c), s.records)), nil
}

// Close is a no-op; the records are garbage collected with the store.
func (s *Store) Close() error {
	return nil
}
