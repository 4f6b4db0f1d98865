package salesdash

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/salesdash/salesdash/salesdash/query"
)

// Engine turns raw query parameters into results from a Backend.
// An empty page is a normal result; failures always come back as errors.
type Engine struct {
	backend Backend
	norm    query.NormalizeOptions
	log     zerolog.Logger
}

// NewEngine wraps backend
func NewEngine(backend Backend, opts EngineOptions) *Engine {
	return &Engine{
		backend: backend,
		norm:    opts.normalizeOptions(),
		log:     opts.Logger,
	}
}

// Backend returns the wrapped backend
func (e *Engine) Backend() Backend {
	return e.backend
}

// Normalize converts raw parameters using the engine's options
func (e *Engine) Normalize(p query.Params) query.Criteria {
	return query.Normalize(p, e.norm)
}

// Query normalizes p and returns the requested page
func (e *Engine) Query(ctx context.Context, p query.Params) (query.Page, error) {
	return e.QueryCriteria(ctx, e.Normalize(p))
}

// QueryCriteria returns the page for already-normalized criteria
func (e *Engine) QueryCriteria(ctx context.Context, c query.Criteria) (query.Page, error) {
	page, err := e.backend.Query(ctx, c)
	if err != nil {
		return query.Page{}, wrapBackend("query", err)
	}
	e.log.Debug().
		Int("total", page.Pagination.Total).
		Int("page", page.Pagination.Page).
		Int("returned", len(page.Data)).
		Msg("query served")
	return page, nil
}

// FilterOptions returns the distinct values of every filterable dimension
func (e *Engine) FilterOptions(ctx context.Context) (query.FilterOptions, error) {
	opts, err := e.backend.FilterOptions(ctx)
	if err != nil {
		return query.FilterOptions{}, wrapBackend("filter options", err)
	}
	return opts, nil
}

// Summary normalizes p and aggregates the full filtered set
func (e *Engine) Summary(ctx context.Context, p query.Params) (query.Summary, error) {
	sum, err := e.backend.Summary(ctx, e.Normalize(p))
	if err != nil {
		return query.Summary{}, wrapBackend("summary", err)
	}
	return sum, nil
}

// Close releases the backend
func (e *Engine) Close() error {
	return e.backend.Close()
}
