package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/salesdash/salesdash/internal/api/middleware"
	"github.com/salesdash/salesdash/internal/logger"
	"github.com/salesdash/salesdash/salesdash/query"
)

// Engine answers sales queries from raw parameters.
type Engine interface {
	Query(ctx context.Context, p query.Params) (query.Page, error)
	FilterOptions(ctx context.Context) (query.FilterOptions, error)
	Summary(ctx context.Context, p query.Params) (query.Summary, error)
}

// SalesHandler handles sales-related endpoints.
type SalesHandler struct {
	engine  Engine
	timeout time.Duration
	log     zerolog.Logger
}

// NewSalesHandler creates a new sales handler. A zero timeout leaves the
// request context as is.
func NewSalesHandler(engine Engine, timeout time.Duration, log zerolog.Logger) *SalesHandler {
	return &SalesHandler{
		engine:  engine,
		timeout: timeout,
		log:     log,
	}
}

func (h *SalesHandler) context(r *http.Request) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), h.timeout)
}

// requestLog prefers the request-scoped logger set by middleware.
func (h *SalesHandler) requestLog(ctx context.Context) zerolog.Logger {
	if _, ok := ctx.Value(logger.LoggerKey).(zerolog.Logger); ok {
		return logger.FromContext(ctx)
	}
	return h.log
}

func (h *SalesHandler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	log := h.requestLog(ctx)
	log.Error().Err(err).Msg(msg)
	middleware.WriteError(w, http.StatusInternalServerError, "Internal server error", err.Error())
}

// ListSales handles GET /api/sales
func (h *SalesHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.context(r)
	defer cancel()

	page, err := h.engine.Query(ctx, query.ParamsFromValues(r.URL.Query()))
	if err != nil {
		h.fail(ctx, w, "Failed to query sales", err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, page)
}

// FilterOptions handles GET /api/sales/filters
func (h *SalesHandler) FilterOptions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.context(r)
	defer cancel()

	opts, err := h.engine.FilterOptions(ctx)
	if err != nil {
		h.fail(ctx, w, "Failed to list filter options", err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, opts)
}

// Summary handles GET /api/sales/summary
func (h *SalesHandler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.context(r)
	defer cancel()

	sum, err := h.engine.Summary(ctx, query.ParamsFromValues(r.URL.Query()))
	if err != nil {
		h.fail(ctx, w, "Failed to summarize sales", err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, sum)
}
