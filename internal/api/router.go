package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/salesdash/salesdash/internal/api/handlers"
	"github.com/salesdash/salesdash/internal/api/middleware"
)

// RouterConfig wires the HTTP routes.
type RouterConfig struct {
	Engine       handlers.Engine
	Backend      string
	Ready        func() bool
	QueryTimeout time.Duration
	Logger       zerolog.Logger
}

// getOnly rejects every method except GET (and HEAD).
func getOnly(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead {
			h(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed", "")
		}
	}
}

// NewRouter returns the API handler with middleware applied.
func NewRouter(cfg RouterConfig) http.Handler {
	log := cfg.Logger
	sales := handlers.NewSalesHandler(cfg.Engine, cfg.QueryTimeout, log)
	health := handlers.NewHealthHandler(cfg.Backend, cfg.Ready)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/sales", getOnly(sales.ListSales))
	mux.HandleFunc("/api/sales/filters", getOnly(sales.FilterOptions))
	mux.HandleFunc("/api/sales/summary", getOnly(sales.Summary))
	mux.HandleFunc("/api/health", getOnly(health.Health))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, http.StatusNotFound, "Not found", r.URL.Path)
	})

	return middleware.Chain(mux,
		middleware.Recovery(log),
		middleware.RequestID,
		middleware.Logger(log),
		middleware.CORS,
	)
}
