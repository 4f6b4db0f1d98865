package handlers

import (
	"net/http"
	"time"

	"github.com/salesdash/salesdash/internal/api/middleware"
)

// HealthHandler reports liveness and whether the record store is loaded.
type HealthHandler struct {
	backend string
	ready   func() bool
	now     func() time.Time
}

// NewHealthHandler creates a health handler. A nil ready func reports ready.
func NewHealthHandler(backend string, ready func() bool) *HealthHandler {
	if ready == nil {
		ready = func() bool { return true }
	}
	return &HealthHandler{backend: backend, ready: ready, now: time.Now}
}

// Health handles GET /api/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"ready":   h.ready(),
		"backend": h.backend,
		"time":    h.now().Format(time.RFC3339),
	})
}
