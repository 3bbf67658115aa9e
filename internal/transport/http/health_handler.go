package http

import (
	"net/http"
	"time"

	"github.com/go-chi/render"
)

// HealthHandler serves liveness checks.
type HealthHandler struct {
	version string
	started time.Time
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{version: version, started: time.Now()}
}

// Healthz reports process liveness and uptime.
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status":  "ok",
		"version": h.version,
		"uptime":  time.Since(h.started).String(),
	})
}
