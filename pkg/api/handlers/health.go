package handlers

import (
	"context"
	"net/http"
	"time"
)

// Response represents a standard health response wrapper.
type Response struct {
	Status    string      `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	store Pinger
}

// NewHealthHandler creates a new HealthHandler. The store may be nil, in
// which case readiness only reports process liveness.
func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

// Liveness handles GET /health.
// Always returns 200 while the process is serving requests.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	WriteJSONOK(w, Response{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
	})
}

// Readiness handles GET /health/ready.
// Returns 503 when the library store is unreachable.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.store.Ping(ctx); err != nil {
			WriteJSON(w, http.StatusServiceUnavailable, Response{
				Status:    "unhealthy",
				Timestamp: time.Now().UTC(),
				Error:     err.Error(),
			})
			return
		}
	}

	WriteJSONOK(w, Response{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
	})
}
