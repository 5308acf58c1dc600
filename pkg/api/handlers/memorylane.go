package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/photofold/photofold/internal/logger"
	"github.com/photofold/photofold/pkg/api/middleware"
	"github.com/photofold/photofold/pkg/library/models"
	"github.com/photofold/photofold/pkg/memorylane"
)

// DefaultMemoryLaneYears is how many years back a memory lane query looks
// when the request does not say.
const DefaultMemoryLaneYears = 10

// MemoryLaneHandler handles anniversary asset queries.
type MemoryLaneHandler struct {
	aggregator *memorylane.Aggregator
}

// NewMemoryLaneHandler creates a new MemoryLaneHandler.
func NewMemoryLaneHandler(aggregator *memorylane.Aggregator) *MemoryLaneHandler {
	return &MemoryLaneHandler{aggregator: aggregator}
}

// MemoryLaneResponse is the response body for GET /api/v1/memory-lane.
type MemoryLaneResponse struct {
	Anchor  string             `json:"anchor"`
	Entries []memorylane.Entry `json:"entries"`
}

// Get handles GET /api/v1/memory-lane?anchor=YYYY-MM-DD&years=N.
// Anchor defaults to today; years defaults to DefaultMemoryLaneYears.
func (h *MemoryLaneHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	if claims == nil {
		Unauthorized(w, "Authentication required")
		return
	}

	anchor := time.Now().UTC()
	if raw := r.URL.Query().Get("anchor"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			BadRequest(w, "Invalid anchor date, expected YYYY-MM-DD")
			return
		}
		anchor = parsed
	}

	years := DefaultMemoryLaneYears
	if raw := r.URL.Query().Get("years"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			BadRequest(w, "Invalid years value")
			return
		}
		years = parsed
	}

	entries, err := h.aggregator.MemoryLane(r.Context(), claims.UserID, anchor, years)
	if err != nil {
		if errors.Is(err, models.ErrInvalidRequest) {
			BadRequest(w, "Years must be at least 1")
			return
		}
		logger.Error("memory lane query failed", "error", err)
		InternalServerError(w, "Memory lane query failed")
		return
	}

	WriteJSONOK(w, MemoryLaneResponse{
		Anchor:  anchor.Format("2006-01-02"),
		Entries: entries,
	})
}
