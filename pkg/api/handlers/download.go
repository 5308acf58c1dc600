package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/photofold/photofold/internal/logger"
	"github.com/photofold/photofold/pkg/api/middleware"
	"github.com/photofold/photofold/pkg/download"
	"github.com/photofold/photofold/pkg/library/models"
)

// DownloadHandler handles download planning and archive streaming.
type DownloadHandler struct {
	service *download.Service
}

// NewDownloadHandler creates a new DownloadHandler.
func NewDownloadHandler(service *download.Service) *DownloadHandler {
	return &DownloadHandler{service: service}
}

// PlanRequest is the request body for POST /api/v1/download/plan.
// Exactly one of AssetIDs, AlbumID, or OwnerID selects the download scope.
type PlanRequest struct {
	AssetIDs []string `json:"asset_ids,omitempty"`
	AlbumID  string   `json:"album_id,omitempty"`
	OwnerID  string   `json:"owner_id,omitempty"`

	// ArchiveSize overrides the configured archive size threshold in bytes.
	ArchiveSize *int64 `json:"archive_size,omitempty"`
}

// ArchiveRequest is the request body for POST /api/v1/download/archive.
type ArchiveRequest struct {
	AssetIDs []string `json:"asset_ids"`
}

// Plan handles POST /api/v1/download/plan.
// Resolves a selection into size-bounded archive plans.
func (h *DownloadHandler) Plan(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	if claims == nil {
		Unauthorized(w, "Authentication required")
		return
	}

	var req PlanRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	sel := download.Selection{
		AssetIDs: req.AssetIDs,
		AlbumID:  req.AlbumID,
		OwnerID:  req.OwnerID,
	}

	info, err := h.service.PlanDownload(r.Context(), claims.UserID, sel, req.ArchiveSize)
	if err != nil {
		writeDownloadError(w, err)
		return
	}

	WriteJSONOK(w, info)
}

// Archive handles POST /api/v1/download/archive.
// Streams the requested assets as a single zip archive. Asset sets are
// checked before any byte is written, so validation failures still get a
// proper problem response; mid-stream failures can only abort the
// connection.
func (h *DownloadHandler) Archive(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	if claims == nil {
		Unauthorized(w, "Authentication required")
		return
	}

	var req ArchiveRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	zw := &archiveResponseWriter{w: w}
	if err := h.service.StreamArchive(r.Context(), claims.UserID, req.AssetIDs, zw); err != nil {
		if !zw.wroteHeader {
			writeDownloadError(w, err)
			return
		}
		// Too late for a status; the truncated stream is the signal.
		logger.Error("archive stream aborted", "principal", claims.UserID, "error", err)
	}
}

// writeDownloadError maps the download core's domain errors onto HTTP
// problem responses.
func writeDownloadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidRequest):
		BadRequest(w, "Invalid download selection")
	case errors.Is(err, models.ErrAccessDenied):
		Forbidden(w, "Access denied")
	case errors.Is(err, models.ErrAssetNotFound):
		NotFound(w, "Asset not found")
	case errors.Is(err, models.ErrAlbumNotFound):
		NotFound(w, "Album not found")
	case errors.Is(err, models.ErrUserNotFound):
		NotFound(w, "User not found")
	default:
		logger.Error("download request failed", "error", err)
		InternalServerError(w, "Download failed")
	}
}

// archiveResponseWriter defers the zip headers until the first byte so an
// error before streaming can still produce a problem response.
type archiveResponseWriter struct {
	w           http.ResponseWriter
	wroteHeader bool
}

func (a *archiveResponseWriter) Write(p []byte) (int, error) {
	if !a.wroteHeader {
		a.w.Header().Set("Content-Type", "application/zip")
		a.w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=photofold-%s.zip", time.Now().UTC().Format("20060102-150405")))
		a.w.WriteHeader(http.StatusOK)
		a.wroteHeader = true
	}
	return a.w.Write(p)
}
