package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"

	"github.com/photofold/photofold/pkg/api/auth"
	"github.com/photofold/photofold/pkg/api/middleware"
	"github.com/photofold/photofold/pkg/content"
	"github.com/photofold/photofold/pkg/download"
	"github.com/photofold/photofold/pkg/library/models"
)

// Download handler tests run against the real download service over
// in-memory fakes for the store, gate, and content backends.

type stubSource struct {
	assets map[string]models.Asset
}

func (s *stubSource) GetAssetsByIDs(_ context.Context, ids []string) ([]models.Asset, error) {
	out := make([]models.Asset, 0, len(ids))
	for _, id := range ids {
		if a, ok := s.assets[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *stubSource) AssetsByAlbum(_ context.Context, _, _ string, _ int) (*models.AssetPage, error) {
	return &models.AssetPage{}, nil
}

func (s *stubSource) AssetsByOwner(_ context.Context, _, _ string, _ int) (*models.AssetPage, error) {
	return &models.AssetPage{}, nil
}

type stubGate struct {
	deny bool
}

func (g *stubGate) RequireAssetsDownload(context.Context, string, []string) error {
	if g.deny {
		return models.ErrAccessDenied
	}
	return nil
}

func (g *stubGate) RequireAlbumDownload(context.Context, string, string) error {
	if g.deny {
		return models.ErrAccessDenied
	}
	return nil
}

func (g *stubGate) RequireOwnerDownload(context.Context, string, string) error {
	if g.deny {
		return models.ErrAccessDenied
	}
	return nil
}

type stubContent struct {
	files map[string]string
}

func (c *stubContent) Open(_ context.Context, path string) (io.ReadCloser, error) {
	data, ok := c.files[path]
	if !ok {
		return nil, content.ErrNotFound
	}
	return io.NopCloser(strings.NewReader(data)), nil
}

func newDownloadTest(t *testing.T, gate *stubGate) *DownloadHandler {
	t.Helper()
	size := int64(5)
	source := &stubSource{assets: map[string]models.Asset{
		"a1": {
			ID:           "a1",
			OwnerID:      "user-1",
			OriginalPath: "originals/a1.jpg",
			OriginalName: "IMG_0001",
			Type:         models.AssetTypeImage,
			SizeBytes:    &size,
		},
		"a2": {
			ID:           "a2",
			OwnerID:      "user-1",
			OriginalPath: "originals/a2.jpg",
			OriginalName: "IMG_0002",
			Type:         models.AssetTypeImage,
			SizeBytes:    &size,
		},
	}}
	store := &stubContent{files: map[string]string{
		"originals/a1.jpg": "first",
		"originals/a2.jpg": "second",
	}}
	service := download.NewService(source, gate, store, download.Config{TargetSize: 100})
	return NewDownloadHandler(service)
}

func authedRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	return req.WithContext(middleware.WithClaims(req.Context(), &auth.Claims{
		UserID:   "user-1",
		Username: "alice",
		Role:     "user",
	}))
}

func TestDownloadPlan(t *testing.T) {
	handler := newDownloadTest(t, &stubGate{})

	req := authedRequest(t, http.MethodPost, "/api/v1/download/plan", PlanRequest{
		AssetIDs: []string{"a1", "a2"},
	})
	w := httptest.NewRecorder()
	handler.Plan(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
	var info download.DownloadInfo
	if err := json.Unmarshal(w.Body.Bytes(), &info); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(info.Archives) != 1 || info.TotalSizeBytes != 10 {
		t.Errorf("plan = %+v", info)
	}
}

func TestDownloadPlan_Errors(t *testing.T) {
	tests := []struct {
		name       string
		gate       *stubGate
		request    PlanRequest
		wantStatus int
	}{
		{"empty selection", &stubGate{}, PlanRequest{}, http.StatusBadRequest},
		{"access denied", &stubGate{deny: true}, PlanRequest{AssetIDs: []string{"a1"}}, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newDownloadTest(t, tt.gate)
			req := authedRequest(t, http.MethodPost, "/api/v1/download/plan", tt.request)
			w := httptest.NewRecorder()
			handler.Plan(w, req)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if ct := w.Header().Get("Content-Type"); ct != ContentTypeProblemJSON {
				t.Errorf("content type = %q, want problem+json", ct)
			}
		})
	}
}

func TestDownloadPlan_Unauthenticated(t *testing.T) {
	handler := newDownloadTest(t, &stubGate{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/download/plan",
		strings.NewReader(`{"asset_ids":["a1"]}`))
	w := httptest.NewRecorder()
	handler.Plan(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestDownloadArchive(t *testing.T) {
	handler := newDownloadTest(t, &stubGate{})

	req := authedRequest(t, http.MethodPost, "/api/v1/download/archive", ArchiveRequest{
		AssetIDs: []string{"a1", "a2"},
	})
	w := httptest.NewRecorder()
	handler.Archive(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/zip" {
		t.Errorf("content type = %q, want application/zip", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.HasPrefix(cd, "attachment; filename=photofold-") {
		t.Errorf("content disposition = %q", cd)
	}

	data := w.Body.Bytes()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("response is not a zip: %v", err)
	}
	if len(zr.File) != 2 {
		t.Errorf("archive has %d entries, want 2", len(zr.File))
	}
}

func TestDownloadArchive_ErrorBeforeStream(t *testing.T) {
	tests := []struct {
		name       string
		gate       *stubGate
		ids        []string
		wantStatus int
	}{
		{"empty asset list", &stubGate{}, nil, http.StatusBadRequest},
		{"access denied", &stubGate{deny: true}, []string{"a1"}, http.StatusForbidden},
		{"unknown asset", &stubGate{}, []string{"missing"}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newDownloadTest(t, tt.gate)
			req := authedRequest(t, http.MethodPost, "/api/v1/download/archive", ArchiveRequest{AssetIDs: tt.ids})
			w := httptest.NewRecorder()
			handler.Archive(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d; body: %s", w.Code, tt.wantStatus, w.Body.String())
			}
			// No zip headers may leak on a failed request.
			if ct := w.Header().Get("Content-Type"); ct != ContentTypeProblemJSON {
				t.Errorf("content type = %q, want problem+json", ct)
			}
		})
	}
}
