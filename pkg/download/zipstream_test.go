package download

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"

	"github.com/photofold/photofold/pkg/content"
	"github.com/photofold/photofold/pkg/library/models"
)

// memContent serves media bytes from a map keyed by storage path.
type memContent struct {
	files map[string]string
}

func (m *memContent) Open(_ context.Context, path string) (io.ReadCloser, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, content.ErrNotFound
	}
	return io.NopCloser(strings.NewReader(data)), nil
}

func namedAsset(id, name, path string, size int64) models.Asset {
	return models.Asset{
		ID:           id,
		OwnerID:      "owner-1",
		OriginalPath: path,
		OriginalName: name,
		Type:         models.AssetTypeImage,
		SizeBytes:    &size,
	}
}

func readArchive(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	entries := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open entry %s: %v", f.Name, err)
		}
		body, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read entry %s: %v", f.Name, err)
		}
		entries[f.Name] = string(body)
	}
	return entries
}

func TestStreamArchive_WritesEntries(t *testing.T) {
	source := newFakeSource(
		namedAsset("a1", "IMG_0001", "originals/a1.jpg", 5),
		namedAsset("a2", "IMG_0002", "originals/a2.jpg", 5),
	)
	store := &memContent{files: map[string]string{
		"originals/a1.jpg": "first",
		"originals/a2.jpg": "second",
	}}
	svc := NewService(source, &openGate{}, store, Config{})

	var buf bytes.Buffer
	if err := svc.StreamArchive(context.Background(), "owner-1", []string{"a1", "a2"}, &buf); err != nil {
		t.Fatalf("StreamArchive failed: %v", err)
	}

	entries := readArchive(t, buf.Bytes())
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries["IMG_0001.jpg"] != "first" {
		t.Errorf("IMG_0001.jpg body = %q, want %q", entries["IMG_0001.jpg"], "first")
	}
	if entries["IMG_0002.jpg"] != "second" {
		t.Errorf("IMG_0002.jpg body = %q, want %q", entries["IMG_0002.jpg"], "second")
	}
}

func TestStreamArchive_CollidingNames(t *testing.T) {
	source := newFakeSource(
		namedAsset("a1", "IMG_0001", "originals/a1.jpg", 1),
		namedAsset("a2", "IMG_0001", "originals/a2.jpg", 1),
		namedAsset("a3", "IMG_0001", "originals/a3.jpg", 1),
		namedAsset("a4", "IMG_0001", "originals/a4.heic", 1),
	)
	store := &memContent{files: map[string]string{
		"originals/a1.jpg":  "one",
		"originals/a2.jpg":  "two",
		"originals/a3.jpg":  "three",
		"originals/a4.heic": "four",
	}}
	svc := NewService(source, &openGate{}, store, Config{})

	var buf bytes.Buffer
	err := svc.StreamArchive(context.Background(), "owner-1", []string{"a1", "a2", "a3", "a4"}, &buf)
	if err != nil {
		t.Fatalf("StreamArchive failed: %v", err)
	}

	entries := readArchive(t, buf.Bytes())
	want := map[string]string{
		"IMG_0001.jpg":    "one",
		"IMG_0001+1.jpg":  "two",
		"IMG_0001+2.jpg":  "three",
		"IMG_0001.heic":   "four",
	}
	for name, body := range want {
		got, ok := entries[name]
		if !ok {
			t.Errorf("missing entry %q, have %v", name, entryNames(entries))
			continue
		}
		if got != body {
			t.Errorf("entry %q body = %q, want %q", name, got, body)
		}
	}
}

func entryNames(entries map[string]string) []string {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	return names
}

func TestStreamArchive_CounterResetsPerArchive(t *testing.T) {
	source := newFakeSource(
		namedAsset("a1", "IMG_0001", "originals/a1.jpg", 1),
	)
	store := &memContent{files: map[string]string{"originals/a1.jpg": "x"}}
	svc := NewService(source, &openGate{}, store, Config{})

	for i := 0; i < 2; i++ {
		var buf bytes.Buffer
		if err := svc.StreamArchive(context.Background(), "owner-1", []string{"a1"}, &buf); err != nil {
			t.Fatalf("StreamArchive run %d failed: %v", i, err)
		}
		entries := readArchive(t, buf.Bytes())
		if _, ok := entries["IMG_0001.jpg"]; !ok {
			t.Errorf("run %d: expected fresh IMG_0001.jpg, got %v", i, entryNames(entries))
		}
	}
}

func TestStreamArchive_Errors(t *testing.T) {
	source := newFakeSource(namedAsset("a1", "IMG_0001", "originals/a1.jpg", 1))
	store := &memContent{files: map[string]string{}}

	tests := []struct {
		name string
		gate Gate
		ids  []string
		want error
	}{
		{"empty selection", &openGate{}, nil, models.ErrInvalidRequest},
		{"access denied", denyGate{}, []string{"a1"}, models.ErrAccessDenied},
		{"unknown asset id", &openGate{}, []string{"missing"}, models.ErrAssetNotFound},
		{"missing content", &openGate{}, []string{"a1"}, models.ErrAssetNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(source, tt.gate, store, Config{})
			var buf bytes.Buffer
			err := svc.StreamArchive(context.Background(), "owner-1", tt.ids, &buf)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
