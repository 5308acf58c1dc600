package fs

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/photofold/photofold/pkg/content"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	root := t.TempDir()
	store, err := New(root)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return store, root
}

func writeFile(t *testing.T, root, rel, body string) {
	t.Helper()
	full := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(full, []byte(body), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

func TestNew_MissingRoot(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing root directory")
	}
}

func TestNew_RootIsFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "file", "x")
	if _, err := New(filepath.Join(root, "file")); err == nil {
		t.Error("expected error for file as root")
	}
}

func TestOpen(t *testing.T) {
	store, root := newTestStore(t)
	writeFile(t, root, "originals/ab/photo.jpg", "jpeg bytes")

	rc, err := store.Open(context.Background(), "originals/ab/photo.jpg")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer rc.Close()

	body, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(body) != "jpeg bytes" {
		t.Errorf("body = %q", body)
	}
}

func TestOpen_NotFound(t *testing.T) {
	store, _ := newTestStore(t)
	if _, err := store.Open(context.Background(), "missing.jpg"); !errors.Is(err, content.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestOpen_PathTraversal(t *testing.T) {
	store, root := newTestStore(t)
	writeFile(t, filepath.Dir(root), "secret.txt", "outside")

	for _, path := range []string{
		"../secret.txt",
		"a/../../secret.txt",
		"..",
	} {
		if _, err := store.Open(context.Background(), path); !errors.Is(err, content.ErrNotFound) {
			t.Errorf("path %q: expected ErrNotFound, got %v", path, err)
		}
	}
}
