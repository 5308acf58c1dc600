// Package fs implements the content store on a local filesystem directory.
package fs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/photofold/photofold/pkg/content"
)

// Store serves media bytes from a root directory. Asset paths are treated
// as relative to the root; escaping the root is rejected.
type Store struct {
	root string
}

// New creates a filesystem content store rooted at dir.
func New(dir string) (*Store, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve content root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("content root %s: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content root %s is not a directory", abs)
	}
	return &Store{root: abs}, nil
}

// Open opens the media file at path.
func (s *Store) Open(_ context.Context, path string) (io.ReadCloser, error) {
	full := filepath.Join(s.root, filepath.Clean("/"+path))
	if !strings.HasPrefix(full, s.root+string(filepath.Separator)) {
		return nil, fmt.Errorf("path %q escapes content root: %w", path, content.ErrNotFound)
	}

	f, err := os.Open(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, content.ErrNotFound)
		}
		return nil, err
	}
	return f, nil
}
