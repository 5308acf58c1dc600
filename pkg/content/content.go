// Package content defines the media content store: access to the original
// file bytes behind an asset's path. Implementations live in the fs and s3
// subpackages; the download streamer consumes this interface and owns no
// file data itself.
package content

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound indicates the content path does not exist in the store.
var ErrNotFound = errors.New("content not found")

// Store provides read access to original media bytes.
type Store interface {
	// Open returns a reader over the content at path. The caller must
	// close the reader.
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}
