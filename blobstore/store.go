package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Store is an abstraction for accessing line-oriented table blobs.
type Store interface {
	// Open opens a blob for sequential reading. Every call returns an
	// independent reader positioned at the start of the blob.
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// Create creates or truncates a blob for sequential writing.
	Create(ctx context.Context, name string) (io.WriteCloser, error)
}
