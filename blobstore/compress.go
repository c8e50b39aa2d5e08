package blobstore

import (
	"context"
	"io"
	"path"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// OpenDecoded opens a blob and layers transparent decompression over it
// based on the blob name's extension: ".gz", ".zst", or ".lz4". Any other
// extension is passed through untouched.
func OpenDecoded(ctx context.Context, store Store, name string) (io.ReadCloser, error) {
	rc, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}

	switch path.Ext(name) {
	case ".gz":
		zr, err := gzip.NewReader(rc)
		if err != nil {
			rc.Close()
			return nil, err
		}
		return &decodedReader{r: zr, closers: []io.Closer{zr, rc}}, nil
	case ".zst":
		zr, err := zstd.NewReader(rc)
		if err != nil {
			rc.Close()
			return nil, err
		}
		zrc := zr.IOReadCloser()
		return &decodedReader{r: zrc, closers: []io.Closer{zrc, rc}}, nil
	case ".lz4":
		return &decodedReader{r: lz4.NewReader(rc), closers: []io.Closer{rc}}, nil
	default:
		return rc, nil
	}
}

// CreateEncoded creates a blob and layers transparent compression over it
// based on the blob name's extension, mirroring OpenDecoded.
func CreateEncoded(ctx context.Context, store Store, name string) (io.WriteCloser, error) {
	wc, err := store.Create(ctx, name)
	if err != nil {
		return nil, err
	}

	switch path.Ext(name) {
	case ".gz":
		zw := gzip.NewWriter(wc)
		return &encodedWriter{w: zw, closers: []io.Closer{zw, wc}}, nil
	case ".zst":
		zw, err := zstd.NewWriter(wc)
		if err != nil {
			wc.Close()
			return nil, err
		}
		return &encodedWriter{w: zw, closers: []io.Closer{zw, wc}}, nil
	case ".lz4":
		zw := lz4.NewWriter(wc)
		return &encodedWriter{w: zw, closers: []io.Closer{zw, wc}}, nil
	default:
		return wc, nil
	}
}

// decodedReader reads from the codec layer and closes the codec before the
// underlying blob.
type decodedReader struct {
	r       io.Reader
	closers []io.Closer
}

func (d *decodedReader) Read(p []byte) (int, error) {
	return d.r.Read(p)
}

func (d *decodedReader) Close() error {
	var firstErr error
	for _, c := range d.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

type encodedWriter struct {
	w       io.Writer
	closers []io.Closer
}

func (e *encodedWriter) Write(p []byte) (int, error) {
	return e.w.Write(p)
}

func (e *encodedWriter) Close() error {
	var firstErr error
	for _, c := range e.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
