package blobstore

import (
	"bytes"
	"context"
	"io"
	"sync"
)

// MemStore is an in-memory Store, primarily for tests.
type MemStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{blobs: make(map[string][]byte)}
}

// Open opens a blob for reading.
func (s *MemStore) Open(_ context.Context, name string) (io.ReadCloser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.blobs[name]
	if !ok {
		return nil, ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Create creates or truncates a blob. The blob becomes visible on Close.
func (s *MemStore) Create(_ context.Context, name string) (io.WriteCloser, error) {
	return &memBlob{store: s, name: name}, nil
}

// Put stores a blob directly.
func (s *MemStore) Put(name string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[name] = append([]byte(nil), data...)
}

type memBlob struct {
	store *MemStore
	name  string
	buf   bytes.Buffer
}

func (b *memBlob) Write(p []byte) (int, error) {
	return b.buf.Write(p)
}

func (b *memBlob) Close() error {
	b.store.mu.Lock()
	defer b.store.mu.Unlock()
	b.store.blobs[b.name] = append([]byte(nil), b.buf.Bytes()...)
	return nil
}
