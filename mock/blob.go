package mock

import (
	"context"
	"sync"

	"github.com/fwojciec/pageblocks"
)

// Compile-time interface verification.
var (
	_ pageblocks.BlobStore  = (*BlobStore)(nil)
	_ pageblocks.BlobReader = (*BlobStore)(nil)
	_ pageblocks.BlobStore  = (*MemoryBlobStore)(nil)
	_ pageblocks.BlobReader = (*MemoryBlobStore)(nil)
)

// BlobStore is a mock implementation of pageblocks.BlobStore and pageblocks.BlobReader.
type BlobStore struct {
	WriteBlobFn func(ctx context.Context, name string, data []byte) error
	ReadBlobFn  func(ctx context.Context, name string) ([]byte, error)
}

func (s *BlobStore) WriteBlob(ctx context.Context, name string, data []byte) error {
	return s.WriteBlobFn(ctx, name, data)
}

func (s *BlobStore) ReadBlob(ctx context.Context, name string) ([]byte, error) {
	return s.ReadBlobFn(ctx, name)
}

// MemoryBlobStore keeps blobs in a map. It is safe for concurrent use.
type MemoryBlobStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
	names []string
}

// NewMemoryBlobStore returns an empty MemoryBlobStore.
func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{blobs: make(map[string][]byte)}
}

func (s *MemoryBlobStore) WriteBlob(_ context.Context, name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blobs[name]; !ok {
		s.names = append(s.names, name)
	}
	s.blobs[name] = append([]byte(nil), data...)
	return nil
}

func (s *MemoryBlobStore) ReadBlob(_ context.Context, name string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[name]
	if !ok {
		return nil, pageblocks.Errorf(pageblocks.ENOTFOUND, "blob %q not found", name)
	}
	return data, nil
}

// Names returns blob names in first-write order.
func (s *MemoryBlobStore) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.names...)
}
