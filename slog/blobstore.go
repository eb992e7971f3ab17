package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pageblocks"
)

// Ensure LoggingBlobStore implements pageblocks.BlobStore.
var _ pageblocks.BlobStore = (*LoggingBlobStore)(nil)

// LoggingBlobStore wraps a BlobStore with debug logging.
type LoggingBlobStore struct {
	next   pageblocks.BlobStore
	logger *slog.Logger
}

// NewLoggingBlobStore creates a new LoggingBlobStore.
func NewLoggingBlobStore(next pageblocks.BlobStore, logger *slog.Logger) *LoggingBlobStore {
	return &LoggingBlobStore{next: next, logger: logger}
}

// WriteBlob delegates to the wrapped store and logs the write.
func (s *LoggingBlobStore) WriteBlob(ctx context.Context, name string, data []byte) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("write blob",
			"name", name,
			"bytes", len(data),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.WriteBlob(ctx, name, data)
}
