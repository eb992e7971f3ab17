package pageblocks

import "context"

// Blob names written by a page parse besides images.
const (
	SnapshotBlob = "page.html"
	MarkdownBlob = "page.md"
)

// BlobStore persists named byte blobs such as page snapshots and images.
type BlobStore interface {
	WriteBlob(ctx context.Context, name string, data []byte) error
}

// BlobReader reads back named blobs.
// Returns ENOTFOUND if the blob does not exist.
type BlobReader interface {
	ReadBlob(ctx context.Context, name string) ([]byte, error)
}
