package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/pageblocks"
)

// Ensure BlobStore implements pageblocks.BlobStore and pageblocks.BlobReader
// at compile time.
var (
	_ pageblocks.BlobStore  = (*BlobStore)(nil)
	_ pageblocks.BlobReader = (*BlobStore)(nil)
)

// BlobStore keeps blobs as flat files with atomic update semantics.
// Blobs are written to a temporary directory, then moved atomically on
// Commit, so an interrupted run never leaves a half-written output.
type BlobStore struct {
	baseDir string
	name    string
}

// NewBlobStore creates a new BlobStore.
// baseDir is the parent directory, name is the output directory name.
// Blobs are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewBlobStore(baseDir, name string) *BlobStore {
	return &BlobStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *BlobStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

// Dir returns the directory blobs end up in after Commit.
func (s *BlobStore) Dir() string {
	return filepath.Join(s.baseDir, s.name)
}

// WriteBlob writes data under name in the temporary directory.
func (s *BlobStore) WriteBlob(_ context.Context, name string, data []byte) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.tempDir(), name), data, 0644)
}

// ReadBlob reads a blob written in this run, or else a committed one.
func (s *BlobStore) ReadBlob(_ context.Context, name string) ([]byte, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	for _, dir := range []string{s.tempDir(), s.Dir()} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}
	return nil, pageblocks.Errorf(pageblocks.ENOTFOUND, "blob %q not found", name)
}

// Commit replaces the output directory with the blobs written so far.
func (s *BlobStore) Commit() error {
	if _, err := os.Stat(s.tempDir()); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	// Remove existing final directory if present
	if err := os.RemoveAll(s.Dir()); err != nil {
		return err
	}

	return os.Rename(s.tempDir(), s.Dir())
}

// Abort discards the blobs written since the last Commit.
func (s *BlobStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}

// validateName rejects names that would escape the store directory.
func validateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return pageblocks.Errorf(pageblocks.EINVALID, "invalid blob name %q", name)
	}
	return nil
}
