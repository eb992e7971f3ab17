// Package fs provides file-based storage for page snapshots, images and
// encoded pages.
package fs

import (
	"bytes"
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/pageblocks"
)

// URLToPath converts a page URL to a relative file path with extension ext.
// Example: https://example.com/docs/api/users → docs/api/users.json
func URLToPath(rawURL, ext string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", pageblocks.Errorf(pageblocks.EINVALID, "invalid page URL %q: %v", rawURL, err)
	}

	path := u.Path

	// Handle root or trailing slash → index
	if path == "" || path == "/" {
		return "index" + ext, nil
	}

	// Remove leading slash
	path = strings.TrimPrefix(path, "/")

	// Trailing slash becomes index in that directory
	if strings.HasSuffix(path, "/") {
		return path + "index" + ext, nil
	}

	return path + ext, nil
}

// Ensure Writer implements pageblocks.PageWriter at compile time.
var _ pageblocks.PageWriter = (*Writer)(nil)

// Writer writes encoded pages to a directory tree mirroring page paths.
type Writer struct {
	baseDir string
	encoder pageblocks.PageEncoder
	ext     string
}

// NewWriter creates a new Writer that encodes pages with encoder into
// files named after the page path with extension ext.
func NewWriter(baseDir string, encoder pageblocks.PageEncoder, ext string) *Writer {
	return &Writer{baseDir: baseDir, encoder: encoder, ext: ext}
}

// CreatePage writes a page to disk.
func (w *Writer) CreatePage(_ context.Context, page *pageblocks.Page) error {
	if err := page.Validate(); err != nil {
		return err
	}

	relPath, err := URLToPath(page.URL(), w.ext)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := w.encoder.EncodePage(&buf, page); err != nil {
		return err
	}

	fullPath := filepath.Join(w.baseDir, relPath)

	// Create parent directories
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	return os.WriteFile(fullPath, buf.Bytes(), 0644)
}
