package pageblocks

import (
	"context"
	"io"
	"time"
)

// Page is the extracted content of one fetched page.
type Page struct {
	ID            string         `json:"id"`
	SourceURL     string         `json:"sourceUrl"`
	Path          string         `json:"path"`
	Title         string         `json:"title"`
	ContentHash   string         `json:"contentHash"`
	Blocks        []ContentBlock `json:"blocks"`
	Headers       []HeaderEntry  `json:"headers"`
	InternalLinks []string       `json:"internalLinks,omitempty"`
	ExternalLinks []string       `json:"externalLinks,omitempty"`
	ImageCounter  int            `json:"imageCounter"`
	FetchedAt     time.Time      `json:"fetchedAt"`
}

// URL returns the address the page was fetched from.
func (p *Page) URL() string {
	return p.SourceURL + p.Path
}

// Validate returns an error if the page contains invalid fields.
func (p *Page) Validate() error {
	if p.SourceURL == "" {
		return Errorf(EINVALID, "page source URL required")
	}
	return nil
}

// PageRequest describes a page to parse.
type PageRequest struct {
	// URL is the site root, or a file path when FromFile is set.
	URL string

	// Path is appended to URL. "/" is treated as empty.
	Path string

	TextOnly bool

	// FromFile reads HTML from the local file at URL. Implies TextOnly.
	FromFile bool

	// ImageCounter is the first image number to assign.
	ImageCounter int
}

// PageParser fetches and extracts pages.
type PageParser interface {
	// ParsePage fetches the page and extracts its content blocks.
	// Acquisition failures are returned as *FetchError.
	ParsePage(ctx context.Context, req PageRequest) (*Page, error)

	// ParseLinks fetches the page and groups every hyperlink on it.
	ParseLinks(ctx context.Context, req PageRequest, vocabulary []string) (*LinkResult, error)
}

// PageWriter writes pages to storage.
type PageWriter interface {
	CreatePage(ctx context.Context, page *Page) error
}

// PageService represents a service for managing extracted pages.
type PageService interface {
	// CreatePage stores a page with its blocks and headers.
	// An ID is generated if the page has none.
	CreatePage(ctx context.Context, page *Page) error

	// FindPageByID retrieves a page with its blocks and headers.
	// Returns ENOTFOUND if the page does not exist.
	FindPageByID(ctx context.Context, id string) (*Page, error)

	// FindPages retrieves pages matching the filter, without blocks.
	FindPages(ctx context.Context, filter PageFilter) ([]*Page, error)

	// DeletePage permanently removes a page and its blocks.
	// Returns ENOTFOUND if the page does not exist.
	DeletePage(ctx context.Context, id string) error
}

// PageFilter represents a filter for FindPages.
type PageFilter struct {
	ID        *string `json:"id"`
	SourceURL *string `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// PageEncoder writes a page in an interchange format.
type PageEncoder interface {
	EncodePage(w io.Writer, page *Page) error
}
