package pageblocks

// MinTextLength is the length a text or link block must exceed to be
// emitted. Shorter text is usually menu or footer boilerplate.
const MinTextLength = 50

// ContentType identifies what a block contributes.
type ContentType string

// Content types, in decreasing priority.
const (
	ContentImage ContentType = "image"
	ContentLink  ContentType = "link"
	ContentText  ContentType = "text"
)

// ContentBlock is one unit of extracted page content.
type ContentBlock struct {
	ContentType ContentType `json:"contentType"`
	Text        string      `json:"text"`
	Image       ImageRef    `json:"image"`
	Link        LinkRef     `json:"link"`
	Position    Position    `json:"position"`
	LastHeader  string      `json:"lastHeader"`
}

// ImageRef identifies a persisted image.
type ImageRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// LinkRef is the classified hyperlink of a block.
type LinkRef struct {
	Kind   LinkKind `json:"kind"`
	Target string   `json:"target"`
}

// Position locates a block within a crawl.
// Seq increases strictly within one extraction pass.
type Position struct {
	Root     string `json:"root"`
	Fragment string `json:"fragment"`
	Seq      int    `json:"seq"`
}

// Session describes a single extraction pass over one page.
type Session struct {
	// Root is the site URL, e.g. "https://example.com".
	Root string

	// Fragment is the page path below Root; empty for the root page.
	Fragment string

	// TextOnly skips image and link detection.
	TextOnly bool

	// ImageCounter is the next image number. Callers extracting several
	// pages of one site pass the previous pass's final counter forward.
	ImageCounter int
}

// BaseURL returns the URL links and images are resolved against.
func (s Session) BaseURL() string {
	return s.Root + s.Fragment
}

// Extraction is the output of one pass.
type Extraction struct {
	Blocks        []ContentBlock
	Headers       []HeaderEntry
	InternalLinks []string
	ExternalLinks []string
	ImageCounter  int
}
