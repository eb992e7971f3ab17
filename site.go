package pageblocks

import "context"

// LinkPriority orders the sub-pages of a site crawl.
type LinkPriority int

// Link priorities, lowest first.
const (
	PriorityContent LinkPriority = iota

	// PriorityTop marks links whose path names a vocabulary term.
	PriorityTop
)

// CrawlLink is an internal link queued for a site crawl.
type CrawlLink struct {
	Path     string
	Priority LinkPriority
}

// URLFrontier manages a crawl queue with deduplication.
type URLFrontier interface {
	// Push adds a link to the frontier.
	// Returns false if the path has already been seen.
	Push(link CrawlLink) bool

	// Pop returns the next link by priority, in push order within a
	// priority. Returns false if the frontier is empty.
	Pop() (CrawlLink, bool)

	// Len returns the number of queued links.
	Len() int

	// Seen returns true if the path has been processed or queued.
	Seen(path string) bool
}

// Site is the result of crawling a root page and its internal links.
type Site struct {
	Root  string  `json:"root"`
	Pages []*Page `json:"pages"`

	// Failed lists the sub-page paths that could not be parsed.
	Failed []string `json:"failed,omitempty"`

	// ImageCounter is the next free image number after the crawl.
	ImageCounter int `json:"imageCounter"`
}

// SiteRequest describes a site crawl.
type SiteRequest struct {
	URL      string
	TextOnly bool

	// MaxPages caps the number of sub-pages parsed; 0 means no cap.
	MaxPages int

	// Vocabulary terms move matching links to the front of the queue.
	Vocabulary []string

	ImageCounter int
}

// SiteCrawler parses a site root and the pages it links to.
type SiteCrawler interface {
	// CrawlSite parses the root page, then each of its internal links once.
	// Only a root page failure is returned; sub-page failures are
	// recorded in Site.Failed.
	CrawlSite(ctx context.Context, req SiteRequest) (*Site, error)
}
