package pageblocks

import "context"

// FetchResponse is the raw result of a fetch.
type FetchResponse struct {
	// URL is the final URL after redirects.
	URL        string
	StatusCode int
	Body       []byte
}

// Fetcher retrieves pages and images.
// Fetch blocks until the body is read and never retries. A non-200 status
// is not an error at this level; callers decide what to accept.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResponse, error)
}
