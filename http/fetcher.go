// Package http provides an HTTP-based implementation of pageblocks.Fetcher
// for pages and images that don't require JavaScript rendering.
package http

import (
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/pageblocks"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent identifies requests as coming from a browser. Many
// sites reject requests without one.
const DefaultUserAgent = "Mozilla/5.0"

// DefaultMaxBodyBytes caps the size of a fetched body.
const DefaultMaxBodyBytes = 32 << 20

// Ensure Fetcher implements pageblocks.Fetcher at compile time.
var _ pageblocks.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages and images using HTTP GET requests.
type Fetcher struct {
	client       *http.Client
	timeout      time.Duration
	userAgent    string
	insecure     bool
	maxBodyBytes int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithInsecureSkipVerify disables TLS certificate verification. Use it
// only for sites with private or broken certificate chains.
func WithInsecureSkipVerify(skip bool) Option {
	return func(f *Fetcher) {
		f.insecure = skip
	}
}

// WithMaxBodyBytes caps the number of body bytes read per request.
func WithMaxBodyBytes(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodyBytes = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:      DefaultFetchTimeout,
		userAgent:    DefaultUserAgent,
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}
	if f.insecure {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in via --insecure
		f.client.Transport = transport
	}

	return f
}

// Fetch retrieves the body at url. Any status code is returned to the
// caller; only transport failures are errors.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*pageblocks.FetchResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, pageblocks.Errorf(pageblocks.EINVALID, "invalid URL %q: %v", url, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes))
	if err != nil {
		return nil, err
	}

	return &pageblocks.FetchResponse{
		URL:        resp.Request.URL.String(),
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}

// Close releases idle connections.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}
