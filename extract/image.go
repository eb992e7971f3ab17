package extract

import (
	"context"
	"errors"
	"net/http"

	"github.com/fwojciec/pageblocks"
)

// ImageResult is a fetched image ready to be persisted under Name.
type ImageResult struct {
	Name string
	URL  string
	Type string
	Data []byte
}

// ImageResolver locates, types and fetches image candidates.
type ImageResolver struct {
	fetcher pageblocks.Fetcher
}

// NewImageResolver creates a new ImageResolver backed by fetcher.
func NewImageResolver(fetcher pageblocks.Fetcher) *ImageResolver {
	return &ImageResolver{fetcher: fetcher}
}

// Locate resolves src against the site root and page URL and determines
// the image type.
// No network call is made, so scripts and other non-image sources are
// rejected before anything is downloaded.
func (r *ImageResolver) Locate(src, root, page string) (url, typ string, err error) {
	url, err = pageblocks.ResolveImageURL(src, root, page)
	if err != nil {
		return "", "", err
	}
	typ, err = pageblocks.SniffImageType(url)
	if err != nil {
		return "", "", err
	}
	return url, typ, nil
}

// Fetch downloads the image at url. Any status other than 200 is
// reported as a *pageblocks.FetchError.
func (r *ImageResolver) Fetch(ctx context.Context, url string) ([]byte, error) {
	return fetchBody(ctx, r.fetcher, url)
}

// Resolve locates and fetches the image named by src and assigns it the
// name image<counter>.<type>. The counter is not advanced; callers do
// that once the image has been accepted.
func (r *ImageResolver) Resolve(ctx context.Context, src, root, page string, counter int) (*ImageResult, error) {
	url, typ, err := r.Locate(src, root, page)
	if err != nil {
		return nil, err
	}
	data, err := r.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return newImageResult(url, typ, data, counter), nil
}

func newImageResult(url, typ string, data []byte, counter int) *ImageResult {
	return &ImageResult{
		Name: pageblocks.ImageName(counter, typ),
		URL:  url,
		Type: typ,
		Data: data,
	}
}

// fetchBody fetches url and returns the body of a 200 response. Every
// failure is returned as a *pageblocks.FetchError.
func fetchBody(ctx context.Context, fetcher pageblocks.Fetcher, url string) ([]byte, error) {
	resp, err := fetcher.Fetch(ctx, url)
	if err != nil {
		var fe *pageblocks.FetchError
		if errors.As(err, &fe) {
			return nil, err
		}
		return nil, &pageblocks.FetchError{URL: url, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &pageblocks.FetchError{URL: url, StatusCode: resp.StatusCode}
	}
	return resp.Body, nil
}
