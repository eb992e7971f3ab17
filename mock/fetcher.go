package mock

import (
	"context"

	"github.com/fwojciec/pageblocks"
)

var _ pageblocks.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of pageblocks.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*pageblocks.FetchResponse, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*pageblocks.FetchResponse, error) {
	return f.FetchFn(ctx, url)
}
