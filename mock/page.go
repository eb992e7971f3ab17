package mock

import (
	"context"
	"io"

	"github.com/fwojciec/pageblocks"
)

// Compile-time interface verification.
var (
	_ pageblocks.PageParser  = (*PageParser)(nil)
	_ pageblocks.PageService = (*PageService)(nil)
	_ pageblocks.PageEncoder = (*PageEncoder)(nil)
	_ pageblocks.SiteCrawler = (*SiteCrawler)(nil)
)

// PageParser is a mock implementation of pageblocks.PageParser.
type PageParser struct {
	ParsePageFn  func(ctx context.Context, req pageblocks.PageRequest) (*pageblocks.Page, error)
	ParseLinksFn func(ctx context.Context, req pageblocks.PageRequest, vocabulary []string) (*pageblocks.LinkResult, error)
}

func (p *PageParser) ParsePage(ctx context.Context, req pageblocks.PageRequest) (*pageblocks.Page, error) {
	return p.ParsePageFn(ctx, req)
}

func (p *PageParser) ParseLinks(ctx context.Context, req pageblocks.PageRequest, vocabulary []string) (*pageblocks.LinkResult, error) {
	return p.ParseLinksFn(ctx, req, vocabulary)
}

// PageService is a mock implementation of pageblocks.PageService.
type PageService struct {
	CreatePageFn   func(ctx context.Context, page *pageblocks.Page) error
	FindPageByIDFn func(ctx context.Context, id string) (*pageblocks.Page, error)
	FindPagesFn    func(ctx context.Context, filter pageblocks.PageFilter) ([]*pageblocks.Page, error)
	DeletePageFn   func(ctx context.Context, id string) error
}

func (s *PageService) CreatePage(ctx context.Context, page *pageblocks.Page) error {
	return s.CreatePageFn(ctx, page)
}

func (s *PageService) FindPageByID(ctx context.Context, id string) (*pageblocks.Page, error) {
	return s.FindPageByIDFn(ctx, id)
}

func (s *PageService) FindPages(ctx context.Context, filter pageblocks.PageFilter) ([]*pageblocks.Page, error) {
	return s.FindPagesFn(ctx, filter)
}

func (s *PageService) DeletePage(ctx context.Context, id string) error {
	return s.DeletePageFn(ctx, id)
}

// PageEncoder is a mock implementation of pageblocks.PageEncoder.
type PageEncoder struct {
	EncodePageFn func(w io.Writer, page *pageblocks.Page) error
}

func (e *PageEncoder) EncodePage(w io.Writer, page *pageblocks.Page) error {
	return e.EncodePageFn(w, page)
}

// SiteCrawler is a mock implementation of pageblocks.SiteCrawler.
type SiteCrawler struct {
	CrawlSiteFn func(ctx context.Context, req pageblocks.SiteRequest) (*pageblocks.Site, error)
}

func (c *SiteCrawler) CrawlSite(ctx context.Context, req pageblocks.SiteRequest) (*pageblocks.Site, error) {
	return c.CrawlSiteFn(ctx, req)
}
