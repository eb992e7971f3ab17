// Package crawl provides site crawling orchestration.
// It parses a site's root page, queues the internal links found there,
// and parses each linked page once while threading the image counter.
package crawl

import (
	"context"
	"fmt"

	"github.com/fwojciec/pageblocks"
)

// Compile-time interface verification.
var _ pageblocks.SiteCrawler = (*Crawler)(nil)

// Frontier configuration for site crawls.
const (
	// frontierMinExpectedURLs is the smallest Bloom filter sizing.
	frontierMinExpectedURLs = 1000
	// frontierFalsePositiveRate is the acceptable false positive rate for deduplication.
	frontierFalsePositiveRate = 0.01
)

// Crawler orchestrates the crawling of a site one level deep.
// Pages are parsed sequentially since every page needs the image counter
// left by the one before it.
type Crawler struct {
	Pages pageblocks.PageParser

	// Store receives every parsed page. Optional.
	Store pageblocks.PageWriter

	// Progress receives events as crawling proceeds. Optional.
	Progress ProgressFunc
}

// ProgressEvent reports progress during a crawl operation.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Path      string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// CrawlSite parses the root page at req.URL and then the internal links
// it contains, vocabulary matches first. A failure on the root page is
// returned; sub-page failures are recorded and skipped.
func (c *Crawler) CrawlSite(ctx context.Context, req pageblocks.SiteRequest) (*pageblocks.Site, error) {
	root, err := c.Pages.ParsePage(ctx, pageblocks.PageRequest{
		URL:          req.URL,
		TextOnly:     req.TextOnly,
		ImageCounter: req.ImageCounter,
	})
	if err != nil {
		return nil, err
	}
	if err := c.save(ctx, root); err != nil {
		return nil, err
	}

	site := &pageblocks.Site{
		Root:         req.URL,
		Pages:        []*pageblocks.Page{root},
		ImageCounter: root.ImageCounter,
	}

	frontier := c.seed(root, req.Vocabulary)
	total := frontier.Len()
	if req.MaxPages > 0 && total > req.MaxPages {
		total = req.MaxPages
	}
	c.notify(ProgressEvent{Type: ProgressStarted, Total: total})

	completed := 0
	for completed < total {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		link, ok := frontier.Pop()
		if !ok {
			break
		}
		completed++

		page, err := c.Pages.ParsePage(ctx, pageblocks.PageRequest{
			URL:          req.URL,
			Path:         link.Path,
			TextOnly:     req.TextOnly,
			ImageCounter: site.ImageCounter,
		})
		if err == nil {
			err = c.save(ctx, page)
		}
		if err != nil {
			site.Failed = append(site.Failed, link.Path)
			c.notify(ProgressEvent{
				Type:      ProgressFailed,
				Completed: completed,
				Total:     total,
				Path:      link.Path,
				Error:     err,
			})
			continue
		}

		site.Pages = append(site.Pages, page)
		site.ImageCounter = page.ImageCounter
		c.notify(ProgressEvent{
			Type:      ProgressCompleted,
			Completed: completed,
			Total:     total,
			Path:      link.Path,
		})
	}

	c.notify(ProgressEvent{Type: ProgressFinished, Completed: completed, Total: total})
	return site, nil
}

// seed queues the root page's internal links, marking vocabulary matches
// as top priority.
func (c *Crawler) seed(root *pageblocks.Page, vocabulary []string) *Frontier {
	n := uint(len(root.InternalLinks))
	if n < frontierMinExpectedURLs {
		n = frontierMinExpectedURLs
	}
	frontier := NewFrontier(n, frontierFalsePositiveRate)

	top := pageblocks.NewTextSet()
	for _, link := range pageblocks.TopLinks(root.InternalLinks, vocabulary) {
		top.Add(link)
	}

	// The root itself is never a sub-page.
	frontier.Push(pageblocks.CrawlLink{Path: ""})
	frontier.Pop()

	for _, link := range root.InternalLinks {
		priority := pageblocks.PriorityContent
		if top.Has(link) {
			priority = pageblocks.PriorityTop
		}
		path := link
		if path == "/" {
			path = ""
		}
		frontier.Push(pageblocks.CrawlLink{Path: path, Priority: priority})
	}
	return frontier
}

func (c *Crawler) save(ctx context.Context, page *pageblocks.Page) error {
	if c.Store == nil {
		return nil
	}
	if err := c.Store.CreatePage(ctx, page); err != nil {
		return fmt.Errorf("save page %s: %w", page.URL(), err)
	}
	return nil
}

func (c *Crawler) notify(event ProgressEvent) {
	if c.Progress != nil {
		c.Progress(event)
	}
}
