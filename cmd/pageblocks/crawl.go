package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fwojciec/pageblocks"
	"github.com/fwojciec/pageblocks/crawl"
	"github.com/fwojciec/pageblocks/fs"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	if c.Save && deps.Pages == nil {
		return pageblocks.Errorf(pageblocks.EINTERNAL, "document store not configured")
	}

	var writers pageWriters
	if c.Save {
		writers = append(writers, deps.Pages)
	}
	if c.Write != "" {
		encoder, ext, err := encoderFor(c.Format)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pageblocks.ErrorMessage(err))
			return err
		}
		writers = append(writers, fs.NewWriter(c.Write, encoder, ext))
	}

	// Every page of a site would write the same snapshot name, so a crawl
	// keeps images only.
	store := fs.NewBlobStore(filepath.Dir(c.Out), filepath.Base(c.Out))
	crawler := &crawl.Crawler{
		Pages: deps.newParser(parserOptions{
			Images:      store,
			Concurrency: c.Concurrency,
		}),
		Progress: func(event crawl.ProgressEvent) {
			switch event.Type {
			case crawl.ProgressStarted:
				fmt.Fprintf(deps.Stdout, "  Found %d links\n", event.Total)
			case crawl.ProgressCompleted:
				fmt.Fprintf(deps.Stdout, "  [%d/%d] %s\n", event.Completed, event.Total, crawl.TruncatePath(event.Path, 60))
			case crawl.ProgressFailed:
				fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.Path, event.Error)
			case crawl.ProgressFinished:
				// Summary printed after crawl completes
			}
		},
	}
	if len(writers) > 0 {
		crawler.Store = writers
	}

	maxPages := c.MaxPages
	if maxPages == 0 {
		maxPages = deps.config().MaxPages
	}

	site, err := crawler.CrawlSite(deps.Ctx, pageblocks.SiteRequest{
		URL:          c.URL,
		TextOnly:     c.TextOnly,
		MaxPages:     maxPages,
		Vocabulary:   deps.vocabulary(c.Vocab),
		ImageCounter: c.StartImage,
	})
	if err != nil {
		_ = store.Abort()
		reportError(deps.Stderr, err)
		return err
	}

	if err := store.Commit(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: saving %s: %v\n", store.Dir(), err)
		return err
	}

	blocks := 0
	for _, p := range site.Pages {
		blocks += len(p.Blocks)
	}
	fmt.Fprintf(deps.Stdout, "  Extracted %d pages (%d blocks, %d images, %d failed)\n",
		len(site.Pages), blocks, site.ImageCounter-c.StartImage, len(site.Failed))
	return nil
}

// pageWriters writes each page to every writer in order.
type pageWriters []pageblocks.PageWriter

func (ws pageWriters) CreatePage(ctx context.Context, page *pageblocks.Page) error {
	for _, w := range ws {
		if err := w.CreatePage(ctx, page); err != nil {
			return err
		}
	}
	return nil
}
