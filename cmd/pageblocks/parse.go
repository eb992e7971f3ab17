package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/pageblocks"
	"github.com/fwojciec/pageblocks/extract"
	"github.com/fwojciec/pageblocks/fs"
	"github.com/google/uuid"
)

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	if c.Save && deps.Pages == nil {
		return pageblocks.Errorf(pageblocks.EINTERNAL, "document store not configured")
	}

	encoder, _, err := encoderFor(c.Format)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pageblocks.ErrorMessage(err))
		return err
	}

	store := fs.NewBlobStore(filepath.Dir(c.Out), filepath.Base(c.Out))
	parser := deps.newParser(parserOptions{
		Snapshots:   store,
		Images:      store,
		Markdown:    c.Markdown,
		Concurrency: c.Concurrency,
	})

	page, err := parser.ParsePage(deps.Ctx, pageblocks.PageRequest{
		URL:          c.URL,
		Path:         c.Path,
		TextOnly:     c.TextOnly,
		FromFile:     c.FromFile,
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

	if c.Library != "" {
		if err := c.publish(deps, store, page); err != nil {
			fmt.Fprintf(deps.Stderr, "error publishing images: %v\n", err)
			return err
		}
	}

	if c.Save {
		if err := deps.Pages.CreatePage(deps.Ctx, page); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pageblocks.ErrorMessage(err))
			return err
		}
	}

	if err := encoder.EncodePage(deps.Stdout, page); err != nil {
		return err
	}

	if c.Format == "text" {
		fmt.Fprintf(deps.Stdout, "\nExtracted %d blocks, %d images to %s\n",
			len(page.Blocks), page.ImageCounter-c.StartImage, store.Dir())
		if page.ID != "" {
			fmt.Fprintf(deps.Stdout, "Page ID: %s\n", page.ID)
		}
	}
	return nil
}

// publish copies the page's images into the library under a fresh page
// ID and points the blocks at the published names.
func (c *ParseCmd) publish(deps *Dependencies, src *fs.BlobStore, page *pageblocks.Page) error {
	if page.ID == "" {
		page.ID = uuid.New().String()
	}

	dst := fs.NewBlobStore(c.Library, page.ID)
	blocks, err := extract.PublishImages(deps.Ctx, src, dst, page.ID, page.Blocks)
	if err != nil {
		_ = dst.Abort()
		return err
	}
	if err := dst.Commit(); err != nil {
		return err
	}

	page.Blocks = blocks
	return nil
}
