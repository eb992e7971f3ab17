package main

import (
	"fmt"

	"github.com/fwojciec/pageblocks"
)

// Run executes the pages command.
func (c *PagesCmd) Run(deps *Dependencies) error {
	filter := pageblocks.PageFilter{Limit: c.Limit, Offset: c.Offset}
	if c.Source != "" {
		filter.SourceURL = &c.Source
	}

	pages, err := deps.Pages.FindPages(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pageblocks.ErrorMessage(err))
		return err
	}

	if len(pages) == 0 {
		fmt.Fprintln(deps.Stdout, "No pages found. Use 'pageblocks parse --save' to store one.")
		return nil
	}

	for _, p := range pages {
		title := p.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n", p.ID, p.FetchedAt.Format("2006-01-02 15:04"), p.URL(), title)
	}
	return nil
}

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	encoder, _, err := encoderFor(c.Format)
	if err != nil {
		return err
	}

	page, err := deps.Pages.FindPageByID(deps.Ctx, c.ID)
	if err != nil {
		if pageblocks.ErrorCode(err) == pageblocks.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: page %q not found. Use 'pageblocks pages' to see stored pages.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", pageblocks.ErrorMessage(err))
		return err
	}

	return encoder.EncodePage(deps.Stdout, page)
}

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return pageblocks.Errorf(pageblocks.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Pages.DeletePage(deps.Ctx, c.ID); err != nil {
		if pageblocks.ErrorCode(err) == pageblocks.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: page %q not found. Use 'pageblocks pages' to see stored pages.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", pageblocks.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted page %s\n", c.ID)
	return nil
}
