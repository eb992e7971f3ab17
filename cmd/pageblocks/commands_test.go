package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fwojciec/pageblocks"
	main "github.com/fwojciec/pageblocks/cmd/pageblocks"
	"github.com/fwojciec/pageblocks/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDeps(pages pageblocks.PageService, fetcher pageblocks.Fetcher) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:     context.Background(),
		Stdout:  stdout,
		Stderr:  stderr,
		Fetcher: fetcher,
		Pages:   pages,
	}, stdout, stderr
}

func TestLinksCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("groups links with vocabulary matches on top", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps(nil, siteFetcher(t))
		cmd := &main.LinksCmd{URL: siteRoot, Vocab: []string{"pricing"}}

		err := cmd.Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "Top (1):\n  /pricing")
		assert.Contains(t, output, "Internal (1):\n  /pricing")
		assert.Contains(t, output, "External (1):\n  https://github.com/example")
	})

	t.Run("uses configured vocabulary when none is given", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps(nil, siteFetcher(t))
		deps.Config = &main.Config{Vocabulary: []string{"pricing"}}
		cmd := &main.LinksCmd{URL: siteRoot}

		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stdout.String(), "Top (1):")
	})

	t.Run("reports fetch failures with a hint", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := testDeps(nil, siteFetcher(t))
		cmd := &main.LinksCmd{URL: siteRoot, Path: "/gone"}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "HTTP 404")
		assert.Contains(t, stderr.String(), "Hint:")
	})
}

func TestPagesCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists pages with ID, URL and title", func(t *testing.T) {
		t.Parallel()

		var got pageblocks.PageFilter
		pages := &mock.PageService{
			FindPagesFn: func(_ context.Context, filter pageblocks.PageFilter) ([]*pageblocks.Page, error) {
				got = filter
				return []*pageblocks.Page{
					{ID: "p-1", SourceURL: siteRoot, Path: "/pricing", Title: "Pricing", FetchedAt: time.Date(2026, 2, 3, 4, 5, 0, 0, time.UTC)},
					{ID: "p-2", SourceURL: siteRoot},
				}, nil
			},
		}
		deps, stdout, _ := testDeps(pages, nil)
		cmd := &main.PagesCmd{Source: siteRoot, Limit: 10}

		require.NoError(t, cmd.Run(deps))

		require.NotNil(t, got.SourceURL)
		assert.Equal(t, siteRoot, *got.SourceURL)
		assert.Equal(t, 10, got.Limit)
		output := stdout.String()
		assert.Contains(t, output, "p-1  2026-02-03 04:05  https://example.com/pricing  Pricing")
		assert.Contains(t, output, "p-2")
		assert.Contains(t, output, "(untitled)")
	})

	t.Run("shows helpful message when no pages exist", func(t *testing.T) {
		t.Parallel()

		pages := &mock.PageService{
			FindPagesFn: func(context.Context, pageblocks.PageFilter) ([]*pageblocks.Page, error) {
				return nil, nil
			},
		}
		deps, stdout, _ := testDeps(pages, nil)

		require.NoError(t, (&main.PagesCmd{}).Run(deps))
		assert.Contains(t, stdout.String(), "No pages found")
	})
}

func TestShowCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints the stored page", func(t *testing.T) {
		t.Parallel()

		pages := &mock.PageService{
			FindPageByIDFn: func(_ context.Context, id string) (*pageblocks.Page, error) {
				return &pageblocks.Page{
					ID:        id,
					SourceURL: siteRoot,
					Title:     "Widgets",
					Blocks: []pageblocks.ContentBlock{
						{ContentType: pageblocks.ContentText, Text: "Our toolkit helps small teams.", Position: pageblocks.Position{Seq: 2}},
					},
				}, nil
			},
		}
		deps, stdout, _ := testDeps(pages, nil)

		require.NoError(t, (&main.ShowCmd{ID: "p-1", Format: "text"}).Run(deps))

		assert.Contains(t, stdout.String(), "# Widgets")
		assert.Contains(t, stdout.String(), "## [2] text\nOur toolkit helps small teams.")
	})

	t.Run("encodes as XML", func(t *testing.T) {
		t.Parallel()

		pages := &mock.PageService{
			FindPageByIDFn: func(_ context.Context, id string) (*pageblocks.Page, error) {
				return &pageblocks.Page{ID: id, SourceURL: siteRoot}, nil
			},
		}
		deps, stdout, _ := testDeps(pages, nil)

		require.NoError(t, (&main.ShowCmd{ID: "p-1", Format: "xml"}).Run(deps))
		assert.Contains(t, stdout.String(), `<page id="p-1" url="https://example.com"`)
	})

	t.Run("reports missing pages", func(t *testing.T) {
		t.Parallel()

		pages := &mock.PageService{
			FindPageByIDFn: func(context.Context, string) (*pageblocks.Page, error) {
				return nil, pageblocks.Errorf(pageblocks.ENOTFOUND, "page not found")
			},
		}
		deps, _, stderr := testDeps(pages, nil)

		err := (&main.ShowCmd{ID: "nope", Format: "text"}).Run(deps)

		assert.Equal(t, pageblocks.ENOTFOUND, pageblocks.ErrorCode(err))
		assert.Contains(t, stderr.String(), `page "nope" not found`)
	})
}

func TestDeleteCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("requires force flag", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := testDeps(&mock.PageService{}, nil)

		err := (&main.DeleteCmd{ID: "p-1"}).Run(deps)

		assert.Equal(t, pageblocks.EINVALID, pageblocks.ErrorCode(err))
		assert.Contains(t, stderr.String(), "--force")
	})

	t.Run("deletes the page", func(t *testing.T) {
		t.Parallel()

		var deleted string
		pages := &mock.PageService{
			DeletePageFn: func(_ context.Context, id string) error {
				deleted = id
				return nil
			},
		}
		deps, stdout, _ := testDeps(pages, nil)

		require.NoError(t, (&main.DeleteCmd{ID: "p-1", Force: true}).Run(deps))

		assert.Equal(t, "p-1", deleted)
		assert.Contains(t, stdout.String(), "Deleted page p-1")
	})

	t.Run("reports missing pages", func(t *testing.T) {
		t.Parallel()

		pages := &mock.PageService{
			DeletePageFn: func(context.Context, string) error {
				return pageblocks.Errorf(pageblocks.ENOTFOUND, "page not found")
			},
		}
		deps, _, stderr := testDeps(pages, nil)

		err := (&main.DeleteCmd{ID: "nope", Force: true}).Run(deps)

		assert.Equal(t, pageblocks.ENOTFOUND, pageblocks.ErrorCode(err))
		assert.Contains(t, stderr.String(), "not found")
	})
}
