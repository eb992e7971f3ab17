package extract

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fwojciec/pageblocks"
)

var _ pageblocks.PageParser = (*Parser)(nil)

// Parser runs a full page session: acquire the HTML, snapshot it, parse
// it into nodes and walk them.
type Parser struct {
	Fetcher pageblocks.Fetcher
	DOM     pageblocks.DOMProvider

	// Blobs receives the raw snapshot and the Markdown rendition.
	// Optional.
	Blobs pageblocks.BlobStore

	// Converter renders the page as Markdown. Optional; requires Blobs.
	Converter pageblocks.Converter

	// Walker defaults to a sequential walker saving images to Blobs.
	Walker *Walker

	Logger *slog.Logger
}

// ParsePage fetches the page named by req and extracts its blocks.
// Failing to acquire the page returns a *pageblocks.FetchError and
// writes nothing.
func (p *Parser) ParsePage(ctx context.Context, req pageblocks.PageRequest) (*pageblocks.Page, error) {
	path := normalizePath(req.Path)

	html, err := p.load(ctx, req, path)
	if err != nil {
		return nil, err
	}

	if p.Blobs != nil {
		if err := p.Blobs.WriteBlob(ctx, pageblocks.SnapshotBlob, html); err != nil {
			return nil, fmt.Errorf("save snapshot: %w", err)
		}
		if p.Converter != nil {
			p.writeMarkdown(ctx, string(html), req.URL)
		}
	}

	dom, err := p.DOM.ParseDOM(string(html))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", req.URL+path, err)
	}

	ext, err := p.walker().Extract(ctx, dom.Nodes, pageblocks.Session{
		Root:         req.URL,
		Fragment:     path,
		TextOnly:     req.TextOnly || req.FromFile,
		ImageCounter: req.ImageCounter,
	})
	if err != nil {
		return nil, err
	}

	p.logger().Debug("parsed page",
		"url", req.URL+path,
		"blocks", len(ext.Blocks),
		"images", ext.ImageCounter-req.ImageCounter,
	)

	return &pageblocks.Page{
		SourceURL:     req.URL,
		Path:          path,
		Title:         dom.Title,
		Blocks:        ext.Blocks,
		Headers:       ext.Headers,
		InternalLinks: ext.InternalLinks,
		ExternalLinks: ext.ExternalLinks,
		ImageCounter:  ext.ImageCounter,
		FetchedAt:     time.Now().UTC(),
	}, nil
}

// ParseLinks fetches the page named by req and groups its hyperlinks.
func (p *Parser) ParseLinks(ctx context.Context, req pageblocks.PageRequest, vocabulary []string) (*pageblocks.LinkResult, error) {
	path := normalizePath(req.Path)

	html, err := p.load(ctx, req, path)
	if err != nil {
		return nil, err
	}

	dom, err := p.DOM.ParseDOM(string(html))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", req.URL+path, err)
	}

	return pageblocks.CollectLinks(dom.Nodes, req.URL+path, vocabulary), nil
}

// load returns the page HTML from the network or, in file mode, from disk.
func (p *Parser) load(ctx context.Context, req pageblocks.PageRequest, path string) ([]byte, error) {
	if req.FromFile {
		data, err := os.ReadFile(req.URL)
		if err != nil {
			return nil, &pageblocks.FetchError{URL: req.URL, Err: err}
		}
		return data, nil
	}
	if req.URL == "" {
		return nil, pageblocks.Errorf(pageblocks.EINVALID, "page URL required")
	}
	return fetchBody(ctx, p.Fetcher, req.URL+path)
}

// writeMarkdown stores the Markdown rendition. Failures only cost the
// rendition, so they are logged rather than returned.
func (p *Parser) writeMarkdown(ctx context.Context, html, baseURL string) {
	md, err := p.Converter.Convert(html, baseURL)
	if err != nil {
		p.logger().Warn("convert markdown", "url", baseURL, "err", err)
		return
	}
	if err := p.Blobs.WriteBlob(ctx, pageblocks.MarkdownBlob, []byte(md)); err != nil {
		p.logger().Warn("save markdown", "url", baseURL, "err", err)
	}
}

func (p *Parser) walker() *Walker {
	if p.Walker != nil {
		return p.Walker
	}
	var opts []WalkerOption
	if p.Blobs != nil {
		opts = append(opts, WithBlobStore(p.Blobs))
	}
	if p.Logger != nil {
		opts = append(opts, WithLogger(p.Logger))
	}
	return NewWalker(p.Fetcher, opts...)
}

func (p *Parser) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// normalizePath maps the root path "/" to the empty fragment.
func normalizePath(path string) string {
	if path == "/" {
		return ""
	}
	return path
}
