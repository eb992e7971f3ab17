package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/fwojciec/pageblocks"
	"github.com/fwojciec/pageblocks/etree"
	"github.com/fwojciec/pageblocks/extract"
	"github.com/fwojciec/pageblocks/goquery"
	"github.com/fwojciec/pageblocks/htmltomarkdown"
	pbslog "github.com/fwojciec/pageblocks/slog"
)

func (d *Dependencies) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (d *Dependencies) config() *Config {
	if d.Config != nil {
		return d.Config
	}
	return &Config{}
}

// parserOptions selects where a parser writes its output.
type parserOptions struct {
	// Snapshots receives page.html and page.md. Optional.
	Snapshots pageblocks.BlobStore

	// Images receives accepted images. Optional.
	Images pageblocks.BlobStore

	Markdown    bool
	Concurrency int
}

// newParser wires a page parser over the shared fetcher.
func (d *Dependencies) newParser(opts parserOptions) pageblocks.PageParser {
	logger := d.logger()

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = d.config().Concurrency
	}

	walkerOpts := []extract.WalkerOption{
		extract.WithLogger(logger),
		extract.WithConcurrency(concurrency),
	}
	if opts.Images != nil {
		walkerOpts = append(walkerOpts, extract.WithBlobStore(pbslog.NewLoggingBlobStore(opts.Images, logger)))
	}

	p := &extract.Parser{
		Fetcher: d.Fetcher,
		DOM:     goquery.NewDOMProvider(),
		Walker:  extract.NewWalker(d.Fetcher, walkerOpts...),
		Logger:  logger,
	}
	if opts.Snapshots != nil {
		p.Blobs = pbslog.NewLoggingBlobStore(opts.Snapshots, logger)
		if opts.Markdown {
			p.Converter = htmltomarkdown.NewConverter()
		}
	}

	return pbslog.NewLoggingPageParser(p, logger)
}

// vocabulary returns terms, or the configured vocabulary if none were given.
func (d *Dependencies) vocabulary(terms []string) []string {
	if len(terms) > 0 {
		return terms
	}
	return d.config().Vocabulary
}

// jsonEncoder writes pages as indented JSON.
type jsonEncoder struct{}

func (jsonEncoder) EncodePage(w io.Writer, page *pageblocks.Page) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(page)
}

// textEncoder writes the page title followed by its blocks.
type textEncoder struct{}

func (textEncoder) EncodePage(w io.Writer, page *pageblocks.Page) error {
	title := page.Title
	if title == "" {
		title = page.URL()
	}
	_, err := fmt.Fprintf(w, "# %s\n%s\n\n%s\n", title, page.URL(), pageblocks.FormatBlocks(page.Blocks))
	return err
}

// encoderFor returns the encoder and file extension for format.
func encoderFor(format string) (pageblocks.PageEncoder, string, error) {
	switch format {
	case "", "text":
		return textEncoder{}, ".txt", nil
	case "json":
		return jsonEncoder{}, ".json", nil
	case "xml":
		return etree.NewEncoder(), ".xml", nil
	}
	return nil, "", pageblocks.Errorf(pageblocks.EINVALID, "unknown format %q", format)
}

// reportError prints err to w with a remediation hint for fetch failures.
func reportError(w io.Writer, err error) {
	fmt.Fprintf(w, "error: %s\n", pageblocks.ErrorMessage(err))
	var fe *pageblocks.FetchError
	if errors.As(err, &fe) {
		fmt.Fprintf(w, "Hint: %s\n", fe.Hint())
	}
}
