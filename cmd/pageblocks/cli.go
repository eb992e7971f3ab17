package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/pageblocks"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Config *Config
	Logger *slog.Logger

	Fetcher pageblocks.Fetcher

	// Pages is the document store. Only set for commands that need it.
	Pages pageblocks.PageService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config    string        `help:"YAML config file" type:"path"`
	Verbose   bool          `short:"v" help:"Log every fetch and skipped image"`
	Insecure  bool          `help:"Skip TLS certificate verification"`
	Timeout   time.Duration `help:"Fetch timeout per request (default 10s)"`
	UserAgent string        `name:"user-agent" help:"User-Agent header for fetches"`

	Parse  ParseCmd  `cmd:"" help:"Extract content blocks from one page"`
	Links  LinksCmd  `cmd:"" help:"List the links on one page"`
	Crawl  CrawlCmd  `cmd:"" help:"Extract a site root and the pages it links to"`
	Pages  PagesCmd  `cmd:"" help:"List stored pages"`
	Show   ShowCmd   `cmd:"" help:"Print a stored page"`
	Delete DeleteCmd `cmd:"" help:"Delete a stored page"`
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	URL         string `arg:"" help:"Site root URL, or an HTML file with --from-file"`
	Path        string `short:"p" help:"Page path below the site root"`
	Out         string `short:"o" default:"page" help:"Directory for the snapshot and images"`
	TextOnly    bool   `name:"text-only" help:"Skip images and links"`
	FromFile    bool   `name:"from-file" help:"Read HTML from a local file (implies --text-only)"`
	Markdown    bool   `help:"Also write a Markdown rendition of the page"`
	Format      string `short:"f" enum:"text,json,xml" default:"text" help:"Output format (text, json, xml)"`
	Save        bool   `help:"Store the page in the database"`
	Library     string `help:"Publish images to this directory under the page ID"`
	StartImage  int    `name:"start-image" help:"First image number"`
	Concurrency int    `short:"c" help:"Concurrent image downloads"`
}

// LinksCmd is the "links" subcommand.
type LinksCmd struct {
	URL   string   `arg:"" help:"Site root URL"`
	Path  string   `short:"p" help:"Page path below the site root"`
	Vocab []string `name:"vocab" help:"Terms selecting the top links (repeatable)"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URL         string   `arg:"" help:"Site root URL"`
	Out         string   `short:"o" default:"site" help:"Directory for images"`
	Write       string   `help:"Also write every page, encoded with --format, below this directory"`
	Format      string   `short:"f" enum:"json,xml" default:"json" help:"Encoding for --write (json, xml)"`
	MaxPages    int      `short:"n" name:"max-pages" help:"Maximum number of sub-pages"`
	Vocab       []string `name:"vocab" help:"Terms moving matching links to the front (repeatable)"`
	TextOnly    bool     `name:"text-only" help:"Skip images and links"`
	Save        bool     `help:"Store every page in the database"`
	StartImage  int      `name:"start-image" help:"First image number"`
	Concurrency int      `short:"c" help:"Concurrent image downloads per page"`
}

// PagesCmd is the "pages" subcommand.
type PagesCmd struct {
	Source string `help:"Only pages of this site root"`
	Limit  int    `default:"50" help:"Maximum number of pages"`
	Offset int    `help:"Pages to skip"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID     string `arg:"" help:"Page ID"`
	Format string `short:"f" enum:"text,json,xml" default:"text" help:"Output format (text, json, xml)"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Page ID"`
	Force bool   `help:"Confirm deletion"`
}
