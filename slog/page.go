package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pageblocks"
)

// Ensure LoggingPageParser implements pageblocks.PageParser.
var _ pageblocks.PageParser = (*LoggingPageParser)(nil)

// LoggingPageParser wraps a PageParser with logging.
type LoggingPageParser struct {
	next   pageblocks.PageParser
	logger *slog.Logger
}

// NewLoggingPageParser creates a new LoggingPageParser.
func NewLoggingPageParser(next pageblocks.PageParser, logger *slog.Logger) *LoggingPageParser {
	return &LoggingPageParser{next: next, logger: logger}
}

// ParsePage delegates to the wrapped parser and logs what was extracted.
func (p *LoggingPageParser) ParsePage(ctx context.Context, req pageblocks.PageRequest) (page *pageblocks.Page, err error) {
	defer func(begin time.Time) {
		var blocks, headers, images int
		if page != nil {
			blocks, headers = len(page.Blocks), len(page.Headers)
			images = page.ImageCounter - req.ImageCounter
		}
		p.logger.Info("parse page",
			"url", req.URL,
			"path", req.Path,
			"blocks", blocks,
			"headers", headers,
			"images", images,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.ParsePage(ctx, req)
}

// ParseLinks delegates to the wrapped parser and logs the link counts.
func (p *LoggingPageParser) ParseLinks(ctx context.Context, req pageblocks.PageRequest, vocabulary []string) (links *pageblocks.LinkResult, err error) {
	defer func(begin time.Time) {
		var internal, external int
		if links != nil {
			internal, external = len(links.Internal), len(links.External)
		}
		p.logger.Info("parse links",
			"url", req.URL,
			"path", req.Path,
			"internal", internal,
			"external", external,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.ParseLinks(ctx, req, vocabulary)
}
