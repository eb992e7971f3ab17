// Package extract turns parsed pages into content blocks.
// It holds the block-assembling walker, the image resolver, and the page
// and site parsers that drive them.
package extract

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/pageblocks"
	"golang.org/x/sync/errgroup"
)

// Walker converts a page's node sequence into content blocks.
// A Walker holds no per-page state and may be reused across pages.
type Walker struct {
	images      *ImageResolver
	blobs       pageblocks.BlobStore
	logger      *slog.Logger
	concurrency int
}

// WalkerOption configures a Walker.
type WalkerOption func(*Walker)

// WithBlobStore persists accepted images under their assigned names.
// Without a store images are still resolved and named but not saved.
func WithBlobStore(s pageblocks.BlobStore) WalkerOption {
	return func(w *Walker) {
		w.blobs = s
	}
}

// WithLogger sets the logger for skipped candidates.
func WithLogger(l *slog.Logger) WalkerOption {
	return func(w *Walker) {
		w.logger = l
	}
}

// WithConcurrency prefetches up to n images at once before the pass.
// Block order and image names are the same as with sequential fetching.
func WithConcurrency(n int) WalkerOption {
	return func(w *Walker) {
		w.concurrency = n
	}
}

// NewWalker creates a new Walker that fetches images with fetcher.
func NewWalker(fetcher pageblocks.Fetcher, opts ...WalkerOption) *Walker {
	w := &Walker{
		images:      NewImageResolver(fetcher),
		logger:      slog.New(slog.DiscardHandler),
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// noiseTags never contribute text.
var noiseTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
}

// fetched is a prefetched image body.
type fetched struct {
	data []byte
	err  error
}

// walk is the state of one extraction pass.
type walk struct {
	session    pageblocks.Session
	base       string
	prefetched map[string]fetched

	buffer   string
	lastText string
	seq      int
	counter  int

	seen     *pageblocks.TextSet
	emitted  *pageblocks.TextSet
	headers  *pageblocks.HeaderTracker
	internal *pageblocks.TextSet
	external *pageblocks.TextSet

	blocks        []pageblocks.ContentBlock
	internalLinks []string
	externalLinks []string
}

func newWalk(s pageblocks.Session) *walk {
	return &walk{
		session:  s,
		base:     s.BaseURL(),
		counter:  s.ImageCounter,
		seen:     pageblocks.NewTextSet(),
		emitted:  pageblocks.NewTextSet(),
		headers:  pageblocks.NewHeaderTracker(),
		internal: pageblocks.NewTextSet(),
		external: pageblocks.NewTextSet(),
	}
}

// Extract makes a single pass over nodes in document order and returns
// the emitted blocks along with the page's headers, links and the next
// image counter. Failed image candidates are logged and skipped; only
// context cancellation aborts the pass.
func (w *Walker) Extract(ctx context.Context, nodes []pageblocks.Node, s pageblocks.Session) (*pageblocks.Extraction, error) {
	st := newWalk(s)

	if !s.TextOnly && w.concurrency > 1 {
		st.prefetched = w.prefetch(ctx, nodes, s.Root, st.base)
	}

	for _, n := range nodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		w.visit(ctx, st, n)
	}
	st.flush()

	return &pageblocks.Extraction{
		Blocks:        st.blocks,
		Headers:       st.headers.Headers(),
		InternalLinks: st.internalLinks,
		ExternalLinks: st.externalLinks,
		ImageCounter:  st.counter,
	}, nil
}

func (w *Walker) visit(ctx context.Context, st *walk, n pageblocks.Node) {
	var image *ImageResult
	var link pageblocks.LinkClass

	if !st.session.TextOnly {
		for _, src := range imageSources(n) {
			if image = w.image(ctx, st, src); image != nil {
				break
			}
		}
		if href, ok := n.Attr("href"); ok && href != "" {
			link = pageblocks.ClassifyLink(href, st.base)
			st.recordLink(link)
		}
	}

	fresh := false
	if own := ownText(n); own != "" {
		st.appendText(own)
		if st.seen.Add(st.buffer) {
			st.lastText = st.buffer
			fresh = true
		} else if st.buffer == own {
			// Repeated boilerplate must not prefix the next text.
			st.buffer = ""
		}
		if rank := pageblocks.HeaderRank(n.Tag()); rank > 0 {
			st.headers.Observe(st.seq, rank, own)
		}
	}

	// A link to the page itself has no target and carries no signal.
	isLink := link.Kind != pageblocks.LinkNone && !link.Skippable && link.Target != ""

	var block pageblocks.ContentBlock
	switch {
	case image != nil:
		block.ContentType = pageblocks.ContentImage
		block.Image = pageblocks.ImageRef{Name: image.Name, URL: image.URL}
	case isLink:
		block.ContentType = pageblocks.ContentLink
	case fresh:
		block.ContentType = pageblocks.ContentText
	default:
		return
	}
	if isLink {
		block.Link = pageblocks.LinkRef{Kind: link.Kind, Target: link.Target}
	}
	block.Position = st.next()
	block.LastHeader = st.headers.Last()

	block.Text = st.buffer
	if block.ContentType == pageblocks.ContentImage {
		if block.Text == "" {
			block.Text = st.lastText
		}
		st.emit(block)
		return
	}
	if utf8.RuneCountInString(block.Text) > pageblocks.MinTextLength && !st.emitted.Has(block.Text) {
		st.emit(block)
	}
}

// image resolves one candidate source and persists it. It returns nil
// if the candidate was rejected.
func (w *Walker) image(ctx context.Context, st *walk, src string) *ImageResult {
	img, err := w.resolve(ctx, st, src)
	if err != nil {
		if pageblocks.ErrorCode(err) == pageblocks.EFETCH {
			w.logger.Info("skip image", "src", src, "err", err)
		} else {
			w.logger.Debug("skip image", "src", src, "err", err)
		}
		return nil
	}

	if w.blobs != nil {
		if err := w.blobs.WriteBlob(ctx, img.Name, img.Data); err != nil {
			w.logger.Warn("save image", "name", img.Name, "url", img.URL, "err", err)
			return nil
		}
	}

	st.counter++
	return img
}

func (w *Walker) resolve(ctx context.Context, st *walk, src string) (*ImageResult, error) {
	if st.prefetched == nil {
		return w.images.Resolve(ctx, src, st.session.Root, st.base, st.counter)
	}

	url, typ, err := w.images.Locate(src, st.session.Root, st.base)
	if err != nil {
		return nil, err
	}
	f, ok := st.prefetched[url]
	if !ok {
		f.data, f.err = w.images.Fetch(ctx, url)
	}
	if f.err != nil {
		return nil, f.err
	}
	return newImageResult(url, typ, f.data, st.counter), nil
}

// prefetch downloads every distinct recognizable image of the page with
// bounded concurrency. Failures are kept and reported when the walk
// reaches the candidate.
func (w *Walker) prefetch(ctx context.Context, nodes []pageblocks.Node, root, page string) map[string]fetched {
	var urls []string
	seen := pageblocks.NewTextSet()
	for _, n := range nodes {
		for _, src := range imageSources(n) {
			url, _, err := w.images.Locate(src, root, page)
			if err != nil || !seen.Add(url) {
				continue
			}
			urls = append(urls, url)
		}
	}

	results := make([]fetched, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.concurrency)
	for i, url := range urls {
		g.Go(func() error {
			data, err := w.images.Fetch(gctx, url)
			results[i] = fetched{data: data, err: err}
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[string]fetched, len(urls))
	for i, url := range urls {
		out[url] = results[i]
	}
	return out
}

// imageSources returns the image candidates of a node: an Open Graph
// image first, then the src attribute. The first one that resolves is
// the node's image.
func imageSources(n pageblocks.Node) []string {
	var srcs []string
	if prop, _ := n.Attr("property"); prop == "og:image" {
		if content, ok := n.Attr("content"); ok {
			srcs = append(srcs, content)
		}
	}
	if src, ok := n.Attr("src"); ok {
		srcs = append(srcs, src)
	}
	return srcs
}

// ownText returns the node's own text joined by single spaces, or "" for
// scripts, stylesheets and other non-content elements.
func ownText(n pageblocks.Node) string {
	if noiseTags[n.Tag()] {
		return ""
	}
	if typ, ok := n.Attr("type"); ok && (typ == "text/css" || typ == "text/javascript") {
		return ""
	}
	return strings.Join(n.Strings(), " ")
}

func (st *walk) appendText(s string) {
	if st.buffer == "" {
		st.buffer = s
		return
	}
	st.buffer += " " + s
}

func (st *walk) recordLink(link pageblocks.LinkClass) {
	if link.Skippable || link.Target == "" {
		return
	}
	switch link.Kind {
	case pageblocks.LinkInternal:
		if link.Target != "/" && st.internal.Add(link.Target) {
			st.internalLinks = append(st.internalLinks, link.Target)
		}
	case pageblocks.LinkExternal:
		if st.external.Add(link.Target) {
			st.externalLinks = append(st.externalLinks, link.Target)
		}
	}
}

// next consumes a sequence number.
func (st *walk) next() pageblocks.Position {
	pos := pageblocks.Position{
		Root:     st.session.Root,
		Fragment: st.session.Fragment,
		Seq:      st.seq,
	}
	st.seq++
	return pos
}

func (st *walk) emit(block pageblocks.ContentBlock) {
	st.blocks = append(st.blocks, block)
	st.emitted.Add(block.Text)
	st.buffer = ""
}

// flush emits leftover text when it is the only content of the page.
func (st *walk) flush() {
	if len(st.blocks) > 0 || st.buffer == "" || st.emitted.Has(st.buffer) {
		return
	}
	st.emit(pageblocks.ContentBlock{
		ContentType: pageblocks.ContentText,
		Text:        st.buffer,
		Position:    st.next(),
		LastHeader:  st.headers.Last(),
	})
}
