// Package etree encodes pages as XML documents.
package etree

import (
	"io"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/fwojciec/pageblocks"
)

// Ensure Encoder implements pageblocks.PageEncoder at compile time.
var _ pageblocks.PageEncoder = (*Encoder)(nil)

// Encoder writes pages as indented XML.
type Encoder struct {
	// Indent is the number of spaces per nesting level.
	Indent int
}

// NewEncoder creates a new Encoder indenting by two spaces.
func NewEncoder() *Encoder {
	return &Encoder{Indent: 2}
}

// EncodePage writes page to w as a <page> document.
func (e *Encoder) EncodePage(w io.Writer, page *pageblocks.Page) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("page")
	setAttr(root, "id", page.ID)
	root.CreateAttr("url", page.URL())
	setAttr(root, "title", page.Title)
	setAttr(root, "hash", page.ContentHash)
	root.CreateAttr("images", strconv.Itoa(page.ImageCounter))
	if !page.FetchedAt.IsZero() {
		root.CreateAttr("fetched", page.FetchedAt.UTC().Format(time.RFC3339))
	}

	headers := root.CreateElement("headers")
	for _, h := range page.Headers {
		el := headers.CreateElement("header")
		el.CreateAttr("seq", strconv.Itoa(h.Seq))
		el.CreateAttr("rank", strconv.Itoa(h.Rank))
		el.SetText(h.Text)
	}

	blocks := root.CreateElement("blocks")
	for _, b := range page.Blocks {
		encodeBlock(blocks.CreateElement("block"), b)
	}

	links := root.CreateElement("links")
	for _, l := range page.InternalLinks {
		links.CreateElement("internal").SetText(l)
	}
	for _, l := range page.ExternalLinks {
		links.CreateElement("external").SetText(l)
	}

	doc.Indent(e.Indent)
	_, err := doc.WriteTo(w)
	return err
}

func encodeBlock(el *etree.Element, b pageblocks.ContentBlock) {
	el.CreateAttr("type", string(b.ContentType))
	el.CreateAttr("seq", strconv.Itoa(b.Position.Seq))
	setAttr(el, "root", b.Position.Root)
	setAttr(el, "fragment", b.Position.Fragment)
	setAttr(el, "header", b.LastHeader)

	if b.Text != "" {
		el.CreateElement("text").SetText(b.Text)
	}
	if b.Image.Name != "" {
		img := el.CreateElement("image")
		img.CreateAttr("name", b.Image.Name)
		setAttr(img, "src", b.Image.URL)
	}
	if b.Link.Kind != pageblocks.LinkNone {
		link := el.CreateElement("link")
		link.CreateAttr("kind", string(b.Link.Kind))
		link.CreateAttr("href", b.Link.Target)
	}
}

// setAttr adds the attribute only when value is non-empty.
func setAttr(el *etree.Element, key, value string) {
	if value != "" {
		el.CreateAttr(key, value)
	}
}
