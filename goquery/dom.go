// Package goquery parses HTML into the flat node sequence walked by the
// extractor, using goquery for traversal.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pageblocks"
	"golang.org/x/net/html"
)

// Compile-time interface verification.
var _ pageblocks.DOMProvider = (*DOMProvider)(nil)

// DOMProvider parses HTML with goquery.
type DOMProvider struct{}

// NewDOMProvider creates a new DOMProvider.
func NewDOMProvider() *DOMProvider {
	return &DOMProvider{}
}

// ParseDOM parses html and returns every element in document order.
func (p *DOMProvider) ParseDOM(source string) (*pageblocks.DOM, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(source))
	if err != nil {
		return nil, pageblocks.Errorf(pageblocks.EINVALID, "failed to parse HTML: %v", err)
	}

	var nodes []pageblocks.Node
	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		nodes = append(nodes, &node{sel: sel})
	})

	return &pageblocks.DOM{
		Title: title(doc),
		Nodes: nodes,
	}, nil
}

// title returns the document title, falling back to og:title.
func title(doc *goquery.Document) string {
	if t := collapse(doc.Find("title").First().Text()); t != "" {
		return t
	}
	if og, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok {
		return collapse(og)
	}
	return ""
}

// node adapts a single-element selection to pageblocks.Node.
type node struct {
	sel *goquery.Selection
}

func (n *node) Tag() string {
	return goquery.NodeName(n.sel)
}

func (n *node) Attr(name string) (string, bool) {
	return n.sel.Attr(name)
}

// Strings returns the element's own text nodes. Text inside child
// elements belongs to those children.
func (n *node) Strings() []string {
	var out []string
	for c := n.sel.Get(0).FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.TextNode {
			continue
		}
		if s := collapse(c.Data); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
