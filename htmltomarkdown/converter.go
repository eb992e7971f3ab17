// Package htmltomarkdown renders page snapshots as Markdown.
package htmltomarkdown

import (
	"net/url"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/pageblocks"
)

// Ensure Converter implements pageblocks.Converter at compile time.
var _ pageblocks.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms a page's HTML into Markdown. Relative links and
// images are made absolute against the scheme and host of baseURL.
func (c *Converter) Convert(html string, baseURL string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", pageblocks.Errorf(pageblocks.EINVALID, "empty HTML input")
	}

	var opts []converter.ConvertOptionFunc
	if domain := siteDomain(baseURL); domain != "" {
		opts = append(opts, converter.WithDomain(domain))
	}

	return c.conv.ConvertString(html, opts...)
}

// siteDomain returns scheme://host of rawURL, or "" if it has no host.
func siteDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
