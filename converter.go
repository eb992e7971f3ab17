package pageblocks

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms a page's HTML into Markdown.
	// Relative links and images are made absolute against baseURL.
	Convert(html string, baseURL string) (string, error)
}
