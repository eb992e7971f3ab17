package mock

import "github.com/fwojciec/pageblocks"

var _ pageblocks.Converter = (*Converter)(nil)

// Converter is a mock implementation of pageblocks.Converter.
type Converter struct {
	ConvertFn func(html string, baseURL string) (string, error)
}

func (c *Converter) Convert(html string, baseURL string) (string, error) {
	return c.ConvertFn(html, baseURL)
}
