package mock

import "github.com/fwojciec/pageblocks"

var _ pageblocks.DOMProvider = (*DOMProvider)(nil)

// DOMProvider is a mock implementation of pageblocks.DOMProvider.
type DOMProvider struct {
	ParseDOMFn func(html string) (*pageblocks.DOM, error)
}

func (p *DOMProvider) ParseDOM(html string) (*pageblocks.DOM, error) {
	return p.ParseDOMFn(html)
}
