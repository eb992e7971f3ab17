package pageblocks

// Node is one element of a parsed markup tree.
// A missing attribute is not an error; it means the signal does not apply.
type Node interface {
	// Tag returns the lowercase element name.
	Tag() string

	// Attr returns the attribute value and whether it is present.
	Attr(name string) (string, bool)

	// Strings returns the whitespace-collapsed text fragments owned
	// directly by the element, in document order. Empty fragments are omitted.
	Strings() []string
}

// DOM is a parsed page.
type DOM struct {
	Title string
	Nodes []Node
}

// DOMProvider parses HTML into a flat, document-ordered node sequence.
type DOMProvider interface {
	ParseDOM(html string) (*DOM, error)
}

// Element is a static Node, useful for building node sequences by hand.
type Element struct {
	Name  string
	Attrs map[string]string
	Text  []string
}

var _ Node = (*Element)(nil)

func (e *Element) Tag() string { return e.Name }

func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.Attrs[name]
	return v, ok
}

func (e *Element) Strings() []string { return e.Text }
