package pageblocks

// TextSet is an exact-match string set scoped to one extraction pass.
// No normalization is applied: strings that differ in case or
// punctuation are distinct.
type TextSet struct {
	m map[string]struct{}
}

// NewTextSet returns an empty set.
func NewTextSet() *TextSet {
	return &TextSet{m: make(map[string]struct{})}
}

// Add inserts s and reports whether it was not already present.
func (s *TextSet) Add(v string) bool {
	if _, ok := s.m[v]; ok {
		return false
	}
	s.m[v] = struct{}{}
	return true
}

// Has reports whether v is in the set.
func (s *TextSet) Has(v string) bool {
	_, ok := s.m[v]
	return ok
}

// Len returns the number of strings in the set.
func (s *TextSet) Len() int {
	return len(s.m)
}
