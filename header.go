package pageblocks

import "sort"

// HeaderEntry records one heading seen during a pass.
type HeaderEntry struct {
	Seq  int    `json:"seq"`
	Rank int    `json:"rank"`
	Text string `json:"text"`
}

// HeaderRank returns 1, 2 or 3 for h1, h2 and h3 tags, and 0 otherwise.
func HeaderRank(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	}
	return 0
}

// HeaderTracker records the headings of a page. Heading text is
// deduplicated across the page.
type HeaderTracker struct {
	entries []HeaderEntry
	seen    *TextSet
	last    string
}

// NewHeaderTracker returns an empty tracker.
func NewHeaderTracker() *HeaderTracker {
	return &HeaderTracker{seen: NewTextSet()}
}

// Observe records a heading and reports whether its text was new.
// Repeated or empty text is ignored.
func (t *HeaderTracker) Observe(seq, rank int, text string) bool {
	if text == "" || rank < 1 || rank > 3 || !t.seen.Add(text) {
		return false
	}
	t.entries = append(t.entries, HeaderEntry{Seq: seq, Rank: rank, Text: text})
	t.last = text
	return true
}

// Last returns the most recent new heading, or "" if none was seen.
func (t *HeaderTracker) Last() string {
	return t.last
}

// Headers returns the recorded headings grouped by rank: all rank 1
// headings first, then rank 2, then rank 3, each group in the order seen.
func (t *HeaderTracker) Headers() []HeaderEntry {
	out := make([]HeaderEntry, len(t.entries))
	copy(out, t.entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rank < out[j].Rank
	})
	return out
}
