package pageblocks

import (
	"slices"
	"strings"
)

// LinkKind classifies a hyperlink.
type LinkKind string

// Link kinds.
const (
	LinkNone            LinkKind = ""
	LinkInternal        LinkKind = "internal"
	LinkExternal        LinkKind = "external"
	LinkCSS             LinkKind = "css"
	LinkJS              LinkKind = "js"
	LinkOtherFormatting LinkKind = "other_formatting"
)

// LinkClass is the outcome of classifying one href.
type LinkClass struct {
	// Skippable marks scripts, stylesheets, icons and fonts.
	Skippable bool
	Target    string
	Kind      LinkKind
}

// linkRule is one entry of the classification table.
// A rule that matches overwrites Kind and Target; Skippable only ever
// gets set.
type linkRule struct {
	match     func(href, base string) bool
	kind      LinkKind
	skippable bool
	target    func(href, base string) string
}

func hrefAsIs(href, _ string) string { return href }

// linkRules are evaluated in order; the last matching rule decides the kind.
var linkRules = []linkRule{
	{
		match:     func(href, _ string) bool { return strings.HasSuffix(href, ".js") },
		kind:      LinkJS,
		skippable: true,
		target:    hrefAsIs,
	},
	{
		match: func(href, _ string) bool {
			return strings.HasSuffix(href, ".ico") || strings.HasSuffix(href, ".ttf")
		},
		kind:      LinkOtherFormatting,
		skippable: true,
		target:    hrefAsIs,
	},
	{
		match:     func(href, _ string) bool { return strings.HasSuffix(href, ".css") },
		kind:      LinkCSS,
		skippable: true,
		target:    hrefAsIs,
	},
	{
		match: func(href, base string) bool { return base != "" && strings.HasPrefix(href, base) },
		kind:  LinkInternal,
		target: func(href, base string) string {
			return href[len(base):]
		},
	},
	{
		// Protocol-relative "//host/..." links point at other origins.
		match: func(href, _ string) bool {
			return strings.HasPrefix(href, "/") && !strings.HasPrefix(href, "//")
		},
		kind:   LinkInternal,
		target: hrefAsIs,
	},
	{
		match: func(href, base string) bool {
			return strings.HasPrefix(href, "https://") && (base == "" || !strings.HasPrefix(href, base))
		},
		kind:   LinkExternal,
		target: hrefAsIs,
	},
}

// ClassifyLink classifies href relative to the page base URL.
// Internal links under base are returned relative to it. When no rule
// matches, Kind is LinkNone and Target is href unchanged.
func ClassifyLink(href, base string) LinkClass {
	class := LinkClass{Target: href}
	for _, rule := range linkRules {
		if !rule.match(href, base) {
			continue
		}
		class.Kind = rule.kind
		class.Target = rule.target(href, base)
		if rule.skippable {
			class.Skippable = true
		}
	}
	return class
}

// LinkResult groups the hyperlinks of a page.
// Top is the subset of Internal whose path segments name a vocabulary term.
type LinkResult struct {
	Internal []string `json:"internal"`
	External []string `json:"external"`
	Other    []string `json:"other"`
	Top      []string `json:"top"`
}

// CollectLinks classifies every non-empty href in nodes. Each list holds a
// link once, in document order. Scripts, stylesheets and unmatched hrefs
// land in Other unless a later rule made them internal or external.
// A link to the base itself is dropped.
func CollectLinks(nodes []Node, base string, vocabulary []string) *LinkResult {
	result := &LinkResult{}
	seen := map[LinkKind]*TextSet{
		LinkInternal: NewTextSet(),
		LinkExternal: NewTextSet(),
		LinkNone:     NewTextSet(),
	}

	for _, n := range nodes {
		href, ok := n.Attr("href")
		if !ok || href == "" {
			continue
		}

		class := ClassifyLink(href, base)
		switch class.Kind {
		case LinkInternal:
			if class.Target != "" && seen[LinkInternal].Add(class.Target) {
				result.Internal = append(result.Internal, class.Target)
			}
		case LinkExternal:
			if seen[LinkExternal].Add(class.Target) {
				result.External = append(result.External, class.Target)
			}
		default:
			if seen[LinkNone].Add(href) {
				result.Other = append(result.Other, href)
			}
		}
	}

	result.Top = TopLinks(result.Internal, vocabulary)
	return result
}

// TopLinks returns the links with a "/"-separated segment equal to a
// vocabulary term. Terms are compared lowercased; each link appears once.
func TopLinks(links []string, vocabulary []string) []string {
	if len(vocabulary) == 0 {
		return nil
	}

	terms := make([]string, 0, len(vocabulary))
	for _, term := range vocabulary {
		if term = strings.ToLower(strings.TrimSpace(term)); term != "" {
			terms = append(terms, term)
		}
	}

	var top []string
	added := NewTextSet()
	for _, link := range links {
		segments := strings.Split(link, "/")
		for _, term := range terms {
			if slices.Contains(segments, term) {
				if added.Add(link) {
					top = append(top, link)
				}
				break
			}
		}
	}
	return top
}

