package pageblocks_test

import (
	"testing"

	"github.com/fwojciec/pageblocks"
	"github.com/stretchr/testify/assert"
)

func TestClassifyLink(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		href      string
		base      string
		kind      pageblocks.LinkKind
		target    string
		skippable bool
	}{
		{
			name:   "root-relative path is internal",
			href:   "/about",
			base:   "http://x.com",
			kind:   pageblocks.LinkInternal,
			target: "/about",
		},
		{
			name:   "absolute link under base is made relative",
			href:   "http://x.com/about",
			base:   "http://x.com",
			kind:   pageblocks.LinkInternal,
			target: "/about",
		},
		{
			name:   "https link to another host is external",
			href:   "https://other.com/a",
			base:   "http://x.com",
			kind:   pageblocks.LinkExternal,
			target: "https://other.com/a",
		},
		{
			name:   "https link under an https base is internal",
			href:   "https://x.com/docs/intro",
			base:   "https://x.com",
			kind:   pageblocks.LinkInternal,
			target: "/docs/intro",
		},
		{
			name:      "stylesheet is skippable",
			href:      "style.css",
			base:      "http://x.com",
			kind:      pageblocks.LinkCSS,
			target:    "style.css",
			skippable: true,
		},
		{
			name:      "script is skippable",
			href:      "bundle.js",
			base:      "http://x.com",
			kind:      pageblocks.LinkJS,
			target:    "bundle.js",
			skippable: true,
		},
		{
			name:      "font is other formatting",
			href:      "fonts/inter.ttf",
			base:      "http://x.com",
			kind:      pageblocks.LinkOtherFormatting,
			target:    "fonts/inter.ttf",
			skippable: true,
		},
		{
			name:   "protocol-relative link is not internal",
			href:   "//cdn.example.com/x",
			base:   "http://x.com",
			kind:   pageblocks.LinkNone,
			target: "//cdn.example.com/x",
		},
		{
			name:   "fragment passes through unclassified",
			href:   "#top",
			base:   "http://x.com",
			kind:   pageblocks.LinkNone,
			target: "#top",
		},
		{
			name:      "later rule overrides kind but keeps skip flag",
			href:      "https://cdn.other.com/app.js",
			base:      "http://x.com",
			kind:      pageblocks.LinkExternal,
			target:    "https://cdn.other.com/app.js",
			skippable: true,
		},
		{
			name:      "root-relative icon is internal and skippable",
			href:      "/favicon.ico",
			base:      "http://x.com",
			kind:      pageblocks.LinkInternal,
			target:    "/favicon.ico",
			skippable: true,
		},
		{
			name:   "empty base never matches the prefix rule",
			href:   "https://x.com/a",
			base:   "",
			kind:   pageblocks.LinkExternal,
			target: "https://x.com/a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := pageblocks.ClassifyLink(tt.href, tt.base)

			assert.Equal(t, tt.kind, got.Kind)
			assert.Equal(t, tt.target, got.Target)
			assert.Equal(t, tt.skippable, got.Skippable)
		})
	}
}

func anchor(href string) pageblocks.Node {
	return &pageblocks.Element{Name: "a", Attrs: map[string]string{"href": href}}
}

func TestCollectLinks(t *testing.T) {
	t.Parallel()

	t.Run("groups links into disjoint lists", func(t *testing.T) {
		t.Parallel()

		nodes := []pageblocks.Node{
			anchor("/about"),
			anchor("https://x.com/products/widgets"),
			anchor("https://other.com/partner"),
			anchor("style.css"),
			anchor("mailto:hello@x.com"),
			&pageblocks.Element{Name: "div", Attrs: map[string]string{"class": "nav"}},
			anchor(""),
		}

		result := pageblocks.CollectLinks(nodes, "https://x.com", nil)

		assert.Equal(t, []string{"/about", "/products/widgets"}, result.Internal)
		assert.Equal(t, []string{"https://other.com/partner"}, result.External)
		assert.Equal(t, []string{"style.css", "mailto:hello@x.com"}, result.Other)
		assert.Empty(t, result.Top)
	})

	t.Run("lists each link once", func(t *testing.T) {
		t.Parallel()

		nodes := []pageblocks.Node{
			anchor("/about"),
			anchor("/about"),
			anchor("https://other.com/"),
			anchor("https://other.com/"),
		}

		result := pageblocks.CollectLinks(nodes, "https://x.com", nil)

		assert.Equal(t, []string{"/about"}, result.Internal)
		assert.Equal(t, []string{"https://other.com/"}, result.External)
	})

	t.Run("drops links to the base itself", func(t *testing.T) {
		t.Parallel()

		nodes := []pageblocks.Node{
			anchor("https://x.com"),
			anchor("https://x.com/docs"),
		}

		result := pageblocks.CollectLinks(nodes, "https://x.com", nil)

		assert.Equal(t, []string{"/docs"}, result.Internal)
		assert.Empty(t, result.Other)
	})

	t.Run("surfaces top links matching the vocabulary", func(t *testing.T) {
		t.Parallel()

		nodes := []pageblocks.Node{
			anchor("/about/team"),
			anchor("/pricing"),
			anchor("/blog/2024/launch"),
		}

		result := pageblocks.CollectLinks(nodes, "https://x.com", []string{"About", "blog"})

		assert.Equal(t, []string{"/about/team", "/blog/2024/launch"}, result.Top)
	})
}

func TestTopLinks(t *testing.T) {
	t.Parallel()

	t.Run("matches whole path segments only", func(t *testing.T) {
		t.Parallel()

		links := []string{"/aboutus", "/about", "/company/about/history"}

		top := pageblocks.TopLinks(links, []string{"about"})

		assert.Equal(t, []string{"/about", "/company/about/history"}, top)
	})

	t.Run("returns nil without vocabulary", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, pageblocks.TopLinks([]string{"/about"}, nil))
	})

	t.Run("ignores blank terms", func(t *testing.T) {
		t.Parallel()

		top := pageblocks.TopLinks([]string{"/a//b"}, []string{"  "})

		assert.Empty(t, top)
	})
}
