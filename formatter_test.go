package pageblocks_test

import (
	"testing"

	"github.com/fwojciec/pageblocks"
	"github.com/stretchr/testify/assert"
)

func TestFormatBlocks(t *testing.T) {
	t.Parallel()

	t.Run("formats text block with its heading", func(t *testing.T) {
		t.Parallel()

		blocks := []pageblocks.ContentBlock{
			{
				ContentType: pageblocks.ContentText,
				Text:        "Welcome to the docs.",
				Position:    pageblocks.Position{Seq: 3},
				LastHeader:  "Getting Started",
			},
		}

		result := pageblocks.FormatBlocks(blocks)

		assert.Equal(t, "## [3] text (Getting Started)\nWelcome to the docs.", result)
	})

	t.Run("names the image of an image block", func(t *testing.T) {
		t.Parallel()

		blocks := []pageblocks.ContentBlock{
			{ContentType: pageblocks.ContentImage, Text: "Caption.", Image: pageblocks.ImageRef{Name: "image2.png"}},
		}

		result := pageblocks.FormatBlocks(blocks)

		assert.Equal(t, "## [0] image image2.png\nCaption.", result)
	})

	t.Run("names the kind and target of a link block", func(t *testing.T) {
		t.Parallel()

		blocks := []pageblocks.ContentBlock{
			{
				ContentType: pageblocks.ContentLink,
				Text:        "About us.",
				Link:        pageblocks.LinkRef{Kind: pageblocks.LinkInternal, Target: "/about"},
				Position:    pageblocks.Position{Seq: 7},
			},
		}

		result := pageblocks.FormatBlocks(blocks)

		assert.Equal(t, "## [7] link internal /about\nAbout us.", result)
	})

	t.Run("separates blocks with a blank line", func(t *testing.T) {
		t.Parallel()

		blocks := []pageblocks.ContentBlock{
			{ContentType: pageblocks.ContentText, Text: "First.", Position: pageblocks.Position{Seq: 1}},
			{ContentType: pageblocks.ContentText, Text: "Second.", Position: pageblocks.Position{Seq: 2}},
		}

		result := pageblocks.FormatBlocks(blocks)

		assert.Equal(t, "## [1] text\nFirst.\n\n## [2] text\nSecond.", result)
	})

	t.Run("returns empty string for nil slice", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, pageblocks.FormatBlocks(nil))
	})
}
