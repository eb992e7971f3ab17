package pageblocks

import (
	"strconv"
	"strings"
)

// FormatBlocks formats blocks for terminal display.
// Each block starts with a "## [seq] type" line naming its image or link
// target and the heading it falls under. Blocks are separated by blank lines.
func FormatBlocks(blocks []ContentBlock) string {
	if len(blocks) == 0 {
		return ""
	}

	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		var header strings.Builder
		header.WriteString("## [" + strconv.Itoa(b.Position.Seq) + "] " + string(b.ContentType))
		switch {
		case b.Image.Name != "":
			header.WriteString(" " + b.Image.Name)
		case b.Link.Kind != LinkNone:
			header.WriteString(" " + string(b.Link.Kind) + " " + b.Link.Target)
		}
		if b.LastHeader != "" {
			header.WriteString(" (" + b.LastHeader + ")")
		}
		parts = append(parts, header.String()+"\n"+b.Text)
	}

	return strings.Join(parts, "\n\n")
}
