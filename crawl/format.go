package crawl

// TruncatePath shortens a page path for progress display, keeping the
// end, which names the page. The result is at most maxLen runes.
func TruncatePath(path string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(path)
	if len(runes) <= maxLen {
		return path
	}
	if maxLen < 4 {
		return string(runes[:maxLen])
	}
	return "..." + string(runes[len(runes)-maxLen+3:])
}
