package components

import "github.com/mattn/go-runewidth"

// truncateString truncates a string to the given width, appending "…" if truncated.
// It handles wide characters correctly using runewidth.
func truncateString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxLen {
		return s
	}
	return runewidth.Truncate(s, maxLen, "…")
}

// padRight pads s with spaces to exactly width cells.
func padRight(s string, width int) string {
	s = truncateString(s, width)
	return runewidth.FillRight(s, width)
}
