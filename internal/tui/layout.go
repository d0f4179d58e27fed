package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// fitLine forces ln to exactly width columns (ANSI-aware): long lines are cut
// with an ellipsis, short ones padded with spaces.
func fitLine(ln string, width int) string {
	if width <= 0 {
		return ""
	}
	// Avoid computing StringWidth on extremely long lines; cut early so the
	// width computation below is bounded.
	if len(ln) > 8192 {
		ln = xansi.Cut(ln, 0, width)
	}
	w := xansi.StringWidth(ln)
	if w > width {
		if width == 1 {
			ln = xansi.Cut(ln, 0, 1)
		} else {
			ln = xansi.Cut(ln, 0, width-1) + "…"
		}
		w = xansi.StringWidth(ln)
	}
	if w < width {
		ln += strings.Repeat(" ", width-w)
	}
	return ln
}

// normalizePane forces s to be exactly width columns wide and height lines
// tall, so stacked sections never shift each other.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}
	for i := range lines {
		lines[i] = fitLine(lines[i], width)
	}
	return strings.Join(lines, "\n")
}

// singleLine flattens input views that must render on one visual line.
func singleLine(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}
