package tui

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/muesli/termenv"
)

// Replaced in tests.
var (
	writeClipboard = clipboard.WriteAll
	copyOSC52      = termenv.Copy
)

// copyToClipboard prefers the system clipboard and falls back to asking the
// terminal (OSC 52), which also works over SSH.
func copyToClipboard(s string) (via string) {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	if err := writeClipboard(s); err == nil {
		return "clipboard"
	}
	copyOSC52(s)
	return "terminal"
}
