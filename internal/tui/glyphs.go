package tui

import (
	"os"
	"strings"
	"sync"
)

// Terminal apps can't change the user's actual font. Instead, we can choose
// between Unicode and ASCII glyph sets for UI affordances (grip, checkboxes).
// This helps on terminals/fonts that don't render braille or box glyphs.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

func applyGlyphPreference() {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("CHECKLIST_TUI_GLYPHS")))
	switch v {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	default:
		// Unknown value: ignore.
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

// glyphGrip is the drag handle drawn in the last column of a row.
func glyphGrip() string {
	if glyphs() == glyphSetASCII {
		return "="
	}
	return "⠿"
}

func glyphUnchecked() string {
	if glyphs() == glyphSetASCII {
		return "[ ]"
	}
	return "☐"
}

func glyphChecked() string {
	if glyphs() == glyphSetASCII {
		return "[x]"
	}
	return "☑"
}

func glyphAdd() string {
	if glyphs() == glyphSetASCII {
		return "[+]"
	}
	return "+"
}

func glyphDelete() string {
	if glyphs() == glyphSetASCII {
		return "x"
	}
	return "✕"
}

func glyphEmpty() string {
	if glyphs() == glyphSetASCII {
		return ":|"
	}
	return "😐"
}
