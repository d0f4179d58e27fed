package tui

import (
	"os"
	"strconv"
	"strings"

	"checklist-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The TUI must remain readable on both light and dark terminal backgrounds.
// We use lipgloss.AdaptiveColor where possible and only apply "faint" styling
// on dark backgrounds (faint text on light terminals often becomes illegible).

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted lipgloss.TerminalColor = ac("240", "243")

	// Headings and other secondary chrome.
	colorChromeMutedFg lipgloss.TerminalColor = ac("240", "245")

	colorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg lipgloss.TerminalColor = ac("235", "255")

	colorSurfaceFg lipgloss.TerminalColor = ac("235", "252")
	colorInputBg   lipgloss.TerminalColor = ac("254", "234")

	colorAccent   lipgloss.TerminalColor = ac("27", "62")
	colorAccentFg lipgloss.TerminalColor = ac("255", "235")

	// Toolbar-style badge: white on red.
	colorBadgeBg lipgloss.TerminalColor = ac("196", "160")
	colorBadgeFg lipgloss.TerminalColor = ac("255", "255")

	// Row being dragged.
	colorDragBg lipgloss.TerminalColor = ac("#dde7f7", "#1f2a3d")

	// Short-lived minibuffer errors.
	colorFlashErrorFg lipgloss.TerminalColor = ac("160", "203")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleHeading() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorChromeMutedFg).Bold(true)
}

func styleTabActive() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorAccentFg).Background(colorAccent).Bold(true).Padding(0, 1)
}

func styleTabInactive() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorChromeMutedFg).Padding(0, 1)
}

func styleBadge() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorBadgeFg).Background(colorBadgeBg).Bold(true).Padding(0, 1)
}

func styleFocusedRow() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg)
}

func styleDraggingRow() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorSurfaceFg).Background(colorDragBg).Bold(true)
}

// Sibling rows while a drag is in progress.
func styleInertRow() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

// parseCSSColor understands the hsl(h, s%, l%) notation of the default
// catalogue as well as hex colours.
func parseCSSColor(s string) (colorful.Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return colorful.Color{}, false
	}
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		return c, err == nil
	}
	inner, ok := strings.CutPrefix(s, "hsl(")
	if !ok {
		return colorful.Color{}, false
	}
	inner, ok = strings.CutSuffix(inner, ")")
	if !ok {
		return colorful.Color{}, false
	}
	parts := strings.Split(inner, ",")
	if len(parts) != 3 {
		return colorful.Color{}, false
	}
	var vals [3]float64
	for i, p := range parts {
		p = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(p), "%"))
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return colorful.Color{}, false
		}
		vals[i] = v
	}
	return colorful.Hsl(vals[0], vals[1]/100, vals[2]/100).Clamped(), true
}

// tagChipStyle renders a tag chip on its own background
// colour, with the alternative colours on dark terminals when provided.
func tagChipStyle(t model.Tag) lipgloss.Style {
	st := lipgloss.NewStyle().Padding(0, 1)
	bg := t.Color
	if lipgloss.HasDarkBackground() && strings.TrimSpace(t.AltColor) != "" {
		bg = t.AltColor
	}
	c, ok := parseCSSColor(bg)
	if !ok {
		return st.Foreground(colorSurfaceFg).Background(colorSelectedBg)
	}
	st = st.Background(lipgloss.Color(c.Hex()))

	if fg, ok := parseCSSColor(t.AltTextColor); ok && lipgloss.HasDarkBackground() {
		return st.Foreground(lipgloss.Color(fg.Hex()))
	}
	if _, _, l := c.Hsl(); l > 0.55 {
		return st.Foreground(lipgloss.Color("#1a1a1a"))
	}
	return st.Foreground(lipgloss.Color("#f5f5f5"))
}

// applyColorProfilePreference sets Lip Gloss's color profile for the interactive TUI.
//
// Note: termenv.EnvColorProfile respects CLICOLOR/CLICOLOR_FORCE, which is useful for
// non-interactive CLI output but can accidentally disable colors in a TUI. For the TUI,
// we only honor NO_COLOR and otherwise follow the terminal's capabilities.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()

	// If TERM/COLORTERM indicate stronger support than the detector reports, trust the env.
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") && (profile == termenv.Ascii || profile == termenv.ANSI) {
		profile = termenv.ANSI256
	}

	lipgloss.SetColorProfile(profile)
}

// applyThemePreference configures Lip Gloss's background detection.
//
// Priority:
// 1) CHECKLIST_TUI_THEME=light|dark|auto
// 2) COLORFGBG heuristic (format like "15;0" = fg;bg)
func applyThemePreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("CHECKLIST_TUI_THEME"))) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}

	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
		}
	}
}
