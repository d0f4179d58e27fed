package tui

import (
	"testing"

	"checklist-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
)

func TestParseCSSColor(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"hsl(0, 100%, 50%)", "#ff0000", true},
		{"HSL(120,100%,25%)", "#008000", true},
		{"#336699", "#336699", true},
		{"red", "", false},
		{"hsl(1, 2)", "", false},
		{"hsl(a, 1%, 1%)", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		c, ok := parseCSSColor(tc.in)
		if ok != tc.ok {
			t.Fatalf("parseCSSColor(%q) ok=%v want %v", tc.in, ok, tc.ok)
		}
		if ok && c.Hex() != tc.want {
			t.Fatalf("parseCSSColor(%q)=%s want %s", tc.in, c.Hex(), tc.want)
		}
	}
}

func TestTagChipStyle_ContrastAndAltColors(t *testing.T) {
	prev := lipgloss.HasDarkBackground()
	t.Cleanup(func() { lipgloss.SetHasDarkBackground(prev) })

	lipgloss.SetHasDarkBackground(false)
	light := tagChipStyle(model.Tag{Title: "Urgent", Color: "#ffcccc"})
	if got := light.GetBackground(); got != lipgloss.Color("#ffcccc") {
		t.Fatalf("background=%v", got)
	}
	if got := light.GetForeground(); got != lipgloss.Color("#1a1a1a") {
		t.Fatalf("light chip should use dark text, got %v", got)
	}

	lipgloss.SetHasDarkBackground(true)
	dark := tagChipStyle(model.Tag{Title: "Urgent", Color: "hsl(0, 100%, 85%)", AltColor: "#202020", AltTextColor: "#eeeeee"})
	if got := dark.GetBackground(); got != lipgloss.Color("#202020") {
		t.Fatalf("alt background=%v", got)
	}
	if got := dark.GetForeground(); got != lipgloss.Color("#eeeeee") {
		t.Fatalf("alt text=%v", got)
	}
}

func TestThemePreference_FromEnv(t *testing.T) {
	prev := lipgloss.HasDarkBackground()
	t.Cleanup(func() { lipgloss.SetHasDarkBackground(prev) })

	t.Setenv("CHECKLIST_TUI_THEME", "light")
	applyThemePreference()
	if lipgloss.HasDarkBackground() {
		t.Fatalf("expected light background")
	}

	t.Setenv("CHECKLIST_TUI_THEME", "")
	t.Setenv("COLORFGBG", "15;0")
	applyThemePreference()
	if !lipgloss.HasDarkBackground() {
		t.Fatalf("COLORFGBG 15;0 should select a dark background")
	}
}
