package tui

import (
	"strings"

	"checklist-cli/internal/badge"
	"checklist-cli/internal/docs"
	"checklist-cli/internal/mutate"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

func (m appModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	if m.showHelp {
		return m.zones.Scan(normalizePane(m.helpView(), m.width, m.height))
	}

	listH := m.height - listTop - 1
	if listH < 1 {
		listH = 1
	}
	sections := []string{
		fitLine(m.renderHeader(), m.width),
		fitLine(m.renderSubheader(), m.width),
		strings.Repeat(" ", m.width),
		normalizePane(m.renderList(), m.width, listH),
		fitLine(m.renderFooter(), m.width),
	}
	return m.zones.Scan(strings.Join(sections, "\n"))
}

func (m appModel) renderHeader() string {
	var b strings.Builder
	for i, v := range views {
		if i > 0 {
			b.WriteString(" ")
		}
		st := styleTabInactive()
		if v == m.view {
			st = styleTabActive()
		}
		b.WriteString(m.zones.Mark(tabZone(v), st.Render(v.title())))
	}
	left := b.String()

	right := ""
	if !m.rehydrating {
		if text := badge.Text(badge.Count(m.items)); text != "" {
			right = styleBadge().Render(text)
		}
	}
	gap := m.width - xansi.StringWidth(left) - xansi.StringWidth(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m appModel) renderSubheader() string {
	switch {
	case m.rehydrating:
		return styleMuted().Render("Loading…")
	case m.view == viewSettings:
		return styleHeading().Render("Tags") + styleMuted().Render("  drag to reorder")
	default:
		return renderTagBar(m.zones, mutate.TagCounts(m.items, m.tags), m.filter, m.width)
	}
}

func (m appModel) renderList() string {
	if m.rehydrating {
		return ""
	}
	if m.view == viewSettings {
		return m.tagList.View(newTagRenderer(mutate.TagCounts(m.items, m.tags)))
	}
	r := itemRenderer{
		catalogue: m.tags,
		input:     m.input.View(),
		editable:  m.view == viewHome,
		disabled:  m.rehydrating,
		dropKey:   m.chipHover(),
		zones:     m.zones,
	}
	return m.activeItemList().View(r)
}

func (m appModel) renderFooter() string {
	if m.minibufferText != "" {
		st := lipgloss.NewStyle().Foreground(colorSurfaceFg)
		if m.minibufferErr {
			st = lipgloss.NewStyle().Foreground(colorFlashErrorFg)
		}
		return st.Render(m.minibufferText)
	}
	return m.help.ShortHelpView(m.keys.ShortHelp())
}

type renderCache struct {
	width int
	text  string
}

// helpView renders the keys and drag topics with glamour, once per width.
func (m appModel) helpView() string {
	if c := m.helpCache; c != nil && c.width == m.width && c.text != "" {
		return c.text
	}
	var md strings.Builder
	for _, topic := range []string{"keys", "drag"} {
		if s, ok := docs.Get(topic); ok {
			md.WriteString(s)
			md.WriteString("\n")
		}
	}
	style := "light"
	if lipgloss.HasDarkBackground() {
		style = "dark"
	}
	out, err := docs.Render(md.String(), m.width-2, style)
	if err != nil {
		m.log.Warn("help render", "err", err)
		out = md.String()
	}
	out += "\n" + styleMuted().Render("  f1/esc to close")
	if m.helpCache != nil {
		m.helpCache.width = m.width
		m.helpCache.text = out
	}
	return out
}
