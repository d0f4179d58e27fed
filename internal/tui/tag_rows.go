package tui

import (
	"fmt"
	"strings"

	"checklist-cli/internal/gesture"
	"checklist-cli/internal/model"
	"checklist-cli/internal/mutate"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
)

// tagRenderer draws catalogue rows in the settings view.
type tagRenderer struct {
	counts map[string]int
}

func newTagRenderer(counts []mutate.TagCount) tagRenderer {
	r := tagRenderer{counts: make(map[string]int, len(counts))}
	for _, c := range counts {
		r.counts[model.TagKey(c.Tag.Title)] = c.Count
	}
	return r
}

func (r tagRenderer) RenderRow(t model.Tag, st rowState, width, height int) []string {
	var b strings.Builder
	b.WriteString(tagChipStyle(t).Render(t.Title))
	meta := styleMuted()
	if st.Inert {
		meta = styleInertRow()
	}
	if g := strings.TrimSpace(t.GroupName); g != "" {
		b.WriteString(meta.Render("  " + g))
	}
	n := r.counts[model.TagKey(t.Title)]
	b.WriteString(meta.Render(fmt.Sprintf("  %d active", n)))

	line := b.String()
	switch {
	case st.Dragging:
		line = styleDraggingRow().Render(fitLine(line, width))
	case st.Focused:
		line = fitLine(line, width-1)
		line = lipgloss.NewStyle().Foreground(colorAccent).Render("›") + line
	}
	lines := make([]string, height)
	lines[0] = line
	return lines
}

type tagBarSpan struct {
	title  string
	x0, x1 int
}

// layoutTagBar places one chip per catalogue tag: " Title n ".
func layoutTagBar(counts []mutate.TagCount, width int) []tagBarSpan {
	spans := make([]tagBarSpan, 0, len(counts))
	x := 0
	for _, c := range counts {
		w := xansi.StringWidth(tagBarLabel(c))
		if x+w > width {
			break
		}
		spans = append(spans, tagBarSpan{title: c.Tag.Title, x0: x, x1: x + w})
		x += w + 1
	}
	return spans
}

func tagBarLabel(c mutate.TagCount) string {
	return chipLabel(fmt.Sprintf("%s %d", c.Tag.Title, c.Count))
}

func renderTagBar(z *zone.Manager, counts []mutate.TagCount, filter []string, width int) string {
	spans := layoutTagBar(counts, width)
	active := make(map[string]bool, len(filter))
	for _, f := range filter {
		active[model.TagKey(f)] = true
	}
	var b strings.Builder
	for i, s := range spans {
		if i > 0 {
			b.WriteString(" ")
		}
		c := counts[i]
		st := tagChipStyle(c.Tag).Padding(0)
		switch {
		case active[model.TagKey(s.title)]:
			st = st.Bold(true).Underline(true)
		case len(filter) > 0:
			st = st.Faint(true)
		}
		b.WriteString(markZone(z, tagBarZone(s.title), st.Render(tagBarLabel(c))))
	}
	if len(spans) == 0 {
		return styleMuted().Render("No tags")
	}
	return b.String()
}

// chipDrag is a tag chip being dragged from the tag bar. It carries the tag
// as an encoded payload, like a drag-and-drop data transfer, and is bound to
// the pointer router for its lifetime.
type chipDrag struct {
	title   string
	payload string
	origin  gesture.Point
	at      gesture.Point
	moved   bool
	done    bool
	unbind  func()
}

func (d *chipDrag) PointerMove(p gesture.Point) {
	d.at = p
	if p != d.origin {
		d.moved = true
	}
}

func (d *chipDrag) PointerUp(p gesture.Point) {
	d.PointerMove(p)
	d.done = true
}

func (d *chipDrag) end() {
	if d.unbind != nil {
		d.unbind()
		d.unbind = nil
	}
}
