package tui

import (
	"strings"

	"checklist-cli/internal/model"
	"checklist-cli/internal/mutate"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/truncate"
)

type chipSpan struct {
	title  string
	x0, x1 int // [x0, x1)
}

// itemLayout is the column geometry of an item row, shared by rendering and
// hit testing.
type itemLayout struct {
	boxW     int
	textX    int
	textW    int
	delX     int // -1 when the row has no delete button
	chipLine int
	chips    []chipSpan
}

func chipLabel(title string) string { return " " + title + " " }

func layoutItemRow(it model.Item, catalogue []model.Tag, width, height int, pinned bool) itemLayout {
	lay := itemLayout{delX: -1}
	if pinned {
		lay.boxW = xansi.StringWidth(glyphAdd())
	} else {
		lay.boxW = xansi.StringWidth(glyphUnchecked())
		if it.Archived {
			lay.boxW = xansi.StringWidth(glyphChecked())
		}
	}
	lay.textX = lay.boxW + 1
	end := width
	if !pinned && width > lay.textX+2 {
		lay.delX = width - 2
		end = lay.delX - 1
	}
	lay.textW = end - lay.textX
	if lay.textW < 0 {
		lay.textW = 0
	}

	titles := mutate.SortTags(it.Tags, catalogue)
	if len(titles) == 0 {
		return lay
	}
	widths := make([]int, len(titles))
	total := 0
	for i, t := range titles {
		widths[i] = xansi.StringWidth(chipLabel(t))
		total += widths[i]
		if i > 0 {
			total++
		}
	}

	x := lay.textX
	if height >= 2 {
		lay.chipLine = 1
	} else {
		// Single-line rows carry the chips right-aligned after the text.
		x = end - total
		if x < lay.textX+1 {
			x = lay.textX + 1
		}
		lay.textW = x - 1 - lay.textX
	}
	for i, t := range titles {
		if x+widths[i] > end {
			break
		}
		lay.chips = append(lay.chips, chipSpan{title: t, x0: x, x1: x + widths[i]})
		x += widths[i] + 1
	}
	return lay
}

// itemRenderer draws checklist rows. The focused row of an editable list
// shows the text input instead of the stored text.
type itemRenderer struct {
	catalogue []model.Tag
	input     string
	editable  bool
	disabled  bool
	dropKey   string // row hovered by a dragged tag chip
	zones     *zone.Manager
}

func (r itemRenderer) RenderRow(it model.Item, st rowState, width, height int) []string {
	lay := layoutItemRow(it, r.catalogue, width, height, st.Pinned)
	lines := make([]string, height)

	textStyle := lipgloss.NewStyle()
	switch {
	case st.Dragging:
		textStyle = styleDraggingRow()
	case st.Inert || r.disabled:
		textStyle = styleInertRow()
	case it.Key == r.dropKey:
		textStyle = lipgloss.NewStyle().Underline(true).Foreground(colorAccent)
	case st.Focused:
		textStyle = styleFocusedRow()
	}
	if it.Archived {
		textStyle = textStyle.Strikethrough(true).Foreground(colorMuted)
	}

	var box string
	switch {
	case st.Pinned:
		box = styleMuted().Render(glyphAdd())
	case it.Archived:
		box = lipgloss.NewStyle().Foreground(colorAccent).Render(glyphChecked())
	default:
		box = glyphUnchecked()
	}
	if !st.Pinned {
		box = markZone(r.zones, itemZone(it.Key, "box"), box)
	}

	var text string
	switch {
	case st.Focused && r.editable && !r.disabled && !st.Inert:
		text = lipgloss.NewStyle().Background(colorInputBg).Render(fitLine(singleLine(r.input), lay.textW))
	case st.Pinned && strings.TrimSpace(it.Value) == "":
		text = styleMuted().Render(fitLine("Add new task", lay.textW))
	default:
		text = textStyle.Render(fitLine(truncate.StringWithTail(singleLine(it.Value), uint(max(lay.textW, 0)), "…"), lay.textW))
	}

	var b strings.Builder
	b.WriteString(box)
	b.WriteString(" ")
	b.WriteString(text)
	if lay.chipLine == 0 && len(lay.chips) > 0 {
		b.WriteString(" ")
		b.WriteString(r.renderChips(it.Key, lay))
	}
	line := b.String()
	if lay.delX >= 0 {
		del := markZone(r.zones, itemZone(it.Key, "del"), styleMuted().Render(glyphDelete()))
		line = fitLine(line, lay.delX) + del
	}
	lines[0] = line
	if lay.chipLine > 0 && len(lay.chips) > 0 {
		lines[lay.chipLine] = strings.Repeat(" ", lay.chips[0].x0) + r.renderChips(it.Key, lay)
	}
	return lines
}

func (r itemRenderer) renderChips(key string, lay itemLayout) string {
	var b strings.Builder
	for i, c := range lay.chips {
		if i > 0 {
			b.WriteString(" ")
		}
		t, _, ok := model.FindTag(r.catalogue, c.title)
		if !ok {
			t = model.Tag{Title: c.title}
		}
		b.WriteString(markZone(r.zones, itemChipZone(key, c.title), tagChipStyle(t).Render(c.title)))
	}
	return b.String()
}
