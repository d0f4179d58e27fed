package publish

import (
	"bytes"
	"strings"

	"checklist-cli/internal/model"
	"checklist-cli/internal/mutate"
	"checklist-cli/internal/visibility"
)

type RenderOptions struct {
	Title           string
	IncludeArchived bool
	// TagFilter limits the export to items carrying every listed tag.
	TagFilter []string
}

// RenderMarkdown renders the checklist as a GFM task list. The trailing
// (empty) row is never exported.
func RenderMarkdown(items []model.Item, catalogue []model.Tag, opt RenderOptions) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	title := strings.TrimSpace(opt.Title)
	if title == "" {
		title = "Checklist"
	}
	writeLn("# " + title)
	writeLn("")

	active, archived := exported(items, opt)
	if len(active) == 0 {
		writeLn("_Nothing here_")
	}
	for _, it := range active {
		writeLn(taskLine(it, catalogue, false))
	}

	if opt.IncludeArchived {
		writeLn("")
		writeLn("## Done")
		writeLn("")
		if len(archived) == 0 {
			writeLn("_Nothing here_")
		}
		for _, it := range archived {
			writeLn(taskLine(it, catalogue, true))
		}
	}
	return buf.String()
}

// exported splits the items an export contains. archived is nil unless
// IncludeArchived is set.
func exported(items []model.Item, opt RenderOptions) (active, archived []model.Item) {
	trailing, _ := mutate.TrailingKey(items)
	for _, it := range visibility.Project(items, visibility.Active(opt.TagFilter)).Items {
		if it.Key != trailing {
			active = append(active, it)
		}
	}
	if opt.IncludeArchived {
		archived = visibility.Project(items, visibility.Archived(opt.TagFilter)).Items
	}
	return active, archived
}

func taskLine(it model.Item, catalogue []model.Tag, done bool) string {
	box := "[ ]"
	if done {
		box = "[x]"
	}
	text := strings.TrimSpace(it.Value)
	if text == "" {
		text = "(empty)"
	}
	line := "- " + box + " " + escapeInline(text)
	for _, t := range mutate.SortTags(it.Tags, catalogue) {
		line += " `" + t + "`"
	}
	return line
}

// escapeInline keeps item text from turning into markdown structure.
func escapeInline(s string) string {
	r := strings.NewReplacer(
		"\n", " ",
		"*", `\*`,
		"_", `\_`,
		"`", "\\`",
		"[", `\[`,
		"]", `\]`,
		"<", `\<`,
	)
	return r.Replace(s)
}
