package tui

import (
	"checklist-cli/internal/model"

	zone "github.com/lrstanley/bubblezone"
)

// Click targets with a fixed place in the frame are marked as zones and
// resolved against the last rendered view. List rows are not: they move
// while animating and are hit-tested by sortableList.

func tabZone(v view) string { return "tab/" + v.String() }

func tagBarZone(title string) string { return "tagbar/" + model.TagKey(title) }

func itemZone(key, part string) string { return "item/" + key + "/" + part }

func itemChipZone(key, title string) string {
	return itemZone(key, "chip/"+model.TagKey(title))
}

// markZone is zone.Mark that tolerates renderers built without a manager.
func markZone(z *zone.Manager, id, s string) string {
	if z == nil {
		return s
	}
	return z.Mark(id, s)
}
