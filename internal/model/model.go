package model

import "strings"

// Item is one checklist row.
//
// Order is positional: the collection slice order is the display order.
type Item struct {
	Key      string   `json:"key"`
	Value    string   `json:"value"`
	Tags     []string `json:"tags,omitempty"`
	Archived bool     `json:"archived,omitempty"`
}

// Tag is a catalogue entry. Title is the identity (case-insensitive).
// Tags sharing a GroupName are mutually exclusive on a single item.
type Tag struct {
	Title        string `json:"title" toml:"title"`
	Color        string `json:"color" toml:"color"`
	AltColor     string `json:"altColor,omitempty" toml:"alt_color,omitempty"`
	AltTextColor string `json:"altTextColor,omitempty" toml:"alt_text_color,omitempty"`
	GroupName    string `json:"groupName" toml:"group"`
}

// TagKey normalizes a tag title for lookups.
func TagKey(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

func ItemKey(it Item) string { return it.Key }

func TagTitleKey(t Tag) string { return TagKey(t.Title) }

// HasTag reports whether the item carries title (case-insensitive).
func (it Item) HasTag(title string) bool {
	k := TagKey(title)
	for _, t := range it.Tags {
		if TagKey(t) == k {
			return true
		}
	}
	return false
}

// Clone returns a copy that does not share the Tags backing array.
func (it Item) Clone() Item {
	out := it
	if it.Tags != nil {
		out.Tags = append([]string(nil), it.Tags...)
	}
	return out
}

// CloneItems deep-copies a collection.
func CloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	for i := range items {
		out[i] = items[i].Clone()
	}
	return out
}

// DefaultTags is the catalogue seeded into an empty store.
func DefaultTags() []Tag {
	return []Tag{
		{Title: "Started", Color: "hsl(213, 100%, 85%)", GroupName: "Progress"},
		{Title: "Blocked", Color: "hsl(250, 100%, 85%)", GroupName: "Progress"},
		{Title: "Trivial", Color: "hsl(300, 100%, 85%)", GroupName: "Priority"},
		{Title: "Urgent", Color: "hsl(0, 100%, 85%)", GroupName: "Priority"},
	}
}

// FindTag looks a tag up by title (case-insensitive).
func FindTag(tags []Tag, title string) (Tag, int, bool) {
	k := TagKey(title)
	for i, t := range tags {
		if TagKey(t.Title) == k {
			return t, i, true
		}
	}
	return Tag{}, -1, false
}
