package mutate

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"

	"checklist-cli/internal/model"
)

// AssignTag adds tag to an item. Tags sharing the tag's catalogue group are
// removed from the item first, so at most one tag per group is carried.
func AssignTag(items []model.Item, catalogue []model.Tag, key, title string) (Result, error) {
	i := indexOf(items, key)
	if i < 0 {
		return unchanged(items, key), NotFoundError{Kind: "item", ID: key}
	}
	tag, _, ok := model.FindTag(catalogue, title)
	if !ok {
		return unchanged(items, key), NotFoundError{Kind: "tag", ID: title}
	}
	if IsTrailing(items, key) {
		return unchanged(items, key), PinnedError{Op: "tag", Key: key}
	}
	if items[i].HasTag(tag.Title) {
		return unchanged(items, key), nil
	}

	out := model.CloneItems(items)
	kept := make([]string, 0, len(out[i].Tags)+1)
	for _, t := range out[i].Tags {
		if tag.GroupName != "" {
			if other, _, ok := model.FindTag(catalogue, t); ok && other.GroupName == tag.GroupName {
				continue
			}
		}
		kept = append(kept, t)
	}
	out[i].Tags = append(kept, tag.Title)
	return Result{Items: out, Key: key, Changed: true}, nil
}

// RemoveTag drops title from an item (case-insensitive).
func RemoveTag(items []model.Item, key, title string) (Result, error) {
	i := indexOf(items, key)
	if i < 0 {
		return unchanged(items, key), NotFoundError{Kind: "item", ID: key}
	}
	if !items[i].HasTag(title) {
		return unchanged(items, key), nil
	}
	out := model.CloneItems(items)
	k := model.TagKey(title)
	kept := out[i].Tags[:0]
	for _, t := range out[i].Tags {
		if model.TagKey(t) != k {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		kept = nil
	}
	out[i].Tags = kept
	return Result{Items: out, Key: key, Changed: true}, nil
}

// EncodeTagPayload is the drag payload carried when a tag chip is dragged
// onto an item row.
func EncodeTagPayload(t model.Tag) string {
	b, _ := json.Marshal(t)
	return string(b)
}

// ParseTagPayload decodes a drop payload. Malformed payloads return a
// PayloadError.
func ParseTagPayload(data string) (model.Tag, error) {
	var t model.Tag
	if err := json.Unmarshal([]byte(data), &t); err != nil {
		return model.Tag{}, PayloadError{Err: err}
	}
	if strings.TrimSpace(t.Title) == "" {
		return model.Tag{}, PayloadError{Err: errors.New("missing title")}
	}
	return t, nil
}

// DropTag applies a tag drop payload to an item.
func DropTag(items []model.Item, catalogue []model.Tag, key, payload string) (Result, error) {
	t, err := ParseTagPayload(payload)
	if err != nil {
		return unchanged(items, key), err
	}
	return AssignTag(items, catalogue, key, t.Title)
}

// AddTag appends a tag to the catalogue. Titles are unique case-insensitively.
func AddTag(catalogue []model.Tag, t model.Tag) ([]model.Tag, error) {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return catalogue, errors.New("tag title is required")
	}
	if _, _, ok := model.FindTag(catalogue, t.Title); ok {
		return catalogue, ErrDuplicateTag
	}
	out := append([]model.Tag(nil), catalogue...)
	return append(out, t), nil
}

// DeleteTag removes a tag from the catalogue and from every item.
func DeleteTag(items []model.Item, catalogue []model.Tag, title string) ([]model.Item, []model.Tag, error) {
	_, idx, ok := model.FindTag(catalogue, title)
	if !ok {
		return items, catalogue, NotFoundError{Kind: "tag", ID: title}
	}
	cat := make([]model.Tag, 0, len(catalogue)-1)
	cat = append(cat, catalogue[:idx]...)
	cat = append(cat, catalogue[idx+1:]...)

	out := items
	for _, it := range items {
		if !it.HasTag(title) {
			continue
		}
		res, err := RemoveTag(out, it.Key, title)
		if err != nil {
			return items, catalogue, err
		}
		out = res.Items
	}
	return out, cat, nil
}

// TagCount is a catalogue tag with the number of active items carrying it.
type TagCount struct {
	Tag   model.Tag `json:"tag"`
	Count int       `json:"count"`
}

// TagCounts counts active items per catalogue tag, in catalogue order.
func TagCounts(items []model.Item, catalogue []model.Tag) []TagCount {
	out := make([]TagCount, 0, len(catalogue))
	for _, t := range catalogue {
		n := 0
		for _, it := range items {
			if !it.Archived && it.HasTag(t.Title) {
				n++
			}
		}
		out = append(out, TagCount{Tag: t, Count: n})
	}
	return out
}

// SortTags orders an item's tag titles by catalogue position. Titles missing
// from the catalogue sort last, keeping their relative order.
func SortTags(titles []string, catalogue []model.Tag) []string {
	pos := make(map[string]int, len(catalogue))
	for i, t := range catalogue {
		pos[model.TagKey(t.Title)] = i
	}
	out := append([]string(nil), titles...)
	rank := func(s string) int {
		if p, ok := pos[model.TagKey(s)]; ok {
			return p
		}
		return len(catalogue)
	}
	sort.SliceStable(out, func(a, b int) bool { return rank(out[a]) < rank(out[b]) })
	return out
}
