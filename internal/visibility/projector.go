// Package visibility derives the filtered, ordered views that list components
// render and reorder, and maps positions in a view back to the full collection.
package visibility

import (
	"strings"

	"checklist-cli/internal/model"
)

// Projection is the visible subset of a collection.
// Index[i] is the position of Items[i] in the collection it was projected from.
type Projection[T any] struct {
	Items []T
	Index []int
}

// Project keeps the items accepted by keep, preserving their relative order.
// A nil keep accepts everything. Project is pure: the same input always yields
// the same projection and the input slice is not modified.
func Project[T any](items []T, keep func(T) bool) Projection[T] {
	p := Projection[T]{
		Items: make([]T, 0, len(items)),
		Index: make([]int, 0, len(items)),
	}
	for i, it := range items {
		if keep != nil && !keep(it) {
			continue
		}
		p.Items = append(p.Items, it)
		p.Index = append(p.Index, i)
	}
	return p
}

func (p Projection[T]) Len() int { return len(p.Items) }

// FullIndex maps a visible position to the full-collection position.
// Out-of-range positions return -1.
func (p Projection[T]) FullIndex(i int) int {
	if i < 0 || i >= len(p.Index) {
		return -1
	}
	return p.Index[i]
}

// VisibleIndex maps a full-collection position to a visible position, or -1
// when that item is outside the projection.
func (p Projection[T]) VisibleIndex(full int) int {
	for i, idx := range p.Index {
		if idx == full {
			return i
		}
	}
	return -1
}

// Merge writes the projected items back into a copy of full at their
// original positions. Merging an unmodified projection reproduces full.
func (p Projection[T]) Merge(full []T) []T {
	out := append([]T(nil), full...)
	for i, idx := range p.Index {
		if idx < 0 || idx >= len(out) {
			continue
		}
		out[idx] = p.Items[i]
	}
	return out
}

// MatchesTags is the tag filter law: an item is visible iff its tags are a
// superset of filter. Comparison is case-insensitive; an empty filter matches
// everything.
func MatchesTags(itemTags []string, filter []string) bool {
	if len(filter) == 0 {
		return true
	}
	have := make(map[string]struct{}, len(itemTags))
	for _, t := range itemTags {
		have[model.TagKey(t)] = struct{}{}
	}
	for _, f := range filter {
		k := model.TagKey(f)
		if k == "" {
			continue
		}
		if _, ok := have[k]; !ok {
			return false
		}
	}
	return true
}

// Active selects non-archived items carrying every tag in filter.
func Active(filter []string) func(model.Item) bool {
	filter = normalize(filter)
	return func(it model.Item) bool {
		return !it.Archived && MatchesTags(it.Tags, filter)
	}
}

// Archived selects archived items carrying every tag in filter.
func Archived(filter []string) func(model.Item) bool {
	filter = normalize(filter)
	return func(it model.Item) bool {
		return it.Archived && MatchesTags(it.Tags, filter)
	}
}

// IsActive and IsArchived are the unfiltered predicates.
func IsActive(it model.Item) bool   { return !it.Archived }
func IsArchived(it model.Item) bool { return it.Archived }

// ActiveItems returns the active items in collection order.
func ActiveItems(items []model.Item) []model.Item {
	return Project(items, IsActive).Items
}

func normalize(filter []string) []string {
	out := make([]string, 0, len(filter))
	seen := map[string]bool{}
	for _, f := range filter {
		k := strings.ToLower(strings.TrimSpace(f))
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}
