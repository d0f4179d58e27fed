package mutate

import (
	"strings"

	"checklist-cli/internal/model"

	"github.com/google/uuid"
)

// NewKey generates item keys. Tests may replace it.
var NewKey = func() string { return uuid.NewString() }

// Result is the outcome of an item mutation. Items is always a fresh slice;
// the input collection is never modified. On error Items is the unchanged
// input so callers can treat every failure as a no-op.
type Result struct {
	Items   []model.Item
	Key     string
	Changed bool
}

func unchanged(items []model.Item, key string) Result {
	return Result{Items: items, Key: key}
}

func indexOf(items []model.Item, key string) int {
	key = strings.TrimSpace(key)
	for i := range items {
		if items[i].Key == key {
			return i
		}
	}
	return -1
}

// TrailingIndex returns the position of the trailing (last active) item.
func TrailingIndex(items []model.Item) int {
	for i := len(items) - 1; i >= 0; i-- {
		if !items[i].Archived {
			return i
		}
	}
	return -1
}

// TrailingKey returns the key of the pinned "add new task" row.
func TrailingKey(items []model.Item) (string, bool) {
	i := TrailingIndex(items)
	if i < 0 {
		return "", false
	}
	return items[i].Key, true
}

// IsTrailing reports whether key is the pinned trailing item.
func IsTrailing(items []model.Item, key string) bool {
	k, ok := TrailingKey(items)
	return ok && k == key
}

// EnsureTrailing appends an empty trailing item when there is no active item
// or the last active item already has text.
func EnsureTrailing(items []model.Item) []model.Item {
	out := model.CloneItems(items)
	i := TrailingIndex(out)
	if i >= 0 && strings.TrimSpace(out[i].Value) == "" && len(out[i].Tags) == 0 {
		return out
	}
	return append(out, model.Item{Key: NewKey()})
}

// EditItem replaces an item's text. Giving the trailing item text turns it
// into a regular item and creates a new trailing item.
func EditItem(items []model.Item, key, value string) (Result, error) {
	i := indexOf(items, key)
	if i < 0 {
		return unchanged(items, key), NotFoundError{Kind: "item", ID: key}
	}
	if items[i].Value == value {
		return unchanged(items, key), nil
	}
	out := model.CloneItems(items)
	out[i].Value = value
	return Result{Items: EnsureTrailing(out), Key: key, Changed: true}, nil
}

// AddItem commits text into the trailing item.
func AddItem(items []model.Item, value string) (Result, error) {
	base := EnsureTrailing(items)
	key, _ := TrailingKey(base)
	res, err := EditItem(base, key, value)
	if err != nil {
		return unchanged(items, key), err
	}
	res.Changed = true
	return res, nil
}

// DeleteItem removes an item. The trailing item cannot be deleted.
func DeleteItem(items []model.Item, key string) (Result, error) {
	i := indexOf(items, key)
	if i < 0 {
		return unchanged(items, key), NotFoundError{Kind: "item", ID: key}
	}
	if IsTrailing(items, key) {
		return unchanged(items, key), PinnedError{Op: "delete", Key: key}
	}
	out := make([]model.Item, 0, len(items)-1)
	out = append(out, model.CloneItems(items[:i])...)
	out = append(out, model.CloneItems(items[i+1:])...)
	return Result{Items: EnsureTrailing(out), Key: key, Changed: true}, nil
}

// TrailingPinned returns the pinned-row predicate for items: it accepts only
// the current trailing item.
func TrailingPinned(items []model.Item) func(model.Item) bool {
	key, ok := TrailingKey(items)
	if !ok {
		return nil
	}
	return func(it model.Item) bool { return it.Key == key }
}

// ResolveKey finds an item by exact key or by a unique key prefix.
func ResolveKey(items []model.Item, ref string) (string, []string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", nil, NotFoundError{Kind: "item", ID: ref}
	}
	if i := indexOf(items, ref); i >= 0 {
		return items[i].Key, nil, nil
	}
	var matches []string
	for _, it := range items {
		if strings.HasPrefix(it.Key, ref) {
			matches = append(matches, it.Key)
		}
	}
	switch len(matches) {
	case 0:
		return "", nil, NotFoundError{Kind: "item", ID: ref}
	case 1:
		return matches[0], nil, nil
	default:
		return "", matches, nil
	}
}
