package mutate

import "checklist-cli/internal/model"

// SetItemArchived moves an item between the active and archived lists.
//
// An item that becomes active again is relocated directly before the
// trailing item, so the trailing item stays the last active one.
func SetItemArchived(items []model.Item, key string, archived bool) (Result, error) {
	i := indexOf(items, key)
	if i < 0 {
		return unchanged(items, key), NotFoundError{Kind: "item", ID: key}
	}
	if IsTrailing(items, key) {
		return unchanged(items, key), PinnedError{Op: "archive", Key: key}
	}
	if items[i].Archived == archived {
		return unchanged(items, key), nil
	}

	out := model.CloneItems(items)
	it := out[i]
	it.Archived = archived
	out = append(out[:i], out[i+1:]...)

	if archived {
		out = insertAt(out, i, it)
		return Result{Items: EnsureTrailing(out), Key: key, Changed: true}, nil
	}

	at := TrailingIndex(out)
	if at < 0 {
		at = len(out)
	}
	out = insertAt(out, at, it)
	return Result{Items: EnsureTrailing(out), Key: key, Changed: true}, nil
}

// ToggleArchived flips the archived flag ("Mark as done" / "Mark as todo").
func ToggleArchived(items []model.Item, key string) (Result, error) {
	i := indexOf(items, key)
	if i < 0 {
		return unchanged(items, key), NotFoundError{Kind: "item", ID: key}
	}
	return SetItemArchived(items, key, !items[i].Archived)
}

func insertAt(items []model.Item, at int, it model.Item) []model.Item {
	if at < 0 {
		at = 0
	}
	if at > len(items) {
		at = len(items)
	}
	items = append(items, model.Item{})
	copy(items[at+1:], items[at:len(items)-1])
	items[at] = it
	return items
}
