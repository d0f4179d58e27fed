// Package reorder turns a vertical drag displacement into a new position for
// one item of an ordered collection.
//
// The engine works on the visible projection of the collection (see package
// visibility) and writes commits back to the full collection, so items
// outside the projection keep their relative order.
package reorder

import (
	"math"

	"checklist-cli/internal/visibility"
)

// Options configures an Engine.
//
// Pinned is optional. When set, the first visible item it accepts is the
// lower limit: it cannot be dragged and nothing can be dropped at or after it.
type Options[T any, K comparable] struct {
	Key       func(T) K
	Visible   func(T) bool
	Pinned    func(T) bool
	RowHeight int

	// OnChange receives the entire reordered collection once per commit that
	// changes the order.
	OnChange func([]T)
}

// Engine holds the drag markers of one list. Only one item may be dragging.
type Engine[T any, K comparable] struct {
	opts Options[T, K]

	dragging   bool
	draggedKey K
	dropped    bool
	droppedKey K
	preview    []T
}

func New[T any, K comparable](opts Options[T, K]) *Engine[T, K] {
	if opts.RowHeight <= 0 {
		opts.RowHeight = 1
	}
	return &Engine[T, K]{opts: opts}
}

// SetVisible replaces the visibility predicate (e.g. when the tag filter changes).
func (e *Engine[T, K]) SetVisible(keep func(T) bool) { e.opts.Visible = keep }

// SetPinned replaces the lower-limit predicate (the trailing item changes
// whenever the collection does).
func (e *Engine[T, K]) SetPinned(pinned func(T) bool) { e.opts.Pinned = pinned }

func (e *Engine[T, K]) RowHeight() int { return e.opts.RowHeight }

// Delta is the number of row slots covered by dy. It rounds (halves go toward
// +inf) so the preview snaps once the pointer crosses half a row.
func Delta(dy, rowHeight int) int {
	if rowHeight <= 0 {
		rowHeight = 1
	}
	return int(math.Floor(float64(dy)/float64(rowHeight) + 0.5))
}

// Project returns the visible sequence the engine operates on.
func (e *Engine[T, K]) Project(full []T) visibility.Projection[T] {
	return visibility.Project(full, e.opts.Visible)
}

// Target computes the clamped destination slot for id within visible.
// ok is false when id is not visible, id is the pinned item, or no valid slot
// exists.
func (e *Engine[T, K]) Target(visible []T, id K, dy int) (from, to int, ok bool) {
	from = e.indexOf(visible, id)
	if from < 0 {
		return -1, -1, false
	}
	if e.isPinned(visible[from]) {
		return from, -1, false
	}

	upper := len(visible) - 1
	if p := e.pinnedIndex(visible); p >= 0 {
		upper = p - 1
	}
	to = from + Delta(dy, e.opts.RowHeight)
	if to > upper {
		to = upper
	}
	if to < 0 {
		to = 0
	}
	if to > upper || to >= len(visible) {
		return from, -1, false
	}
	return from, to, true
}

// Drag computes the live preview for a drag event. The preview is only for
// rendering; the collection is never modified. ok is false when the event is
// ignored (pinned item, unknown key).
func (e *Engine[T, K]) Drag(full []T, id K, dy int) (preview []T, ok bool) {
	visible := e.Project(full).Items
	from, to, ok := e.Target(visible, id, dy)
	if !ok {
		return nil, false
	}
	preview = move(visible, from, to)

	e.preview = preview
	e.dragging = true
	e.draggedKey = id
	e.dropped = false
	return preview, true
}

// DragEnd commits the drag: the dragged item is removed from the full
// collection and reinserted at the full-collection position of the visible
// item occupying the target slot. It returns the new collection and whether
// the order changed. The drag markers are updated in every case.
func (e *Engine[T, K]) DragEnd(full []T, id K, dy int) ([]T, bool) {
	visible := e.Project(full).Items
	from, to, ok := e.Target(visible, id, dy)
	if from >= 0 && e.isPinned(visible[from]) {
		return full, false
	}
	defer e.settle(id)
	if !ok || from == to {
		return full, false
	}

	displaced := e.opts.Key(visible[to])
	dropAt := -1
	dragged := -1
	for i := range full {
		k := e.opts.Key(full[i])
		if k == displaced {
			dropAt = i
		}
		if k == id {
			dragged = i
		}
	}
	if dropAt < 0 || dragged < 0 {
		return full, false
	}

	next := make([]T, 0, len(full))
	next = append(next, full[:dragged]...)
	next = append(next, full[dragged+1:]...)
	if dropAt > len(next) {
		dropAt = len(next)
	}
	item := full[dragged]
	next = append(next, item)
	copy(next[dropAt+1:], next[dropAt:len(next)-1])
	next[dropAt] = item

	if e.opts.OnChange != nil {
		e.opts.OnChange(next)
	}
	return next, true
}

// Cancel drops the drag markers without committing.
func (e *Engine[T, K]) Cancel() {
	var zero K
	e.dragging = false
	e.draggedKey = zero
	e.preview = nil
}

func (e *Engine[T, K]) settle(id K) {
	e.Cancel()
	e.dropped = true
	e.droppedKey = id
}

// ClearDropped ends the just-dropped state (called after one render cycle).
func (e *Engine[T, K]) ClearDropped() {
	var zero K
	e.dropped = false
	e.droppedKey = zero
}

// Dragging returns the key currently dragging.
func (e *Engine[T, K]) Dragging() (K, bool) { return e.draggedKey, e.dragging }

// Dropped returns the key that was just dropped.
func (e *Engine[T, K]) Dropped() (K, bool) { return e.droppedKey, e.dropped }

// Preview returns the last live preview order (nil when not dragging).
func (e *Engine[T, K]) Preview() []T { return e.preview }

// IsPinned reports whether it is the lower-limit item.
func (e *Engine[T, K]) IsPinned(it T) bool { return e.isPinned(it) }

func (e *Engine[T, K]) isPinned(it T) bool {
	return e.opts.Pinned != nil && e.opts.Pinned(it)
}

func (e *Engine[T, K]) pinnedIndex(visible []T) int {
	if e.opts.Pinned == nil {
		return -1
	}
	for i := range visible {
		if e.opts.Pinned(visible[i]) {
			return i
		}
	}
	return -1
}

func (e *Engine[T, K]) indexOf(items []T, id K) int {
	for i := range items {
		if e.opts.Key(items[i]) == id {
			return i
		}
	}
	return -1
}

// move returns a copy of items with the element at from reinserted at to
// (to is expressed in the coordinates of the list after removal).
func move[T any](items []T, from, to int) []T {
	rest := make([]T, 0, len(items))
	rest = append(rest, items[:from]...)
	rest = append(rest, items[from+1:]...)
	if to < 0 {
		to = 0
	}
	if to > len(rest) {
		to = len(rest)
	}
	out := make([]T, 0, len(items))
	out = append(out, rest[:to]...)
	out = append(out, items[from])
	out = append(out, rest[to:]...)
	return out
}

// Move is the index-level primitive used by keyboard and CLI reorders.
func Move[T any](items []T, from, to int) []T {
	if from < 0 || from >= len(items) {
		return append([]T(nil), items...)
	}
	return move(items, from, to)
}
