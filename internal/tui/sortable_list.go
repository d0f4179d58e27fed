package tui

import (
	"strings"
	"time"

	"checklist-cli/internal/gesture"
	"checklist-cli/internal/reorder"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type listID int

const (
	listHome listID = iota
	listArchive
	listTags
)

// grabWidth is the number of columns at the right edge of a row's first line
// that start a drag.
const grabWidth = 2

// rowState is what a renderer needs to know about a row besides its data.
type rowState struct {
	Focused bool
	// Dragging and Dropped rows snap to their offset instead of sliding.
	Dragging bool
	Dropped  bool
	// Inert rows are siblings of a drag in progress: not selectable.
	Inert  bool
	Pinned bool
}

// rowRenderer draws the content of one row, height lines of width columns.
// The list draws the grab handle itself.
type rowRenderer[T any] interface {
	RenderRow(it T, st rowState, width, height int) []string
}

type sortableOptions[T any, K comparable] struct {
	ID      listID
	Key     func(T) K
	Visible func(T) bool
	// PinnedFor derives the lower-limit predicate from the full collection.
	PinnedFor func(full []T) func(T) bool
	RowHeight int
	Delay     time.Duration
	Binder    gesture.Binder
	Empty     string
}

// sortableList presents the visible projection of a collection and turns
// grab-handle drags into commits. It never writes the collection: commits
// are handed to the owner through TakeCommit, and the owner feeds the new
// collection back through SetItems.
type sortableList[T any, K comparable] struct {
	id        listID
	key       func(T) K
	pinnedFor func([]T) func(T) bool
	rowHeight int
	empty     string

	engine  *reorder.Engine[T, K]
	tracker *gesture.Tracker[K]

	full    []T
	visible []T

	// Current rendered offset per row, in lines. Rows slide toward their
	// target offset one line per animation step.
	offsets map[K]int

	commit    []T
	committed bool

	focus  int
	scroll int

	left, top, width, height int
}

func newSortableList[T any, K comparable](opts sortableOptions[T, K]) *sortableList[T, K] {
	if opts.RowHeight <= 0 {
		opts.RowHeight = 1
	}
	if opts.Empty == "" {
		opts.Empty = "Nothing here"
	}
	l := &sortableList[T, K]{
		id:        opts.ID,
		key:       opts.Key,
		pinnedFor: opts.PinnedFor,
		rowHeight: opts.RowHeight,
		empty:     opts.Empty,
		offsets:   map[K]int{},
	}
	l.engine = reorder.New(reorder.Options[T, K]{
		Key:       opts.Key,
		Visible:   opts.Visible,
		RowHeight: opts.RowHeight,
		OnChange:  l.onCommit,
	})
	l.tracker = gesture.NewTracker[K](opts.Delay, opts.Binder, l.onDrag, l.onDragEnd)
	return l
}

// SetItems replaces the collection the list projects.
func (l *sortableList[T, K]) SetItems(full []T) {
	l.full = full
	if l.pinnedFor != nil {
		l.engine.SetPinned(l.pinnedFor(full))
	}
	l.visible = l.engine.Project(full).Items
	l.clampFocus()
	l.clampScroll()
	l.retarget()
}

// SetVisible swaps the visibility predicate and re-projects.
func (l *sortableList[T, K]) SetVisible(keep func(T) bool) {
	l.engine.SetVisible(keep)
	l.SetItems(l.full)
}

func (l *sortableList[T, K]) Items() []T { return l.visible }
func (l *sortableList[T, K]) Len() int   { return len(l.visible) }

// Layout places the list on screen.
func (l *sortableList[T, K]) Layout(left, top, width, height int) {
	l.left, l.top, l.width, l.height = left, top, width, height
	l.ensureFocusVisible()
}

func (l *sortableList[T, K]) FocusIndex() int { return l.focus }

func (l *sortableList[T, K]) Focused() (T, bool) {
	var zero T
	if l.focus < 0 || l.focus >= len(l.visible) {
		return zero, false
	}
	return l.visible[l.focus], true
}

func (l *sortableList[T, K]) SetFocus(i int) {
	l.focus = i
	l.clampFocus()
	l.ensureFocusVisible()
}

// FocusKey focuses the row with key k. It reports whether the row is visible.
func (l *sortableList[T, K]) FocusKey(k K) bool {
	if i := l.indexOf(k); i >= 0 {
		l.SetFocus(i)
		return true
	}
	return false
}

func (l *sortableList[T, K]) MoveFocus(d int) { l.SetFocus(l.focus + d) }

func (l *sortableList[T, K]) clampFocus() {
	if l.focus >= len(l.visible) {
		l.focus = len(l.visible) - 1
	}
	if l.focus < 0 {
		l.focus = 0
	}
}

func (l *sortableList[T, K]) ensureFocusVisible() {
	if l.height <= 0 {
		return
	}
	top := l.focus * l.rowHeight
	if top < l.scroll {
		l.scroll = top
	}
	if bottom := top + l.rowHeight; bottom > l.scroll+l.height {
		l.scroll = bottom - l.height
	}
	l.clampScroll()
}

// Scroll moves the viewport by d lines.
func (l *sortableList[T, K]) Scroll(d int) {
	l.scroll += d
	l.clampScroll()
}

// clampScroll keeps the viewport over the rows; a shrinking collection
// pulls it back up.
func (l *sortableList[T, K]) clampScroll() {
	if maxScroll := len(l.visible)*l.rowHeight - l.height; l.scroll > maxScroll {
		l.scroll = maxScroll
	}
	if l.scroll < 0 {
		l.scroll = 0
	}
}

func (l *sortableList[T, K]) indexOf(k K) int {
	for i := range l.visible {
		if l.key(l.visible[i]) == k {
			return i
		}
	}
	return -1
}

// rowHit describes where a point landed on the list.
type rowHit struct {
	Index int
	Line  int // line within the row
	Col   int // column relative to the list's left edge
	Grab  bool
}

// HitTest maps a screen point to a row using the rendered offsets.
func (l *sortableList[T, K]) HitTest(p gesture.Point) (rowHit, bool) {
	col := p.X - l.left
	y := p.Y - l.top
	if col < 0 || col >= l.width || y < 0 || (l.height > 0 && y >= l.height) {
		return rowHit{}, false
	}
	cy := y + l.scroll
	// The dragged row is drawn on top, so it wins.
	if k, ok := l.engine.Dragging(); ok {
		if i := l.indexOf(k); i >= 0 {
			if off := l.offsetOf(k, i); cy >= off && cy < off+l.rowHeight {
				return l.hit(i, cy-off, col), true
			}
		}
	}
	for i := range l.visible {
		off := l.offsetOf(l.key(l.visible[i]), i)
		if cy >= off && cy < off+l.rowHeight {
			return l.hit(i, cy-off, col), true
		}
	}
	return rowHit{}, false
}

func (l *sortableList[T, K]) hit(i, line, col int) rowHit {
	h := rowHit{Index: i, Line: line, Col: col}
	h.Grab = line == 0 && col >= l.width-grabWidth && !l.engine.IsPinned(l.visible[i])
	return h
}

// Press starts the activation window when p is on a grab handle. The
// returned command fires the activation timer.
func (l *sortableList[T, K]) Press(p gesture.Point, b gesture.Button) (tea.Cmd, bool) {
	h, ok := l.HitTest(p)
	if !ok || !h.Grab {
		return nil, false
	}
	pending, ok := l.tracker.Press(l.key(l.visible[h.Index]), p, b)
	if !ok {
		return nil, false
	}
	id := l.id
	return tea.Tick(pending.Delay, func(time.Time) tea.Msg {
		return activateMsg{list: id, seq: pending.Seq}
	}), true
}

// Activate handles the activation timer; stale tickets are ignored.
func (l *sortableList[T, K]) Activate(seq int) bool { return l.tracker.Activate(seq) }

// Release handles a pointer-up that no drag session consumed. A release
// inside the activation window is a click on the pressed row.
func (l *sortableList[T, K]) Release(p gesture.Point) (K, bool) {
	k := l.tracker.ID()
	if l.tracker.Release(p) {
		return k, true
	}
	var zero K
	return zero, false
}

// Pending reports whether a press is waiting for activation.
func (l *sortableList[T, K]) Pending() bool { return l.tracker.Phase() == gesture.PhasePending }

// Dragging reports whether a drag is in progress.
func (l *sortableList[T, K]) Dragging() bool { return l.tracker.Dragging() }

// Teardown abandons any gesture and drag markers.
func (l *sortableList[T, K]) Teardown() {
	if k, ok := l.engine.Dragging(); ok {
		// Back to its committed slot without sliding.
		delete(l.offsets, k)
	}
	l.tracker.Teardown()
	l.engine.Cancel()
	l.retarget()
}

func (l *sortableList[T, K]) onDrag(ev gesture.Event[K]) {
	if _, ok := l.engine.Drag(l.full, ev.ID, ev.Translation.Y); ok {
		l.retarget()
	}
}

func (l *sortableList[T, K]) onDragEnd(ev gesture.Event[K]) {
	l.engine.DragEnd(l.full, ev.ID, ev.Translation.Y)
	l.retarget()
}

func (l *sortableList[T, K]) onCommit(next []T) {
	l.commit = next
	l.committed = true
}

// TakeCommit returns the collection produced by the last drag commit, once.
func (l *sortableList[T, K]) TakeCommit() ([]T, bool) {
	if !l.committed {
		return nil, false
	}
	next := l.commit
	l.commit = nil
	l.committed = false
	return next, true
}

// MoveFocused moves the focused row by delta slots through the engine, as if
// it had been dragged delta rows. Keyboard reorders share the clamp rules.
func (l *sortableList[T, K]) MoveFocused(delta int) bool {
	it, ok := l.Focused()
	if !ok || l.tracker.Phase() != gesture.PhaseIdle {
		return false
	}
	k := l.key(it)
	_, changed := l.engine.DragEnd(l.full, k, delta*l.rowHeight)
	l.engine.ClearDropped()
	return changed
}

// ClearDropped ends the just-dropped state after it has been rendered.
func (l *sortableList[T, K]) ClearDropped() { l.engine.ClearDropped() }

// targetOffset: the dragged row sits at its preview slot, every other row at
// its committed slot.
func (l *sortableList[T, K]) targetOffset(k K, i int) int {
	if dk, ok := l.engine.Dragging(); ok && dk == k {
		for j, it := range l.engine.Preview() {
			if l.key(it) == k {
				return j * l.rowHeight
			}
		}
	}
	return i * l.rowHeight
}

func (l *sortableList[T, K]) offsetOf(k K, i int) int {
	if off, ok := l.offsets[k]; ok {
		return off
	}
	return l.targetOffset(k, i)
}

func (l *sortableList[T, K]) snaps(k K) bool {
	if dk, ok := l.engine.Dragging(); ok && dk == k {
		return true
	}
	if dk, ok := l.engine.Dropped(); ok && dk == k {
		return true
	}
	return false
}

// retarget drops offsets of rows that left the projection and snaps rows
// that must not transition.
func (l *sortableList[T, K]) retarget() {
	seen := make(map[K]bool, len(l.visible))
	for i, it := range l.visible {
		k := l.key(it)
		seen[k] = true
		if _, ok := l.offsets[k]; !ok || l.snaps(k) {
			l.offsets[k] = l.targetOffset(k, i)
		}
	}
	for k := range l.offsets {
		if !seen[k] {
			delete(l.offsets, k)
		}
	}
}

// Animating reports whether any row is away from its target offset.
func (l *sortableList[T, K]) Animating() bool {
	for i, it := range l.visible {
		k := l.key(it)
		if l.offsetOf(k, i) != l.targetOffset(k, i) {
			return true
		}
	}
	return false
}

// Step advances the slide animation by one line.
func (l *sortableList[T, K]) Step() bool {
	moving := false
	for i, it := range l.visible {
		k := l.key(it)
		cur, target := l.offsetOf(k, i), l.targetOffset(k, i)
		switch {
		case l.snaps(k):
			cur = target
		case cur < target:
			cur++
		case cur > target:
			cur--
		}
		l.offsets[k] = cur
		if cur != target {
			moving = true
		}
	}
	return moving
}

// View renders the list viewport, or the placeholder when nothing is visible.
func (l *sortableList[T, K]) View(r rowRenderer[T]) string {
	if len(l.visible) == 0 {
		msg := styleMuted().Render(glyphEmpty() + "  " + l.empty)
		return lipgloss.PlaceHorizontal(l.width, lipgloss.Center, msg)
	}

	canvas := make([]string, len(l.visible)*l.rowHeight)
	draggedKey, dragging := l.engine.Dragging()
	droppedKey, dropped := l.engine.Dropped()
	anyDrag := l.tracker.Dragging()

	draw := func(i int) {
		it := l.visible[i]
		k := l.key(it)
		st := rowState{
			Focused:  i == l.focus && !anyDrag,
			Dragging: dragging && k == draggedKey,
			Dropped:  dropped && k == droppedKey,
			Pinned:   l.engine.IsPinned(it),
		}
		st.Inert = anyDrag && !st.Dragging
		lines := l.renderRow(r, it, st)
		off := l.offsetOf(k, i)
		for j, ln := range lines {
			if y := off + j; y >= 0 && y < len(canvas) {
				canvas[y] = ln
			}
		}
	}
	dragIdx := -1
	for i := range l.visible {
		if dragging && l.key(l.visible[i]) == draggedKey {
			dragIdx = i
			continue
		}
		draw(i)
	}
	if dragIdx >= 0 {
		draw(dragIdx)
	}

	end := len(canvas)
	if l.height > 0 && l.scroll+l.height < end {
		end = l.scroll + l.height
	}
	start := l.scroll
	if start > end {
		start = end
	}
	return strings.Join(canvas[start:end], "\n")
}

func (l *sortableList[T, K]) renderRow(r rowRenderer[T], it T, st rowState) []string {
	contentW := l.width - grabWidth
	if contentW < 1 {
		contentW = 1
	}
	lines := r.RenderRow(it, st, contentW, l.rowHeight)
	for len(lines) < l.rowHeight {
		lines = append(lines, "")
	}
	lines = lines[:l.rowHeight]

	grip := " " + glyphGrip()
	gripStyle := styleMuted()
	switch {
	case st.Pinned:
		grip = "  "
	case st.Dragging:
		gripStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	}
	for j := range lines {
		g := strings.Repeat(" ", grabWidth)
		if j == 0 {
			g = gripStyle.Render(grip)
		}
		lines[j] = fitLine(lines[j], contentW) + g
	}
	return lines
}
