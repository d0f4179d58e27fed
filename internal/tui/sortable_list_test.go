package tui

import (
	"strings"
	"testing"
	"time"

	"checklist-cli/internal/gesture"

	tea "github.com/charmbracelet/bubbletea"
)

// flagRenderer renders "<key>:<flags>" so tests can read row state off the view.
type flagRenderer struct{}

func (flagRenderer) RenderRow(it string, st rowState, width, height int) []string {
	flags := ""
	if st.Focused {
		flags += "f"
	}
	if st.Dragging {
		flags += "D"
	}
	if st.Dropped {
		flags += "d"
	}
	if st.Inert {
		flags += "i"
	}
	if st.Pinned {
		flags += "p"
	}
	lines := make([]string, height)
	lines[0] = it + ":" + flags
	return lines
}

func useASCIIGlyphs(t *testing.T) {
	t.Helper()
	prev := glyphs()
	setGlyphs(glyphSetASCII)
	t.Cleanup(func() { setGlyphs(prev) })
}

func newStringList(router *pointerRouter) *sortableList[string, string] {
	l := newSortableList(sortableOptions[string, string]{
		ID:  listTags,
		Key: func(s string) string { return s },
		PinnedFor: func([]string) func(string) bool {
			return func(s string) bool { return s == "p" }
		},
		RowHeight: 1,
		Delay:     50 * time.Millisecond,
		Binder:    router,
	})
	l.SetItems([]string{"a", "b", "c", "p"})
	l.Layout(0, 0, 12, 10)
	return l
}

func mouse(x, y int, action tea.MouseAction) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft}
}

func viewLines(s string) []string { return strings.Split(s, "\n") }

func TestSortableList_DragPreviewAndCommit(t *testing.T) {
	useASCIIGlyphs(t)
	router := &pointerRouter{}
	l := newStringList(router)

	cmd, ok := l.Press(gesture.Point{X: 11, Y: 0}, gesture.ButtonPrimary)
	if !ok || cmd == nil {
		t.Fatalf("press on grip did not start the activation window")
	}
	if !l.Activate(1) {
		t.Fatalf("activation failed")
	}
	if !router.Bound() {
		t.Fatalf("drag session not bound to the router")
	}

	router.Route(mouse(11, 2, tea.MouseActionMotion))
	lines := viewLines(l.View(flagRenderer{}))
	if len(lines) != 4 {
		t.Fatalf("lines=%d want 4:\n%s", len(lines), strings.Join(lines, "\n"))
	}
	// The dragged row sits at its preview slot; siblings stay at their
	// committed slots and are inert.
	if strings.TrimSpace(lines[0]) != "" {
		t.Fatalf("slot 0 should be vacated, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "b:i") {
		t.Fatalf("slot 1=%q want inert b", lines[1])
	}
	if !strings.HasPrefix(lines[2], "a:D") {
		t.Fatalf("slot 2=%q want dragged a", lines[2])
	}
	if !strings.HasPrefix(lines[3], "p:ip") {
		t.Fatalf("slot 3=%q want inert pinned p", lines[3])
	}

	router.Route(mouse(11, 2, tea.MouseActionRelease))
	if router.Bound() {
		t.Fatalf("router still bound after release")
	}
	next, ok := l.TakeCommit()
	if !ok {
		t.Fatalf("expected a commit")
	}
	if got := strings.Join(next, ""); got != "bcap" {
		t.Fatalf("commit=%s want bcap", got)
	}
	if _, again := l.TakeCommit(); again {
		t.Fatalf("commit handed out twice")
	}

	l.SetItems(next)
	if got := l.offsets["a"]; got != 2 {
		t.Fatalf("dropped row offset=%d want 2 (snapped)", got)
	}
	if !l.Animating() {
		t.Fatalf("siblings should slide toward their new slots")
	}
	if l.Step() {
		t.Fatalf("one-slot slide should finish in one step")
	}
	l.ClearDropped()
	if l.offsets["b"] != 0 || l.offsets["c"] != 1 {
		t.Fatalf("offsets b=%d c=%d", l.offsets["b"], l.offsets["c"])
	}
}

func TestSortableList_PinnedRowHasNoGrip(t *testing.T) {
	useASCIIGlyphs(t)
	l := newStringList(&pointerRouter{})

	h, ok := l.HitTest(gesture.Point{X: 11, Y: 3})
	if !ok || h.Index != 3 {
		t.Fatalf("hit=%+v ok=%v", h, ok)
	}
	if h.Grab {
		t.Fatalf("pinned row exposes a grip")
	}
	if _, ok := l.Press(gesture.Point{X: 11, Y: 3}, gesture.ButtonPrimary); ok {
		t.Fatalf("press on pinned row started a gesture")
	}
	if lines := viewLines(l.View(flagRenderer{})); strings.Contains(lines[3], "=") {
		t.Fatalf("pinned row rendered a grip: %q", lines[3])
	}
}

func TestSortableList_ClickOutsideGripIsNotAGesture(t *testing.T) {
	l := newStringList(&pointerRouter{})
	if _, ok := l.Press(gesture.Point{X: 3, Y: 1}, gesture.ButtonPrimary); ok {
		t.Fatalf("press on row text started a gesture")
	}
	if _, ok := l.Press(gesture.Point{X: 11, Y: 1}, gesture.ButtonSecondary); ok {
		t.Fatalf("secondary button started a gesture")
	}
}

func TestSortableList_QuickReleaseIsClick(t *testing.T) {
	router := &pointerRouter{}
	l := newStringList(router)

	if _, ok := l.Press(gesture.Point{X: 11, Y: 1}, gesture.ButtonPrimary); !ok {
		t.Fatalf("press rejected")
	}
	k, click := l.Release(gesture.Point{X: 11, Y: 1})
	if !click || k != "b" {
		t.Fatalf("release=%q,%v want click on b", k, click)
	}
	if l.Activate(1) {
		t.Fatalf("stale activation started a drag")
	}
	if router.Bound() {
		t.Fatalf("router bound after a click")
	}
}

func TestSortableList_TeardownMidDrag(t *testing.T) {
	router := &pointerRouter{}
	l := newStringList(router)

	l.Press(gesture.Point{X: 11, Y: 0}, gesture.ButtonPrimary)
	l.Activate(1)
	router.Route(mouse(11, 2, tea.MouseActionMotion))
	l.Teardown()

	if router.Bound() || l.Dragging() {
		t.Fatalf("teardown left the drag bound")
	}
	if _, ok := l.engine.Dragging(); ok {
		t.Fatalf("teardown left the dragging marker")
	}
	if _, ok := l.TakeCommit(); ok {
		t.Fatalf("teardown committed")
	}
	if got := l.offsets["a"]; got != 0 {
		t.Fatalf("offset a=%d want 0", got)
	}
}

func TestSortableList_EmptyPlaceholder(t *testing.T) {
	l := newStringList(&pointerRouter{})
	l.SetItems(nil)
	if got := l.View(flagRenderer{}); !strings.Contains(got, "Nothing here") {
		t.Fatalf("placeholder missing: %q", got)
	}
	if _, ok := l.Press(gesture.Point{X: 11, Y: 0}, gesture.ButtonPrimary); ok {
		t.Fatalf("press on empty list started a gesture")
	}
}

func TestSortableList_MoveFocusedUsesClamp(t *testing.T) {
	l := newStringList(&pointerRouter{})
	l.SetFocus(1)
	if !l.MoveFocused(5) {
		t.Fatalf("expected move")
	}
	next, _ := l.TakeCommit()
	if got := strings.Join(next, ""); got != "acbp" {
		t.Fatalf("order=%s want acbp", got)
	}
	if _, ok := l.engine.Dropped(); ok {
		t.Fatalf("keyboard move left a dropped marker")
	}
}

func TestSortableList_ScrollKeepsFocusVisible(t *testing.T) {
	l := newStringList(&pointerRouter{})
	l.Layout(0, 0, 12, 2)
	l.SetFocus(3)
	if l.scroll != 2 {
		t.Fatalf("scroll=%d want 2", l.scroll)
	}
	h, ok := l.HitTest(gesture.Point{X: 1, Y: 0})
	if !ok || h.Index != 2 {
		t.Fatalf("hit=%+v want row 2", h)
	}
}

func TestSortableList_ShrinkingCollectionPullsScrollBack(t *testing.T) {
	l := newStringList(&pointerRouter{})
	l.SetItems([]string{"a", "b", "c", "d", "e", "f", "g", "h", "p"})
	l.Layout(0, 0, 12, 3)
	l.SetFocus(8)
	if l.scroll != 6 {
		t.Fatalf("scroll=%d want 6", l.scroll)
	}

	l.SetItems([]string{"a", "p"})
	if l.scroll != 0 {
		t.Fatalf("scroll=%d want 0 after shrink", l.scroll)
	}
	lines := viewLines(l.View(flagRenderer{}))
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "a:") || !strings.HasPrefix(lines[1], "p:") {
		t.Fatalf("view=%q", lines)
	}
	if h, ok := l.HitTest(gesture.Point{X: 1, Y: 0}); !ok || h.Index != 0 {
		t.Fatalf("hit=%+v ok=%v", h, ok)
	}
}
