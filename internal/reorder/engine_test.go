package reorder

import (
	"reflect"
	"testing"

	"checklist-cli/internal/model"
	"checklist-cli/internal/visibility"
)

const rowH = 28

func keysOf(items []model.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Key)
	}
	return out
}

func items(keys ...string) []model.Item {
	out := make([]model.Item, 0, len(keys))
	for _, k := range keys {
		out = append(out, model.Item{Key: k, Value: k})
	}
	return out
}

func newEngine(pinned string, visible func(model.Item) bool) *Engine[model.Item, string] {
	var pin func(model.Item) bool
	if pinned != "" {
		pin = func(it model.Item) bool { return it.Key == pinned }
	}
	return New(Options[model.Item, string]{
		Key:       model.ItemKey,
		Visible:   visible,
		Pinned:    pin,
		RowHeight: rowH,
	})
}

func TestDelta_RoundsAtHalfRow(t *testing.T) {
	cases := []struct {
		dy   int
		want int
	}{
		{0, 0},
		{13, 0},
		{14, 1},
		{27, 1},
		{42, 2},
		{-13, 0},
		{-14, 0},
		{-15, -1},
		{-42, -1},
		{-43, -2},
	}
	for _, tc := range cases {
		if got := Delta(tc.dy, rowH); got != tc.want {
			t.Errorf("Delta(%d)=%d want %d", tc.dy, got, tc.want)
		}
	}
}

func TestDragEnd_MovesDownOneSlot(t *testing.T) {
	e := newEngine("c", visibility.IsActive)
	full := items("a", "b", "c")

	got, changed := e.DragEnd(full, "a", 1*rowH)
	if !changed {
		t.Fatalf("expected change")
	}
	if want := []string{"b", "a", "c"}; !reflect.DeepEqual(keysOf(got), want) {
		t.Fatalf("order=%v want %v", keysOf(got), want)
	}
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(keysOf(full), want) {
		t.Fatalf("input mutated: %v", keysOf(full))
	}
}

func TestDragEnd_ClampedToOnlySlot(t *testing.T) {
	e := newEngine("b", visibility.IsActive)
	full := items("a", "b")

	got, changed := e.DragEnd(full, "a", 5*rowH)
	if changed {
		t.Fatalf("expected no change")
	}
	if want := []string{"a", "b"}; !reflect.DeepEqual(keysOf(got), want) {
		t.Fatalf("order=%v want %v", keysOf(got), want)
	}
}

func TestDragEnd_PinnedItemIsNoOp(t *testing.T) {
	for _, dy := range []int{-3 * rowH, -rowH, -14, 0, 14, rowH, 9 * rowH} {
		e := newEngine("d", visibility.IsActive)
		full := items("a", "b", "c", "d")

		if _, ok := e.Drag(full, "d", dy); ok {
			t.Fatalf("dy=%d: pinned drag produced a preview", dy)
		}
		got, changed := e.DragEnd(full, "d", dy)
		if changed || !reflect.DeepEqual(keysOf(got), keysOf(full)) {
			t.Fatalf("dy=%d: pinned drag changed order to %v", dy, keysOf(got))
		}
		if _, dropped := e.Dropped(); dropped {
			t.Fatalf("dy=%d: pinned drag marked as dropped", dy)
		}
	}
}

func TestDragEnd_BoundaryClamp(t *testing.T) {
	keys := []string{"a", "b", "c", "d", "e"}
	n := len(keys)
	for i := 0; i < n-1; i++ {
		for delta := n - i; delta < n-i+3; delta++ {
			e := newEngine("e", visibility.IsActive)
			got, _ := e.DragEnd(items(keys...), keys[i], delta*rowH)
			gotKeys := keysOf(got)
			if gotKeys[n-2] != keys[i] {
				t.Fatalf("drag %s by %d: order=%v, want %s at %d", keys[i], delta, gotKeys, keys[i], n-2)
			}
			if gotKeys[n-1] != "e" {
				t.Fatalf("drag %s by %d: pinned displaced: %v", keys[i], delta, gotKeys)
			}
		}
	}
}

func TestDragEnd_ClampsAboveTop(t *testing.T) {
	e := newEngine("d", visibility.IsActive)
	got, changed := e.DragEnd(items("a", "b", "c", "d"), "c", -10*rowH)
	if !changed {
		t.Fatalf("expected change")
	}
	if want := []string{"c", "a", "b", "d"}; !reflect.DeepEqual(keysOf(got), want) {
		t.Fatalf("order=%v want %v", keysOf(got), want)
	}
}

func TestDragEnd_PreservesOrderOutsideVisibleSubset(t *testing.T) {
	full := []model.Item{
		{Key: "a"},
		{Key: "x", Archived: true},
		{Key: "b"},
		{Key: "y", Archived: true},
		{Key: "c"},
		{Key: "z", Archived: true},
		{Key: "p"},
	}
	hidden := func(items []model.Item) []string {
		var out []string
		for _, it := range items {
			if it.Archived {
				out = append(out, it.Key)
			}
		}
		return out
	}

	cases := []struct {
		id      string
		delta   int
		visible []string
	}{
		{"a", 2, []string{"b", "c", "a", "p"}},
		{"c", -2, []string{"c", "a", "b", "p"}},
		{"b", 1, []string{"a", "c", "b", "p"}},
		{"b", -1, []string{"b", "a", "c", "p"}},
	}
	for _, tc := range cases {
		e := newEngine("p", visibility.IsActive)
		got, changed := e.DragEnd(full, tc.id, tc.delta*rowH)
		if !changed {
			t.Fatalf("%s by %d: expected change", tc.id, tc.delta)
		}
		if !reflect.DeepEqual(hidden(got), []string{"x", "y", "z"}) {
			t.Fatalf("%s by %d: hidden order changed: %v", tc.id, tc.delta, keysOf(got))
		}
		vis := keysOf(visibility.Project(got, visibility.IsActive).Items)
		if !reflect.DeepEqual(vis, tc.visible) {
			t.Fatalf("%s by %d: visible=%v want %v", tc.id, tc.delta, vis, tc.visible)
		}
	}
}

func TestDragEnd_TagFilteredWithoutPinnedRow(t *testing.T) {
	full := []model.Item{
		{Key: "a", Tags: []string{"Urgent"}},
		{Key: "b"},
		{Key: "c", Tags: []string{"urgent"}},
		{Key: "d", Tags: []string{"Urgent"}},
		{Key: "p"},
	}
	e := newEngine("p", visibility.Active([]string{"urgent"}))

	got, changed := e.DragEnd(full, "a", 10*rowH)
	if !changed {
		t.Fatalf("expected change")
	}
	if want := []string{"b", "c", "d", "a", "p"}; !reflect.DeepEqual(keysOf(got), want) {
		t.Fatalf("order=%v want %v", keysOf(got), want)
	}
}

func TestDrag_PreviewDoesNotCommit(t *testing.T) {
	var calls int
	e := New(Options[model.Item, string]{
		Key:       model.ItemKey,
		Visible:   visibility.IsActive,
		Pinned:    func(it model.Item) bool { return it.Key == "c" },
		RowHeight: rowH,
		OnChange:  func([]model.Item) { calls++ },
	})
	full := items("a", "b", "c")

	preview, ok := e.Drag(full, "a", rowH)
	if !ok {
		t.Fatalf("expected preview")
	}
	if want := []string{"b", "a", "c"}; !reflect.DeepEqual(keysOf(preview), want) {
		t.Fatalf("preview=%v want %v", keysOf(preview), want)
	}
	if calls != 0 {
		t.Fatalf("OnChange called during drag")
	}
	if k, ok := e.Dragging(); !ok || k != "a" {
		t.Fatalf("dragging=%q,%v", k, ok)
	}

	if _, changed := e.DragEnd(full, "a", rowH); !changed {
		t.Fatalf("expected commit")
	}
	if calls != 1 {
		t.Fatalf("OnChange calls=%d want 1", calls)
	}
	if _, ok := e.Dragging(); ok {
		t.Fatalf("dragging marker not cleared")
	}
	if k, ok := e.Dropped(); !ok || k != "a" {
		t.Fatalf("dropped=%q,%v", k, ok)
	}
	if e.Preview() != nil {
		t.Fatalf("preview not cleared")
	}
	e.ClearDropped()
	if _, ok := e.Dropped(); ok {
		t.Fatalf("dropped marker not cleared")
	}
}

func TestDragEnd_NoChangeSkipsOnChange(t *testing.T) {
	var calls int
	e := New(Options[model.Item, string]{
		Key:       model.ItemKey,
		RowHeight: rowH,
		OnChange:  func([]model.Item) { calls++ },
	})
	if _, changed := e.DragEnd(items("a", "b"), "a", 3); changed {
		t.Fatalf("expected no change")
	}
	if calls != 0 {
		t.Fatalf("OnChange calls=%d want 0", calls)
	}
}

func TestDragEnd_UnknownKeyIsNoOp(t *testing.T) {
	e := newEngine("", nil)
	full := items("a", "b")
	got, changed := e.DragEnd(full, "missing", rowH)
	if changed || !reflect.DeepEqual(keysOf(got), []string{"a", "b"}) {
		t.Fatalf("unexpected change: %v", keysOf(got))
	}
}

func TestDragEnd_NoPinnedUpperBoundIsLastSlot(t *testing.T) {
	e := newEngine("", nil)
	got, changed := e.DragEnd(items("a", "b", "c"), "a", 99*rowH)
	if !changed {
		t.Fatalf("expected change")
	}
	if want := []string{"b", "c", "a"}; !reflect.DeepEqual(keysOf(got), want) {
		t.Fatalf("order=%v want %v", keysOf(got), want)
	}
}

func TestDrag_EmptyAndPinnedOnly(t *testing.T) {
	e := newEngine("p", visibility.IsActive)
	if _, ok := e.Drag(nil, "a", rowH); ok {
		t.Fatalf("drag on empty sequence")
	}
	if _, ok := e.Drag(items("p"), "p", rowH); ok {
		t.Fatalf("drag on pinned-only sequence")
	}
}

func TestMove(t *testing.T) {
	got := Move(items("a", "b", "c", "d"), 3, 1)
	if want := []string{"a", "d", "b", "c"}; !reflect.DeepEqual(keysOf(got), want) {
		t.Fatalf("order=%v want %v", keysOf(got), want)
	}
}
