package tui

import (
	"checklist-cli/internal/gesture"

	tea "github.com/charmbracelet/bubbletea"
)

// pointerRouter is the screen-level binding point for drag sessions. While a
// listener is bound it receives every motion and release event, wherever the
// pointer is, before any row-level handling.
type pointerRouter struct {
	bound gesture.Listener
}

// Bind implements gesture.Binder. Only one session may own the pointer.
func (r *pointerRouter) Bind(l gesture.Listener) func() {
	if r.bound != nil || l == nil {
		return nil
	}
	r.bound = l
	return func() {
		if r.bound == l {
			r.bound = nil
		}
	}
}

func (r *pointerRouter) Bound() bool { return r.bound != nil }

// Route delivers msg to the bound listener. It reports whether the event was
// consumed.
func (r *pointerRouter) Route(msg tea.MouseMsg) bool {
	l := r.bound
	if l == nil {
		return false
	}
	p := pointOf(msg)
	switch msg.Action {
	case tea.MouseActionMotion:
		l.PointerMove(p)
	case tea.MouseActionRelease:
		l.PointerUp(p)
	}
	// Presses (other buttons, wheel) are swallowed while dragging.
	return true
}

func pointOf(msg tea.MouseMsg) gesture.Point {
	return gesture.Point{X: msg.X, Y: msg.Y}
}

func buttonOf(msg tea.MouseMsg) gesture.Button {
	switch msg.Button {
	case tea.MouseButtonLeft:
		return gesture.ButtonPrimary
	case tea.MouseButtonRight:
		return gesture.ButtonSecondary
	case tea.MouseButtonMiddle:
		return gesture.ButtonMiddle
	default:
		return gesture.ButtonOther
	}
}
