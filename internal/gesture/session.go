package gesture

// Listener receives pointer events while a drag session is bound.
type Listener interface {
	PointerMove(p Point)
	PointerUp(p Point)
}

// Binder attaches a listener at the outermost level of the host (the whole
// screen, not a row), so the gesture keeps receiving events after the pointer
// leaves the row it started on. The returned func removes the binding.
type Binder interface {
	Bind(l Listener) (unbind func())
}

// Session is the scoped lifetime of one drag. End releases the binding and
// runs the reset hook; it is safe to call more than once and from every exit
// path (release, cancellation, teardown).
type Session struct {
	unbind func()
	reset  func()
	ended  bool
}

// BeginSession binds l with b. reset runs exactly once when the session ends.
func BeginSession(b Binder, l Listener, reset func()) *Session {
	s := &Session{reset: reset}
	if b != nil && l != nil {
		s.unbind = b.Bind(l)
	}
	return s
}

func (s *Session) Active() bool { return s != nil && !s.ended }

func (s *Session) End() {
	if s == nil || s.ended {
		return
	}
	s.ended = true
	if s.unbind != nil {
		s.unbind()
		s.unbind = nil
	}
	if s.reset != nil {
		s.reset()
	}
}
