// Package gesture converts raw pointer press/move/release events into a drag
// lifecycle with a short activation delay, so that ordinary clicks are never
// mistaken for drags.
package gesture

import "time"

// DefaultActivationDelay is the hold time before a press becomes a drag.
const DefaultActivationDelay = 50 * time.Millisecond

type Phase int

const (
	PhaseIdle Phase = iota
	// PhasePending: pressed, waiting for the activation timer.
	PhasePending
	// PhaseDragging: activated; every move produces a drag event.
	PhaseDragging
	// PhaseSettled: released; the final event is being delivered.
	PhaseSettled
)

func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseDragging:
		return "dragging"
	case PhaseSettled:
		return "settled"
	default:
		return "idle"
	}
}

type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonMiddle
	ButtonOther
)

type Point struct {
	X int
	Y int
}

func (p Point) Sub(o Point) Point { return Point{X: p.X - o.X, Y: p.Y - o.Y} }

// Event is delivered on every move while dragging (Final=false) and once on
// release (Final=true). Translation is relative to the press position.
type Event[K comparable] struct {
	ID          K
	Translation Point
	Final       bool
}

// Pending is the activation ticket returned by Press. The host schedules a
// timer for Delay and calls Activate(Seq) when it fires.
type Pending struct {
	Seq   int
	Delay time.Duration
}

// Tracker is the per-list gesture state machine. It is not safe for
// concurrent use; all calls are expected from the UI event loop.
type Tracker[K comparable] struct {
	delay  time.Duration
	binder Binder

	onDrag    func(Event[K])
	onDragEnd func(Event[K])

	phase       Phase
	id          K
	origin      Point
	translation Point
	seq         int
	session     *Session
}

// NewTracker builds a tracker. delay <= 0 uses DefaultActivationDelay.
func NewTracker[K comparable](delay time.Duration, binder Binder, onDrag, onDragEnd func(Event[K])) *Tracker[K] {
	if delay <= 0 {
		delay = DefaultActivationDelay
	}
	return &Tracker[K]{
		delay:     delay,
		binder:    binder,
		onDrag:    onDrag,
		onDragEnd: onDragEnd,
	}
}

func (t *Tracker[K]) Phase() Phase       { return t.phase }
func (t *Tracker[K]) ID() K              { return t.id }
func (t *Tracker[K]) Translation() Point { return t.translation }
func (t *Tracker[K]) Delay() time.Duration {
	return t.delay
}

// Dragging reports whether a drag is active.
func (t *Tracker[K]) Dragging() bool { return t.phase == PhaseDragging }

// Press starts the pending window for id. Only the primary button starts a
// gesture, and a press while another gesture is in flight is ignored.
func (t *Tracker[K]) Press(id K, p Point, b Button) (Pending, bool) {
	if b != ButtonPrimary {
		return Pending{}, false
	}
	if t.phase != PhaseIdle {
		return Pending{}, false
	}
	t.seq++
	t.phase = PhasePending
	t.id = id
	t.origin = p
	t.translation = Point{}
	return Pending{Seq: t.seq, Delay: t.delay}, true
}

// Activate is called when the activation timer fires. Stale tickets (the
// press was already released or cancelled) are ignored.
func (t *Tracker[K]) Activate(seq int) bool {
	if t.phase != PhasePending || seq != t.seq {
		return false
	}
	t.phase = PhaseDragging
	t.session = BeginSession(t.binder, t, t.reset)
	if t.binder != nil && t.session.unbind == nil {
		// Another gesture owns the pointer.
		t.session.End()
		return false
	}
	return true
}

// Release handles a pointer-up that was not routed to a bound session. During
// the pending window it cancels the ticket and reports a click passthrough.
func (t *Tracker[K]) Release(p Point) (click bool) {
	switch t.phase {
	case PhasePending:
		t.reset()
		return true
	case PhaseDragging:
		t.PointerUp(p)
	}
	return false
}

// PointerMove implements Listener.
func (t *Tracker[K]) PointerMove(p Point) {
	if t.phase != PhaseDragging {
		return
	}
	t.translation = p.Sub(t.origin)
	if t.onDrag != nil {
		t.onDrag(Event[K]{ID: t.id, Translation: t.translation})
	}
}

// PointerUp implements Listener.
func (t *Tracker[K]) PointerUp(p Point) {
	if t.phase != PhaseDragging {
		return
	}
	ev := Event[K]{ID: t.id, Translation: p.Sub(t.origin), Final: true}
	t.phase = PhaseSettled
	defer t.endSession()
	if t.onDragEnd != nil {
		t.onDragEnd(ev)
	}
}

// Teardown abandons any pending or active gesture without emitting events.
func (t *Tracker[K]) Teardown() {
	if t.session.Active() {
		t.endSession()
		return
	}
	t.reset()
}

func (t *Tracker[K]) endSession() {
	if t.session.Active() {
		t.session.End()
		return
	}
	t.reset()
}

func (t *Tracker[K]) reset() {
	var zero K
	t.phase = PhaseIdle
	t.id = zero
	t.origin = Point{}
	t.translation = Point{}
	t.session = nil
}
