package plot

import (
	"time"

	"gioui.org/f32"
)

// PointerKind enumerates the pointer events a chart consumes.
type PointerKind uint8

const (
	// PointerDown is the first finger touching.
	PointerDown PointerKind = iota
	PointerMove
	// PointerUp is the last finger lifting.
	PointerUp
	PointerCancel
	// PointerAdded is an additional finger touching.
	PointerAdded
	// PointerRemoved is a finger other than the last one lifting.
	PointerRemoved
)

func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerCancel:
		return "cancel"
	case PointerAdded:
		return "added"
	case PointerRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// PointerEvent is one event of the host pointer stream, in chart pixels.
type PointerEvent struct {
	Kind     PointerKind
	ID       int
	Position f32.Point
	Time     time.Time
}

// VelocityTracker estimates pointer velocity from motion samples.
type VelocityTracker interface {
	Add(t time.Time, pos f32.Point)
	Reset()
	// VelocityX returns pixels per second, clamped to the host maximum.
	VelocityX() float32
}

// Flinger integrates post-release momentum.
type Flinger interface {
	Fling(now time.Time, startX, velocityX int)
	Abort()
	// Compute advances to now and reports whether the fling is still live.
	Compute(now time.Time) bool
	X() int
	Velocity() float32
}

// Edge names a horizontal content boundary.
type Edge uint8

const (
	EdgeLeft Edge = iota
	EdgeRight
)

func (e Edge) String() string {
	if e == EdgeLeft {
		return "left"
	}
	return "right"
}

// EdgeFeedback is the host's overscroll effect.
type EdgeFeedback interface {
	// Pull reports a drag past e, as a fraction of the plot height.
	Pull(e Edge, distance float32)
	// Absorb reports a fling hitting e at velocity pixels per second.
	Absorb(e Edge, velocity float32)
	Release()
	SetOverlayTint(c Color)
}

// ScrollState is the phase of the scroll controller.
type ScrollState uint8

const (
	Idle ScrollState = iota
	Dragging
	Flinging
)

func (s ScrollState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Flinging:
		return "flinging"
	default:
		return "unknown"
	}
}

type scroller struct {
	sched    Scheduler
	velocity VelocityTracker
	flinger  Flinger
	edges    EdgeFeedback

	// feedback enables edge pulls and absorbs.
	feedback   bool
	plotHeight float32

	offset      float32
	maxOffset   float32
	orientation float32
	state       ScrollState

	pointers map[int]f32.Point
	primary  int
	first    f32.Point
	lastX    float32

	absorbedLeft, absorbedRight bool
	gen                         uint64
}

func newScroller(sched Scheduler, v VelocityTracker, f Flinger, e EdgeFeedback) *scroller {
	return &scroller{
		sched:    sched,
		velocity: v,
		flinger:  f,
		edges:    e,
		pointers: make(map[int]f32.Point),
	}
}

func (s *scroller) atLeft() bool  { return s.offset == 0 && s.orientation > 0 }
func (s *scroller) atRight() bool { return s.offset == -s.maxOffset && s.orientation < 0 }

// scrollBy moves the offset by dx, clamped to [-maxOffset, 0].
func (s *scroller) scrollBy(dx float32) {
	s.offset = min(max(s.offset+dx, -s.maxOffset), 0)
}

// Handle applies one pointer event. It returns the release position when the
// gesture was a tap.
func (s *scroller) Handle(ev PointerEvent) (f32.Point, bool) {
	switch ev.Kind {
	case PointerDown:
		s.stopFling()
		clear(s.pointers)
		s.pointers[ev.ID] = ev.Position
		s.primary = ev.ID
		s.first = ev.Position
		s.lastX = ev.Position.X
		s.state = Dragging
		s.velocity.Reset()
		s.velocity.Add(ev.Time, ev.Position)
	case PointerAdded:
		s.pointers[ev.ID] = ev.Position
		if ev.ID < s.primary {
			s.primary = ev.ID
		}
		s.lastX = s.pointers[s.primary].X
	case PointerMove:
		if s.state != Dragging {
			break
		}
		s.pointers[ev.ID] = ev.Position
		if ev.ID != s.primary {
			break
		}
		s.orientation = ev.Position.X - s.lastX
		s.scrollBy(s.orientation)
		s.lastX = ev.Position.X
		s.velocity.Add(ev.Time, ev.Position)
		if s.feedback && s.maxOffset > 0 && s.plotHeight > 0 {
			pull := abs(s.orientation) / s.plotHeight
			if s.atLeft() {
				s.edges.Pull(EdgeLeft, pull)
			} else if s.atRight() {
				s.edges.Pull(EdgeRight, pull)
			}
		}
	case PointerRemoved:
		delete(s.pointers, ev.ID)
		if ev.ID == s.primary {
			s.primary = lowestID(s.pointers)
		}
		if p, ok := s.pointers[s.primary]; ok {
			s.lastX = p.X
		}
	case PointerUp, PointerCancel:
		if s.state != Dragging {
			break
		}
		d := ev.Position.Sub(s.first)
		tap := ev.Kind == PointerUp && abs(d.X) < tapSlop && abs(d.Y) < tapSlop
		s.velocity.Add(ev.Time, ev.Position)
		v := s.velocity.VelocityX()
		s.velocity.Reset()
		clear(s.pointers)
		s.lastX = ev.Position.X
		s.state = Idle
		if int(v) != 0 && !s.atLeft() && !s.atRight() {
			s.startFling(ev.Position.X, int(v)/2)
		} else {
			s.edges.Release()
		}
		return ev.Position, tap
	}
	return f32.Point{}, false
}

func lowestID(pointers map[int]f32.Point) int {
	first := true
	low := 0
	for id := range pointers {
		if first || id < low {
			low, first = id, false
		}
	}
	return low
}

func (s *scroller) startFling(x float32, velocity int) {
	s.gen++
	s.state = Flinging
	s.flinger.Fling(s.sched.Now(), int(x), velocity)
	gen := s.gen
	s.sched.PostDelayed(func() { s.tick(gen) }, FrameInterval)
}

func (s *scroller) tick(gen uint64) {
	if gen != s.gen {
		return
	}
	if !s.flinger.Compute(s.sched.Now()) {
		s.state = Idle
		s.absorbedLeft, s.absorbedRight = false, false
		return
	}
	x := float32(s.flinger.X())
	if dx := x - s.lastX; dx != 0 {
		s.orientation = dx
		s.scrollBy(dx)
	}
	s.lastX = x
	if s.feedback {
		if !s.absorbedLeft && s.atLeft() {
			s.absorbedLeft = true
			s.edges.Absorb(EdgeLeft, s.flinger.Velocity())
		} else if !s.absorbedRight && s.atRight() {
			s.absorbedRight = true
			s.edges.Absorb(EdgeRight, s.flinger.Velocity())
		}
	}
	s.sched.PostDelayed(func() { s.tick(gen) }, FrameInterval)
}

func (s *scroller) stopFling() {
	s.gen++
	s.flinger.Abort()
	if s.state == Flinging {
		s.state = Idle
	}
	s.absorbedLeft, s.absorbedRight = false, false
}

// Reset cancels every gesture and fling and returns to offset 0.
func (s *scroller) Reset() {
	s.stopFling()
	s.velocity.Reset()
	clear(s.pointers)
	s.state = Idle
	s.offset = 0
	s.orientation = 0
}

// Abandon drops an in-progress gesture without moving the offset.
func (s *scroller) Abandon() {
	s.velocity.Reset()
	if s.state == Dragging {
		s.state = Idle
	}
}
