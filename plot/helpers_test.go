package plot

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"gioui.org/f32"
)

var epoch = time.Unix(1_700_000_000, 0)

// fixedMeasurer reports every glyph as half the text size wide and one text
// size tall.
type fixedMeasurer struct{}

func (fixedMeasurer) TextWidth(s string, size float32) float32 { return float32(len(s)) * size / 2 }
func (fixedMeasurer) TextHeight(size float32) float32          { return size }

type recordedPath struct {
	segs  []PathSegment
	paint Paint
}

type recordedText struct {
	text   string
	origin f32.Point
	style  TextStyle
}

// recorder is a Surface that keeps every primitive it receives.
type recorder struct {
	depth   int
	paths   []recordedPath
	lines   int
	texts   []recordedText
	rects   []Rect
	records int
	layers  []*recorder
}

func (r *recorder) Save()               { r.depth++ }
func (r *recorder) Restore()            { r.depth-- }
func (r *recorder) Translate(f32.Point) {}
func (r *recorder) ClipRect(Rect)       {}

func (r *recorder) DrawPath(p *Path, paint Paint) {
	r.paths = append(r.paths, recordedPath{segs: append([]PathSegment(nil), p.Segments()...), paint: paint})
}

func (r *recorder) DrawLine(from, to f32.Point, c Color, width float32) { r.lines++ }
func (r *recorder) FillRect(rect Rect, c Color)                         { r.rects = append(r.rects, rect) }

func (r *recorder) DrawText(s string, origin f32.Point, style TextStyle) {
	r.texts = append(r.texts, recordedText{text: s, origin: origin, style: style})
}

func (r *recorder) Record(size f32.Point, draw func(Surface)) Layer {
	r.records++
	sub := &recorder{}
	draw(sub)
	return sub
}

func (r *recorder) DrawLayer(l Layer, at f32.Point) {
	r.layers = append(r.layers, l.(*recorder))
}

func (r *recorder) textsMatching(s string) []recordedText {
	var out []recordedText
	for _, t := range r.texts {
		if t.text == s {
			out = append(out, t)
		}
	}
	return out
}

type edgeEvent struct {
	kind  string
	edge  Edge
	value float32
}

// edgeRecorder is an EdgeFeedback that logs every call.
type edgeRecorder struct {
	events []edgeEvent
	tint   Color
}

func (e *edgeRecorder) Pull(edge Edge, d float32) {
	e.events = append(e.events, edgeEvent{kind: "pull", edge: edge, value: d})
}

func (e *edgeRecorder) Absorb(edge Edge, v float32) {
	e.events = append(e.events, edgeEvent{kind: "absorb", edge: edge, value: v})
}

func (e *edgeRecorder) Release() { e.events = append(e.events, edgeEvent{kind: "release"}) }

func (e *edgeRecorder) SetOverlayTint(c Color) { e.tint = c }

func (e *edgeRecorder) count(kind string) int {
	n := 0
	for _, ev := range e.events {
		if ev.kind == kind {
			n++
		}
	}
	return n
}

type harness struct {
	engine *Engine
	clock  *Timeline
	edges  *edgeRecorder
}

// newHarness returns an engine laid out at 640x320 with density 1.
func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	clock := NewTimeline(epoch)
	edges := &edgeRecorder{}
	e := New(opts, Host{
		Scheduler: clock,
		Edges:     edges,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	e.SetMeasurer(fixedMeasurer{})
	e.Resize(640, 320, Insets{})
	return &harness{engine: e, clock: clock, edges: edges}
}

// ramp returns n evenly increasing values starting at 1.
func ramp(n int) Series {
	s := make(Series, n)
	for i := range s {
		s[i] = NewPoint(float32(i+1), "")
	}
	return s
}

func labeled(values ...float32) Series {
	s := Values(values...)
	for i := range s {
		s[i].Label = string(rune('a' + i))
	}
	return s
}

// pointer moves the clock to at and delivers one event stamped with it.
func (h *harness) pointer(kind PointerKind, id int, x, y float32, at time.Duration) {
	h.clock.Advance(epoch.Add(at))
	h.engine.HandlePointer(PointerEvent{Kind: kind, ID: id, Position: f32.Pt(x, y), Time: epoch.Add(at)})
}
