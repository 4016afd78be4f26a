package chart

import (
	"image"
	"time"

	"gioui.org/f32"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"git.sr.ht/~whereswaldon/suitlines/plot"
)

const (
	// glowFade is how long a released glow takes to vanish.
	glowFade = 300 * time.Millisecond
	// glowWidth is the strip width at full intensity, in dp.
	glowWidth = 24
	// absorbVelocity is the fling speed that lights the glow fully.
	absorbVelocity = 4000
	minAbsorb      = 0.3
)

type glowState struct {
	level     float32
	releasing bool
	since     time.Time
}

// Glow is the overscroll effect drawn over the chart edges. Pulls brighten
// the strip on the pulled side; a release fades it out.
type Glow struct {
	clock plot.Scheduler
	tint  plot.Color
	edges [2]glowState
}

var _ plot.EdgeFeedback = (*Glow)(nil)

// NewGlow returns a glow reading time from clock.
func NewGlow(clock plot.Scheduler) *Glow {
	return &Glow{clock: clock, tint: plot.Gray}
}

func (g *Glow) Pull(e plot.Edge, distance float32) {
	s := &g.edges[e]
	s.level = min(1, g.Level(e)+distance)
	s.releasing = false
}

func (g *Glow) Absorb(e plot.Edge, velocity float32) {
	if velocity < 0 {
		velocity = -velocity
	}
	s := &g.edges[e]
	s.level = min(1, max(minAbsorb, velocity/absorbVelocity))
	s.releasing = true
	s.since = g.clock.Now()
}

func (g *Glow) Release() {
	now := g.clock.Now()
	for i := range g.edges {
		s := &g.edges[i]
		if s.level > 0 && !s.releasing {
			s.releasing = true
			s.since = now
		}
	}
}

func (g *Glow) SetOverlayTint(c plot.Color) { g.tint = c }

// Level returns the current intensity of the glow at e, in [0, 1].
func (g *Glow) Level(e plot.Edge) float32 {
	s := g.edges[e]
	if !s.releasing {
		return s.level
	}
	elapsed := g.clock.Now().Sub(s.since)
	if elapsed >= glowFade {
		return 0
	}
	return s.level * (1 - float32(elapsed)/float32(glowFade))
}

// Active reports whether any edge is still lit.
func (g *Glow) Active() bool {
	return g.Level(plot.EdgeLeft) > 0 || g.Level(plot.EdgeRight) > 0
}

// Layout paints both strips over an area of the given size.
func (g *Glow) Layout(gtx C, area plot.Rect) {
	for _, e := range []plot.Edge{plot.EdgeLeft, plot.EdgeRight} {
		level := g.Level(e)
		if level <= 0 {
			continue
		}
		w := float32(gtx.Dp(glowWidth)) * level
		lit := g.tint
		lit.A = uint8(float32(lit.A) * level)
		faded := lit
		faded.A = 0
		strip := area
		from, to := f32.Pt(area.Min.X, 0), f32.Pt(area.Min.X+w, 0)
		if e == plot.EdgeLeft {
			strip.Max.X = area.Min.X + w
		} else {
			strip.Min.X = area.Max.X - w
			from, to = f32.Pt(area.Max.X, 0), f32.Pt(area.Max.X-w, 0)
		}
		st := clip.Rect(outer(strip)).Push(gtx.Ops)
		paint.LinearGradientOp{Stop1: from, Color1: lit, Stop2: to, Color2: faded}.Add(gtx.Ops)
		paint.PaintOp{}.Add(gtx.Ops)
		st.Pop()
	}
}

// bounds converts an integer size into a chart rectangle.
func bounds(size image.Point) plot.Rect {
	return plot.R(0, 0, float32(size.X), float32(size.Y))
}
