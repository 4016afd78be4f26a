// Package chart hosts a plot engine inside a Gio window.
package chart

import (
	"image"
	"log/slog"
	"time"

	"gioui.org/font"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/text"
	"gioui.org/unit"

	"git.sr.ht/~whereswaldon/suitlines/plot"
)

// Chart is a scrollable, animated line chart widget. The embedded engine
// takes data and style changes; they must be made from the goroutine that
// lays out the window.
type Chart struct {
	*plot.Engine
	// Font is used for every label.
	Font font.Font

	clock    *plot.Timeline
	glow     *Glow
	shaper   *text.Shaper
	measure  *measurer
	metric   unit.Metric
	measured bool
	down     map[pointer.ID]bool
}

// New returns a chart configured by opts that shapes text with shaper.
func New(opts plot.Options, shaper *text.Shaper) *Chart {
	clock := &plot.Timeline{}
	glow := NewGlow(clock)
	c := &Chart{
		clock:   clock,
		glow:    glow,
		shaper:  shaper,
		measure: &measurer{shaper: shaper},
		down:    make(map[pointer.ID]bool),
	}
	c.Engine = plot.New(opts, plot.Host{
		Scheduler: clock,
		Edges:     glow,
		Logger:    slog.Default().With("component", "chart"),
	})
	return c
}

// Update advances the chart clock to the frame time and processes input.
func (c *Chart) Update(gtx C) {
	c.clock.Advance(gtx.Now)
	if gtx.Metric != c.metric || c.Font != c.measure.font || !c.measured {
		c.metric = gtx.Metric
		c.measured = true
		c.measure.metric = gtx.Metric
		c.measure.font = c.Font
		c.Engine.SetMeasurer(c.measure)
		c.Engine.SetDensity(gtx.Metric.PxPerDp)
	}
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:       c,
			Kinds:        pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel | pointer.Scroll,
			ScrollBounds: image.Rect(-unbounded, -unbounded, unbounded, unbounded),
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		if e.Kind == pointer.Scroll {
			c.Engine.ScrollBy(-(e.Scroll.X + e.Scroll.Y))
			continue
		}
		if pe, ok := c.translate(e); ok {
			c.Engine.HandlePointer(pe)
		}
	}
}

// translate maps a Gio pointer event onto the engine's multi-touch stream.
// A press while another pointer is down adds a pointer; a release that
// leaves pointers down removes one.
func (c *Chart) translate(e pointer.Event) (plot.PointerEvent, bool) {
	pe := plot.PointerEvent{
		ID:       int(e.PointerID),
		Position: e.Position,
		Time:     time.Time{}.Add(e.Time),
	}
	switch e.Kind {
	case pointer.Press:
		pe.Kind = plot.PointerDown
		if len(c.down) > 0 {
			pe.Kind = plot.PointerAdded
		}
		c.down[e.PointerID] = true
	case pointer.Drag:
		pe.Kind = plot.PointerMove
	case pointer.Release:
		delete(c.down, e.PointerID)
		pe.Kind = plot.PointerUp
		if len(c.down) > 0 {
			pe.Kind = plot.PointerRemoved
		}
	case pointer.Cancel:
		clear(c.down)
		pe.Kind = plot.PointerCancel
	default:
		return pe, false
	}
	return pe, true
}

// Layout draws the chart filling the maximum constraints.
func (c *Chart) Layout(gtx C) D {
	c.Update(gtx)
	size := gtx.Constraints.Max
	c.Engine.Resize(float32(size.X), float32(size.Y), plot.Insets{})

	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, c)

	cv := newCanvas(gtx, c.shaper, c.Font)
	c.Engine.Render(cv)
	cv.done()

	area := c.Engine.Regions().Plot
	if area.Empty() {
		area = bounds(size)
	}
	c.glow.Layout(gtx, area)

	if c.glow.Active() {
		gtx.Execute(op.InvalidateCmd{})
	} else if next, ok := c.clock.Next(); ok {
		gtx.Execute(op.InvalidateCmd{At: next})
	}
	return D{Size: size}
}
