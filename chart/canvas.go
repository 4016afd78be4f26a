package chart

import (
	"image"
	"math"

	"gioui.org/f32"
	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/x/stroke"
	"golang.org/x/exp/constraints"

	"git.sr.ht/~whereswaldon/suitlines/plot"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

// unbounded is large enough to stand in for an infinite clip edge.
const unbounded = 1 << 24

func ceil[T constraints.Integer | constraints.Float](a T) T {
	return T(math.Ceil(float64(a)))
}

func floor[T constraints.Integer | constraints.Float](a T) T {
	return T(math.Floor(float64(a)))
}

func rec(gtx C, w layout.Widget) (D, op.CallOp) {
	macro := op.Record(gtx.Ops)
	dims := w(gtx)
	call := macro.Stop()
	return dims, call
}

// outer returns the smallest integer rectangle containing r.
func outer(r plot.Rect) image.Rectangle {
	return image.Rectangle{
		Min: image.Pt(int(floor(r.Min.X)), int(floor(r.Min.Y))),
		Max: image.Pt(int(ceil(r.Max.X)), int(ceil(r.Max.Y))),
	}
}

type popper interface{ Pop() }

// canvas implements plot.Surface on top of a Gio operation list.
type canvas struct {
	gtx    C
	shaper *text.Shaper
	font   font.Font
	// frames holds, per Save, the stacks pushed since.
	frames [][]popper
}

var _ plot.Surface = (*canvas)(nil)

func newCanvas(gtx C, shaper *text.Shaper, f font.Font) *canvas {
	return &canvas{gtx: gtx, shaper: shaper, font: f, frames: make([][]popper, 1)}
}

func (c *canvas) push(p popper) {
	top := len(c.frames) - 1
	c.frames[top] = append(c.frames[top], p)
}

func (c *canvas) popFrame() {
	top := len(c.frames) - 1
	f := c.frames[top]
	for i := len(f) - 1; i >= 0; i-- {
		f[i].Pop()
	}
	c.frames[top] = f[:0]
}

func (c *canvas) Save() { c.frames = append(c.frames, nil) }

func (c *canvas) Restore() {
	if len(c.frames) == 1 {
		return
	}
	c.popFrame()
	c.frames = c.frames[:len(c.frames)-1]
}

// done pops everything still pushed.
func (c *canvas) done() {
	for len(c.frames) > 1 {
		c.Restore()
	}
	c.popFrame()
}

func (c *canvas) Translate(d f32.Point) {
	c.push(op.Affine(f32.Affine2D{}.Offset(d)).Push(c.gtx.Ops))
}

func (c *canvas) ClipRect(r plot.Rect) {
	c.push(clip.Rect(outer(r)).Push(c.gtx.Ops))
}

func strokePath(p *plot.Path) stroke.Path {
	var out stroke.Path
	var start f32.Point
	for _, seg := range p.Segments() {
		switch seg.Op {
		case plot.OpMoveTo:
			start = seg.Pts[0]
			out.Segments = append(out.Segments, stroke.MoveTo(seg.Pts[0]))
		case plot.OpLineTo:
			out.Segments = append(out.Segments, stroke.LineTo(seg.Pts[0]))
		case plot.OpCubeTo:
			out.Segments = append(out.Segments, stroke.CubeTo(seg.Pts[0], seg.Pts[1], seg.Pts[2]))
		case plot.OpClose:
			out.Segments = append(out.Segments, stroke.LineTo(start))
		}
	}
	return out
}

func (c *canvas) fillPath(p *plot.Path) clip.PathSpec {
	var path clip.Path
	path.Begin(c.gtx.Ops)
	for _, seg := range p.Segments() {
		switch seg.Op {
		case plot.OpMoveTo:
			path.MoveTo(seg.Pts[0])
		case plot.OpLineTo:
			path.LineTo(seg.Pts[0])
		case plot.OpCubeTo:
			path.CubeTo(seg.Pts[0], seg.Pts[1], seg.Pts[2])
		case plot.OpClose:
			path.Close()
		}
	}
	return path.End()
}

func (c *canvas) DrawPath(p *plot.Path, pt plot.Paint) {
	if p.Empty() || len(pt.Colors) == 0 {
		return
	}
	var area clip.Op
	if pt.Fill {
		area = clip.Outline{Path: c.fillPath(p)}.Op()
	} else {
		area = stroke.Stroke{
			Path:   strokePath(p),
			Width:  pt.Width,
			Cap:    stroke.RoundCap,
			Join:   stroke.RoundJoin,
			Dashes: stroke.Dashes{Dashes: pt.Dash},
		}.Op(c.gtx.Ops)
	}
	defer area.Push(c.gtx.Ops).Pop()
	c.paint(pt.Colors, pt.Gradient)
}

// band is one two-stop piece of a multi-stop vertical gradient.
type band struct {
	clip        image.Rectangle
	top, bottom float32
	from, to    plot.Color
}

// gradientBands splits a top-to-bottom ramp over r into two-stop pieces. The
// outermost bands extend without bound so nothing outside r goes unpainted.
func gradientBands(colors []plot.Color, r plot.Rect) []band {
	n := len(colors) - 1
	if n < 1 {
		return nil
	}
	h := r.Dy() / float32(n)
	out := make([]band, 0, n)
	for i := 0; i < n; i++ {
		top := r.Min.Y + h*float32(i)
		bottom := top + h
		b := band{
			clip:   image.Rect(-unbounded, int(floor(top)), unbounded, int(floor(bottom))),
			top:    top,
			bottom: bottom,
			from:   colors[i],
			to:     colors[i+1],
		}
		if i == 0 {
			b.clip.Min.Y = -unbounded
		}
		if i == n-1 {
			b.clip.Max.Y = unbounded
		}
		out = append(out, b)
	}
	return out
}

// paint fills the current clip with a solid color or a vertical ramp.
func (c *canvas) paint(colors []plot.Color, g plot.Rect) {
	ops := c.gtx.Ops
	if len(colors) == 1 || g.Empty() {
		paint.ColorOp{Color: colors[0]}.Add(ops)
		paint.PaintOp{}.Add(ops)
		return
	}
	for _, b := range gradientBands(colors, g) {
		st := clip.Rect(b.clip).Push(ops)
		paint.LinearGradientOp{
			Stop1:  f32.Pt(g.Min.X, b.top),
			Color1: b.from,
			Stop2:  f32.Pt(g.Min.X, b.bottom),
			Color2: b.to,
		}.Add(ops)
		paint.PaintOp{}.Add(ops)
		st.Pop()
	}
}

func (c *canvas) DrawLine(from, to f32.Point, col plot.Color, width float32) {
	var path stroke.Path
	path.Segments = []stroke.Segment{stroke.MoveTo(from), stroke.LineTo(to)}
	area := stroke.Stroke{Path: path, Width: width, Cap: stroke.FlatCap}.Op(c.gtx.Ops)
	paint.FillShape(c.gtx.Ops, col, area)
}

func (c *canvas) FillRect(r plot.Rect, col plot.Color) {
	paint.FillShape(c.gtx.Ops, col, clip.Rect(outer(r)).Op())
}

// label records s as a single line of text with its top-left at the origin.
func (c *canvas) label(s string, size float32, col plot.Color) (D, op.CallOp) {
	gtx := c.gtx
	gtx.Constraints = layout.Constraints{Max: image.Pt(unbounded, unbounded)}
	return rec(gtx, func(gtx C) D {
		m := op.Record(gtx.Ops)
		paint.ColorOp{Color: col}.Add(gtx.Ops)
		material := m.Stop()
		return widget.Label{MaxLines: 1}.Layout(gtx, c.shaper, c.font, unit.Sp(size), s, material)
	})
}

func (c *canvas) DrawText(s string, origin f32.Point, st plot.TextStyle) {
	dims, call := c.label(s, st.Size, st.Color)
	x := origin.X
	switch st.Align {
	case plot.AlignCenter:
		x -= float32(dims.Size.X) / 2
	case plot.AlignRight:
		x -= float32(dims.Size.X)
	}
	// Baseline is measured up from the bottom of the label.
	y := origin.Y - float32(dims.Size.Y-dims.Baseline)
	defer op.Affine(f32.Affine2D{}.Offset(f32.Pt(x, y))).Push(c.gtx.Ops).Pop()
	call.Add(c.gtx.Ops)
}

// layer keeps its operations in a list of its own so it outlives the frame
// it was recorded in.
type layer struct {
	ops  op.Ops
	call op.CallOp
}

func (c *canvas) Record(_ f32.Point, draw func(plot.Surface)) plot.Layer {
	l := new(layer)
	gtx := c.gtx
	gtx.Ops = &l.ops
	macro := op.Record(gtx.Ops)
	sub := newCanvas(gtx, c.shaper, c.font)
	draw(sub)
	sub.done()
	l.call = macro.Stop()
	return l
}

func (c *canvas) DrawLayer(l plot.Layer, at f32.Point) {
	ly, ok := l.(*layer)
	if !ok {
		return
	}
	defer op.Affine(f32.Affine2D{}.Offset(at)).Push(c.gtx.Ops).Pop()
	ly.call.Add(c.gtx.Ops)
}

// measurer implements plot.Measurer with the text shaper. It shapes into a
// private operation list that is reset on every call.
type measurer struct {
	shaper *text.Shaper
	font   font.Font
	metric unit.Metric
	ops    op.Ops
}

var _ plot.Measurer = (*measurer)(nil)

func (m *measurer) measure(s string, size float32) D {
	m.ops.Reset()
	gtx := C{
		Ops:         &m.ops,
		Metric:      m.metric,
		Constraints: layout.Constraints{Max: image.Pt(unbounded, unbounded)},
	}
	material := op.Record(gtx.Ops).Stop()
	return widget.Label{MaxLines: 1}.Layout(gtx, m.shaper, m.font, unit.Sp(size), s, material)
}

func (m *measurer) TextWidth(s string, size float32) float32 {
	return float32(m.measure(s, size).Size.X)
}

func (m *measurer) TextHeight(size float32) float32 {
	return float32(m.measure("0", size).Size.Y)
}
