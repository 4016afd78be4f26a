package plot

import (
	"image/color"

	"gioui.org/f32"
)

// Color is a non-premultiplied sRGB color.
type Color = color.NRGBA

// PathOp is the kind of a path segment.
type PathOp uint8

const (
	OpMoveTo PathOp = iota
	OpLineTo
	OpCubeTo
	OpClose
)

// PathSegment is one instruction of a Path. CubeTo uses all three points as
// control 0, control 1 and end; MoveTo and LineTo use only Pts[0].
type PathSegment struct {
	Op  PathOp
	Pts [3]f32.Point
}

// Path is a renderer-independent vector path in pixel space.
type Path struct {
	segs []PathSegment
}

func (p *Path) MoveTo(pt f32.Point) {
	p.segs = append(p.segs, PathSegment{Op: OpMoveTo, Pts: [3]f32.Point{pt}})
}

func (p *Path) LineTo(pt f32.Point) {
	p.segs = append(p.segs, PathSegment{Op: OpLineTo, Pts: [3]f32.Point{pt}})
}

func (p *Path) CubeTo(ctrl0, ctrl1, to f32.Point) {
	p.segs = append(p.segs, PathSegment{Op: OpCubeTo, Pts: [3]f32.Point{ctrl0, ctrl1, to}})
}

func (p *Path) Close() {
	p.segs = append(p.segs, PathSegment{Op: OpClose})
}

// Reset empties the path, keeping its storage.
func (p *Path) Reset() { p.segs = p.segs[:0] }

// Empty reports whether the path has no segments.
func (p *Path) Empty() bool { return len(p.segs) == 0 }

// Segments returns the recorded instructions. The slice must not be retained.
func (p *Path) Segments() []PathSegment { return p.segs }

// Copy returns an independent copy of p.
func (p *Path) Copy() *Path {
	return &Path{segs: append([]PathSegment(nil), p.segs...)}
}

// Paint describes how a path is drawn.
type Paint struct {
	// Colors is a top-to-bottom gradient across Gradient. A single color, or
	// an empty Gradient, paints solid.
	Colors   []Color
	Gradient Rect
	Width    float32
	Fill     bool
	// Dash holds alternating on/off lengths. Empty means solid.
	Dash []float32
}

// Align is the horizontal anchoring of text around its origin.
type Align uint8

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// TextStyle controls DrawText.
type TextStyle struct {
	Color Color
	// Size is in scaled points; the surface converts it to pixels.
	Size  float32
	Align Align
}

// Layer is a surface-owned recording that can be drawn repeatedly. Dropping
// the value discards it.
type Layer interface{}

// Surface is the host's immediate-mode drawing target.
type Surface interface {
	// Save pushes the current transform and clip; Restore pops back to the
	// matching Save.
	Save()
	Restore()
	Translate(d f32.Point)
	ClipRect(r Rect)

	DrawPath(p *Path, paint Paint)
	DrawLine(from, to f32.Point, c Color, width float32)
	FillRect(r Rect, c Color)
	// DrawText draws s with its baseline passing through origin.
	DrawText(s string, origin f32.Point, style TextStyle)

	// Record captures everything draw does into a reusable layer whose
	// origin is the top-left corner of a size-sized area.
	Record(size f32.Point, draw func(Surface)) Layer
	DrawLayer(l Layer, at f32.Point)
}
