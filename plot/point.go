package plot

import (
	"cmp"

	"gioui.org/f32"
)

// Point is one data sample of a series. Position and Reveal are computed by
// the engine and are never copied by Clone.
type Point struct {
	Value float32
	// Label is drawn on the X axis when the point belongs to the reference
	// series. Empty labels are skipped.
	Label string

	pos    f32.Point
	reveal float32
}

// NewPoint returns a fully revealed point.
func NewPoint(value float32, label string) Point {
	return Point{Value: value, Label: label, reveal: 1}
}

// Pos returns the unscrolled pixel position computed by the last mapping.
func (p Point) Pos() f32.Point { return p.pos }

// Reveal returns the animation progress of the point, 1 meaning fully shown.
func (p Point) Reveal() float32 { return p.reveal }

// Compare orders points by value.
func (p Point) Compare(o Point) int {
	return cmp.Compare(p.Value, o.Value)
}

// Equal reports whether both value and label match.
func (p Point) Equal(o Point) bool {
	return p.Value == o.Value && p.Label == o.Label
}

// Clone copies the value and label only.
func (p Point) Clone() Point {
	return NewPoint(p.Value, p.Label)
}

// Series is an ordered, fixed-length run of points.
type Series []Point

// Clone deep-copies a series, dropping computed state.
func (s Series) Clone() Series {
	out := make(Series, len(s))
	for i, p := range s {
		out[i] = p.Clone()
	}
	return out
}

// Values builds a series from raw values with no labels.
func Values(values ...float32) Series {
	s := make(Series, len(values))
	for i, v := range values {
		s[i] = NewPoint(v, "")
	}
	return s
}

// LineShape selects how adjacent points are connected.
type LineShape uint8

const (
	Curve LineShape = iota
	Segment
)

func (l LineShape) String() string {
	switch l {
	case Curve:
		return "curve"
	case Segment:
		return "segment"
	default:
		return "unknown"
	}
}

// LineDash selects the stroke pattern.
type LineDash uint8

const (
	Solid LineDash = iota
	Dashed
)

func (l LineDash) String() string {
	switch l {
	case Solid:
		return "solid"
	case Dashed:
		return "dashed"
	default:
		return "unknown"
	}
}

// Style is the paint descriptor of one series. Colors is the vertical
// gradient ramp; Colors[0] is the stroke color.
type Style struct {
	Colors []Color
	Width  float32
	Fill   bool
	Dash   LineDash
}

// StartColor returns the first color of the ramp.
func (s Style) StartColor() Color {
	if len(s.Colors) == 0 {
		return Color{A: 0xff}
	}
	return s.Colors[0]
}

// Ramp returns the gradient ramp with at least two stops.
func (s Style) Ramp() []Color {
	switch len(s.Colors) {
	case 0:
		return []Color{{A: 0xff}, {A: 0xff}}
	case 1:
		return []Color{s.Colors[0], s.Colors[0]}
	}
	return s.Colors
}

func (s Style) clone() Style {
	s.Colors = append([]Color(nil), s.Colors...)
	return s
}
