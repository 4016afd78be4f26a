package plot

import (
	"gioui.org/f32"
)

// Rect is an axis-aligned rectangle in pixel space. Max is exclusive.
type Rect struct {
	Min, Max f32.Point
}

// R is shorthand for a Rect from its edges.
func R(left, top, right, bottom float32) Rect {
	return Rect{Min: f32.Pt(left, top), Max: f32.Pt(right, bottom)}
}

func (r Rect) Dx() float32 { return r.Max.X - r.Min.X }
func (r Rect) Dy() float32 { return r.Max.Y - r.Min.Y }

// Empty reports whether the rectangle contains no area.
func (r Rect) Empty() bool { return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y }

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p f32.Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Add translates r by d.
func (r Rect) Add(d f32.Point) Rect {
	return Rect{Min: r.Min.Add(d), Max: r.Max.Add(d)}
}

// Overlaps reports whether r and s share any area.
func (r Rect) Overlaps(s Rect) bool {
	return r.Min.X < s.Max.X && s.Min.X < r.Max.X && r.Min.Y < s.Max.Y && s.Min.Y < r.Max.Y
}

// In reports whether r lies entirely within s.
func (r Rect) In(s Rect) bool {
	return r.Min.X >= s.Min.X && r.Max.X <= s.Max.X && r.Min.Y >= s.Min.Y && r.Max.Y <= s.Max.Y
}

// Center returns the midpoint of r.
func (r Rect) Center() f32.Point {
	return f32.Pt((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
}

// Measurer reports text metrics. Sizes are in scaled points, results in
// pixels.
type Measurer interface {
	// TextWidth returns the advance width of s.
	TextWidth(s string, size float32) float32
	// TextHeight returns the ascent-to-descent height of one line.
	TextHeight(size float32) float32
}

// Insets is the host-side padding around the chart.
type Insets struct {
	Left, Top, Right, Bottom float32
}

// Regions are the four rectangles a chart is drawn in. YAxis, XAxis and Plot
// tile without overlap; Hint is an overlay inside Plot.
type Regions struct {
	YAxis, XAxis, Plot, Hint Rect
}

// LayoutInput gathers everything the region computation depends on.
type LayoutInput struct {
	Width, Height float32
	Insets        Insets
	Padding       float32
	Domain        Domain
	Measurer      Measurer
	TextSize      float32
}

// ComputeRegions derives the chart regions. The Y axis strip fits the widest
// of the formatted domain extremes (never narrower than "00"), the X axis strip
// fits one text line plus padding, and the hint box takes the top quarter of
// the rightmost quarter of the plot.
func ComputeRegions(in LayoutInput) Regions {
	m, size := in.Measurer, in.TextSize
	textWidth := max(m.TextWidth(FormatTick(in.Domain.Min), size), m.TextWidth(FormatTick(in.Domain.Max), size))
	labelWidth := max(m.TextWidth("00", size), textWidth)
	textHeight := m.TextHeight(size)
	pad := in.Padding

	valid := R(
		in.Insets.Left+pad,
		in.Insets.Top+pad,
		in.Width-in.Insets.Right-pad,
		in.Height-in.Insets.Bottom,
	)
	yAxis := R(valid.Min.X, valid.Min.Y, valid.Min.X+labelWidth+pad, valid.Max.Y-textHeight-pad*2)
	xAxis := R(yAxis.Max.X, yAxis.Max.Y, valid.Max.X, valid.Max.Y)
	plotArea := R(yAxis.Max.X+1, yAxis.Min.Y, xAxis.Max.X, yAxis.Max.Y)
	hint := R(
		plotArea.Min.X+plotArea.Dx()*3/4,
		plotArea.Min.Y,
		plotArea.Max.X,
		plotArea.Min.Y+plotArea.Dy()/4,
	)
	return Regions{YAxis: yAxis, XAxis: xAxis, Plot: plotArea, Hint: hint}
}
