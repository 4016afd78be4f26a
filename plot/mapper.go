package plot

import (
	"gioui.org/f32"
	"github.com/shopspring/decimal"
)

// Mapping is the scalar output of the coordinate mapper.
type Mapping struct {
	// Spacing is the pixel distance between adjacent indices.
	Spacing float32
	// MaxOffset bounds scrolling to [-MaxOffset, 0].
	MaxOffset float32
	// ZeroAxisY is the pixel Y of value 0.
	ZeroAxisY float32
	// Visible is the number of indices that fit the plot width.
	Visible int
}

var one = decimal.NewFromInt(1)

// scaleOf returns 1-(value-min)/span, with the quotient computed in decimal
// and truncated to two fractional digits.
func scaleOf(value float32, dom Domain) float32 {
	span := dom.Span()
	if span == 0 {
		return 1
	}
	frac, _ := decimal.NewFromFloat32(value).
		Sub(decimal.NewFromFloat32(dom.Min)).
		QuoRem(decimal.NewFromFloat32(span), 2)
	f, _ := one.Sub(frac).Float64()
	return float32(f)
}

// mapPoints assigns every point its unscrolled position. The half stroke
// width is applied inward at the two domain extremes so stroke caps are not
// clipped by the plot rectangle.
func mapPoints(series []Series, area Rect, dom Domain, maxVisible int, strokeWidth float32) Mapping {
	if len(series) == 0 || len(series[0]) == 0 {
		return Mapping{}
	}
	n := len(series[0])
	visible := min(n, maxVisible)
	spacing := area.Dx()
	if visible > 1 {
		spacing = area.Dx() / float32(visible-1)
	}
	pad := strokeWidth / 2
	for i := 0; i < n; i++ {
		x := area.Min.X + spacing*float32(i)
		for _, s := range series {
			scale := scaleOf(s[i].Value, dom)
			y := area.Min.Y + area.Dy()*scale
			switch scale {
			case 0:
				y += pad
			case 1:
				y -= pad
			}
			s[i].pos = f32.Pt(x, y)
		}
	}
	m := Mapping{Spacing: spacing, Visible: visible, ZeroAxisY: area.Max.Y}
	if n > maxVisible {
		m.MaxOffset = max(spacing*float32(n-1)-area.Dx(), 0)
	}
	if span := dom.Span(); span != 0 {
		m.ZeroAxisY = area.Min.Y + area.Dy()*dom.Max/span
	}
	return m
}
