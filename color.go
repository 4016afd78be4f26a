package main

import (
	"image/color"
	"math"

	"git.sr.ht/~whereswaldon/suitlines/plot"
)

// colors spreads hues around the wheel by the golden angle so that
// neighbouring series never share a similar color.
var colors = func() []color.NRGBA {
	const target = 20
	out := make([]color.NRGBA, 0, target)
	for i := 0; i < target; i++ {
		h := math.Mod(float64(i+1)*math.Phi, 1)
		out = append(out, hsv(h, .7, .95))
	}
	return out
}()

// hsv converts a hue in [0,1) with the given saturation and value to an
// opaque color.
func hsv(h, s, v float64) color.NRGBA {
	i := math.Floor(h * 6)
	f := h*6 - i
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)
	var r, g, b float64
	switch int(i) % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return color.NRGBA{R: uint8(r * 255), G: uint8(g * 255), B: uint8(b * 255), A: 0xff}
}

// ramp returns the gradient of the i'th series, fading towards the bottom
// of the plot.
func ramp(i int) []plot.Color {
	c := colors[i%len(colors)]
	faded := c
	faded.A = 0x40
	return []plot.Color{c, faded}
}
