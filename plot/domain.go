package plot

import (
	"math"
	"slices"
	"strconv"
)

// Ceil5 rounds num away from zero to a multiple of 5. Magnitudes whose
// fractional excess over a multiple of 5 is below 0.1 round toward it.
func Ceil5(num float32) float32 {
	neg := num < 0
	if neg {
		num = -num
	}
	v := float32((int(num+4.9) / 5) * 5)
	if neg {
		return -v
	}
	return v
}

// Domain is the shared Y extent of every series of a chart.
type Domain struct {
	Min, Max float32
}

// Span returns Max-Min.
func (d Domain) Span() float32 {
	return d.Max - d.Min
}

// domainOf flattens all series, sorts a cloned copy and rounds the extremes
// outward so the result always contains 0.
func domainOf(series []Series) Domain {
	var all Series
	for _, s := range series {
		all = append(all, s.Clone()...)
	}
	if len(all) == 0 {
		return Domain{}
	}
	slices.SortFunc(all, Point.Compare)
	return Domain{
		Min: Ceil5(min(all[0].Value, 0)),
		Max: Ceil5(max(all[len(all)-1].Value, 0)),
	}
}

// FormatTick formats an axis value with at most one decimal.
func FormatTick(v float32) string {
	r := math.Round(float64(v)*10) / 10
	if r == 0 {
		// Drop the sign of negative zero.
		r = 0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// FormatValue formats a raw point value for the hint box.
func FormatValue(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', -1, 32)
}
