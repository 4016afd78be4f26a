package plot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapped(t *testing.T, n, maxVisible int, plot Rect) (windowFinder, Mapping) {
	t.Helper()
	s := ramp(n)
	series := []Series{s}
	m := mapPoints(series, plot, domainOf(series), maxVisible, 4)
	return windowFinder{
		ref:        s,
		plot:       plot,
		spacing:    m.Spacing,
		maxOffset:  m.MaxOffset,
		maxVisible: maxVisible,
	}, m
}

func TestWindowWholeSeriesFits(t *testing.T) {
	f, m := mapped(t, 3, 7, R(10, 0, 610, 300))
	assert.Equal(t, float32(300), m.Spacing)
	assert.Zero(t, m.MaxOffset)
	assert.Equal(t, 3, m.Visible)
	assert.Equal(t, Window{Start: 0, End: 2}, f.Exact(0))
	assert.Equal(t, Window{Start: 0, End: 2}, f.Arithmetic(0))
}

func TestWindowLongSeries(t *testing.T) {
	plot := R(10, 0, 610, 300)
	f, m := mapped(t, 50, 7, plot)
	require.Equal(t, plot.Dx()/6, m.Spacing)
	assert.InDelta(t, 100*49-600, m.MaxOffset, 0.01)
	for name, find := range map[string]func(float32) Window{
		"exact":      f.Exact,
		"arithmetic": f.Arithmetic,
	} {
		assert.Equal(t, Window{Start: 0, End: 6}, find(0), name)
		assert.Equal(t, Window{Start: 43, End: 49}, find(-m.MaxOffset), name)
	}
}

func TestWindowSweepCovers(t *testing.T) {
	plot := R(10, 0, 610, 300)
	for _, n := range []int{8, 13, 50, 137} {
		f, m := mapped(t, n, 7, plot)
		seen := make([]bool, n)
		offsets := []float32{0, -m.MaxOffset}
		for off := float32(0); off > -m.MaxOffset; off -= 7.3 {
			offsets = append(offsets, off)
		}
		for _, off := range offsets {
			for name, w := range map[string]Window{
				"exact":      f.Exact(off),
				"arithmetic": f.Arithmetic(off),
			} {
				require.GreaterOrEqual(t, w.Start, 0, "%s n=%d off=%v", name, n, off)
				require.Less(t, w.End, n, "%s n=%d off=%v", name, n, off)
				require.LessOrEqual(t, f.ref[w.Start].pos.X, plot.Min.X-off+0.01, "%s n=%d off=%v starts late: %v", name, n, off, w)
				require.GreaterOrEqual(t, f.ref[w.End].pos.X, plot.Max.X-off-0.01, "%s n=%d off=%v ends early: %v", name, n, off, w)
				for i := w.Start; i <= w.End; i++ {
					seen[i] = true
				}
			}
		}
		for i, ok := range seen {
			assert.True(t, ok, "n=%d index %d never visible", n, i)
		}
		assert.Equal(t, f.Exact(0), f.Arithmetic(0))
		assert.Equal(t, f.Exact(-m.MaxOffset), f.Arithmetic(-m.MaxOffset))
	}
}

func TestMappingIsIdempotent(t *testing.T) {
	plot := R(20, 5, 500, 205)
	values := []float32{3, -12.5, 7.25, 40, 0, 18}
	first := Values(values...)
	second := Values(values...)
	a := mapPoints([]Series{first}, plot, domainOf([]Series{first}), 4, 4)
	b := mapPoints([]Series{second}, plot, domainOf([]Series{second}), 4, 4)
	mapPoints([]Series{second}, plot, domainOf([]Series{second}), 4, 4)
	assert.Equal(t, a, b)
	for i := range first {
		assert.Equal(t, first[i].Pos(), second[i].Pos(), "index %d", i)
	}
}

func TestMappingScale(t *testing.T) {
	plot := R(0, 0, 100, 200)
	s := Values(-5, 0, 10, 5)
	series := []Series{s}
	dom := domainOf(series)
	require.Equal(t, Domain{Min: -5, Max: 10}, dom)
	m := mapPoints(series, plot, dom, 7, 4)
	// The extremes are pulled inward by half the stroke width.
	assert.Equal(t, float32(200-2), s[0].Pos().Y)
	assert.Equal(t, float32(0+2), s[2].Pos().Y)
	// (0+5)/15 truncates to 0.33.
	assert.InDelta(t, 200*0.67, s[1].Pos().Y, 0.001)
	assert.InDelta(t, 200*10.0/15, m.ZeroAxisY, 0.001)
	assert.Equal(t, float32(100)/3, m.Spacing)
}
