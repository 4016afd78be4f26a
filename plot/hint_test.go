package plot

import (
	"testing"
	"time"

	"gioui.org/f32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveIndex(t *testing.T) {
	type testcase struct {
		fraction float32
		expected int
		ok       bool
	}
	for _, tc := range []testcase{
		{fraction: 0, expected: 0, ok: true},
		{fraction: 2.2, expected: 2, ok: true},
		{fraction: 2.39, expected: 2, ok: true},
		{fraction: 2.45, ok: false},
		{fraction: 2.5, ok: false},
		{fraction: 2.55, ok: false},
		{fraction: 2.65, expected: 3, ok: true},
		{fraction: 2.95, expected: 3, ok: true},
	} {
		idx, ok := resolveIndex(10+tc.fraction*40, 10, 40)
		assert.Equal(t, tc.ok, ok, "fraction %v", tc.fraction)
		if tc.ok {
			assert.Equal(t, tc.expected, idx, "fraction %v", tc.fraction)
		}
	}
}

func TestHitTestPicksClosestSeries(t *testing.T) {
	plot := R(10, 0, 250, 100)
	series := []Series{Values(0, 10, 20, 30, 40), Values(0, 12, 18, 35, 40), Values(0, 10, 20, 30, 40)}
	m := mapPoints(series, plot, domainOf(series), 7, 0)
	at := func(i int, y float32) f32.Point { return f32.Pt(plot.Min.X+m.Spacing*float32(i), y) }

	sel, ok := hitTest(series, plot, m.Spacing, 0, 12, at(1, series[1][1].Pos().Y))
	require.True(t, ok)
	assert.Equal(t, Selection{Index: 1, Series: 1}, sel)

	// Series 0 and 2 coincide; the first one wins.
	sel, ok = hitTest(series, plot, m.Spacing, 0, 12, at(3, series[0][3].Pos().Y))
	require.True(t, ok)
	assert.Equal(t, Selection{Index: 3, Series: 0}, sel)

	_, ok = hitTest(series, plot, m.Spacing, 0, 2, at(3, series[0][3].Pos().Y+5))
	assert.False(t, ok, "outside the slop")

	_, ok = hitTest(series, plot, m.Spacing, 0, 12, f32.Pt(plot.Max.X+1, 50))
	assert.False(t, ok, "outside the plot")
}

func TestHitTestScrolled(t *testing.T) {
	plot := R(0, 0, 300, 100)
	series := []Series{ramp(20)}
	m := mapPoints(series, plot, domainOf(series), 4, 0)
	require.Equal(t, float32(100), m.Spacing)
	// At offset -250 index 5 sits at view X 250.
	sel, ok := hitTest(series, plot, m.Spacing, -250, 12, f32.Pt(250, series[0][5].Pos().Y))
	require.True(t, ok)
	assert.Equal(t, 5, sel.Index)
}

func tapAt(h *harness, p f32.Point, at time.Duration) {
	h.pointer(PointerDown, 0, p.X, p.Y, at)
	h.pointer(PointerUp, 0, p.X, p.Y, at+10*time.Millisecond)
}

func TestTapSelection(t *testing.T) {
	h := newHarness(t, DefaultOptions())
	e := h.engine
	e.Feed(ramp(7))
	plot := e.Regions().Plot
	spacing := e.Mapping().Spacing
	s := e.Series()[0]

	tapAt(h, f32.Pt(plot.Min.X+spacing*2.45, s[2].Pos().Y), 0)
	_, ok := e.Selected()
	assert.False(t, ok, "2.45 lies in the ambiguous band")

	tapAt(h, f32.Pt(plot.Min.X+spacing*2.65, s[3].Pos().Y), 100*time.Millisecond)
	sel, ok := e.Selected()
	require.True(t, ok)
	assert.Equal(t, Selection{Index: 3, Series: 0}, sel)
	assert.Equal(t, uint8(100), e.HintAlpha())
}

func TestHintFades(t *testing.T) {
	h := newHarness(t, DefaultOptions())
	e := h.engine
	e.Feed(ramp(7))
	plot := e.Regions().Plot
	spacing := e.Mapping().Spacing
	s := e.Series()[0]

	tapAt(h, f32.Pt(plot.Min.X+spacing*3, s[3].Pos().Y), 0)
	_, ok := e.Selected()
	require.True(t, ok)

	h.clock.AdvanceBy(400 * time.Millisecond)
	assert.Equal(t, uint8(65), e.HintAlpha())

	// A second tap supersedes the first fade.
	tapAt(h, f32.Pt(plot.Min.X+spacing*5, s[5].Pos().Y), 400*time.Millisecond)
	sel, ok := e.Selected()
	require.True(t, ok)
	assert.Equal(t, 5, sel.Index)
	assert.Equal(t, uint8(100), e.HintAlpha())

	h.clock.AdvanceBy(400 * time.Millisecond)
	assert.Equal(t, uint8(65), e.HintAlpha())

	h.clock.AdvanceBy(400 * time.Millisecond)
	_, ok = e.Selected()
	assert.False(t, ok)
	assert.Equal(t, uint8(100), e.HintAlpha())
	assert.Zero(t, h.clock.Pending())
}

func TestHintDisabled(t *testing.T) {
	opts := DefaultOptions()
	opts.Hint = false
	h := newHarness(t, opts)
	e := h.engine
	e.Feed(ramp(7))
	s := e.Series()[0]
	tapAt(h, s[3].Pos(), 0)
	_, ok := e.Selected()
	assert.False(t, ok)

	e.SetHintColor(Yellow)
	tapAt(h, s[3].Pos(), 100*time.Millisecond)
	_, ok = e.Selected()
	assert.True(t, ok)
}
