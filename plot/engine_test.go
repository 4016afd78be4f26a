package plot

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedMultipleValidates(t *testing.T) {
	type testcase struct {
		name   string
		series []Series
		colors [][]Color
	}
	for _, tc := range []testcase{
		{name: "count mismatch", series: []Series{ramp(3), ramp(3)}, colors: [][]Color{{Red}}},
		{name: "unequal lengths", series: []Series{ramp(3), ramp(4)}, colors: [][]Color{{Red}, {Yellow}}},
		{name: "empty series", series: []Series{ramp(3), {}}, colors: [][]Color{{Red}, {Yellow}}},
		{name: "empty ramp", series: []Series{ramp(3)}, colors: [][]Color{{}}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, DefaultOptions())
			e := h.engine
			kept := Values(1, 2)
			e.Feed(kept)
			err := e.FeedMultiple(tc.series, tc.colors, true)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidArgument))
			require.Len(t, e.Series(), 1)
			assert.Equal(t, kept, e.Series()[0])
			assert.False(t, e.Animating())
		})
	}
}

func TestFeedMultipleEmptyClears(t *testing.T) {
	h := newHarness(t, DefaultOptions())
	e := h.engine
	e.Feed(ramp(5))
	require.NoError(t, e.FeedMultiple(nil, nil, false))
	assert.Empty(t, e.Series())
	assert.Equal(t, Window{}, e.Window())
}

func TestEmptyFeedIsIgnored(t *testing.T) {
	h := newHarness(t, DefaultOptions())
	e := h.engine
	e.Feed(ramp(5))
	e.Feed(nil)
	e.FeedWithAnimation(Series{})
	assert.Len(t, e.Series()[0], 5)
	assert.False(t, e.Animating())
}

func TestFeedIsIdempotent(t *testing.T) {
	h := newHarness(t, DefaultOptions())
	e := h.engine
	values := []float32{3, -12.5, 7.25, 40, 0, 18, 22, 9, 1}
	e.Feed(Values(values...))
	first := e.Mapping()
	var positions []Point
	positions = append(positions, e.Series()[0]...)

	e.Feed(Values(values...))
	assert.Equal(t, first, e.Mapping())
	for i, p := range e.Series()[0] {
		assert.Equal(t, positions[i].Pos(), p.Pos(), "index %d", i)
	}
}

func TestFeedTakesOwnership(t *testing.T) {
	h := newHarness(t, DefaultOptions())
	e := h.engine
	s := Series{{Value: 4}, {Value: 9}}
	e.Feed(s)
	assert.Equal(t, float32(1), s[0].Reveal(), "literal points are shown")
	assert.NotZero(t, s[1].Pos())
}

func TestLinesBuilder(t *testing.T) {
	h := newHarness(t, DefaultOptions())
	e := h.engine
	var l Lines
	err := l.Add(ramp(4), Red, Yellow).Add(ramp(4), White).Feed(e, false)
	require.NoError(t, err)
	assert.Len(t, e.Series(), 2)

	var bad Lines
	err = bad.Add(ramp(4)).Add(ramp(4), White).Feed(e, false)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, 0, bad.Len())
	assert.Len(t, e.Series(), 2)
}

func TestDirtyState(t *testing.T) {
	h := newHarness(t, DefaultOptions())
	e := h.engine
	r := &recorder{}

	// Nothing loaded: setters leave geometry alone.
	e.SetFill(true)
	e.SetLineShape(Segment)
	e.SetLineWidth(6)
	e.Render(r)
	assert.Empty(t, r.paths)

	e.Feed(ramp(10))
	assert.Equal(t, StyleDirty, e.Dirty())
	e.Render(r)
	assert.Equal(t, Clean, e.Dirty())

	e.SetDash(Dashed)
	assert.Equal(t, StyleDirty, e.Dirty())
	e.Render(r)

	e.SetLineWidth(2)
	assert.Equal(t, LayoutDirty, e.Dirty())
	e.Render(r)
	assert.Equal(t, Clean, e.Dirty())

	e.Resize(800, 400, Insets{})
	assert.Equal(t, LayoutDirty, e.Dirty())
	e.Render(r)
	assert.Equal(t, Clean, e.Dirty())
	assert.Greater(t, e.Regions().Plot.Dx(), float32(700))
}

func TestSetTextSizeScrollsHome(t *testing.T) {
	h := newHarness(t, DefaultOptions())
	e := h.engine
	e.Feed(ramp(50))
	e.ScrollBy(-300)
	before := e.Regions().YAxis.Dx()
	e.SetTextSize(16)
	assert.Zero(t, e.Offset())
	e.Render(&recorder{})
	assert.Greater(t, e.Regions().YAxis.Dx(), before)
}

func TestDefaultColors(t *testing.T) {
	h := newHarness(t, DefaultOptions())
	e := h.engine
	e.Feed(ramp(5))
	e.SetDefaultColors(Yellow)
	r := &recorder{}
	e.Render(r)
	require.Len(t, r.paths, 1)
	assert.Equal(t, []Color{Yellow, Yellow}, r.paths[0].paint.Colors)

	e.Feed(ramp(5))
	r = &recorder{}
	e.Render(r)
	assert.Equal(t, []Color{Yellow, Yellow}, r.paths[0].paint.Colors)
}

func TestNewNormalizesOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxVisible = 0
	opts.YTicks = -3
	e := New(opts, Host{})
	got := e.Options()
	assert.Equal(t, 2, got.MaxVisible)
	assert.Equal(t, 1, got.YTicks)
}
