package plot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraversal(t *testing.T) {
	type testcase struct {
		name       string
		n          int
		maxVisible int
		interval   time.Duration
		expected   time.Duration
	}
	for _, tc := range []testcase{
		{name: "instant", n: 5, maxVisible: 7, interval: 0, expected: 0},
		{name: "negative interval", n: 5, maxVisible: 7, interval: -time.Millisecond, expected: 0},
		{name: "fits", n: 5, maxVisible: 7, interval: 100 * time.Millisecond, expected: 400 * time.Millisecond},
		{name: "fits but over budget", n: 7, maxVisible: 7, interval: 300 * time.Millisecond, expected: time.Second},
		{name: "scrolls", n: 8, maxVisible: 7, interval: 10 * time.Millisecond, expected: time.Second},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Traversal(tc.n, tc.maxVisible, tc.interval, time.Second))
		})
	}
	assert.Equal(t, 400*time.Millisecond+2*(400*time.Millisecond/3)+816*time.Millisecond, TotalDuration(400*time.Millisecond, 3))
	assert.Zero(t, TotalDuration(time.Second, 0))
}

func TestEasings(t *testing.T) {
	for name, ease := range map[string]Interpolator{
		"linear":     Linear,
		"decelerate": Decelerate,
		"overshoot":  Overshoot(3),
	} {
		assert.InDelta(t, 0, ease(0), 1e-6, name)
		assert.InDelta(t, 1, ease(1), 1e-6, name)
	}
	for f := float32(0); f <= 1; f += 0.05 {
		v := Decelerate(f)
		assert.True(t, v >= 0 && v <= 1, "decelerate(%v) = %v", f, v)
	}
	assert.Greater(t, Overshoot(3)(0.7), float32(1))
}

func TestRevealRun(t *testing.T) {
	h := newHarness(t, DefaultOptions())
	e := h.engine
	e.FeedWithAnimation(Values(4, 8, 15, 16, 23))
	require.True(t, e.Animating())
	for i, p := range e.Series()[0] {
		assert.Zero(t, p.Reveal(), "index %d", i)
	}

	h.clock.AdvanceBy(200 * time.Millisecond)
	s := e.Series()[0]
	assert.Greater(t, s[0].Reveal(), float32(0))
	assert.Greater(t, s[0].Reveal(), s[2].Reveal())
	assert.Zero(t, s[4].Reveal())

	// 400ms traversal, 800ms reveal and one frame of slack.
	h.clock.AdvanceBy(1200 * time.Millisecond)
	assert.False(t, e.Animating())
	assert.Zero(t, h.clock.Pending())
	for i, p := range e.Series()[0] {
		assert.Equal(t, float32(1), p.Reveal(), "index %d", i)
	}
}

func TestRevealSkipsNearZero(t *testing.T) {
	h := newHarness(t, DefaultOptions())
	e := h.engine
	e.FeedWithAnimation(Values(0.05, 10, -0.9))
	s := e.Series()[0]
	assert.Equal(t, float32(1), s[0].Reveal())
	_, tweening := e.anim.points[pointKey{series: 0, index: 0}]
	assert.False(t, tweening)
	assert.Zero(t, s[1].Reveal())

	h.clock.AdvanceBy(time.Second)
	_, tweening = e.anim.points[pointKey{series: 0, index: 2}]
	assert.False(t, tweening, "|trunc(-0.9)| is 0")
	assert.Equal(t, float32(1), s[2].Reveal())
}

func TestRevealStaggersSeries(t *testing.T) {
	h := newHarness(t, DefaultOptions())
	e := h.engine
	err := e.FeedMultiple([]Series{ramp(5), ramp(5), ramp(5)}, [][]Color{{Red}, {Yellow}, {White}}, true)
	require.NoError(t, err)

	// Series k starts k*400/3 ms in.
	h.clock.AdvanceBy(100 * time.Millisecond)
	s := e.Series()
	assert.Greater(t, s[0][0].Reveal(), float32(0))
	assert.Zero(t, s[1][0].Reveal())

	h.clock.AdvanceBy(100 * time.Millisecond)
	assert.Greater(t, s[1][0].Reveal(), float32(0))
	assert.Zero(t, s[2][0].Reveal())

	h.clock.AdvanceBy(100 * time.Millisecond)
	assert.Greater(t, s[2][0].Reveal(), float32(0))

	h.clock.AdvanceBy(2 * time.Second)
	assert.False(t, e.Animating())
	assert.Zero(t, h.clock.Pending())
}

func TestRevealInstantInterval(t *testing.T) {
	opts := DefaultOptions()
	opts.PointInterval = 0
	h := newHarness(t, opts)
	e := h.engine
	e.FeedWithAnimation(Values(10, 20, 30))
	h.clock.AdvanceBy(400 * time.Millisecond)
	s := e.Series()[0]
	for i := range s {
		assert.Equal(t, s[0].Reveal(), s[i].Reveal(), "every point starts together")
		assert.True(t, s[i].Reveal() > 0 && s[i].Reveal() < 1)
	}
	h.clock.AdvanceBy(450 * time.Millisecond)
	assert.False(t, e.Animating())
	assert.Equal(t, float32(1), s[2].Reveal())
}

func TestFeedCancelsRun(t *testing.T) {
	h := newHarness(t, DefaultOptions())
	e := h.engine
	old := Values(5, 10, 15, 20)
	e.FeedWithAnimation(old)
	h.clock.AdvanceBy(100 * time.Millisecond)
	require.True(t, e.Animating())

	fresh := Values(1, 2, 3)
	e.Feed(fresh)
	assert.False(t, e.Animating())
	assert.Zero(t, h.clock.Pending())
	for i := range old {
		assert.Equal(t, float32(1), old[i].Reveal(), "old index %d", i)
	}
	for i := range fresh {
		assert.Equal(t, float32(1), fresh[i].Reveal(), "new index %d", i)
	}
	h.clock.AdvanceBy(2 * time.Second)
	for i := range fresh {
		assert.Equal(t, float32(1), fresh[i].Reveal(), "new index %d", i)
	}
}

func TestReplay(t *testing.T) {
	h := newHarness(t, DefaultOptions())
	e := h.engine
	e.Replay()
	assert.False(t, e.Animating())
	assert.Zero(t, h.clock.Pending())

	e.Feed(Values(5, 10, 15))
	e.Replay()
	assert.True(t, e.Animating())
	h.clock.AdvanceBy(50 * time.Millisecond)
	e.Replay()
	assert.Zero(t, e.Series()[0][2].Reveal())
	h.clock.AdvanceBy(2 * time.Second)
	assert.False(t, e.Animating())
	assert.Zero(t, h.clock.Pending())
}
