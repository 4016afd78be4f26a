package plot

import (
	"math"
	"time"
)

const (
	// PointRevealDuration is how long one point takes to grow in.
	PointRevealDuration = 800 * time.Millisecond
	// FrameInterval is the period of every recurring tick.
	FrameInterval = 16 * time.Millisecond
	// nextSeriesDivisor staggers series: each starts after 1/nextSeriesDivisor
	// of the previous one's traversal.
	nextSeriesDivisor = 3
)

// Interpolator maps linear progress in [0,1] to eased progress.
type Interpolator func(t float32) float32

// Linear is the identity easing.
func Linear(t float32) float32 { return t }

// Decelerate eases out cubically and stays within [0,1].
func Decelerate(t float32) float32 {
	u := 1 - t
	return 1 - u*u*u
}

// Overshoot returns an easing that flings past 1 and settles back.
func Overshoot(tension float32) Interpolator {
	return func(t float32) float32 {
		t -= 1
		return t*t*((tension+1)*t+tension) + 1
	}
}

// progress returns elapsed/d clamped to [0,1]. A zero duration is complete.
func progress(start, now time.Time, d time.Duration) float32 {
	if d <= 0 {
		return 1
	}
	f := float32(now.Sub(start)) / float32(d)
	return min(max(f, 0), 1)
}

// Traversal returns how long one series takes to sweep its visible window.
func Traversal(n, maxVisible int, interval, budget time.Duration) time.Duration {
	if interval <= 0 {
		return 0
	}
	if maxVisible < n {
		return budget
	}
	return min(budget, interval*time.Duration(n-1))
}

// TotalDuration is the deadline of a reveal run: the first series' traversal,
// the stagger of every later series, the last point's reveal and one frame of
// slack.
func TotalDuration(traversal time.Duration, seriesCount int) time.Duration {
	if seriesCount == 0 {
		return 0
	}
	return traversal + traversal/nextSeriesDivisor*time.Duration(seriesCount-1) + PointRevealDuration + FrameInterval
}

type pointKey struct {
	series, index int
}

// driver sweeps one series' window and starts point tweens as it passes.
type driver struct {
	series   int
	from, to int
	start    time.Time
	dur      time.Duration
}

type animator struct {
	sched     Scheduler
	ease      Interpolator
	interval  time.Duration
	budget    time.Duration
	series    []Series
	window    Window
	traversal time.Duration

	epoch   uint64
	running bool
	start   time.Time
	total   time.Duration
	active  int
	drivers []driver
	// points is the reveal registry; a key is present while its tween runs.
	points map[pointKey]time.Time
}

func newAnimator(sched Scheduler, ease Interpolator) *animator {
	return &animator{
		sched:  sched,
		ease:   ease,
		points: make(map[pointKey]time.Time),
	}
}

// guard wraps f so it only runs if no cancellation happened since.
func (a *animator) guard(f func()) func() {
	epoch := a.epoch
	return func() {
		if a.epoch != epoch {
			return
		}
		f()
	}
}

// Start hides every point in w and begins revealing series in key order.
func (a *animator) Start(series []Series, w Window, maxVisible int) {
	a.cancel(false)
	if len(series) == 0 || len(series[0]) == 0 {
		return
	}
	a.series = series
	a.window = w
	a.traversal = Traversal(len(series[0]), maxVisible, a.interval, a.budget)
	a.total = TotalDuration(a.traversal, len(series))
	a.start = a.sched.Now()
	a.active = 0
	a.running = true
	for i := w.Start; i <= w.End; i++ {
		for _, s := range series {
			s[i].reveal = 0
		}
	}
	a.startSeriesFrom(0)
	a.tick()
}

func (a *animator) startSeriesFrom(k int) {
	a.startSeries(k)
	if k >= len(a.series)-1 {
		return
	}
	a.sched.PostDelayed(a.guard(func() {
		a.active = k + 1
		a.startSeriesFrom(k + 1)
	}), a.traversal/nextSeriesDivisor)
}

func (a *animator) startSeries(k int) {
	if a.traversal <= 0 {
		for i := a.window.Start; i <= a.window.End; i++ {
			a.startPoint(k, i)
		}
		a.advance(a.sched.Now())
		return
	}
	a.drivers = append(a.drivers, driver{
		series: k,
		from:   a.window.Start,
		to:     a.window.End,
		start:  a.sched.Now(),
		dur:    a.traversal,
	})
}

// startPoint begins the reveal tween of one point unless it is already
// shown or animating. Values that truncate to 0 skip straight to shown.
func (a *animator) startPoint(k, i int) {
	p := &a.series[k][i]
	key := pointKey{series: k, index: i}
	if _, ok := a.points[key]; ok || p.reveal > 0 {
		return
	}
	if math.Abs(math.Trunc(float64(p.Value))) < 0.1 {
		p.reveal = 1
		return
	}
	a.points[key] = a.sched.Now()
}

// tick is the recurring frame callback. It stops rescheduling itself once the
// run's deadline passes.
func (a *animator) tick() {
	now := a.sched.Now()
	a.advance(now)
	if now.Sub(a.start) > a.total {
		a.finish()
		return
	}
	a.sched.PostDelayed(a.guard(a.tick), FrameInterval)
}

// advance applies the state of every driver and point tween at now.
func (a *animator) advance(now time.Time) {
	live := a.drivers[:0]
	for _, d := range a.drivers {
		f := progress(d.start, now, d.dur)
		reached := d.from + int(f*float32(d.to-d.from))
		if f >= 1 {
			reached = d.to
		}
		for i := d.from; i <= reached; i++ {
			a.startPoint(d.series, i)
		}
		if f < 1 {
			live = append(live, d)
		}
	}
	a.drivers = live
	for key, start := range a.points {
		f := progress(start, now, PointRevealDuration)
		a.series[key.series][key.index].reveal = a.ease(f)
		if f >= 1 {
			a.series[key.series][key.index].reveal = 1
			delete(a.points, key)
		}
	}
}

// finish ends a run that reached its deadline, settling anything the frame
// quantization left behind.
func (a *animator) finish() {
	a.running = false
	a.epoch++
	a.drivers = a.drivers[:0]
	clear(a.points)
	a.revealAll()
}

// cancel stops every driver and point tween. With restore set, every point
// of the current series is forced fully visible.
func (a *animator) cancel(restore bool) {
	a.epoch++
	a.running = false
	a.drivers = a.drivers[:0]
	clear(a.points)
	if restore {
		a.revealAll()
	}
}

func (a *animator) revealAll() {
	for _, s := range a.series {
		for i := range s {
			s[i].reveal = 1
		}
	}
}

// Running reports whether a reveal run is in progress.
func (a *animator) Running() bool { return a.running }
