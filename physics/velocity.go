// Package physics provides the default motion helpers for scrolling charts:
// a pointer velocity estimator and an integer-position fling integrator.
package physics

import (
	"time"

	"gioui.org/f32"
)

const (
	// horizon bounds how old a sample may be and still count.
	horizon = 100 * time.Millisecond
	// maxSamples bounds the sample history.
	maxSamples = 20
)

type sample struct {
	t   time.Time
	pos f32.Point
}

// Tracker estimates pointer velocity from recent motion samples.
type Tracker struct {
	// Max clamps the magnitude of estimates, in pixels per second. Zero means
	// unclamped.
	Max     float32
	samples []sample
}

// NewTracker returns a tracker whose estimates never exceed maxVelocity.
func NewTracker(maxVelocity float32) *Tracker {
	return &Tracker{Max: maxVelocity}
}

// Add records the pointer at pos at time t.
func (tr *Tracker) Add(t time.Time, pos f32.Point) {
	if n := len(tr.samples); n > 0 && t.Before(tr.samples[n-1].t) {
		tr.samples = tr.samples[:0]
	}
	tr.samples = append(tr.samples, sample{t: t, pos: pos})
	if len(tr.samples) > maxSamples {
		tr.samples = append(tr.samples[:0], tr.samples[len(tr.samples)-maxSamples:]...)
	}
}

// Reset forgets every sample.
func (tr *Tracker) Reset() {
	tr.samples = tr.samples[:0]
}

// VelocityX returns the least-squares slope of X over the samples inside the
// horizon of the newest one, in pixels per second.
func (tr *Tracker) VelocityX() float32 {
	n := len(tr.samples)
	if n < 2 {
		return 0
	}
	newest := tr.samples[n-1].t
	first := n - 1
	for first > 0 && newest.Sub(tr.samples[first-1].t) <= horizon {
		first--
	}
	recent := tr.samples[first:]
	if len(recent) < 2 {
		return 0
	}
	var sumT, sumX, sumTT, sumTX float64
	for _, s := range recent {
		t := s.t.Sub(newest).Seconds()
		x := float64(s.pos.X)
		sumT += t
		sumX += x
		sumTT += t * t
		sumTX += t * x
	}
	count := float64(len(recent))
	denom := count*sumTT - sumT*sumT
	if denom == 0 {
		return 0
	}
	v := float32((count*sumTX - sumT*sumX) / denom)
	if tr.Max > 0 {
		v = min(max(v, -tr.Max), tr.Max)
	}
	return v
}
