package physics

import (
	"math"
	"time"
)

const (
	// DefaultFriction is the decay time constant of a fling.
	DefaultFriction = 325 * time.Millisecond
	// DefaultStopVelocity is the speed, in pixels per second, below which a
	// fling is considered finished.
	DefaultStopVelocity = 50
)

// Flinger integrates a decaying horizontal fling. Positions are whole pixels
// and unbounded; callers clamp.
type Flinger struct {
	Friction     time.Duration
	StopVelocity float32

	start    time.Time
	startX   int
	v0       float64
	duration time.Duration
	x        int
	velocity float32
	finished bool
}

// NewFlinger returns a finished flinger with the default constants.
func NewFlinger() *Flinger {
	return &Flinger{
		Friction:     DefaultFriction,
		StopVelocity: DefaultStopVelocity,
		finished:     true,
	}
}

// Fling starts a new fling at startX moving at velocityX pixels per second.
func (f *Flinger) Fling(now time.Time, startX, velocityX int) {
	f.start = now
	f.startX = startX
	f.x = startX
	f.v0 = float64(velocityX)
	f.velocity = float32(math.Abs(f.v0))
	f.finished = false
	f.duration = 0
	if speed := math.Abs(f.v0); speed > float64(f.StopVelocity) && f.StopVelocity > 0 {
		f.duration = time.Duration(float64(f.Friction) * math.Log(speed/float64(f.StopVelocity)))
	}
}

// Abort stops the fling where it is.
func (f *Flinger) Abort() {
	f.finished = true
	f.velocity = 0
}

// Finished reports whether the fling has come to rest.
func (f *Flinger) Finished() bool { return f.finished }

// Compute advances the fling to now. It reports true while the fling is
// live, including the call that lands on the final position.
func (f *Flinger) Compute(now time.Time) bool {
	if f.finished {
		return false
	}
	elapsed := now.Sub(f.start)
	if elapsed >= f.duration {
		elapsed = f.duration
		f.finished = true
	}
	tau := f.Friction.Seconds()
	decay := 0.0
	if tau > 0 {
		decay = math.Exp(-elapsed.Seconds() / tau)
	}
	f.x = f.startX + int(math.Round(f.v0*tau*(1-decay)))
	f.velocity = float32(math.Abs(f.v0 * decay))
	if f.finished {
		f.velocity = 0
	}
	return true
}

// X returns the current position.
func (f *Flinger) X() int { return f.x }

// Velocity returns the current speed in pixels per second.
func (f *Flinger) Velocity() float32 { return f.velocity }
