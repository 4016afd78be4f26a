package plot

import (
	"errors"
	"image/color"
	"time"
)

// ErrInvalidArgument reports a feed whose parts do not fit together. The
// engine is left untouched when it is returned.
var ErrInvalidArgument = errors.New("invalid argument")

// Named colors used by the defaults.
var (
	Red    = color.NRGBA{R: 0xff, A: 0xff}
	Yellow = color.NRGBA{R: 0xff, G: 0xff, A: 0xff}
	White  = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	Gray   = color.NRGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}
)

// Options configures an engine at construction. Lengths are in
// density-independent pixels, text sizes in scaled points.
type Options struct {
	TextSize  float32
	TextColor Color

	Shape     LineShape
	Fill      bool
	Dash      LineDash
	LineWidth float32
	// DefaultColors is the gradient ramp of single-series feeds.
	DefaultColors []Color

	CoverLine      bool
	CoverLineWidth float32

	EdgeFeedback bool
	EdgeColor    Color

	Hint      bool
	HintColor Color
	// HintSlop is the vertical distance within which a tap selects a point.
	HintSlop float32

	Grid bool

	MaxVisible int
	YTicks     int
	Padding    float32

	// PointInterval is the traversal time per point. Zero or less reveals
	// every point at once.
	PointInterval time.Duration
	// MaxTraversal caps the traversal of one series.
	MaxTraversal time.Duration
	// Overshoot selects an easing that flings past the final value.
	Overshoot bool

	// MaxVelocity clamps fling speed in pixels per second.
	MaxVelocity float32
}

// DefaultOptions returns the stock configuration.
func DefaultOptions() Options {
	return Options{
		TextSize:       8,
		TextColor:      Gray,
		Shape:          Curve,
		Dash:           Solid,
		LineWidth:      4,
		DefaultColors:  []Color{Red, Yellow, White},
		CoverLineWidth: 5,
		EdgeFeedback:   true,
		EdgeColor:      Gray,
		Hint:           true,
		HintColor:      Red,
		HintSlop:       12,
		MaxVisible:     7,
		YTicks:         5,
		Padding:        4,
		PointInterval:  100 * time.Millisecond,
		MaxTraversal:   time.Second,
		MaxVelocity:    8000,
	}
}

// normalize fills zero fields with defaults and enforces the minimums.
func (o Options) normalize() Options {
	d := DefaultOptions()
	if o.TextSize <= 0 {
		o.TextSize = d.TextSize
	}
	if o.LineWidth <= 0 {
		o.LineWidth = d.LineWidth
	}
	if o.CoverLineWidth <= 0 {
		o.CoverLineWidth = d.CoverLineWidth
	}
	if len(o.DefaultColors) == 0 {
		o.DefaultColors = d.DefaultColors
	}
	o.DefaultColors = append([]Color(nil), o.DefaultColors...)
	if o.HintSlop <= 0 {
		o.HintSlop = d.HintSlop
	}
	if o.MaxVisible < 2 {
		o.MaxVisible = 2
	}
	if o.YTicks < 1 {
		o.YTicks = 1
	}
	if o.Padding < 0 {
		o.Padding = 0
	}
	if o.MaxTraversal < 0 {
		o.MaxTraversal = 0
	}
	if o.MaxVelocity <= 0 {
		o.MaxVelocity = d.MaxVelocity
	}
	return o
}

func (o Options) easing() Interpolator {
	if o.Overshoot {
		return Overshoot(3)
	}
	return Decelerate
}
