package plot

import "fmt"

// Lines accumulates series and their color ramps for a multi-series feed.
// The first error sticks and is returned by Feed.
type Lines struct {
	series []Series
	colors [][]Color
	err    error
}

// Add appends a series drawn with the given ramp.
func (l *Lines) Add(s Series, colors ...Color) *Lines {
	if l.err != nil {
		return l
	}
	if len(s) == 0 || len(colors) == 0 {
		l.err = fmt.Errorf("line %d needs points and colors: %w", len(l.series), ErrInvalidArgument)
		return l
	}
	l.series = append(l.series, s)
	l.colors = append(l.colors, colors)
	return l
}

// Len returns the number of series added so far.
func (l *Lines) Len() int { return len(l.series) }

// Feed hands every added series to e.
func (l *Lines) Feed(e *Engine, animate bool) error {
	if l.err != nil {
		return l.err
	}
	return e.FeedMultiple(l.series, l.colors, animate)
}
