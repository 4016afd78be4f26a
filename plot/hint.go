package plot

import (
	"time"

	"gioui.org/f32"
)

const (
	// HintFadeDuration is how long the hint overlay takes to fade out.
	HintFadeDuration = 800 * time.Millisecond
	hintAlphaStart   = 100
	hintAlphaEnd     = 30
	// tapSlop is the largest displacement in either axis still counted as a tap.
	tapSlop = 2
)

// Selection identifies the point a tap resolved to.
type Selection struct {
	Index  int
	Series int
}

// resolveIndex maps a content-space X to an index. Fractions inside
// (0.4, 0.6) are too close to a bin boundary and do not resolve.
func resolveIndex(x, left, spacing float32) (int, bool) {
	if spacing <= 0 {
		return 0, false
	}
	f := (x - left) / spacing
	whole := int(f)
	switch frac := f - float32(whole); {
	case frac > 0.6:
		return whole + 1, true
	case frac < 0.4:
		return whole, true
	}
	return 0, false
}

// hitTest returns the series whose point at the resolved index is vertically
// closest to p, within slop. p is in view space; offset converts it to content
// space.
func hitTest(series []Series, plot Rect, spacing, offset, slop float32, p f32.Point) (Selection, bool) {
	if len(series) == 0 || !plot.Contains(p) {
		return Selection{}, false
	}
	idx, ok := resolveIndex(p.X-offset, plot.Min.X, spacing)
	if !ok || idx < 0 || idx >= len(series[0]) {
		return Selection{}, false
	}
	best := -1
	var bestDist float32
	for k, s := range series {
		d := abs(s[idx].pos.Y - p.Y)
		if d > slop {
			continue
		}
		if best == -1 || bestDist > d {
			best, bestDist = k, d
		}
	}
	if best == -1 {
		return Selection{}, false
	}
	return Selection{Index: idx, Series: best}, true
}

// hinter owns the selection and its fade-out.
type hinter struct {
	sched Scheduler
	sel   *Selection
	alpha int
	gen   uint64
	start time.Time
}

func newHinter(sched Scheduler) *hinter {
	return &hinter{sched: sched, alpha: hintAlphaStart}
}

// Show replaces the selection, cancelling any fade in flight.
func (h *hinter) Show(s Selection) {
	h.Clear()
	h.sel = &s
	h.start = h.sched.Now()
	h.tick(h.gen)
}

func (h *hinter) tick(gen uint64) {
	if gen != h.gen {
		return
	}
	f := progress(h.start, h.sched.Now(), HintFadeDuration)
	cur := hintAlphaStart + int(f*float32(hintAlphaEnd-hintAlphaStart))
	if cur <= hintAlphaEnd {
		h.alpha = hintAlphaStart
		h.sel = nil
		return
	}
	h.alpha = cur
	h.sched.PostDelayed(func() { h.tick(gen) }, FrameInterval)
}

// Clear drops the selection and restores the idle opacity.
func (h *hinter) Clear() {
	h.gen++
	h.sel = nil
	h.alpha = hintAlphaStart
}

// Selected returns the current selection.
func (h *hinter) Selected() (Selection, bool) {
	if h.sel == nil {
		return Selection{}, false
	}
	return *h.sel, true
}

// Alpha returns the overlay opacity on a 0-255 scale.
func (h *hinter) Alpha() uint8 { return uint8(h.alpha) }
