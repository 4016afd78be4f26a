package plot

import "math"

// Window is an inclusive index range of the reference series.
type Window struct {
	Start, End int
}

// Len returns the number of indices in the window.
func (w Window) Len() int { return w.End - w.Start + 1 }

// Contains reports whether i lies in the window.
func (w Window) Contains(i int) bool { return i >= w.Start && i <= w.End }

// windowFinder locates the indices of the reference series that cover the
// plot width at a given scroll offset.
type windowFinder struct {
	ref        Series
	plot       Rect
	spacing    float32
	maxOffset  float32
	maxVisible int
}

// edges handles the two offsets both methods treat identically. ok is false
// for any offset strictly between them.
func (f windowFinder) edges(offset float32) (w Window, ok bool) {
	n := len(f.ref)
	switch {
	case offset == 0:
		return Window{Start: 0, End: min(n-1, f.maxVisible-1)}, true
	case abs(offset) == f.maxOffset:
		return Window{Start: n - f.maxVisible, End: n - 1}, true
	}
	return Window{}, false
}

// Exact binary-searches for a point inside the visible span, then walks out
// to the first point at or beyond each edge.
func (f windowFinder) Exact(offset float32) Window {
	if w, ok := f.edges(offset); ok {
		return w
	}
	n := len(f.ref)
	w := Window{Start: 0, End: n - 1}
	if n <= f.maxVisible {
		return w
	}
	startX := f.plot.Min.X - offset
	endX := f.plot.Max.X - offset

	found := 0
	low, high := 0, n-1
	for low <= high {
		mid := int(uint(low+high) >> 1)
		x := f.ref[mid].pos.X
		if x < startX {
			low = mid + 1
		} else if x > endX {
			high = mid - 1
		} else {
			found = mid
			break
		}
	}
	for i := found; i >= 0; i-- {
		w.Start = i
		if f.ref[i].pos.X <= startX {
			break
		}
	}
	for i := found; i < n; i++ {
		w.End = i
		if f.ref[i].pos.X >= endX {
			break
		}
	}
	return w
}

// Arithmetic derives the window from the spacing alone. Points advance by
// exactly one spacing per index, so the first visible index is
// floor(|offset|/spacing) and the window is one index wider than maxVisible.
func (f windowFinder) Arithmetic(offset float32) Window {
	if w, ok := f.edges(offset); ok {
		return w
	}
	n := len(f.ref)
	if n <= f.maxVisible || f.spacing <= 0 {
		return Window{Start: 0, End: n - 1}
	}
	start := int(math.Floor(float64(abs(offset) / f.spacing)))
	end := start + f.maxVisible
	if end > n-1 {
		// float rounding right below -maxOffset
		end = n - 1
		start = min(start, n-f.maxVisible)
	}
	return Window{Start: start, End: end}
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
