package plot

import (
	"gioui.org/f32"
)

const (
	// HintTextSize is the size of the hint box text.
	HintTextSize = 12
	hintTextGap  = 12
	hintStroke   = 2
	axisStroke   = 1
	// hintBoxAlpha is the fixed opacity of the hint box fill.
	hintBoxAlpha = 100
	// maxTickInset is the distance of the top tick label below the region top.
	maxTickInset = 3
)

var dashPattern = [2]float32{3, 6}

func (e *Engine) ready() bool {
	return len(e.series) > 0 && e.laidOut
}

// Render draws the chart onto s. It does nothing until data is loaded and a
// size and measurer are known.
func (e *Engine) Render(s Surface) {
	e.prepare()
	if !e.ready() {
		return
	}
	plot := e.regions.Plot
	off := e.scroll.offset

	s.Save()
	s.ClipRect(R(plot.Min.X, plot.Min.Y, plot.Max.X, plot.Max.Y+e.regions.XAxis.Dy()))
	s.Translate(f32.Pt(off, 0))
	reuse := e.built && !e.builtAnimating && e.dirty == Clean && !e.anim.Running() &&
		(e.lastOffset == off || e.windowCovers(off))
	if !reuse {
		e.window = e.finder().Arithmetic(off)
		e.buildPaths()
	}
	e.drawPaths(s, off)
	if sel, ok := e.hint.Selected(); ok && e.opts.Hint {
		e.drawHint(s, sel, off)
	}
	e.drawXAxis(s)
	if e.lastOffset != off {
		e.hint.Clear()
	}
	e.lastOffset = off
	e.dirty = Clean
	s.Restore()

	e.drawYAxis(s)
}

// windowCovers reports whether the built window still spans the plot at off.
func (e *Engine) windowCovers(off float32) bool {
	ref := e.series[0]
	w := e.window
	if w.Start < 0 || w.End >= len(ref) {
		return false
	}
	return ref[w.Start].pos.X <= e.regions.Plot.Min.X-off &&
		ref[w.End].pos.X >= e.regions.Plot.Max.X-off
}

// renderedY scales a point's height above the zero axis by its reveal.
func (e *Engine) renderedY(p Point) float32 {
	z := e.mapping.ZeroAxisY
	return z - (z-p.pos.Y)*p.reveal
}

func (e *Engine) buildPaths() {
	w := e.window
	bottom := e.regions.Plot.Max.Y
	closeFill := e.opts.Fill && !e.opts.CoverLine
	for j, s := range e.series {
		p := &e.paths[j]
		p.Reset()
		for i := w.Start; i <= w.End; i++ {
			cur := s[i]
			y := e.renderedY(cur)
			if i == w.Start {
				p.MoveTo(f32.Pt(cur.pos.X, y))
				continue
			}
			switch e.opts.Shape {
			case Segment:
				p.LineTo(f32.Pt(cur.pos.X, y))
			default:
				prev := s[i-1]
				midX := (prev.pos.X + cur.pos.X) / 2
				p.CubeTo(
					f32.Pt(midX, e.renderedY(prev)),
					f32.Pt(midX, y),
					f32.Pt(cur.pos.X, y),
				)
			}
		}
		if closeFill && w.End > w.Start {
			p.LineTo(f32.Pt(s[w.End].pos.X, bottom))
			p.LineTo(f32.Pt(s[w.Start].pos.X, bottom))
			p.Close()
		}
	}
	e.built = true
	e.builtAnimating = e.anim.Running()
}

func (e *Engine) paintOf(st Style) Paint {
	p := Paint{
		Colors:   st.Ramp(),
		Gradient: e.regions.Plot,
		Width:    e.px(st.Width),
		Fill:     st.Fill,
	}
	if st.Dash == Dashed && !st.Fill {
		p.Dash = []float32{e.px(dashPattern[0]), e.px(dashPattern[1])}
	}
	return p
}

func (e *Engine) drawPaths(s Surface, off float32) {
	w := e.window
	plot := e.regions.Plot
	for j, st := range e.styles {
		path := &e.paths[j]
		if !st.Fill || !e.opts.CoverLine {
			s.DrawPath(path, e.paintOf(st))
			continue
		}
		s.Save()
		s.ClipRect(plot.Add(f32.Pt(-off, 0)))
		s.DrawPath(path, Paint{
			Colors: []Color{st.StartColor()},
			Width:  e.px(e.opts.CoverLineWidth) * 2,
		})
		s.Restore()
		area := path.Copy()
		area.LineTo(f32.Pt(e.series[j][w.End].pos.X, plot.Max.Y))
		area.LineTo(f32.Pt(e.series[j][w.Start].pos.X, plot.Max.Y))
		area.Close()
		s.DrawPath(area, e.paintOf(st))
	}
}

// drawHint draws guides through the selected point and the value box. It
// runs inside the scrolled transform.
func (e *Engine) drawHint(s Surface, sel Selection, off float32) {
	series := e.series[sel.Series]
	if sel.Index >= len(series) {
		return
	}
	cur := series[sel.Index]
	plot := e.regions.Plot
	line := e.opts.HintColor
	line.A = e.hint.Alpha()
	w := e.window
	s.DrawLine(f32.Pt(series[w.Start].pos.X, cur.pos.Y), f32.Pt(series[w.End].pos.X, cur.pos.Y), line, e.px(hintStroke))
	s.DrawLine(f32.Pt(cur.pos.X, plot.Max.Y), f32.Pt(cur.pos.X, plot.Min.Y), line, e.px(hintStroke))

	box := e.regions.Hint.Add(f32.Pt(-off, 0))
	fill := e.opts.HintColor
	fill.A = hintBoxAlpha
	s.FillRect(box, fill)
	c := box.Center()
	text := TextStyle{Color: White, Size: HintTextSize, Align: AlignCenter}
	if cur.Label != "" {
		s.DrawText("x : "+cur.Label, f32.Pt(c.X, c.Y-e.px(hintTextGap)), text)
	}
	h := e.measurer.TextHeight(HintTextSize)
	s.DrawText("y : "+FormatValue(cur.Value), f32.Pt(c.X, c.Y+e.px(hintTextGap)+h), text)
}

func (e *Engine) drawXAxis(s Surface) {
	ref := e.series[0]
	w := e.window
	x := e.regions.XAxis
	c := e.opts.TextColor
	pad := e.px(e.opts.Padding)
	s.DrawLine(f32.Pt(ref[w.Start].pos.X, x.Min.Y), f32.Pt(ref[w.End].pos.X, x.Min.Y), c, e.px(axisStroke))
	baseline := x.Min.Y + x.Dy()/2 + e.measurer.TextHeight(e.opts.TextSize)/2
	for i := w.Start; i <= w.End; i++ {
		p := ref[i]
		if p.Label == "" {
			continue
		}
		align := AlignCenter
		switch {
		case i == w.Start && w.Start == 0:
			align = AlignLeft
		case i == w.End && w.End == len(ref)-1:
			align = AlignRight
		}
		s.DrawText(p.Label, f32.Pt(p.pos.X, baseline), TextStyle{Color: c, Size: e.opts.TextSize, Align: align})
		s.DrawLine(f32.Pt(p.pos.X, x.Min.Y), f32.Pt(p.pos.X, x.Min.Y+pad), c, e.px(axisStroke))
	}
}

// tick is one Y axis mark, relative to the top of its region.
type tick struct {
	label string
	y     float32
	// baseline is where the label's baseline sits.
	baseline float32
}

// yTicks returns the evenly spaced marks from the domain minimum at the
// bottom to the maximum at the top, followed by a zero mark when 0 is
// strictly inside the domain.
func (e *Engine) yTicks(height float32) []tick {
	n := e.opts.YTicks
	dom := e.domain
	textHeight := e.measurer.TextHeight(e.opts.TextSize)
	ticks := make([]tick, 0, n+1)
	for i := 0; i < n; i++ {
		switch {
		case i == 0:
			ticks = append(ticks, tick{label: FormatTick(dom.Min), y: height, baseline: height})
		case i == n-1:
			ticks = append(ticks, tick{label: FormatTick(dom.Max), y: 0, baseline: textHeight + maxTickInset})
		default:
			v := dom.Min + dom.Span()/float32(n-1)*float32(i)
			y := height - height/float32(n-1)*float32(i)
			ticks = append(ticks, tick{label: FormatTick(v), y: y, baseline: y + textHeight/2})
		}
	}
	if dom.Min != 0 && dom.Max != 0 {
		y := e.mapping.ZeroAxisY - e.regions.YAxis.Min.Y
		ticks = append(ticks, tick{label: "0", y: y, baseline: y})
	}
	return ticks
}

// drawYAxis draws the cached label layer and, when enabled, the cached grid.
func (e *Engine) drawYAxis(s Surface) {
	yr := e.regions.YAxis
	plot := e.regions.Plot
	c := e.opts.TextColor
	stroke := e.px(axisStroke)
	if e.yLayer == nil {
		size := f32.Pt(yr.Dx(), yr.Dy())
		ticks := e.yTicks(size.Y)
		pad := e.px(e.opts.Padding)
		e.yLayer = s.Record(size, func(s Surface) {
			s.DrawLine(f32.Pt(size.X, size.Y), f32.Pt(size.X, 0), c, stroke)
			style := TextStyle{Color: c, Size: e.opts.TextSize, Align: AlignRight}
			for _, t := range ticks {
				s.DrawText(t.label, f32.Pt(size.X-pad, t.baseline), style)
				s.DrawLine(f32.Pt(size.X-pad, t.y), f32.Pt(size.X, t.y), c, stroke)
			}
		})
	}
	s.DrawLayer(e.yLayer, yr.Min)

	if e.gridLayer == nil {
		size := f32.Pt(plot.Dx(), plot.Dy())
		ticks := e.yTicks(size.Y)
		e.gridLayer = s.Record(size, func(s Surface) {
			for _, t := range ticks {
				s.DrawLine(f32.Pt(0, t.y), f32.Pt(size.X, t.y), c, stroke)
			}
		})
	}
	if e.opts.Grid {
		s.DrawLayer(e.gridLayer, plot.Min)
	}
}
