package plot

import (
	"fmt"
	"log/slog"

	"gioui.org/f32"

	"git.sr.ht/~whereswaldon/suitlines/physics"
)

// Dirty records how much derived state the next render must rebuild.
type Dirty uint8

const (
	Clean Dirty = iota
	// StyleDirty rebuilds paths only.
	StyleDirty
	// LayoutDirty recomputes regions and point positions.
	LayoutDirty
	// DataDirty additionally follows a change of the series themselves.
	DataDirty
)

func (d Dirty) String() string {
	switch d {
	case Clean:
		return "clean"
	case StyleDirty:
		return "style"
	case LayoutDirty:
		return "layout"
	case DataDirty:
		return "data"
	default:
		return "unknown"
	}
}

// Host bundles the collaborators an engine needs from its platform. Nil
// fields get defaults: a Timeline at the zero time, the physics package's
// tracker and flinger, no edge feedback and the default logger.
type Host struct {
	Scheduler Scheduler
	Velocity  VelocityTracker
	Flinger   Flinger
	Edges     EdgeFeedback
	Logger    *slog.Logger
}

type noEdges struct{}

func (noEdges) Pull(Edge, float32)     {}
func (noEdges) Absorb(Edge, float32)   {}
func (noEdges) Release()               {}
func (noEdges) SetOverlayTint(c Color) {}

// Engine is one interactive chart. It is not safe for concurrent use; every
// method and every scheduled callback must run on the host's UI thread.
type Engine struct {
	opts  Options
	log   *slog.Logger
	sched Scheduler
	edges EdgeFeedback

	scroll *scroller
	anim   *animator
	hint   *hinter

	base    Style
	series  []Series
	styles  []Style
	domain  Domain
	regions Regions
	mapping Mapping
	window  Window

	width, height float32
	insets        Insets
	measurer      Measurer
	density       float32
	laidOut       bool

	dirty Dirty
	paths []Path
	built bool
	// builtAnimating records that the paths hold mid-animation reveals.
	builtAnimating bool
	lastOffset     float32

	yLayer    Layer
	gridLayer Layer
}

// New returns an empty engine.
func New(opts Options, host Host) *Engine {
	opts = opts.normalize()
	if host.Scheduler == nil {
		host.Scheduler = &Timeline{}
	}
	if host.Velocity == nil {
		host.Velocity = physics.NewTracker(opts.MaxVelocity)
	}
	if host.Flinger == nil {
		host.Flinger = physics.NewFlinger()
	}
	if host.Edges == nil {
		host.Edges = noEdges{}
	}
	if host.Logger == nil {
		host.Logger = slog.Default().With("component", "plot")
	}
	e := &Engine{
		opts:    opts,
		log:     host.Logger,
		sched:   host.Scheduler,
		edges:   host.Edges,
		scroll:  newScroller(host.Scheduler, host.Velocity, host.Flinger, host.Edges),
		anim:    newAnimator(host.Scheduler, opts.easing()),
		hint:    newHinter(host.Scheduler),
		density: 1,
		base: Style{
			Colors: opts.DefaultColors,
			Width:  opts.LineWidth,
			Fill:   opts.Fill,
			Dash:   opts.Dash,
		},
	}
	e.anim.interval = opts.PointInterval
	e.anim.budget = opts.MaxTraversal
	e.scroll.feedback = opts.EdgeFeedback
	e.edges.SetOverlayTint(opts.EdgeColor)
	return e
}

func (e *Engine) mark(d Dirty) { e.dirty = max(e.dirty, d) }

// Feed replaces all data with a single series drawn in the default colors.
// An empty series is ignored.
func (e *Engine) Feed(s Series) {
	e.feedSingle(s, false)
}

// FeedWithAnimation is Feed followed by the reveal animation.
func (e *Engine) FeedWithAnimation(s Series) {
	e.feedSingle(s, true)
}

func (e *Engine) feedSingle(s Series, animate bool) {
	if len(s) == 0 {
		e.log.Debug("ignoring empty feed")
		return
	}
	e.feed([]Series{s}, []Style{e.base.clone()}, animate)
}

// FeedMultiple replaces all data with one series per color ramp. Every series
// must be non-empty and of equal length, and every ramp non-empty. An empty
// series list together with an empty ramp list clears the chart.
func (e *Engine) FeedMultiple(series []Series, colors [][]Color, animate bool) error {
	if err := validateFeed(series, colors); err != nil {
		e.log.Warn("rejecting feed", "error", err)
		return err
	}
	styles := make([]Style, len(colors))
	for i, c := range colors {
		styles[i] = e.base.clone()
		styles[i].Colors = append([]Color(nil), c...)
	}
	e.feed(series, styles, animate)
	return nil
}

func validateFeed(series []Series, colors [][]Color) error {
	if len(series) != len(colors) {
		return fmt.Errorf("%d series with %d color sets: %w", len(series), len(colors), ErrInvalidArgument)
	}
	for i, s := range series {
		if len(s) == 0 {
			return fmt.Errorf("series %d is empty: %w", i, ErrInvalidArgument)
		}
		if len(s) != len(series[0]) {
			return fmt.Errorf("series %d has %d points, series 0 has %d: %w", i, len(s), len(series[0]), ErrInvalidArgument)
		}
		if len(colors[i]) == 0 {
			return fmt.Errorf("series %d has no colors: %w", i, ErrInvalidArgument)
		}
	}
	return nil
}

// feed takes ownership of series, which has already been validated.
func (e *Engine) feed(series []Series, styles []Style, animate bool) {
	e.cancelAll()
	e.reset()
	e.mark(DataDirty)
	if len(series) == 0 {
		e.log.Debug("cleared chart")
		return
	}
	for _, s := range series {
		for i := range s {
			s[i].reveal = 1
		}
	}
	e.series = series
	e.styles = styles
	e.anim.series = series
	e.domain = domainOf(series)
	e.paths = make([]Path, len(series))
	e.prepare()
	e.log.Debug("fed series", "series", len(series), "points", len(series[0]), "animate", animate, "min", e.domain.Min, "max", e.domain.Max)
	if animate {
		e.startReveal()
	}
}

// Replay re-runs the reveal animation on the loaded data from the current
// scroll position.
func (e *Engine) Replay() {
	if len(e.series) == 0 {
		e.log.Debug("ignoring replay without data")
		return
	}
	e.cancelAnimations()
	e.prepare()
	e.startReveal()
}

func (e *Engine) startReveal() {
	w := e.finder().Exact(e.scroll.offset)
	e.anim.Start(e.series, w, e.opts.MaxVisible)
	e.mark(StyleDirty)
}

// Cancel stops every animation, fling and hint fade, leaving every point
// fully revealed.
func (e *Engine) Cancel() {
	e.cancelAnimations()
}

// cancelAnimations stops everything scheduled without discarding data.
func (e *Engine) cancelAnimations() {
	e.sched.CancelAll()
	e.anim.cancel(true)
	e.hint.Clear()
	e.scroll.stopFling()
	for i := range e.paths {
		e.paths[i].Reset()
	}
	e.built = false
}

// cancelAll is the total cancellation preceding a data change.
func (e *Engine) cancelAll() {
	e.cancelAnimations()
	e.scroll.Reset()
	e.edges.Release()
}

func (e *Engine) reset() {
	e.dropLayers()
	e.series = nil
	e.styles = nil
	e.paths = nil
	e.mapping = Mapping{}
	e.window = Window{}
	e.domain = Domain{}
	e.lastOffset = 0
	e.scroll.maxOffset = 0
	e.anim.series = nil
}

func (e *Engine) dropLayers() {
	e.yLayer = nil
	e.gridLayer = nil
}

func (e *Engine) px(dp float32) float32 { return dp * e.density }

// prepare brings regions and positions up to date with the dirty state.
func (e *Engine) prepare() {
	if e.dirty < LayoutDirty || len(e.series) == 0 {
		return
	}
	if e.measurer == nil || e.width <= 0 || e.height <= 0 {
		e.laidOut = false
		return
	}
	e.regions = ComputeRegions(LayoutInput{
		Width:    e.width,
		Height:   e.height,
		Insets:   e.insets,
		Padding:  e.px(e.opts.Padding),
		Domain:   e.domain,
		Measurer: e.measurer,
		TextSize: e.opts.TextSize,
	})
	e.mapping = mapPoints(e.series, e.regions.Plot, e.domain, e.opts.MaxVisible, e.px(e.base.Width))
	e.scroll.maxOffset = e.mapping.MaxOffset
	e.scroll.plotHeight = e.regions.Plot.Dy()
	e.scroll.offset = max(e.scroll.offset, -e.mapping.MaxOffset)
	e.dropLayers()
	e.laidOut = true
	e.dirty = StyleDirty
}

func (e *Engine) finder() windowFinder {
	var ref Series
	if len(e.series) > 0 {
		ref = e.series[0]
	}
	return windowFinder{
		ref:        ref,
		plot:       e.regions.Plot,
		spacing:    e.mapping.Spacing,
		maxOffset:  e.mapping.MaxOffset,
		maxVisible: e.opts.MaxVisible,
	}
}

// Resize updates the container geometry.
func (e *Engine) Resize(width, height float32, insets Insets) {
	if width == e.width && height == e.height && insets == e.insets {
		return
	}
	e.width, e.height, e.insets = width, height, insets
	e.mark(LayoutDirty)
}

// SetMeasurer replaces the text measurer, for example after a font change.
func (e *Engine) SetMeasurer(m Measurer) {
	e.measurer = m
	e.dropLayers()
	e.mark(LayoutDirty)
}

// SetDensity sets the number of pixels per density-independent pixel.
func (e *Engine) SetDensity(pxPerDp float32) {
	if pxPerDp <= 0 || pxPerDp == e.density {
		return
	}
	e.density = pxPerDp
	e.mark(LayoutDirty)
}

// HandlePointer feeds one pointer event to the scroll controller. Input is
// ignored while the reveal animation runs or no data is loaded.
func (e *Engine) HandlePointer(ev PointerEvent) {
	if len(e.series) == 0 || e.anim.Running() {
		e.scroll.Abandon()
		return
	}
	e.prepare()
	if !e.laidOut {
		return
	}
	pos, tap := e.scroll.Handle(ev)
	if tap && e.opts.Hint {
		e.tap(pos)
	}
}

func (e *Engine) tap(p f32.Point) {
	sel, ok := hitTest(e.series, e.regions.Plot, e.mapping.Spacing, e.scroll.offset, e.px(e.opts.HintSlop), p)
	if !ok {
		return
	}
	e.log.Debug("selected point", "series", sel.Series, "index", sel.Index)
	e.hint.Show(sel)
}

// ScrollBy moves the viewport by dx pixels without a gesture.
func (e *Engine) ScrollBy(dx float32) {
	if len(e.series) == 0 || e.anim.Running() {
		return
	}
	e.prepare()
	e.scroll.stopFling()
	e.scroll.scrollBy(dx)
}

// Offset returns the current scroll offset, in [-MaxOffset, 0].
func (e *Engine) Offset() float32 { return e.scroll.offset }

// ScrollState returns the phase of the scroll controller.
func (e *Engine) ScrollState() ScrollState { return e.scroll.state }

// Mapping returns the output of the last coordinate mapping.
func (e *Engine) Mapping() Mapping { return e.mapping }

// Regions returns the current layout.
func (e *Engine) Regions() Regions { return e.regions }

// Domain returns the shared Y extent.
func (e *Engine) Domain() Domain { return e.domain }

// Window returns the visible window at the current offset.
func (e *Engine) Window() Window {
	if len(e.series) == 0 {
		return Window{}
	}
	return e.finder().Arithmetic(e.scroll.offset)
}

// Series returns the loaded series. They must not be modified.
func (e *Engine) Series() []Series { return e.series }

// Animating reports whether the reveal animation runs.
func (e *Engine) Animating() bool { return e.anim.Running() }

// Selected returns the point the hint overlay annotates.
func (e *Engine) Selected() (Selection, bool) { return e.hint.Selected() }

// HintAlpha returns the hint overlay opacity on a 0-255 scale.
func (e *Engine) HintAlpha() uint8 { return e.hint.Alpha() }

// Dirty returns what the next render rebuilds.
func (e *Engine) Dirty() Dirty { return e.dirty }

// Options returns the current configuration.
func (e *Engine) Options() Options {
	o := e.opts
	o.DefaultColors = append([]Color(nil), o.DefaultColors...)
	return o
}

// Style setters. Those that change geometry mark the next render dirty; none
// of them touch geometry while no data is loaded.

func (e *Engine) hasData() bool { return len(e.series) > 0 }

func (e *Engine) restyle(f func(s *Style)) {
	f(&e.base)
	for i := range e.styles {
		f(&e.styles[i])
	}
	if e.hasData() {
		e.mark(StyleDirty)
	}
}

// SetLineShape selects curves or straight segments.
func (e *Engine) SetLineShape(shape LineShape) {
	e.opts.Shape = shape
	if e.hasData() {
		e.mark(StyleDirty)
	}
}

// SetFill selects the fill form over the stroke form.
func (e *Engine) SetFill(fill bool) {
	e.opts.Fill = fill
	e.restyle(func(s *Style) { s.Fill = fill })
}

// SetDash selects the stroke pattern.
func (e *Engine) SetDash(dash LineDash) {
	e.opts.Dash = dash
	e.restyle(func(s *Style) { s.Dash = dash })
}

// SetLineWidth sets the stroke width of every series.
func (e *Engine) SetLineWidth(dp float32) {
	if dp <= 0 {
		return
	}
	e.opts.LineWidth = dp
	e.restyle(func(s *Style) { s.Width = dp })
	if e.hasData() {
		e.mark(LayoutDirty)
	}
}

// SetDefaultColors sets the ramp used by single-series feeds. When exactly
// one series is loaded its ramp changes too.
func (e *Engine) SetDefaultColors(colors ...Color) {
	if len(colors) == 0 {
		return
	}
	e.opts.DefaultColors = append([]Color(nil), colors...)
	e.base.Colors = e.opts.DefaultColors
	if len(e.styles) == 1 {
		e.styles[0].Colors = append([]Color(nil), colors...)
		e.mark(StyleDirty)
	}
}

// SetCoverLine toggles the top-edge line of the fill form.
func (e *Engine) SetCoverLine(enable bool) {
	e.opts.CoverLine = enable
	if e.hasData() {
		e.mark(StyleDirty)
	}
}

// SetCoverLineWidth sets the cover line width and enables it.
func (e *Engine) SetCoverLineWidth(dp float32) {
	if dp > 0 {
		e.opts.CoverLineWidth = dp
	}
	e.SetCoverLine(true)
}

// SetTextColor sets the axis color.
func (e *Engine) SetTextColor(c Color) {
	e.opts.TextColor = c
	if e.hasData() {
		e.dropLayers()
		e.mark(StyleDirty)
	}
}

// SetTextSize sets the axis text size and scrolls back to the start.
func (e *Engine) SetTextSize(sp float32) {
	if sp <= 0 {
		return
	}
	e.opts.TextSize = sp
	if e.hasData() {
		e.scroll.Reset()
		e.hint.Clear()
		e.mark(LayoutDirty)
	}
}

// SetEdgeFeedback toggles the overscroll effect.
func (e *Engine) SetEdgeFeedback(enable bool) {
	e.opts.EdgeFeedback = enable
	e.scroll.feedback = enable
	if !enable {
		e.edges.Release()
	}
}

// SetEdgeColor tints the overscroll effect and enables it.
func (e *Engine) SetEdgeColor(c Color) {
	e.opts.EdgeColor = c
	e.edges.SetOverlayTint(c)
	e.SetEdgeFeedback(true)
}

// SetHint toggles tap-to-inspect.
func (e *Engine) SetHint(enable bool) {
	e.opts.Hint = enable
	if !enable {
		e.hint.Clear()
	}
}

// SetHintColor sets the hint color and enables the hint.
func (e *Engine) SetHintColor(c Color) {
	e.opts.HintColor = c
	e.opts.Hint = true
}

// SetGrid toggles the horizontal grid lines.
func (e *Engine) SetGrid(show bool) {
	e.opts.Grid = show
}
