package main

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"math/rand"
	"strconv"

	"gioui.org/app"
	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"
	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"git.sr.ht/~whereswaldon/suitlines/chart"
	"git.sr.ht/~whereswaldon/suitlines/dataset"
	"git.sr.ht/~whereswaldon/suitlines/plot"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

const (
	// maxRows caps how much of a followed file is charted.
	maxRows   = 500
	maxSeries = 6
)

var replayIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.AVReplay)
	return icon
}()

var chartBackground = color.NRGBA{R: 0x26, G: 0x26, B: 0x2b, A: 0xff}

// UI is responsible for holding the state of and drawing the top-level UI.
type UI struct {
	win  *app.Window
	expl *explorer.Explorer
	ctrl *stream.Controller
	log  *slog.Logger
	rng  *rand.Rand

	th    *material.Theme
	chart *chart.Chart
	opts  plot.Options

	tables  *stream.Stream[dataset.Table]
	chosen  chan *dataset.Loader
	source  string
	status  string
	loaded  bool
	current dataset.Table

	seriesCount int
	colorOffset int

	replayBtn, singleBtn       widget.Clickable
	moreBtn, fewerBtn          widget.Clickable
	fillBtn, dashBtn, curveBtn widget.Clickable
	edgeBtn, hintBtn, gridBtn  widget.Clickable
	colorsBtn, openBtn         widget.Clickable
	biggerBtn, smallerBtn      widget.Clickable
	controls                   widget.List
}

// NewUI builds the demo around a chart configured by opts.
func NewUI(ctx context.Context, w *app.Window, expl *explorer.Explorer, opts plot.Options) *UI {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()), text.NoSystemFonts())
	ui := &UI{
		win:         w,
		expl:        expl,
		ctrl:        stream.NewController(ctx, w.Invalidate),
		log:         slog.Default().With("component", "ui"),
		rng:         rand.New(rand.NewSource(rand.Int63())),
		th:          th,
		chart:       chart.New(opts, th.Shaper),
		opts:        opts,
		chosen:      make(chan *dataset.Loader, 1),
		seriesCount: 1,
	}
	ui.controls.Axis = layout.Horizontal
	return ui
}

// Load starts charting the tables streamed by l.
func (ui *UI) Load(l *dataset.Loader) {
	ui.log.Info("loading dataset", "source", l.Name())
	ui.source = l.Name()
	ui.loaded = false
	ui.tables = stream.New(ui.ctrl, l.Stream)
}

// Random replaces the chart data with fresh random series.
func (ui *UI) Random() {
	ui.tables = nil
	ui.source = ""
	names := make([]string, ui.seriesCount)
	for i := range names {
		names[i] = "series " + strconv.Itoa(i+1)
	}
	rows := 5 + ui.rng.Intn(40)
	ui.show(dataset.Random(ui.rng, rows, 100, names...), true)
}

func (ui *UI) show(t dataset.Table, animate bool) {
	ui.current = t
	series := t.Series()
	if len(series) == 1 {
		ui.chart.SetDefaultColors(ramp(ui.colorOffset)...)
		if animate {
			ui.chart.FeedWithAnimation(series[0])
		} else {
			ui.chart.Feed(series[0])
		}
	} else {
		ramps := make([][]plot.Color, len(series))
		for i := range ramps {
			ramps[i] = ramp(ui.colorOffset + i)
		}
		if err := ui.chart.FeedMultiple(series, ramps, animate); err != nil {
			ui.log.Error("failed feeding chart", "error", err)
			ui.status = err.Error()
			return
		}
	}
	ui.status = fmt.Sprintf("%d series, %d points", len(series), t.Rows())
	if t.Source != "" {
		ui.status = t.Source + ": " + ui.status
	}
}

// Update the state of the UI from input and background streams.
func (ui *UI) Update(gtx C) {
	if ui.tables != nil {
		if t, ok := ui.tables.ReadNew(gtx); ok {
			switch {
			case t.Err != nil:
				ui.status = t.Err.Error()
			case t.Empty():
				ui.status = t.Source + ": no rows yet"
			default:
				ui.show(t.Tail(maxRows), !ui.loaded)
				ui.loaded = true
			}
		}
	}
	select {
	case l := <-ui.chosen:
		ui.Load(l)
	default:
	}

	if ui.replayBtn.Clicked(gtx) {
		ui.chart.Replay()
	}
	if ui.singleBtn.Clicked(gtx) {
		ui.seriesCount = 1
		ui.Random()
	}
	if ui.moreBtn.Clicked(gtx) && ui.seriesCount < maxSeries {
		ui.seriesCount++
		ui.Random()
	}
	if ui.fewerBtn.Clicked(gtx) && ui.seriesCount > 1 {
		ui.seriesCount--
		ui.Random()
	}
	if ui.colorsBtn.Clicked(gtx) {
		ui.colorOffset = ui.rng.Intn(len(colors))
		if !ui.current.Empty() {
			ui.show(ui.current, false)
		}
	}
	if ui.fillBtn.Clicked(gtx) {
		ui.opts.Fill = !ui.opts.Fill
		ui.chart.SetFill(ui.opts.Fill)
	}
	if ui.dashBtn.Clicked(gtx) {
		ui.opts.Dash = 1 - ui.opts.Dash
		ui.chart.SetDash(ui.opts.Dash)
	}
	if ui.curveBtn.Clicked(gtx) {
		ui.opts.Shape = 1 - ui.opts.Shape
		ui.chart.SetLineShape(ui.opts.Shape)
	}
	if ui.edgeBtn.Clicked(gtx) {
		ui.opts.EdgeFeedback = !ui.opts.EdgeFeedback
		ui.chart.SetEdgeFeedback(ui.opts.EdgeFeedback)
	}
	if ui.hintBtn.Clicked(gtx) {
		ui.opts.Hint = !ui.opts.Hint
		ui.chart.SetHint(ui.opts.Hint)
	}
	if ui.gridBtn.Clicked(gtx) {
		ui.opts.Grid = !ui.opts.Grid
		ui.chart.SetGrid(ui.opts.Grid)
	}
	if ui.biggerBtn.Clicked(gtx) {
		ui.opts.TextSize++
		ui.chart.SetTextSize(ui.opts.TextSize)
	}
	if ui.smallerBtn.Clicked(gtx) && ui.opts.TextSize > 4 {
		ui.opts.TextSize--
		ui.chart.SetTextSize(ui.opts.TextSize)
	}
	if ui.openBtn.Clicked(gtx) {
		go ui.chooseFile()
	}
}

// chooseFile blocks on the platform file chooser, so it runs off the event
// loop.
func (ui *UI) chooseFile() {
	f, err := ui.expl.ChooseFile("csv")
	if err != nil {
		if !errors.Is(err, explorer.ErrUserDecline) {
			ui.log.Error("failed choosing file", "error", err)
		}
		return
	}
	ui.chosen <- dataset.FromReader(f)
	ui.win.Invalidate()
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (ui *UI) layoutControls(gtx C) D {
	buttons := []layout.Widget{
		func(gtx C) D {
			return material.IconButton(ui.th, &ui.replayBtn, replayIcon, "Replay").Layout(gtx)
		},
		material.Button(ui.th, &ui.singleBtn, "Single series").Layout,
		material.Button(ui.th, &ui.moreBtn, "More series").Layout,
		material.Button(ui.th, &ui.fewerBtn, "Fewer series").Layout,
		material.Button(ui.th, &ui.fillBtn, "Fill "+onOff(ui.opts.Fill)).Layout,
		material.Button(ui.th, &ui.dashBtn, "Line "+ui.opts.Dash.String()).Layout,
		material.Button(ui.th, &ui.curveBtn, "Shape "+ui.opts.Shape.String()).Layout,
		material.Button(ui.th, &ui.edgeBtn, "Edge "+onOff(ui.opts.EdgeFeedback)).Layout,
		material.Button(ui.th, &ui.hintBtn, "Hint "+onOff(ui.opts.Hint)).Layout,
		material.Button(ui.th, &ui.gridBtn, "Grid "+onOff(ui.opts.Grid)).Layout,
		material.Button(ui.th, &ui.colorsBtn, "Random colors").Layout,
		material.Button(ui.th, &ui.biggerBtn, "Text +").Layout,
		material.Button(ui.th, &ui.smallerBtn, "Text -").Layout,
		material.Button(ui.th, &ui.openBtn, "Open CSV").Layout,
	}
	return material.List(ui.th, &ui.controls).Layout(gtx, len(buttons), func(gtx C, i int) D {
		return layout.UniformInset(4).Layout(gtx, buttons[i])
	})
}

// Layout the UI into the provided context.
func (ui *UI) Layout(gtx C) D {
	ui.Update(gtx)
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(ui.layoutControls),
		layout.Rigid(component.Divider(ui.th).Layout),
		layout.Rigid(func(gtx C) D {
			return layout.UniformInset(4).Layout(gtx, material.Body2(ui.th, ui.status).Layout)
		}),
		layout.Flexed(1, func(gtx C) D {
			paint.FillShape(gtx.Ops, chartBackground, clip.Rect{Max: gtx.Constraints.Max}.Op())
			return layout.UniformInset(8).Layout(gtx, ui.chart.Layout)
		}),
	)
}
