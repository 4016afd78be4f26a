package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/x/explorer"

	"git.sr.ht/~whereswaldon/suitlines/config"
	"git.sr.ht/~whereswaldon/suitlines/dataset"
	"git.sr.ht/~whereswaldon/suitlines/plot"
)

// multiFlag collects every occurrence of a repeatable flag.
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }

func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `Usage: %s [flags] [data.csv]

Draws the series of a CSV file as an interactive line chart, following the
file as rows are appended. Without a file, random series are shown.

`, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	var sets multiFlag
	configPath := flag.String("config", "", "YAML file of chart options")
	flag.Var(&sets, "set", "override one option as key=value (repeatable)")
	verbose := flag.Bool("v", false, "log debug output")
	dump := flag.Bool("dump-config", false, "print the effective options as YAML and exit")
	flag.Usage = usage
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			slog.Error("failed loading config", "error", err)
			os.Exit(1)
		}
	}
	if err := cfg.SetAll(sets); err != nil {
		slog.Error("invalid option", "error", err)
		os.Exit(2)
	}
	if *dump {
		if err := cfg.Encode(os.Stdout); err != nil {
			slog.Error("failed writing config", "error", err)
			os.Exit(1)
		}
		return
	}
	opts, err := cfg.Plot()
	if err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(2)
	}

	var loader *dataset.Loader
	if flag.NArg() > 0 {
		loader = dataset.Open(flag.Arg(0))
	}

	go func() {
		w := app.NewWindow(app.Title("suitlines"), app.Size(unit.Dp(960), unit.Dp(600)))
		if err := loop(w, opts, loader); err != nil {
			slog.Error("window closed with error", "error", err)
			os.Exit(1)
		}
		os.Exit(0)
	}()
	app.Main()
}

func loop(w *app.Window, opts plot.Options, loader *dataset.Loader) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	expl := explorer.NewExplorer(w)
	ui := NewUI(ctx, w, expl, opts)
	if loader != nil {
		ui.Load(loader)
	} else {
		ui.Random()
	}
	var ops op.Ops
	for {
		ev := w.NextEvent()
		expl.ListenEvents(ev)
		switch ev := ev.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, ev)
			ui.Layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}
