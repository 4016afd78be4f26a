package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"time"

	"git.sr.ht/~whereswaldon/suitlines/dataset"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `%[1]s: write random chart series as CSV
Usage:

 %[1]s -series 3 -rows 40 > file.csv

OR, to keep appending rows to a file a chart is following:

 %[1]s -output file.csv -interval 500ms

`, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	seriesCount := flag.Int("series", 1, "Number of series columns")
	rows := flag.Int("rows", 20, "Number of rows to write up front")
	limit := flag.Float64("max", 100, "Upper bound of generated values")
	labels := flag.Bool("labels", true, "Write a label column")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	interval := flag.Duration("interval", 0, "If positive, append one row per interval until interrupted")
	outputName := flag.String("output", "-", "Output file for CSV data")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if *seriesCount < 1 {
		logger.Error("need at least one series")
		os.Exit(2)
	}

	var output io.WriteCloser
	if *outputName == "-" {
		output = os.Stdout
	} else {
		f, err := os.Create(*outputName)
		if err != nil {
			logger.Error("failed opening output file", "path", *outputName, "error", err)
			os.Exit(1)
		}
		output = f
	}

	names := make([]string, *seriesCount)
	for i := range names {
		names[i] = "series " + strconv.Itoa(i+1)
	}
	w, err := dataset.NewWriter(output, *labels, names...)
	if err != nil {
		logger.Error("failed writing header", "error", err)
		os.Exit(1)
	}
	rng := rand.New(rand.NewSource(*seed))
	table := dataset.Random(rng, *rows, float32(*limit), names...)
	row := make([]float32, len(names))
	for i := 0; i < table.Rows(); i++ {
		for j, col := range table.Columns {
			row[j] = col[i]
		}
		if err := w.Write(table.Labels[i], row...); err != nil {
			logger.Error("failed writing row", "error", err)
			os.Exit(1)
		}
	}
	if err := w.Flush(); err != nil {
		logger.Error("failed flushing output", "error", err)
		os.Exit(1)
	}
	if *interval <= 0 {
		if err := output.Close(); err != nil {
			logger.Error("failed closing output", "error", err)
		}
		return
	}

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	next := table.Rows()
	for {
		select {
		case <-sigChan:
			// We've gotten an interrupt; shut down.
			if err := output.Close(); err != nil {
				logger.Error("failed closing output", "error", err)
			}
			return
		case <-ticker.C:
			next++
			fresh := dataset.Random(rng, 1, float32(*limit), names...)
			for j, col := range fresh.Columns {
				row[j] = col[0]
			}
			if err := w.Write(strconv.Itoa(next), row...); err != nil {
				logger.Error("failed writing row", "error", err)
				os.Exit(1)
			}
			if err := w.Flush(); err != nil {
				logger.Error("failed flushing output", "error", err)
				os.Exit(1)
			}
		}
	}
}
