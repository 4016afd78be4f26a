// Package dataset reads chart series from CSV files.
//
// The first row names the columns. A first column headed "label" holds the
// X axis label of each row; every other column is one series. Rows that
// fail to parse are logged and skipped so that all series stay the same
// length.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"git.sr.ht/~whereswaldon/suitlines/plot"
)

// LabelColumn is the heading that marks the label column.
const LabelColumn = "label"

// ErrNoSeries is reported for a header without any value column.
var ErrNoSeries = errors.New("no value columns")

// Table is a snapshot of a CSV source.
type Table struct {
	// Source names where the table was read from.
	Source  string
	Names   []string
	Labels  []string
	Columns [][]float32
	// Err holds the first error that stopped reading, if any.
	Err error
}

// Rows returns the number of complete rows.
func (t Table) Rows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0])
}

// Empty reports whether the table holds no data.
func (t Table) Empty() bool { return t.Rows() == 0 }

// Series converts the columns into chart series sharing the label column.
func (t Table) Series() []plot.Series {
	out := make([]plot.Series, 0, len(t.Columns))
	for _, col := range t.Columns {
		s := make(plot.Series, len(col))
		for i, v := range col {
			var label string
			if i < len(t.Labels) {
				label = t.Labels[i]
			}
			s[i] = plot.NewPoint(v, label)
		}
		out = append(out, s)
	}
	return out
}

// Tail returns a copy of the last n rows.
func (t Table) Tail(n int) Table {
	rows := t.Rows()
	if n >= rows {
		return t.clone()
	}
	from := rows - n
	out := t
	out.Names = append([]string(nil), t.Names...)
	if len(t.Labels) > 0 {
		out.Labels = append([]string(nil), t.Labels[from:]...)
	}
	out.Columns = make([][]float32, len(t.Columns))
	for i, col := range t.Columns {
		out.Columns[i] = append([]float32(nil), col[from:]...)
	}
	return out
}

func (t Table) clone() Table {
	out := t
	out.Names = append([]string(nil), t.Names...)
	out.Labels = append([]string(nil), t.Labels...)
	out.Columns = make([][]float32, len(t.Columns))
	for i, col := range t.Columns {
		out.Columns[i] = append([]float32(nil), col...)
	}
	return out
}

// parser accumulates a table from a CSV stream that may still be growing.
type parser struct {
	csv    *csv.Reader
	log    *slog.Logger
	table  Table
	header bool
	labels bool
	line   int
}

func newParser(r io.Reader, source string, log *slog.Logger) *parser {
	c := csv.NewReader(newLineReader(r))
	c.TrimLeadingSpace = true
	c.FieldsPerRecord = -1
	c.ReuseRecord = true
	return &parser{
		csv:   c,
		log:   log,
		table: Table{Source: source},
	}
}

// readAvailable consumes every complete row currently readable. It reports
// how many rows were added; io.EOF is not an error.
func (p *parser) readAvailable() (int, error) {
	added := 0
	for {
		rec, err := p.csv.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return added, nil
			}
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				p.log.Warn("skipping malformed row", "source", p.table.Source, "line", perr.Line, "error", err)
				continue
			}
			return added, fmt.Errorf("failed reading %s: %w", p.table.Source, err)
		}
		p.line++
		if !p.header {
			if err := p.readHeader(rec); err != nil {
				return added, err
			}
			continue
		}
		if p.readRow(rec) {
			added++
		}
	}
}

func (p *parser) readHeader(rec []string) error {
	names := make([]string, 0, len(rec))
	for i, h := range rec {
		h = strings.TrimSpace(h)
		if i == 0 && strings.EqualFold(h, LabelColumn) {
			p.labels = true
			continue
		}
		names = append(names, h)
	}
	if len(names) == 0 {
		return fmt.Errorf("%s: %w", p.table.Source, ErrNoSeries)
	}
	p.header = true
	p.table.Names = names
	p.table.Columns = make([][]float32, len(names))
	return nil
}

// readRow appends one record, or logs and drops it when any cell is bad.
func (p *parser) readRow(rec []string) bool {
	first := 0
	if p.labels {
		first = 1
	}
	if len(rec) != first+len(p.table.Names) {
		p.log.Warn("skipping row with wrong field count", "source", p.table.Source, "line", p.line, "fields", len(rec))
		return false
	}
	values := make([]float32, len(p.table.Names))
	for i, cell := range rec[first:] {
		v, err := strconv.ParseFloat(strings.TrimSpace(cell), 32)
		if err != nil {
			p.log.Warn("failed parsing value", "source", p.table.Source, "line", p.line, "column", p.table.Names[i], "error", err)
			return false
		}
		values[i] = float32(v)
	}
	if p.labels {
		p.table.Labels = append(p.table.Labels, strings.TrimSpace(rec[0]))
	}
	for i, v := range values {
		p.table.Columns[i] = append(p.table.Columns[i], v)
	}
	return true
}

// snapshot returns a copy safe to hand to another goroutine.
func (p *parser) snapshot() Table { return p.table.clone() }

// Read parses a complete CSV document.
func Read(r io.Reader, source string) (Table, error) {
	p := newParser(r, source, slog.Default().With("component", "dataset"))
	if _, err := p.readAvailable(); err != nil {
		return Table{}, err
	}
	if !p.header {
		return Table{}, fmt.Errorf("%s: missing header: %w", source, ErrNoSeries)
	}
	return p.snapshot(), nil
}
