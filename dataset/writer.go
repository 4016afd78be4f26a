package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Writer emits rows in the format Loader reads.
type Writer struct {
	buf    *bufio.Writer
	csv    *csv.Writer
	labels bool
	width  int
	record []string
}

// NewWriter writes the header for the named series to w. With labels set,
// every row starts with an X axis label.
func NewWriter(w io.Writer, labels bool, names ...string) (*Writer, error) {
	if len(names) == 0 {
		return nil, ErrNoSeries
	}
	buf := bufio.NewWriter(w)
	cw := &Writer{
		buf:    buf,
		csv:    csv.NewWriter(buf),
		labels: labels,
		width:  len(names),
	}
	header := names
	if labels {
		header = append([]string{LabelColumn}, names...)
	}
	if err := cw.csv.Write(header); err != nil {
		return nil, fmt.Errorf("failed writing header: %w", err)
	}
	return cw, nil
}

// Write appends one row. The label is ignored unless the writer has a label
// column.
func (w *Writer) Write(label string, values ...float32) error {
	if len(values) != w.width {
		return fmt.Errorf("row has %d values, want %d", len(values), w.width)
	}
	w.record = w.record[:0]
	if w.labels {
		w.record = append(w.record, label)
	}
	for _, v := range values {
		w.record = append(w.record, strconv.FormatFloat(float64(v), 'f', -1, 32))
	}
	if err := w.csv.Write(w.record); err != nil {
		return fmt.Errorf("failed writing row: %w", err)
	}
	return nil
}

// Flush pushes buffered rows to the underlying writer.
func (w *Writer) Flush() error {
	w.csv.Flush()
	return errors.Join(w.csv.Error(), w.buf.Flush())
}
