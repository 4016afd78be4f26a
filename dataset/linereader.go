package dataset

import (
	"bufio"
	"io"
)

// lineReader only ever yields whole newline-terminated lines. A trailing
// partial line is held back and reported as io.EOF until the rest of it
// arrives, so a CSV parser reading a file that is still being written never
// sees half a row.
type lineReader struct {
	r       *bufio.Reader
	partial []byte
}

var _ io.Reader = (*lineReader)(nil)

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{
		r: bufio.NewReader(r),
	}
}

func (l *lineReader) Read(b []byte) (int, error) {
	if len(l.partial) > 0 && l.partial[len(l.partial)-1] == '\n' {
		return l.drain(b), nil
	}
	data, err := l.r.ReadBytes('\n')
	l.partial = append(l.partial, data...)
	if err != nil {
		return 0, io.EOF
	}
	return l.drain(b), nil
}

// drain copies as much of the held line into b as fits.
func (l *lineReader) drain(b []byte) int {
	n := copy(b, l.partial)
	l.partial = l.partial[:copy(l.partial, l.partial[n:])]
	return n
}
