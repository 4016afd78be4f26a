package dataset

import (
	"math/rand"
	"strconv"
)

// Random returns a table of n rows for the named series. Values are whole
// numbers in [-limit/4, limit) so both signs and the zero axis show up.
func Random(r *rand.Rand, rows int, limit float32, names ...string) Table {
	t := Table{
		Source:  "random",
		Names:   append([]string(nil), names...),
		Columns: make([][]float32, len(names)),
	}
	low := -limit / 4
	for i := 0; i < rows; i++ {
		t.Labels = append(t.Labels, strconv.Itoa(i+1))
		for j := range t.Columns {
			v := low + r.Float32()*(limit-low)
			t.Columns[j] = append(t.Columns[j], float32(int(v)))
		}
	}
	return t
}
