package plot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegionsTile(t *testing.T) {
	type testcase struct {
		name          string
		width, height float32
		insets        Insets
		domain        Domain
		textSize      float32
	}
	for _, tc := range []testcase{
		{name: "small", width: 120, height: 80, domain: Domain{Max: 5}, textSize: 8},
		{name: "wide labels", width: 640, height: 320, domain: Domain{Min: -1000, Max: 25000}, textSize: 12},
		{name: "insets", width: 400, height: 300, insets: Insets{Left: 10, Top: 6, Right: 3, Bottom: 20}, domain: Domain{Min: -5, Max: 5}, textSize: 8},
		{name: "tall", width: 90, height: 1000, domain: Domain{Max: 100}, textSize: 20},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r := ComputeRegions(LayoutInput{
				Width:    tc.width,
				Height:   tc.height,
				Insets:   tc.insets,
				Padding:  4,
				Domain:   tc.domain,
				Measurer: fixedMeasurer{},
				TextSize: tc.textSize,
			})
			container := R(0, 0, tc.width, tc.height)
			tiles := []Rect{r.YAxis, r.XAxis, r.Plot}
			for i, a := range tiles {
				require.False(t, a.Empty(), "region %d is empty: %v", i, a)
				require.True(t, a.In(container), "region %d escapes the container: %v", i, a)
				for j, b := range tiles[i+1:] {
					require.False(t, a.Overlaps(b), "regions %d and %d overlap: %v %v", i, i+1+j, a, b)
				}
			}
			assert.True(t, r.Hint.In(r.Plot))
			assert.InDelta(t, r.Plot.Dy()/4, r.Hint.Dy(), 0.001)
			assert.InDelta(t, r.Plot.Dx()/4, r.Hint.Dx(), 0.001)
			assert.Equal(t, r.Plot.Max.X, r.Hint.Max.X)
		})
	}
}

func TestRegionsFitLabels(t *testing.T) {
	m := fixedMeasurer{}
	r := ComputeRegions(LayoutInput{
		Width:    640,
		Height:   320,
		Padding:  4,
		Domain:   Domain{Min: -1000, Max: 25},
		Measurer: m,
		TextSize: 8,
	})
	assert.Equal(t, m.TextWidth("-1000", 8)+4, r.YAxis.Dx())
	assert.Equal(t, m.TextHeight(8)+8, r.XAxis.Dy())
	assert.Equal(t, r.YAxis.Max.X+1, r.Plot.Min.X)

	narrow := ComputeRegions(LayoutInput{
		Width:    640,
		Height:   320,
		Padding:  4,
		Domain:   Domain{Max: 5},
		Measurer: m,
		TextSize: 8,
	})
	assert.Equal(t, m.TextWidth("00", 8)+4, narrow.YAxis.Dx())
}
