package plot

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCeil5(t *testing.T) {
	type testcase struct {
		in       float32
		expected float32
	}
	for _, tc := range []testcase{
		{in: 0, expected: 0},
		{in: 0.05, expected: 0},
		{in: 0.2, expected: 5},
		{in: 3, expected: 5},
		{in: 5, expected: 5},
		{in: 5.05, expected: 5},
		{in: 5.2, expected: 10},
		{in: 23, expected: 25},
		{in: -3, expected: -5},
		{in: -12.5, expected: -15},
		{in: -20, expected: -20},
	} {
		assert.Equal(t, tc.expected, Ceil5(tc.in), "Ceil5(%v)", tc.in)
	}
}

func TestDomainContainsZero(t *testing.T) {
	for v := float32(-120); v <= 120; v += 0.37 {
		dom := domainOf([]Series{Values(v, v/3)})
		require.LessOrEqual(t, dom.Min, float32(0), "value %v", v)
		require.GreaterOrEqual(t, dom.Max, float32(0), "value %v", v)
		require.Zero(t, math.Mod(float64(dom.Min), 5), "min %v not a multiple of 5", dom.Min)
		require.Zero(t, math.Mod(float64(dom.Max), 5), "max %v not a multiple of 5", dom.Max)
		require.GreaterOrEqual(t, dom.Max, max(v, v/3)-0.1)
		require.LessOrEqual(t, dom.Min, min(v, v/3)+0.1)
	}
}

func TestDomainLeavesSeriesOrder(t *testing.T) {
	s := labeled(30, 10, 20)
	dom := domainOf([]Series{s, Values(-7, 2, 1)})
	assert.Equal(t, Domain{Min: -10, Max: 30}, dom)
	assert.Equal(t, labeled(30, 10, 20), s)
}

func TestFormatTick(t *testing.T) {
	type testcase struct {
		in       float32
		expected string
	}
	for _, tc := range []testcase{
		{in: 0, expected: "0"},
		{in: float32(math.Copysign(0, -1)), expected: "0"},
		{in: -0.04, expected: "0"},
		{in: 2.5, expected: "2.5"},
		{in: 3.33, expected: "3.3"},
		{in: 10, expected: "10"},
		{in: -15, expected: "-15"},
	} {
		assert.Equal(t, tc.expected, FormatTick(tc.in), "FormatTick(%v)", tc.in)
	}
}

func TestPointModel(t *testing.T) {
	p := NewPoint(3, "x")
	p.pos.X = 12
	p.reveal = 0.5
	c := p.Clone()
	assert.True(t, p.Equal(c))
	assert.Zero(t, c.Pos())
	assert.Equal(t, float32(1), c.Reveal())
	assert.Equal(t, 0, p.Compare(NewPoint(3, "other")))
	assert.Equal(t, -1, p.Compare(NewPoint(4, "")))
	assert.False(t, p.Equal(NewPoint(3, "y")))
}
