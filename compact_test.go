package mandel

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompactZero(t *testing.T) {
	for _, eps := range []float64{0, 1e-9, 0.01, 0.5} {
		for _, n := range []int{0, 1, 16} {
			v, dp := Compact(0, eps, n)
			assert.Equal(t, 0.0, v)
			assert.Equal(t, 0, dp)
		}
	}
}

func TestCompact(t *testing.T) {
	testCases := []struct {
		in   float64
		want float64
		dp   int
	}{
		{0.964, 0.96, 2},
		{-0.09, -0.09, 2},
		{0.165, 0.165, 3},
		{-0.75, -0.75, 2},
		{4.5, 4.5, 1},
		{3, 3, 0},
		{-0.7698, -0.77, 2},
		{250, 250, 0},
		{1e-20, 1e-20, 16},
	}
	for _, tc := range testCases {
		got, dp := Compact(tc.in, 0.01, 16)
		assert.InDelta(t, tc.want, got, math.Abs(tc.want)*1e-12, "Compact(%g)", tc.in)
		assert.Equal(t, tc.dp, dp, "Compact(%g) decimal places", tc.in)
	}
}

func TestCompactNonFinite(t *testing.T) {
	v, dp := Compact(math.NaN(), 0.01, 16)
	assert.True(t, math.IsNaN(v))
	assert.Equal(t, 16, dp)

	for _, in := range []float64{math.Inf(1), math.Inf(-1)} {
		v, dp = Compact(in, 0.01, 16)
		assert.Equal(t, in, v)
		assert.Equal(t, 16, dp)
	}
}

func TestCompactGivesUpAtMaxDP(t *testing.T) {
	v, dp := Compact(1.23456789, 1e-12, 4)
	assert.Equal(t, 1.23456789, v)
	assert.Equal(t, 4, dp)
}

func TestCompactBounds(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 2000; i++ {
		v := math.Pow(10, -18+21*rnd.Float64())
		if rnd.Intn(2) == 0 {
			v = -v
		}
		eps := []float64{0.1, 0.01, 1e-4, 1e-9}[rnd.Intn(4)]
		n := rnd.Intn(17)

		got, dp := Compact(v, eps, n)
		if !assert.LessOrEqual(t, dp, n, "Compact(%g, %g, %d)", v, eps, n) {
			continue
		}
		if dp < n {
			assert.LessOrEqual(t, math.Abs(got-v)/math.Abs(v), eps, "Compact(%g, %g, %d) = %g", v, eps, n, got)
		}
		assert.Equal(t, math.Signbit(v), math.Signbit(got))
	}
}

func TestFormatCoordinate(t *testing.T) {
	assert.Equal(t, " 0.50", FormatCoordinate(0.5, 2))
	assert.Equal(t, "-0.75", FormatCoordinate(-0.75, 2))
	assert.Equal(t, " 3", FormatCoordinate(3, -1))

	cfg := DefaultConfig()
	cfg.MaxDecimalPlaces = 4
	assert.Equal(t, "-0.7500", cfg.FormatCoordinate(-0.75))
	assert.Equal(t, " 1.5000", cfg.FormatCoordinate(1.5))
}

func TestCompactView(t *testing.T) {
	cfg := DefaultConfig()
	got := CompactView(WorldView(cfg), cfg.Precision, cfg.MaxDecimalPlaces)
	assert.Equal(t, [4]string{"-0.75", " 0.00", " 4.50", " 3.00"}, got)

	thorny := ViewRect{CenterX: -0.090, CenterY: 0.964, Width: 0.165, Height: 0.110}
	got = CompactView(thorny, cfg.Precision, cfg.MaxDecimalPlaces)
	assert.Equal(t, [4]string{"-0.090", " 0.964", " 0.165", " 0.110"}, got)
}
