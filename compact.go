package mandel

import (
	"fmt"
	"math"
)

// Compact rounds v to the fewest decimal places whose relative error is within
// precision. It returns the rounded value and the number of decimal places used.
// When maxDP places are not enough, v is returned unrounded with maxDP.
// Values of ten or more may be rounded to tens or hundreds; the reported
// count never drops below zero. NaN and infinities come back unchanged with maxDP.
func Compact(v, precision float64, maxDP int) (float64, int) {
	if v == 0 {
		return 0, 0
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v, maxDP
	}
	r := math.Abs(v)
	for dp := int(math.Ceil(-math.Log10(r))); dp <= maxDP; dp++ {
		c := roundTo(r, dp)
		if math.Abs(c-r)/r <= precision {
			return math.Copysign(c, v), max(dp, 0)
		}
	}
	return v, maxDP
}

func roundTo(r float64, dp int) float64 {
	p := math.Pow10(dp)
	return math.Round(r*p) / p
}

// FormatCoordinate formats v with dp decimal places and a blank in place of a
// plus sign, so positive and negative values line up. A negative dp prints no
// decimals; use Config.FormatCoordinate for the full configured precision.
func FormatCoordinate(v float64, dp int) string {
	return fmt.Sprintf("% .*f", max(dp, 0), v)
}

// FormatCoordinate formats v with MaxDecimalPlaces places.
func (cfg Config) FormatCoordinate(v float64) string {
	return FormatCoordinate(v, cfg.MaxDecimalPlaces)
}

// CompactView formats the four values of v with the largest number of decimal
// places any of them needs.
func CompactView(v ViewRect, precision float64, maxDP int) [4]string {
	vals := [4]float64{v.CenterX, v.CenterY, v.Width, v.Height}
	dp := 0
	for _, x := range vals {
		_, d := Compact(x, precision, maxDP)
		dp = max(dp, d)
	}
	var out [4]string
	for i, x := range vals {
		out[i] = FormatCoordinate(x, dp)
	}
	return out
}
