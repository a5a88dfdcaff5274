package chart

import (
	"math"
	"strconv"
)

var siPrefixes = []struct {
	scale  float64
	symbol string
}{
	{1e9, "G"},
	{1e6, "M"},
	{1e3, "k"},
	{1, ""},
	{1e-3, "m"},
	{1e-6, "µ"},
}

// engFormat renders v in engineering notation: 3.5e6 -> "3.5M",
// 1200 -> "1.2k". Values outside the prefix table, zero, and
// non-finite values fall back to %g.
func engFormat(v float64) string {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	abs := math.Abs(v)
	for _, p := range siPrefixes {
		if abs >= p.scale {
			return strconv.FormatFloat(v/p.scale, 'g', 4, 64) + p.symbol
		}
	}
	return strconv.FormatFloat(v, 'g', 4, 64)
}
