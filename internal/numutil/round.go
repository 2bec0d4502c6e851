package numutil

import "math"

// Round rounds v half-away-from-zero to the given number of decimal places.
// Result values are rounded at the point of storage so that repeated runs
// over the same inputs render identically.
func Round(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}

// Round2 is the common two-decimal case used for marks and percentages.
func Round2(v float64) float64 { return Round(v, 2) }

// Round1 is used for deviation magnitudes in rollup commentary.
func Round1(v float64) float64 { return Round(v, 1) }
