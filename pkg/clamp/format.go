package clamp

import (
	"math"
	"strconv"
)

// epsilon nudges values like 1.00005 that are stored just below the
// rounding midpoint.
const epsilon = 2.220446049250313e-16

// roundTo rounds half away from zero to the given number of decimals.
// The result is never negative zero.
func roundTo(x float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	nudge := epsilon
	if x < 0 {
		nudge = -epsilon
	}
	r := math.Round((x+nudge)*scale) / scale
	if r == 0 {
		return 0
	}
	return r
}

// Round4 rounds to four decimal places.
func Round4(x float64) float64 { return roundTo(x, 4) }

// Round3 rounds to three decimal places.
func Round3(x float64) float64 { return roundTo(x, 3) }

// FormatNumber renders x in its shortest decimal form: no exponent, no
// trailing zeros, integers without a decimal point, and never "-0".
func FormatNumber(x float64) string {
	if x == 0 {
		return "0"
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// FormatCompact renders integers as-is and everything else rounded to
// three decimals. Used for the live size readout.
func FormatCompact(x float64) string {
	if x == math.Trunc(x) {
		return FormatNumber(x)
	}
	return FormatNumber(Round3(x))
}
