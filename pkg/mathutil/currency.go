// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/finance-calculators/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for making logical comparisons.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// RelativelyClose reports whether two values agree to the given relative
// tolerance. Values whose magnitude is below one are compared absolutely.
func RelativelyClose(val1, val2, tolerance float64) bool {
	scale := math.Max(math.Abs(val1), math.Abs(val2))
	if scale < 1 {
		scale = 1
	}
	return math.Abs(val1-val2) <= tolerance*scale
}

// IsFiniteNonNegative is false for NaN, infinities and values below zero.
func IsFiniteNonNegative(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0) && val >= 0
}

// PercentToFraction converts a UI percentage (7) into a rate (0.07).
func PercentToFraction(percent float64) float64 {
	return percent / constants.PercentageMultiplier
}
