// Package format renders amounts, rates and result sentences for display.
package format

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency returns a dollar amount rounded to cents with thousands
// separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	if text, ok := nonFinite(amount); ok {
		if amount < 0 {
			return "-$" + text
		}
		return "$" + text
	}
	d := decimal.NewFromFloat(amount)
	if d.IsNegative() {
		return "-$" + groupThousands(d.Abs().StringFixed(2))
	}
	return "$" + groupThousands(d.StringFixed(2))
}

// NumericCurrency is Currency without the dollar sign (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	if text, ok := nonFinite(amount); ok {
		if amount < 0 {
			return "-" + text
		}
		return text
	}
	d := decimal.NewFromFloat(amount)
	if d.IsNegative() {
		return "-" + groupThousands(d.Abs().StringFixed(2))
	}
	return groupThousands(d.StringFixed(2))
}

// nonFinite renders the magnitude of NaN and infinities, which decimal
// cannot represent.
func nonFinite(v float64) (string, bool) {
	switch {
	case math.IsNaN(v):
		return "NaN", true
	case math.IsInf(v, 0):
		return "∞", true
	}
	return "", false
}

// groupThousands inserts commas into the integer part of an unsigned
// fixed-point string.
func groupThousands(fixed string) string {
	intPart, decPart, _ := strings.Cut(fixed, ".")
	if len(intPart) <= 3 {
		return fixed
	}

	var builder strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			builder.WriteByte(',')
		}
		builder.WriteRune(digit)
	}
	if decPart == "" {
		return builder.String()
	}
	return builder.String() + "." + decPart
}
