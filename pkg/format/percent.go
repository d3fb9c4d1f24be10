package format

import (
	"fmt"

	"github.com/iwvelando/finance-calculators/pkg/compound"
	"github.com/shopspring/decimal"
)

// Percent renders a UI percentage (7 means 7%) with at most two decimals and
// no trailing zeros, e.g. "7%" or "6.25%".
func Percent(percent float64) string {
	if text, ok := nonFinite(percent); ok {
		if percent < 0 {
			return "-" + text + "%"
		}
		return text + "%"
	}
	return decimal.NewFromFloat(percent).Round(2).String() + "%"
}

// Years renders a year count with the correct plural.
func Years(n int) string {
	if n == 1 {
		return "1 year"
	}
	return fmt.Sprintf("%d years", n)
}

// Describe renders the sentence shown under a result, e.g.
// "$10,000.00 will become $19,671.51 after 10 years with 7% annual interest
// and an annual contribution of $0.00."
func Describe(in compound.Inputs, result float64) string {
	return fmt.Sprintf("%s will become %s after %s with %s annual interest and an annual contribution of %s.",
		Currency(in.Principal),
		Currency(result),
		Years(in.NumberOfYears),
		Percent(in.InterestRate),
		Currency(in.AnnualContribution),
	)
}
