// Package compound computes the future value of an investment under discrete
// annual compounding with a fixed yearly contribution.
package compound

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwvelando/finance-calculators/pkg/mathutil"
)

// ErrNegativeInput is returned by ComputeChecked when any input is negative,
// NaN or infinite.
var ErrNegativeInput = errors.New("input must be a finite non-negative number")

// Compute returns the balance after numberOfYears periods. Each period first
// grows the balance by interestRate (a fraction, e.g. 0.07) and then adds
// annualContribution. Zero years yields principal exactly.
//
// Compute does no validation; negative inputs produce arithmetic results with
// no financial meaning.
func Compute(principal, annualContribution float64, numberOfYears int, interestRate float64) float64 {
	balance := principal
	growth := 1 + interestRate
	for year := 0; year < numberOfYears; year++ {
		balance *= growth
		balance += annualContribution
	}
	return balance
}

// ClosedForm evaluates the same future value as Compute without iterating:
// P(1+r)^n + C((1+r)^n-1)/r, or P + C*n when r is zero.
func ClosedForm(principal, annualContribution float64, numberOfYears int, interestRate float64) float64 {
	if numberOfYears <= 0 {
		return principal
	}
	n := float64(numberOfYears)
	if interestRate == 0 {
		return principal + annualContribution*n
	}
	// Expm1/Log1p keep (1+r)^n-1 accurate for tiny rates.
	factorMinusOne := math.Expm1(n * math.Log1p(interestRate))
	return principal*(factorMinusOne+1) + annualContribution*factorMinusOne/interestRate
}

// ComputeChecked is Compute with input checks. It returns ErrNegativeInput
// wrapped with the name of the first offending field.
func ComputeChecked(principal, annualContribution float64, numberOfYears int, interestRate float64) (float64, error) {
	switch {
	case !mathutil.IsFiniteNonNegative(principal):
		return 0, fmt.Errorf("principal %v: %w", principal, ErrNegativeInput)
	case !mathutil.IsFiniteNonNegative(annualContribution):
		return 0, fmt.Errorf("annual contribution %v: %w", annualContribution, ErrNegativeInput)
	case numberOfYears < 0:
		return 0, fmt.Errorf("number of years %d: %w", numberOfYears, ErrNegativeInput)
	case !mathutil.IsFiniteNonNegative(interestRate):
		return 0, fmt.Errorf("interest rate %v: %w", interestRate, ErrNegativeInput)
	}
	return Compute(principal, annualContribution, numberOfYears, interestRate), nil
}
