package compound

import (
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
)

// Inputs is the full set of calculator fields. InterestRate is kept in the
// percent form the user enters (7 means 7%).
type Inputs struct {
	Principal          float64 `json:"principal" yaml:"principal" mapstructure:"principal"`
	AnnualContribution float64 `json:"annualContribution" yaml:"annualContribution" mapstructure:"annualContribution"`
	NumberOfYears      int     `json:"numberOfYears" yaml:"numberOfYears" mapstructure:"numberOfYears"`
	InterestRate       float64 `json:"interestRate" yaml:"interestRate" mapstructure:"interestRate"`
}

// DefaultInputs returns the values a fresh calculator starts with.
func DefaultInputs() Inputs {
	return Inputs{
		Principal:          constants.DefaultPrincipal,
		AnnualContribution: constants.DefaultAnnualContribution,
		NumberOfYears:      constants.DefaultNumberOfYears,
		InterestRate:       constants.DefaultInterestRate,
	}
}

// Rate returns the interest rate as a fraction.
func (in Inputs) Rate() float64 {
	return mathutil.PercentToFraction(in.InterestRate)
}

// Result computes the future value for these inputs.
func (in Inputs) Result() float64 {
	return Compute(in.Principal, in.AnnualContribution, in.NumberOfYears, in.Rate())
}

// CheckedResult computes the future value, rejecting negative or non-finite fields.
func (in Inputs) CheckedResult() (float64, error) {
	return ComputeChecked(in.Principal, in.AnnualContribution, in.NumberOfYears, in.Rate())
}

// Schedule returns the year-by-year breakdown for these inputs.
func (in Inputs) Schedule() []Period {
	return Schedule(in.Principal, in.AnnualContribution, in.NumberOfYears, in.Rate())
}
