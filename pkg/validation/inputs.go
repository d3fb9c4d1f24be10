package validation

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/finance-calculators/pkg/compound"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/spf13/cast"
	"go.uber.org/multierr"
)

// FieldError describes why a single calculator field was rejected.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Fields returns the names of every field rejected in err, in order.
func Fields(err error) []string {
	var fields []string
	for _, e := range multierr.Errors(err) {
		var fe *FieldError
		if errors.As(e, &fe) {
			fields = append(fields, fe.Field)
		}
	}
	return fields
}

// Dollars accepts finite amounts of zero or more.
func Dollars(field string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return &FieldError{Field: field, Reason: "must be a number"}
	}
	if value < 0 {
		return &FieldError{Field: field, Reason: "must not be negative"}
	}
	return nil
}

// Percent accepts finite percentages of zero or more. 7 means 7%.
func Percent(field string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return &FieldError{Field: field, Reason: "must be a number"}
	}
	if value < 0 {
		return &FieldError{Field: field, Reason: "must not be negative"}
	}
	return nil
}

// NumberOfYears accepts whole numbers between zero and MaxNumberOfYears.
func NumberOfYears(field string, value float64) error {
	if err := Dollars(field, value); err != nil {
		return err
	}
	if value != math.Trunc(value) {
		return &FieldError{Field: field, Reason: "must be a whole number of years"}
	}
	if value > constants.MaxNumberOfYears {
		return &FieldError{Field: field, Reason: fmt.Sprintf("must be at most %d", constants.MaxNumberOfYears)}
	}
	return nil
}

// ValidateInputs runs every field validator and combines the failures.
func ValidateInputs(in compound.Inputs) error {
	return multierr.Combine(
		Dollars(constants.KeyPrincipal, in.Principal),
		Dollars(constants.KeyAnnualContribution, in.AnnualContribution),
		NumberOfYears(constants.KeyNumberOfYears, float64(in.NumberOfYears)),
		Percent(constants.KeyInterestRate, in.InterestRate),
	)
}

// ValidateField runs the validator that belongs to the named field.
func ValidateField(field string, value float64) error {
	switch field {
	case constants.KeyPrincipal, constants.KeyAnnualContribution:
		return Dollars(field, value)
	case constants.KeyNumberOfYears:
		return NumberOfYears(field, value)
	case constants.KeyInterestRate:
		return Percent(field, value)
	}
	return &FieldError{Field: field, Reason: "unknown field"}
}

// ParseField converts raw form text into a validated value for field.
// Currency symbols, percent signs, thousands separators and surrounding
// whitespace are ignored.
func ParseField(field, raw string) (float64, error) {
	cleaned := strings.NewReplacer("$", "", "%", "", ",", "", "_", "").Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return 0, &FieldError{Field: field, Reason: "is required"}
	}

	value, err := cast.ToFloat64E(cleaned)
	if err != nil {
		return 0, &FieldError{Field: field, Reason: fmt.Sprintf("%q is not a number", raw)}
	}
	if err := ValidateField(field, value); err != nil {
		return 0, err
	}
	return value, nil
}

// SetField returns a copy of in with field replaced by value. The value must
// already be validated.
func SetField(in compound.Inputs, field string, value float64) (compound.Inputs, error) {
	switch field {
	case constants.KeyPrincipal:
		in.Principal = value
	case constants.KeyAnnualContribution:
		in.AnnualContribution = value
	case constants.KeyNumberOfYears:
		in.NumberOfYears = int(value)
	case constants.KeyInterestRate:
		in.InterestRate = value
	default:
		return in, &FieldError{Field: field, Reason: "unknown field"}
	}
	return in, nil
}
