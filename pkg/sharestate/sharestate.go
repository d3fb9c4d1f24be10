// Package sharestate encodes calculator inputs into a URL query string so a
// calculation can be shared as a link and restored later.
//
// Tokens carry one key per field (principal, annualContribution,
// numberOfYears, interestRate) with plain decimal values. Floats are written
// in their shortest exact form, so decoding an encoded token reproduces the
// original inputs bit for bit.
package sharestate

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/iwvelando/finance-calculators/pkg/compound"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/spf13/cast"
)

// FieldIssue records a field that fell back to its default during decoding.
type FieldIssue struct {
	Field  string `json:"field"`
	Value  string `json:"value,omitempty"`
	Reason string `json:"reason"`
}

func (i FieldIssue) String() string {
	if i.Value == "" {
		return fmt.Sprintf("%s %s, using default", i.Field, i.Reason)
	}
	return fmt.Sprintf("%s %q %s, using default", i.Field, i.Value, i.Reason)
}

// Encode serializes inputs into a query string. Keys are emitted in sorted
// order, so equal inputs always produce the same token.
func Encode(in compound.Inputs) string {
	values := url.Values{}
	values.Set(constants.KeyPrincipal, formatNumber(in.Principal))
	values.Set(constants.KeyAnnualContribution, formatNumber(in.AnnualContribution))
	values.Set(constants.KeyNumberOfYears, strconv.Itoa(in.NumberOfYears))
	values.Set(constants.KeyInterestRate, formatNumber(in.InterestRate))
	return values.Encode()
}

// Decode restores inputs from a token. It never fails: a missing, malformed,
// negative or non-finite field is replaced by that field's default while the
// remaining fields are kept.
func Decode(token string) compound.Inputs {
	in, _ := DecodeDetailed(token)
	return in
}

// DecodeDetailed is Decode that also reports every field that fell back to
// its default. Missing fields are reported with the reason "missing".
func DecodeDetailed(token string) (compound.Inputs, []FieldIssue) {
	in := compound.DefaultInputs()
	values, err := url.ParseQuery(strings.TrimPrefix(strings.TrimSpace(token), "?"))
	if err != nil && len(values) == 0 {
		// ParseQuery keeps every pair it could read; with none left the
		// whole token is unusable.
		return in, []FieldIssue{{Field: "token", Value: token, Reason: "is not a query string"}}
	}

	var issues []FieldIssue
	if v, issue, ok := lookupAmount(values, constants.KeyPrincipal); ok {
		in.Principal = v
	} else {
		issues = append(issues, issue)
	}
	if v, issue, ok := lookupAmount(values, constants.KeyAnnualContribution); ok {
		in.AnnualContribution = v
	} else {
		issues = append(issues, issue)
	}
	if v, issue, ok := lookupYears(values, constants.KeyNumberOfYears); ok {
		in.NumberOfYears = v
	} else {
		issues = append(issues, issue)
	}
	if v, issue, ok := lookupAmount(values, constants.KeyInterestRate); ok {
		in.InterestRate = v
	} else {
		issues = append(issues, issue)
	}
	return in, issues
}

// DecodeURL decodes the query of a full shareable link. Only an unparsable
// URL is an error; field problems fall back to defaults as in Decode.
func DecodeURL(rawURL string) (compound.Inputs, []FieldIssue, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return compound.DefaultInputs(), nil, fmt.Errorf("failed to parse shareable link: %w", err)
	}
	in, issues := DecodeDetailed(u.RawQuery)
	return in, issues, nil
}

// ShareURL returns base with its query replaced by the token for in.
func ShareURL(base string, in compound.Inputs) (string, error) {
	u, err := url.Parse(strings.TrimSpace(base))
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", base, err)
	}
	u.RawQuery = Encode(in)
	u.Fragment = ""
	u.RawFragment = ""
	return u.String(), nil
}

// IsMissing reports whether the issue came from an absent field rather than
// a malformed one.
func IsMissing(issue FieldIssue) bool {
	return issue.Reason == reasonMissing
}

const (
	reasonMissing     = "missing"
	reasonNotNumeric  = "is not a number"
	reasonNegative    = "is negative"
	reasonNotFinite   = "is not finite"
	reasonNotInteger  = "is not a whole number"
	reasonOutOfBounds = "is too large"
)

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func lookupAmount(values url.Values, key string) (float64, FieldIssue, bool) {
	raw, ok := firstValue(values, key)
	if !ok {
		return 0, FieldIssue{Field: key, Reason: reasonMissing}, false
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, FieldIssue{Field: key, Value: raw, Reason: reasonNotNumeric}, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, FieldIssue{Field: key, Value: raw, Reason: reasonNotFinite}, false
	}
	if v < 0 {
		return 0, FieldIssue{Field: key, Value: raw, Reason: reasonNegative}, false
	}
	return v, FieldIssue{}, true
}

func lookupYears(values url.Values, key string) (int, FieldIssue, bool) {
	v, issue, ok := lookupAmount(values, key)
	if !ok {
		return 0, issue, false
	}
	raw, _ := firstValue(values, key)
	if v != math.Trunc(v) {
		return 0, FieldIssue{Field: key, Value: raw, Reason: reasonNotInteger}, false
	}
	if v > constants.MaxNumberOfYears {
		return 0, FieldIssue{Field: key, Value: raw, Reason: reasonOutOfBounds}, false
	}
	return int(v), FieldIssue{}, true
}

// firstValue returns the first non-blank value for key, trimmed.
func firstValue(values url.Values, key string) (string, bool) {
	for _, v := range values[key] {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed, true
		}
	}
	return "", false
}
