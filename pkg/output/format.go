// Package output provides utilities for formatting and displaying calculation reports.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iwvelando/finance-calculators/internal/calculator"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Write renders report in the named output format.
func Write(w io.Writer, outputFormat string, report calculator.Report) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, report)
	case constants.OutputFormatCSV:
		return CsvFormat(w, report)
	case constants.OutputFormatJSON:
		return JSONFormat(w, report)
	}
	return fmt.Errorf("unsupported output format %s", outputFormat)
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, report calculator.Report) error {
	p := message.NewPrinter(language.English)
	in := report.Inputs

	lines := []struct {
		format string
		args   []interface{}
	}{
		{"--- Compound interest ---\n", nil},
		{"Principal           | $%.2f\n", []interface{}{in.Principal}},
		{"Annual contribution | $%.2f\n", []interface{}{in.AnnualContribution}},
		{"Number of years     | %d\n", []interface{}{in.NumberOfYears}},
		{"Interest rate       | %v%%\n", []interface{}{in.InterestRate}},
		{"Result              | $%.2f\n", []interface{}{report.Result}},
		{"\n%s\n", []interface{}{report.Description}},
	}
	for _, line := range lines {
		if _, err := p.Fprintf(w, line.format, line.args...); err != nil {
			return err
		}
	}

	if report.ShareURL != "" {
		if _, err := p.Fprintf(w, "Share: %s\n", report.ShareURL); err != nil {
			return err
		}
	} else if _, err := p.Fprintf(w, "Share token: %s\n", report.Token); err != nil {
		return err
	}

	for _, warning := range report.Warnings {
		if _, err := p.Fprintf(w, "Warning: %s\n", warning); err != nil {
			return err
		}
	}

	if len(report.Schedule) == 0 {
		return nil
	}

	if _, err := fmt.Fprintf(w, "\nYear | Start         | Growth        | Contribution  | End\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "____ | _____________ | _____________ | _____________ | _____________\n"); err != nil {
		return err
	}
	for _, period := range report.Schedule {
		if _, err := p.Fprintf(w, "%4d | $%.2f | $%.2f | $%.2f | $%.2f\n",
			period.Year, period.StartBalance, period.Growth, period.Contribution, period.EndBalance); err != nil {
			return err
		}
	}
	return nil
}

// CsvFormat outputs the schedule in comma-separated value format. Without a
// schedule only the header row and the summary row are written.
func CsvFormat(w io.Writer, report calculator.Report) error {
	if _, err := fmt.Fprintf(w, `"year","start","growth","contribution","end"`+"\n"); err != nil {
		return err
	}
	for _, period := range report.Schedule {
		if _, err := fmt.Fprintf(w, `"%d","%.2f","%.2f","%.2f","%.2f"`+"\n",
			period.Year, period.StartBalance, period.Growth, period.Contribution, period.EndBalance); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, `"total","%.2f","","","%.2f"`+"\n", report.Inputs.Principal, report.Result)
	return err
}

// JSONFormat outputs the report as indented JSON.
func JSONFormat(w io.Writer, report calculator.Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
