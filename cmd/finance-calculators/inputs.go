package main

import (
	"fmt"
	"strings"

	"github.com/iwvelando/finance-calculators/internal/calculator"
	"github.com/iwvelando/finance-calculators/internal/config"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// inputFlags holds the raw text of the per-field flags. Values are parsed
// the same way form input is, so "$10,000" and "7%" are accepted.
type inputFlags struct {
	principal    string
	contribution string
	years        string
	rate         string
	share        string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.principal, "principal", "", "initial amount invested")
	cmd.Flags().StringVar(&f.contribution, "contribution", "", "amount added at the end of each year")
	cmd.Flags().StringVar(&f.years, "years", "", "number of years to compound")
	cmd.Flags().StringVar(&f.rate, "rate", "", "annual interest rate in percent")
	cmd.Flags().StringVar(&f.share, "share", "", "share token or shareable URL to start from")
}

// session builds a calculator session. Configured inputs are applied first,
// then the share token, then any field flags.
func (f *inputFlags) session(cmd *cobra.Command, conf *config.Configuration, baseURL string, logger *zap.Logger) (*calculator.Session, error) {
	session := calculator.New(logger,
		calculator.WithInputs(conf.Inputs),
		calculator.WithBaseURL(baseURL),
		calculator.WithHistoryLimit(conf.History.Limit),
	)

	if share := strings.TrimSpace(f.share); share != "" {
		if strings.Contains(share, "://") {
			if err := session.LoadURL(share); err != nil {
				return nil, fmt.Errorf("failed to read share URL: %w", err)
			}
		} else {
			session.Load(share)
		}
		for _, warning := range session.Warnings() {
			logger.Warn("Share token warning: "+warning,
				zap.String("op", "main.session"),
			)
		}
	}

	fields := []struct {
		flag  string
		field string
		raw   string
	}{
		{"principal", constants.KeyPrincipal, f.principal},
		{"contribution", constants.KeyAnnualContribution, f.contribution},
		{"years", constants.KeyNumberOfYears, f.years},
		{"rate", constants.KeyInterestRate, f.rate},
	}
	for _, field := range fields {
		if !cmd.Flags().Changed(field.flag) {
			continue
		}
		if err := session.Set(field.field, field.raw); err != nil {
			return nil, fmt.Errorf("--%s: %w", field.flag, err)
		}
	}
	return session, nil
}
