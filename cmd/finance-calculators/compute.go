package main

import (
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/output"
	"github.com/iwvelando/finance-calculators/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func computeCommand(opts *rootOptions) *cobra.Command {
	var (
		inputs       inputFlags
		outputFormat string
		schedule     bool
	)

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute the future value of an investment",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, logger, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			defer func() {
				_ = logger.Sync()
			}()

			// CLI override takes precedence over config
			format := conf.Output.Format
			if outputFormat != "" {
				format = outputFormat
			}
			if format == "" {
				format = constants.OutputFormatPretty
			}
			if err := validation.ValidateOutputFormat(format); err != nil {
				return err
			}

			includeSchedule := conf.Output.Schedule
			if cmd.Flags().Changed("schedule") {
				includeSchedule = schedule
			}

			session, err := inputs.session(cmd, conf, conf.Share.BaseURL, logger)
			if err != nil {
				return err
			}

			report, err := session.Report(includeSchedule)
			if err != nil {
				return err
			}

			logger.Debug("computed future value",
				zap.String("op", "main.compute"),
				zap.String("token", report.Token),
				zap.Float64("result", report.Result),
			)
			return output.Write(cmd.OutOrStdout(), format, report)
		},
	}

	inputs.register(cmd)
	cmd.Flags().StringVar(&outputFormat, "output-format", "", "type of output override: pretty, csv, json")
	cmd.Flags().BoolVar(&schedule, "schedule", false, "include the year-by-year schedule")

	return cmd
}
