// Package main provides the CLI entrypoint for finance-calculators. It wires
// the compute, share and serve subcommands.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/iwvelando/finance-calculators/internal/config"
	"github.com/iwvelando/finance-calculators/internal/logging"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

type rootOptions struct {
	configPath string
	logLevel   string
}

func main() {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "finance-calculators",
		Short:         "Compound interest calculator with shareable links",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", constants.DefaultConfigFile, "path to configuration file")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(
		computeCommand(opts),
		shareCommand(opts),
		serveCommand(opts),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": %q}\n", err.Error())
		os.Exit(1)
	}
}

// loadConfiguration reads the calculator configuration. A missing file at the
// default location is not an error; the built-in defaults are used instead.
func loadConfiguration(cmd *cobra.Command, opts *rootOptions) (*config.Configuration, error) {
	explicit := cmd.Flags().Changed("config")
	if !explicit {
		if _, err := os.Stat(opts.configPath); errors.Is(err, fs.ErrNotExist) {
			return config.DefaultConfiguration(), nil
		}
	}

	conf, err := config.LoadConfiguration(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration at %s: %w", opts.configPath, err)
	}
	return conf, nil
}

// setup loads the configuration, builds the logger and reports configuration
// warnings.
func setup(cmd *cobra.Command, opts *rootOptions) (*config.Configuration, *zap.Logger, error) {
	conf, err := loadConfiguration(cmd, opts)
	if err != nil {
		return nil, nil, err
	}

	logger, err := logging.New(conf.Logging, opts.logLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main.setup"),
		)
	}
	return conf, logger, nil
}
