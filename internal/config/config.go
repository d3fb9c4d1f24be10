// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/iwvelando/finance-calculators/pkg/compound"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for finance-calculators.
type Configuration struct {
	Inputs  compound.Inputs `mapstructure:"inputs" yaml:"inputs"`
	Logging LoggingConfig   `mapstructure:"logging" yaml:"logging,omitempty"`
	Output  OutputConfig    `mapstructure:"output" yaml:"output,omitempty"`
	Share   ShareConfig     `mapstructure:"share" yaml:"share,omitempty"`
	History HistoryConfig   `mapstructure:"history" yaml:"history,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level,omitempty"`           // debug, info, warn, error
	Format     string `mapstructure:"format" yaml:"format,omitempty"`         // json, console
	OutputFile string `mapstructure:"outputFile" yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format   string `mapstructure:"format" yaml:"format,omitempty"` // pretty, csv, json
	Schedule bool   `mapstructure:"schedule" yaml:"schedule,omitempty"`
}

// ShareConfig controls how shareable links are built.
type ShareConfig struct {
	BaseURL string `mapstructure:"baseUrl" yaml:"baseUrl,omitempty"`
}

// HistoryConfig bounds the undo history of a calculator session.
type HistoryConfig struct {
	Limit int `mapstructure:"limit" yaml:"limit,omitempty"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix("CALCULATOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := compound.DefaultInputs()
	v.SetDefault("inputs.principal", defaults.Principal)
	v.SetDefault("inputs.annualContribution", defaults.AnnualContribution)
	v.SetDefault("inputs.numberOfYears", defaults.NumberOfYears)
	v.SetDefault("inputs.interestRate", defaults.InterestRate)
	v.SetDefault("output.format", constants.OutputFormatPretty)

	// AutomaticEnv only overrides keys viper already knows about.
	v.SetDefault("output.schedule", false)
	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("share.baseUrl", "")
	v.SetDefault("history.limit", 0)
	return v
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return decode(v)
}

// DefaultConfiguration is the configuration used when no file is given.
func DefaultConfiguration() *Configuration {
	conf, err := decode(newViper())
	if err != nil {
		// Only defaults are involved, so decoding cannot fail.
		panic(err)
	}
	return conf
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Invalid inputs are replaced by the defaults.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if err := validation.ValidateInputs(c.Inputs); err != nil {
		warnings = append(warnings, fmt.Sprintf("invalid inputs (%v), using defaults", err))
		c.Inputs = compound.DefaultInputs()
	}

	if c.Output.Format != "" {
		if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
			warnings = append(warnings, fmt.Sprintf("%v, using %s", err, constants.OutputFormatPretty))
			c.Output.Format = constants.OutputFormatPretty
		}
	}

	if c.Share.BaseURL != "" {
		if _, err := url.Parse(c.Share.BaseURL); err != nil {
			warnings = append(warnings, fmt.Sprintf("invalid share base URL %q, share links disabled", c.Share.BaseURL))
			c.Share.BaseURL = ""
		}
	}

	if c.History.Limit < 0 {
		warnings = append(warnings, fmt.Sprintf("history limit %d is negative, using default", c.History.Limit))
		c.History.Limit = 0
	}

	return warnings
}
