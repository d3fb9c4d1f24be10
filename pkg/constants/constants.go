// Package constants provides shared constants for the finance-calculators application.
package constants

// Calculator defaults used when a field is missing from a share token or a
// configuration file.
const (
	// DefaultPrincipal is the initial amount invested.
	DefaultPrincipal = 10000.0

	// DefaultAnnualContribution is the amount added once per year.
	DefaultAnnualContribution = 0.0

	// DefaultNumberOfYears is the number of compounding periods.
	DefaultNumberOfYears = 10

	// DefaultInterestRate is the annual interest rate in percent.
	DefaultInterestRate = 7.0
)

// Share token query keys.
const (
	KeyPrincipal          = "principal"
	KeyAnnualContribution = "annualContribution"
	KeyNumberOfYears      = "numberOfYears"
	KeyInterestRate       = "interestRate"
)

// Financial constants
const (
	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// MaxNumberOfYears bounds the compounding loop.
	MaxNumberOfYears = 1000

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxRequestSizeBytes is the default maximum JSON request body size (64 KB)
	DefaultMaxRequestSizeBytes int64 = 64 * 1024

	// DefaultMetricsPath is where prometheus metrics are served
	DefaultMetricsPath = "/metrics"

	// DefaultCacheTTLSeconds is how long computed responses stay cached
	DefaultCacheTTLSeconds = 3600
)
