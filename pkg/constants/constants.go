// Package constants provides shared constants for the pricing-sim application.
package constants

// Elasticity estimation constants
const (
	// MinRegressionPoints is the minimum number of usable observations for a
	// log-log fit.
	MinRegressionPoints = 2

	// DefaultFallbackVolume is the base volume assumed for a product with no
	// historical observations.
	DefaultFallbackVolume = 1000.0
)

// Optimizer defaults
const (
	// DefaultMinDelta is the lower bound of the candidate price-change grid.
	DefaultMinDelta = -0.30

	// DefaultMaxDelta is the upper bound of the candidate price-change grid.
	DefaultMaxDelta = 0.30

	// DefaultGridStep is the spacing of the candidate price-change grid.
	DefaultGridStep = 0.01

	// DefaultTolerance is the relative objective improvement below which the
	// optimizer is considered converged.
	DefaultTolerance = 1e-6

	// DefaultMaxPasses caps the number of full coordinate passes.
	DefaultMaxPasses = 10
)

// Numeric constants
const (
	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// GridEpsilon guards against floating-point drift when walking the
	// candidate grid.
	GridEpsilon = 1e-9
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"
)

// Data format constants
const (
	// DataFormatCSV selects comma-separated product and history files
	DataFormatCSV = "csv"

	// DataFormatYAML selects YAML product and history files
	DataFormatYAML = "yaml"
)
