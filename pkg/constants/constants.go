// Package constants provides shared constants for the fleet-forecast application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DaysPerYear is used to convert annual fuel throughput into daily throughput
	DaysPerYear = 365

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// MaintenanceSavingsRate is the share of fuel savings credited as reduced maintenance
	MaintenanceSavingsRate = 0.10

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// CNG efficiency derates by vehicle class. A CNG vehicle covers this fraction
// of the distance its liquid-fuel equivalent covers per gallon (GGE).
const (
	LightDutyCNGEfficiency  = 0.95
	MediumDutyCNGEfficiency = 0.925
	HeavyDutyCNGEfficiency  = 0.90
)

// Emission factors in kg CO2 per gallon (liquid fuels) or per GGE (CNG).
const (
	GasolineEmissionFactor = 8.887
	DieselEmissionFactor   = 10.180
	CNGEmissionFactor      = 5.511
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the machine-readable JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"
)

// Sensitivity defaults
const (
	// DefaultSensitivitySteps is the number of points evaluated per variable
	DefaultSensitivitySteps = 5

	// DefaultSensitivitySpan is the relative swing applied on each side of the base value
	DefaultSensitivitySpan = 0.20
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)
