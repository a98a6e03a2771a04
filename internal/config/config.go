// Package config defines the data structures related to configuration and
// includes functions for loading, normalizing and exporting it.
package config

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/iwvelando/fleet-forecast/pkg/configprocessor"
	"github.com/iwvelando/fleet-forecast/pkg/constants"
	"github.com/iwvelando/fleet-forecast/pkg/deployment"
	"github.com/spf13/viper"
)

const (
	// DefaultTimeHorizon is used when common.timeHorizon is unset.
	DefaultTimeHorizon = 10
	// DefaultStrategy is used when a scenario names no strategy.
	DefaultStrategy = deployment.KindPhased
)

// Configuration holds all configuration for fleet-forecast.
type Configuration struct {
	Common    Common        `yaml:"common"`
	Scenarios []Scenario    `yaml:"scenarios"`
	Logging   LoggingConfig `yaml:"logging,omitempty"`
	Output    OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// Common holds the parameters shared by every scenario.
type Common struct {
	TimeHorizon int         `yaml:"timeHorizon"`
	StartYear   int         `yaml:"startYear"`
	Vehicles    Vehicles    `yaml:"vehicles"`
	Station     Station     `yaml:"station"`
	Fuel        Fuel        `yaml:"fuel"`
	Sensitivity Sensitivity `yaml:"sensitivity,omitempty"`
}

// Vehicles holds the fleet, one entry per vehicle class.
type Vehicles struct {
	Light  VehicleClass `yaml:"light"`
	Medium VehicleClass `yaml:"medium"`
	Heavy  VehicleClass `yaml:"heavy"`
}

// VehicleClass describes the vehicles of one class.
type VehicleClass struct {
	Count       int     `yaml:"count"`
	Cost        float64 `yaml:"cost"`     // conversion cost per vehicle
	Lifespan    int     `yaml:"lifespan"` // years
	MPG         float64 `yaml:"mpg"`
	AnnualMiles float64 `yaml:"annualMiles"`
}

// Station describes the fueling station.
type Station struct {
	Type         string   `yaml:"type"`         // fast, time
	BusinessType string   `yaml:"businessType"` // aglc, cgc, vng
	Turnkey      bool     `yaml:"turnkey"`
	SizingMethod string   `yaml:"sizingMethod"`   // total, peak
	Cost         *float64 `yaml:"cost,omitempty"` // overrides the estimate
}

// Fuel holds fuel prices in USD per gallon or GGE.
type Fuel struct {
	Gasoline       float64 `yaml:"gasoline"`
	Diesel         float64 `yaml:"diesel"`
	CNG            float64 `yaml:"cng"`
	AnnualIncrease float64 `yaml:"annualIncrease"` // percent per year
}

// Sensitivity configures the sweeps run alongside each forecast.
type Sensitivity struct {
	Enabled   bool     `yaml:"enabled"`
	Variables []string `yaml:"variables,omitempty"`
	Steps     int      `yaml:"steps,omitempty"`
	Span      float64  `yaml:"span,omitempty"`
}

// Scenario is one deployment plan evaluated against the common parameters.
type Scenario struct {
	Name           string       `yaml:"name"`
	Active         bool         `yaml:"active"`
	Strategy       string       `yaml:"strategy"`
	TimeHorizon    int          `yaml:"timeHorizon,omitempty"` // overrides common when set
	RetireVehicles bool         `yaml:"retireVehicles,omitempty"`
	Manual         []ManualYear `yaml:"manual,omitempty"`
	Station        *Station     `yaml:"station,omitempty"`
	Fuel           *Fuel        `yaml:"fuel,omitempty"`
	Vehicles       *Vehicles    `yaml:"vehicles,omitempty"`
	Sensitivity    *Sensitivity `yaml:"sensitivity,omitempty"`
}

// ManualYear is one row of a manual deployment.
type ManualYear struct {
	Light  int `yaml:"light"`
	Medium int `yaml:"medium"`
	Heavy  int `yaml:"heavy"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %w", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	configuration.Normalize()
	return &configuration, nil
}

// Normalize fills defaults and canonicalizes enum spellings. Unknown enum
// values are left as written so validation can reject them.
func (c *Configuration) Normalize() {
	c.NormalizeWithFixedTime(time.Now())
}

// NormalizeWithFixedTime is Normalize with an injectable clock for the
// default start year.
func (c *Configuration) NormalizeWithFixedTime(now time.Time) {
	if c.Common.TimeHorizon == 0 {
		c.Common.TimeHorizon = DefaultTimeHorizon
	}
	if c.Common.StartYear == 0 {
		c.Common.StartYear = now.Year()
	}
	c.Common.Station.normalize()
	c.Common.Sensitivity.normalize()
	c.Output.Format = canonical(c.Output.Format)

	for i := range c.Scenarios {
		s := &c.Scenarios[i]
		s.Strategy = canonical(s.Strategy)
		if s.Strategy == "" {
			s.Strategy = string(DefaultStrategy)
		}
		if s.Station != nil {
			s.Station.normalize()
		}
		if s.Sensitivity != nil {
			s.Sensitivity.normalize()
		}
	}
}

func (s *Station) normalize() {
	s.Type = canonical(s.Type)
	s.BusinessType = canonical(s.BusinessType)
	s.SizingMethod = canonical(s.SizingMethod)
	if s.Type == "" {
		s.Type = "fast"
	}
	if s.BusinessType == "" {
		s.BusinessType = "aglc"
	}
	if s.SizingMethod == "" {
		s.SizingMethod = "total"
	}
}

func (s *Sensitivity) normalize() {
	if s.Steps == 0 {
		s.Steps = constants.DefaultSensitivitySteps
	}
	if s.Span == 0 {
		s.Span = constants.DefaultSensitivitySpan
	}
}

func canonical(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ActiveScenarios returns the scenarios marked active, in file order.
func (c *Configuration) ActiveScenarios() []Scenario {
	var active []Scenario
	for _, s := range c.Scenarios {
		if s.Active {
			active = append(active, s)
		}
	}
	return active
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Hard errors are raised later, when a scenario is converted
// into engine inputs.
func (c *Configuration) ValidateConfiguration() []string {
	fleetSize := configprocessor.FleetSize{
		Light:  c.Common.Vehicles.Light.Count,
		Medium: c.Common.Vehicles.Medium.Count,
		Heavy:  c.Common.Vehicles.Heavy.Count,
	}
	lifespans := configprocessor.FleetSize{
		Light:  c.Common.Vehicles.Light.Lifespan,
		Medium: c.Common.Vehicles.Medium.Lifespan,
		Heavy:  c.Common.Vehicles.Heavy.Lifespan,
	}

	var scenarios []configprocessor.ScenarioInfo
	for _, scenario := range c.Scenarios {
		info := configprocessor.ScenarioInfo{
			Name:           scenario.Name,
			Active:         scenario.Active,
			Strategy:       scenario.Strategy,
			TimeHorizon:    scenario.horizon(c.Common),
			RetireVehicles: scenario.RetireVehicles,
			Fleet:          fleetSize,
			Lifespans:      lifespans,
		}
		if scenario.Vehicles != nil {
			info.Fleet = configprocessor.FleetSize{
				Light:  scenario.Vehicles.Light.Count,
				Medium: scenario.Vehicles.Medium.Count,
				Heavy:  scenario.Vehicles.Heavy.Count,
			}
			info.Lifespans = configprocessor.FleetSize{
				Light:  scenario.Vehicles.Light.Lifespan,
				Medium: scenario.Vehicles.Medium.Lifespan,
				Heavy:  scenario.Vehicles.Heavy.Lifespan,
			}
		}
		for _, row := range scenario.Manual {
			info.Manual = append(info.Manual, configprocessor.FleetSize(row))
		}
		scenarios = append(scenarios, info)
	}

	processor := configprocessor.NewProcessor()
	return processor.ValidateConfiguration(scenarios)
}

func (s Scenario) horizon(common Common) int {
	if s.TimeHorizon > 0 {
		return s.TimeHorizon
	}
	return common.TimeHorizon
}
