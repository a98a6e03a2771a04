// Package configprocessor provides shared configuration processing utilities.
package configprocessor

import (
	"fmt"
	"strings"
)

// FleetSize holds one integer per vehicle class.
type FleetSize struct {
	Light  int
	Medium int
	Heavy  int
}

type classValue struct {
	name  string
	value int
}

func (f FleetSize) classes() [3]classValue {
	return [3]classValue{{"light", f.Light}, {"medium", f.Medium}, {"heavy", f.Heavy}}
}

// ScenarioInfo represents scenario configuration information
type ScenarioInfo struct {
	Name           string
	Active         bool
	Strategy       string
	TimeHorizon    int
	RetireVehicles bool
	Fleet          FleetSize
	Lifespans      FleetSize
	Manual         []FleetSize
}

// Processor handles configuration processing and validation
type Processor struct{}

// NewProcessor creates a new configuration processor
func NewProcessor() *Processor {
	return &Processor{}
}

// ValidateConfiguration validates the configuration and returns warnings.
// Nothing reported here stops a forecast from running.
func (p *Processor) ValidateConfiguration(scenarios []ScenarioInfo) []string {
	var warnings []string

	seen := make(map[string]bool)
	active := 0
	for _, scenario := range scenarios {
		if seen[scenario.Name] {
			warnings = append(warnings, fmt.Sprintf("Scenario name '%s' is used more than once", scenario.Name))
		}
		seen[scenario.Name] = true

		if !scenario.Active {
			continue // Skip inactive scenarios
		}
		active++
		warnings = append(warnings, manualWarnings(scenario)...)
		warnings = append(warnings, lifespanWarnings(scenario)...)
	}

	if len(scenarios) > 0 && active == 0 {
		warnings = append(warnings, "No active scenarios; nothing will be forecast")
	}

	if len(warnings) == 0 {
		return nil
	}
	return warnings
}

func manualWarnings(s ScenarioInfo) []string {
	var warnings []string
	isManual := strings.EqualFold(s.Strategy, "manual")

	if !isManual {
		if len(s.Manual) > 0 {
			warnings = append(warnings, fmt.Sprintf("Scenario '%s' lists manual deployment rows but uses the %s strategy; the rows are ignored", s.Name, s.Strategy))
		}
		return warnings
	}

	if len(s.Manual) == 0 {
		return append(warnings, fmt.Sprintf("Scenario '%s' uses the manual strategy without deployment rows; no vehicles will be converted", s.Name))
	}

	var total FleetSize
	for _, row := range s.Manual {
		total.Light += row.Light
		total.Medium += row.Medium
		total.Heavy += row.Heavy
	}
	want := s.Fleet.classes()
	for i, got := range total.classes() {
		if got.value != want[i].value {
			warnings = append(warnings, fmt.Sprintf("Scenario '%s' manually deploys %d %s vehicles but the fleet has %d", s.Name, got.value, got.name, want[i].value))
		}
	}
	return warnings
}

func lifespanWarnings(s ScenarioInfo) []string {
	var warnings []string
	fleet := s.Fleet.classes()
	for i, class := range s.Lifespans.classes() {
		if fleet[i].value == 0 || class.value <= 0 || class.value >= s.TimeHorizon {
			continue
		}
		if s.RetireVehicles {
			warnings = append(warnings, fmt.Sprintf("Scenario '%s' retires %s vehicles after %d years, inside the %d year horizon", s.Name, class.name, class.value, s.TimeHorizon))
		} else {
			warnings = append(warnings, fmt.Sprintf("Scenario '%s' keeps %s vehicles in service past their %d year lifespan", s.Name, class.name, class.value))
		}
	}
	return warnings
}
