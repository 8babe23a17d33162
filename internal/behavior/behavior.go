// Package behavior classifies what a recognized circuit probably does.
//
// Every output is produced by ordered rule tables over a Summary of the
// detected components, so each rule can be tested without rendering or
// image processing. Classification never fails; every profile has a
// fallback label.
package behavior

import (
	"boardscan/internal/component"
	"boardscan/internal/logger"
)

// Descriptor describes one facet of the circuit together with the
// components that contributed to it.
type Descriptor struct {
	Type             string   `json:"type"`
	EstimatedVoltage string   `json:"estimated_voltage,omitempty"`
	Bandwidth        string   `json:"bandwidth,omitempty"`
	Components       []string `json:"components,omitempty"`
}

// Profile is the full behavioral classification of a circuit.
type Profile struct {
	CircuitType       string     `json:"circuit_type"`
	EstimatedFunction []string   `json:"estimated_function"`
	PowerSupply       Descriptor `json:"power_supply"`
	SignalProcessing  Descriptor `json:"signal_processing"`
	ControlLogic      Descriptor `json:"control_logic"`
}

// HasFunction reports whether label is among the estimated functions.
func (p Profile) HasFunction(label string) bool {
	for _, f := range p.EstimatedFunction {
		if f == label {
			return true
		}
	}
	return false
}

// Classify evaluates every rule table against comps.
func Classify(comps []component.Component) Profile {
	s := Summarize(comps)

	p := Profile{
		CircuitType:       FirstMatch(CircuitTypeRules, s, GeneralPurpose),
		EstimatedFunction: AllMatches(FunctionRules, s, UnknownFunction),
		PowerSupply: Grade(PowerSupplyTiers, s.Power,
			Descriptor{Type: ExternalPower, EstimatedVoltage: UnknownLabel}),
		SignalProcessing: Grade(SignalProcessingTiers, s.Passive,
			Descriptor{Type: NoneDetected}),
		ControlLogic: Grade(ControlLogicTiers, s.LargeICs,
			Descriptor{Type: NoneDetected}),
	}

	logger.Info("behavior: %s, functions %v", p.CircuitType, p.EstimatedFunction)
	return p
}
