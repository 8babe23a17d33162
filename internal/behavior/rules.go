package behavior

import "boardscan/internal/component"

// Rule pairs a label with the predicate that selects it.
type Rule struct {
	Label string
	Match func(Summary) bool
}

// Fallback labels, used when no rule holds.
const (
	GeneralPurpose  = "General Purpose"
	UnknownFunction = "Unknown Function"
	NoneDetected    = "None detected"
	ExternalPower   = "External Power"
	UnknownLabel    = "Unknown"
)

// Function labels.
const (
	VoltageRegulation   = "Voltage Regulation"
	SignalAmplification = "Signal Amplification"
	SignalFiltering     = "Signal Filtering"
	DigitalProcessing   = "Digital Processing"
)

func both(a, b component.Type) func(Summary) bool {
	return func(s Summary) bool { return s.Has(a) && s.Has(b) }
}

// CircuitTypeRules are evaluated in order; the first match wins.
var CircuitTypeRules = []Rule{
	{"Digital/Mixed Signal", both(component.IC, component.Capacitor)},
	{"Analog Amplifier", both(component.Transistor, component.Resistor)},
	{"Power Supply/Rectifier", both(component.Diode, component.Capacitor)},
	{"Filter/Oscillator", func(s Summary) bool { return s.Has(component.Inductor) }},
}

// FunctionRules are independent; every match is collected.
var FunctionRules = []Rule{
	{VoltageRegulation, func(s Summary) bool {
		return len(s.SmallICs) > 0 && s.Count(component.Capacitor) >= 2 && s.Has(component.Inductor)
	}},
	{SignalAmplification, func(s Summary) bool {
		return s.Has(component.Transistor) && s.Count(component.Resistor) >= 2 && s.Has(component.Capacitor)
	}},
	{SignalFiltering, func(s Summary) bool {
		return both(component.Inductor, component.Capacitor)(s) || both(component.Capacitor, component.Resistor)(s)
	}},
	{DigitalProcessing, func(s Summary) bool {
		return s.Count(component.IC) >= 1 && len(s.PicofaradCaps) >= 2
	}},
}

// FirstMatch returns the label of the first rule that holds, or fallback.
func FirstMatch(rules []Rule, s Summary, fallback string) string {
	for _, r := range rules {
		if r.Match(s) {
			return r.Label
		}
	}
	return fallback
}

// AllMatches returns every label whose rule holds, in rule order. When none
// hold the result is the single fallback label.
func AllMatches(rules []Rule, s Summary, fallback string) []string {
	var labels []string
	for _, r := range rules {
		if r.Match(s) {
			labels = append(labels, r.Label)
		}
	}
	if len(labels) == 0 {
		return []string{fallback}
	}
	return labels
}

// Tier is one step of a count-threshold descriptor table.
type Tier struct {
	Min        int
	Descriptor Descriptor
}

// Grade picks the first tier whose minimum the member count reaches and
// attaches the members. Tiers must be sorted by descending Min.
func Grade(tiers []Tier, members []string, fallback Descriptor) Descriptor {
	for _, t := range tiers {
		if len(members) >= t.Min {
			d := t.Descriptor
			d.Components = members
			return d
		}
	}
	return fallback
}

// PowerSupplyTiers grade the count of power-path components.
var PowerSupplyTiers = []Tier{
	{3, Descriptor{Type: "Switching Power Supply", EstimatedVoltage: "3.3V - 12V"}},
	{1, Descriptor{Type: "Linear Regulator", EstimatedVoltage: "5V"}},
}

// SignalProcessingTiers grade the count of passive components.
var SignalProcessingTiers = []Tier{
	{3, Descriptor{Type: "Active Filtering", Bandwidth: UnknownLabel}},
}

// ControlLogicTiers grade the count of large-pin-count ICs.
var ControlLogicTiers = []Tier{
	{1, Descriptor{Type: "Microcontroller/Processor"}},
}
