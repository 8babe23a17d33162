package behavior

import (
	"strings"

	"boardscan/internal/component"
)

// SmallICMaxPins is the largest pin count treated as a regulator-class IC.
const SmallICMaxPins = 8

// Summary is the typed component census every rule is evaluated against.
// ID lists keep component order.
type Summary struct {
	Counts map[component.Type]int
	ByType map[component.Type][]string

	SmallICs      []string // ICs with PinCount <= SmallICMaxPins
	LargeICs      []string // ICs with PinCount > SmallICMaxPins
	PicofaradCaps []string // Capacitors whose capacitance range is in pF
	VoltageCaps   []string // Capacitors with a voltage class

	Power   []string // Diodes, voltage-rated capacitors and small ICs
	Passive []string // Capacitors, resistors and inductors
}

// Summarize builds the census for comps.
func Summarize(comps []component.Component) Summary {
	s := Summary{
		Counts: make(map[component.Type]int),
		ByType: make(map[component.Type][]string),
	}

	for _, c := range comps {
		s.Counts[c.Type]++
		s.ByType[c.Type] = append(s.ByType[c.Type], c.ID)

		switch c.Type {
		case component.IC:
			if c.Properties.PinCount <= SmallICMaxPins {
				s.SmallICs = append(s.SmallICs, c.ID)
			} else {
				s.LargeICs = append(s.LargeICs, c.ID)
			}
		case component.Capacitor:
			if strings.Contains(c.Properties.Capacitance, "pF") {
				s.PicofaradCaps = append(s.PicofaradCaps, c.ID)
			}
			if c.Properties.Voltage != "" {
				s.VoltageCaps = append(s.VoltageCaps, c.ID)
			}
		}

		if isPower(c) {
			s.Power = append(s.Power, c.ID)
		}
		if c.Type == component.Capacitor || c.Type == component.Resistor || c.Type == component.Inductor {
			s.Passive = append(s.Passive, c.ID)
		}
	}

	return s
}

// Has reports whether at least one component of type t is present.
func (s Summary) Has(t component.Type) bool {
	return s.Counts[t] > 0
}

// Count returns the number of components of type t.
func (s Summary) Count(t component.Type) int {
	return s.Counts[t]
}

func isPower(c component.Component) bool {
	switch c.Type {
	case component.Diode:
		return true
	case component.Capacitor:
		return c.Properties.Voltage != ""
	case component.IC:
		return c.Properties.PinCount <= SmallICMaxPins
	}
	return false
}
