// Package component classifies geometric primitives into typed component
// candidates, trace segments, or noise.
package component

import (
	"strings"

	"boardscan/pkg/geometry"
)

// Type is a discrete component category.
type Type string

const (
	Resistor   Type = "Resistor"
	Capacitor  Type = "Capacitor"
	IC         Type = "IC"
	Diode      Type = "Diode"
	Transistor Type = "Transistor"
	Inductor   Type = "Inductor"
	Connector  Type = "Connector"
)

// AllTypes lists every component type in template priority order.
var AllTypes = []Type{Resistor, Capacitor, IC, Diode, Transistor, Inductor, Connector}

// Key returns the lower-case symbol key for the type, e.g. "ic".
func (t Type) Key() string {
	return strings.ToLower(string(t))
}

// Prefix returns the reference designator prefix for the type.
func (t Type) Prefix() string {
	switch t {
	case Resistor:
		return "R"
	case Capacitor:
		return "C"
	case IC:
		return "U"
	case Diode:
		return "D"
	case Transistor:
		return "Q"
	case Inductor:
		return "L"
	case Connector:
		return "J"
	default:
		return "X"
	}
}

// Properties is the type-specific property bag. Every value is a coarse
// bucket derived from blob size and shape, not a measurement.
type Properties struct {
	EstimatedValue string `json:"estimated_value,omitempty"` // Resistor value range
	PowerRating    string `json:"power_rating,omitempty"`    // Resistor power class
	Capacitance    string `json:"capacitance,omitempty"`     // Capacitor value range
	Voltage        string `json:"voltage,omitempty"`         // Capacitor voltage class
	PinCount       int    `json:"pin_count,omitempty"`       // IC pin estimate
	Package        string `json:"package,omitempty"`         // IC/transistor package guess
	Kind           string `json:"kind,omitempty"`            // Diode/transistor sub-type
	ForwardVoltage string `json:"forward_voltage,omitempty"` // Diode forward drop
}

// Component is a classified component candidate.
type Component struct {
	ID         string           `json:"id"` // Unique within a run, e.g. "comp_3"
	Type       Type             `json:"type"`
	Confidence float64          `json:"confidence"` // 0-1
	Position   geometry.Point2D `json:"position"`   // Center of the bounding rectangle
	Bounds     geometry.Rect    `json:"bounds"`
	Properties Properties       `json:"properties"`
}

// Label returns the designator, e.g. "R3" for a resistor with id "comp_3".
func (c Component) Label() string {
	number := "1"
	if i := strings.LastIndex(c.ID, "_"); i >= 0 && i+1 < len(c.ID) {
		number = c.ID[i+1:]
	}
	return c.Type.Prefix() + number
}

// Value returns the estimated value string, or "" when none was estimated.
func (c Component) Value() string {
	return c.Properties.EstimatedValue
}

// Counts tallies components per type.
func Counts(comps []Component) map[Type]int {
	counts := make(map[Type]int)
	for _, c := range comps {
		counts[c.Type]++
	}
	return counts
}

// Index maps component ids to their position in comps.
func Index(comps []Component) map[string]int {
	idx := make(map[string]int, len(comps))
	for i, c := range comps {
		idx[c.ID] = i
	}
	return idx
}
