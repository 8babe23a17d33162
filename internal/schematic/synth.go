package schematic

import (
	"fmt"
	"strconv"
	"strings"

	"boardscan/internal/behavior"
	"boardscan/internal/component"
	"boardscan/internal/connectivity"
	"boardscan/internal/logger"
	"boardscan/pkg/geometry"
)

// Rail geometry on the canonical sheet.
const (
	RailStartX = 50
	RailEndX   = 950
	RailLabelX = 20
	VCCRailY   = 70
	GNDRailY   = 750
)

// PlaceholderPath is the fixed path given to every wire.
var PlaceholderPath = []geometry.Point2D{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 50}, {X: 200, Y: 50}}

// Wires draws one placeholder wire per component-component edge. Wire and
// net names use the edge's index in the full edge list.
func Wires(edges []connectivity.Edge) []Wire {
	wires := []Wire{}
	for i, e := range edges {
		if e.Kind != connectivity.ComponentComponent {
			continue
		}
		path := make([]geometry.Point2D, len(PlaceholderPath))
		copy(path, PlaceholderPath)
		wires = append(wires, Wire{
			ID:      fmt.Sprintf("wire_%d", i),
			From:    Endpoint{Component: e.Pair[0], Pin: 1},
			To:      Endpoint{Component: e.Pair[1], Pin: 1},
			Path:    path,
			Net:     fmt.Sprintf("NET_%d", i),
			Routing: PlaceholderRouting,
		})
	}
	return wires
}

type railRule struct {
	name, voltage, color string
	y                    float64
	members              []component.Type
}

var railRules = []railRule{
	{"VCC", "+5V", "#FF0000", VCCRailY, []component.Type{component.IC, component.Transistor}},
	{"GND", "0V", "#000000", GNDRailY, []component.Type{component.IC, component.Capacitor}},
}

// Rails builds the VCC and GND rails. Membership is by component type only;
// it is not derived from nets.
func Rails(comps []component.Component) []PowerRail {
	rails := make([]PowerRail, 0, len(railRules))
	for _, r := range railRules {
		rail := PowerRail{
			Name:        r.name,
			Voltage:     r.voltage,
			Color:       r.color,
			Y:           r.y,
			Connections: []RailConnection{},
		}
		for _, c := range comps {
			for _, t := range r.members {
				if c.Type == t {
					rail.Connections = append(rail.Connections, RailConnection{Component: c.ID, Pin: r.name})
					break
				}
			}
		}
		rails = append(rails, rail)
	}
	return rails
}

// Annotations returns the function, power and type callouts.
func Annotations(p behavior.Profile, totalPowerMW float64) []Annotation {
	return []Annotation{
		{
			Position: geometry.Point2D{X: 50, Y: 50},
			Text:     "Circuit Function: " + strings.Join(p.EstimatedFunction, ", "),
			Style:    TextStyle{FontSize: 14, Bold: true},
		},
		{
			Position: geometry.Point2D{X: 50, Y: 80},
			Text:     "Estimated Power: " + strconv.FormatFloat(totalPowerMW, 'f', -1, 64) + "mW",
			Style:    TextStyle{FontSize: 12},
		},
		{
			Position: geometry.Point2D{X: 50, Y: 110},
			Text:     "Type: " + p.CircuitType,
			Style:    TextStyle{FontSize: 12},
		},
	}
}

// DefaultTitle is used when no function maps to a title.
const DefaultTitle = "Electronic Circuit"

var titleRules = []struct {
	function, title string
}{
	{behavior.VoltageRegulation, "Power Supply Circuit"},
	{behavior.SignalAmplification, "Amplifier Circuit"},
	{behavior.DigitalProcessing, "Digital Logic Circuit"},
	{behavior.SignalFiltering, "Filter Circuit"},
}

// Title picks the title of the first function rule present in the profile.
func Title(p behavior.Profile) string {
	for _, r := range titleRules {
		if p.HasFunction(r.function) {
			return r.title
		}
	}
	return DefaultTitle
}

// Synthesize builds the complete schematic model.
func Synthesize(comps []component.Component, edges []connectivity.Edge, p behavior.Profile, totalPowerMW float64, opts LayoutOptions) Model {
	m := Model{
		Title:       Title(p),
		Width:       opts.Width,
		Height:      opts.Height,
		Components:  Layout(comps, opts),
		Wires:       Wires(edges),
		PowerRails:  Rails(comps),
		Annotations: Annotations(p, totalPowerMW),
	}
	logger.Info("schematic: %q, %d symbols, %d wires", m.Title, len(m.Components), len(m.Wires))
	return m
}
