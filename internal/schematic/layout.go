package schematic

import (
	"math"
	"sort"

	"boardscan/internal/component"
	"boardscan/pkg/geometry"
)

// VariablePins marks a symbol whose pin count comes from the component.
const VariablePins = 0

// DefaultVariablePins is used when a variable-pin component has no estimate.
const DefaultVariablePins = 8

// Symbol is the fixed footprint of one component type.
type Symbol struct {
	Name   string
	Width  float64
	Height float64
	Pins   int // VariablePins for ICs and connectors
}

// Symbols is the symbol library keyed by component type.
var Symbols = map[component.Type]Symbol{
	component.Resistor:   {"resistor", 60, 20, 2},
	component.Capacitor:  {"capacitor", 30, 40, 2},
	component.IC:         {"ic", 80, 60, VariablePins},
	component.Diode:      {"diode", 40, 30, 2},
	component.Transistor: {"transistor", 50, 50, 3},
	component.Inductor:   {"inductor", 50, 30, 2},
	component.Connector:  {"connector", 40, 20, VariablePins},
}

// SymbolFor returns the symbol of t. Unknown types borrow the resistor
// footprint under their own name.
func SymbolFor(t component.Type) Symbol {
	if s, ok := Symbols[t]; ok {
		return s
	}
	s := Symbols[component.Resistor]
	s.Name = t.Key()
	return s
}

// PlacementOrder is the row packing priority.
var PlacementOrder = []component.Type{
	component.Connector,
	component.IC,
	component.Transistor,
	component.Resistor,
	component.Capacitor,
	component.Diode,
	component.Inductor,
}

func placementRank(t component.Type) int {
	for i, o := range PlacementOrder {
		if o == t {
			return i
		}
	}
	return -1
}

// LayoutOptions configures the row packer and sheet size.
type LayoutOptions struct {
	OriginX      float64 `toml:"origin_x"`
	OriginY      float64 `toml:"origin_y"`
	Gap          float64 `toml:"gap"`           // Horizontal space between symbols
	ColumnBudget float64 `toml:"column_budget"` // Wrap once the cursor passes this x
	RowSpacing   float64 `toml:"row_spacing"`   // Extra space below the tallest symbol
	Width        float64 `toml:"width"`
	Height       float64 `toml:"height"`
}

// DefaultLayoutOptions returns the canonical 1000x800 sheet layout.
func DefaultLayoutOptions() LayoutOptions {
	return LayoutOptions{
		OriginX:      100,
		OriginY:      100,
		Gap:          50,
		ColumnBudget: 800,
		RowSpacing:   80,
		Width:        1000,
		Height:       800,
	}
}

// Layout places components left to right in placement order, wrapping to a
// new row when the cursor passes the column budget. Row height is the
// tallest symbol placed in that row. Components of the same type keep their
// input order.
func Layout(comps []component.Component, opts LayoutOptions) []PlacedComponent {
	sorted := make([]component.Component, len(comps))
	copy(sorted, comps)
	sort.SliceStable(sorted, func(i, j int) bool {
		return placementRank(sorted[i].Type) < placementRank(sorted[j].Type)
	})

	placed := make([]PlacedComponent, 0, len(sorted))
	x, y := opts.OriginX, opts.OriginY
	rowHeight := 0.0

	for _, c := range sorted {
		sym := SymbolFor(c.Type)

		pinCount := sym.Pins
		if pinCount == VariablePins {
			pinCount = c.Properties.PinCount
			if pinCount <= 0 {
				pinCount = DefaultVariablePins
			}
		}

		placed = append(placed, PlacedComponent{
			ID:         c.ID,
			Type:       c.Type,
			Symbol:     sym.Name,
			Position:   geometry.Point2D{X: x, Y: y},
			Size:       geometry.Size{Width: sym.Width, Height: sym.Height},
			Pins:       PinLayout(pinCount, sym.Width, sym.Height),
			Properties: c.Properties,
			Label:      c.Label(),
			Value:      c.Value(),
		})

		x += sym.Width + opts.Gap
		rowHeight = math.Max(rowHeight, sym.Height)

		if x > opts.ColumnBudget {
			x = opts.OriginX
			y += rowHeight + opts.RowSpacing
			rowHeight = 0
		}
	}

	return placed
}

// PinLayout returns the canonical pin footprint for n pins on a w x h
// symbol. Two pins sit at mid-height on the left and right edges; three
// pins use the base/collector/emitter arrangement; anything else splits
// evenly, numbering down the left side and back up the right side.
func PinLayout(n int, w, h float64) []Pin {
	switch {
	case n <= 0:
		return nil
	case n == 2:
		return []Pin{
			{ID: 1, Position: geometry.Point2D{X: 0, Y: h / 2}, Side: Left},
			{ID: 2, Position: geometry.Point2D{X: w, Y: h / 2}, Side: Right},
		}
	case n == 3:
		return []Pin{
			{ID: 1, Position: geometry.Point2D{X: 0, Y: h / 3}, Side: Left, Label: "B"},
			{ID: 2, Position: geometry.Point2D{X: w / 2, Y: 0}, Side: Top, Label: "C"},
			{ID: 3, Position: geometry.Point2D{X: w / 2, Y: h}, Side: Bottom, Label: "E"},
		}
	}

	perSide := (n + 1) / 2
	step := h / float64(perSide+1)
	pins := make([]Pin, 0, n)
	for i := 0; i < perSide; i++ {
		pins = append(pins, Pin{
			ID:       i + 1,
			Position: geometry.Point2D{X: 0, Y: float64(i+1) * step},
			Side:     Left,
		})
	}
	for i := 0; i < perSide && i+perSide < n; i++ {
		pins = append(pins, Pin{
			ID:       i + perSide + 1,
			Position: geometry.Point2D{X: w, Y: h - float64(i+1)*step},
			Side:     Right,
		})
	}
	return pins
}
