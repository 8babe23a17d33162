// Package schematic synthesizes a schematic drawing from classified
// components and renders it as SVG or PNG.
//
// Layout is a deterministic row packer over fixed symbol footprints. Wires
// are placeholders: they record which components connect but their paths are
// not routed between actual pin positions.
package schematic

import (
	"boardscan/internal/component"
	"boardscan/pkg/geometry"
)

// Side is the edge of a symbol a pin sits on.
type Side string

const (
	Left   Side = "left"
	Right  Side = "right"
	Top    Side = "top"
	Bottom Side = "bottom"
)

// Pin is a terminal position relative to the symbol origin.
type Pin struct {
	ID       int              `json:"id"`
	Position geometry.Point2D `json:"position"`
	Side     Side             `json:"side"`
	Label    string           `json:"label,omitempty"` // B/C/E for transistors
}

// PlacedComponent is a component positioned on the schematic sheet.
type PlacedComponent struct {
	ID         string               `json:"id"`
	Type       component.Type       `json:"type"`
	Symbol     string               `json:"symbol"`
	Position   geometry.Point2D     `json:"position"` // Top-left corner
	Size       geometry.Size        `json:"size"`
	Pins       []Pin                `json:"pins"`
	Properties component.Properties `json:"properties"`
	Label      string               `json:"label"`
	Value      string               `json:"value"`
}

// Bounds returns the occupied rectangle in sheet coordinates.
func (p PlacedComponent) Bounds() geometry.Rect {
	return geometry.Rect{X: p.Position.X, Y: p.Position.Y, Width: p.Size.Width, Height: p.Size.Height}
}

// Endpoint is one end of a wire.
type Endpoint struct {
	Component string `json:"component"`
	Pin       int    `json:"pin"`
}

// PlaceholderRouting marks a wire whose path is not derived from pin
// positions.
const PlaceholderRouting = "placeholder"

// Wire is a drawn connection between two components.
type Wire struct {
	ID      string             `json:"id"`
	From    Endpoint           `json:"from"`
	To      Endpoint           `json:"to"`
	Path    []geometry.Point2D `json:"path"`
	Net     string             `json:"net_name"`
	Routing string             `json:"routing"`
}

// RailConnection attaches a component to a power rail.
type RailConnection struct {
	Component string `json:"component"`
	Pin       string `json:"pin"`
}

// PowerRail is a horizontal supply line across the sheet.
type PowerRail struct {
	Name        string           `json:"name"`
	Voltage     string           `json:"voltage"`
	Color       string           `json:"color"`
	Y           float64          `json:"y"`
	Connections []RailConnection `json:"connections"`
}

// TextStyle is the font style of an annotation.
type TextStyle struct {
	FontSize float64 `json:"font_size"`
	Bold     bool    `json:"bold,omitempty"`
}

// Annotation is a free text callout on the sheet.
type Annotation struct {
	Position geometry.Point2D `json:"position"`
	Text     string           `json:"text"`
	Style    TextStyle        `json:"style"`
}

// Model is the complete schematic.
type Model struct {
	Title       string            `json:"title"`
	Width       float64           `json:"width"`
	Height      float64           `json:"height"`
	Components  []PlacedComponent `json:"components"`
	Wires       []Wire            `json:"wires"`
	PowerRails  []PowerRail       `json:"power_rails"`
	Annotations []Annotation      `json:"annotations"`
}
