// Package connectivity infers electrical connections from spatial proximity
// between component centroids and trace paths.
package connectivity

import (
	"encoding/json"

	"boardscan/internal/component"
	"boardscan/internal/logger"
	"boardscan/internal/trace"
	"boardscan/pkg/geometry"
)

// EdgeKind identifies the variant of a connection edge.
type EdgeKind string

const (
	ComponentTrace     EdgeKind = "component-trace"
	ComponentComponent EdgeKind = "component-component"
)

// Edge is one inferred connection. ComponentTrace edges fill Component,
// Trace and Point; ComponentComponent edges fill Pair, SharedTraces and
// EstimatedResistance.
type Edge struct {
	Kind EdgeKind `json:"type"`

	Component string           `json:"component,omitempty"`
	Trace     string           `json:"trace,omitempty"`
	Point     geometry.Point2D `json:"connection_point"`

	Pair                [2]string `json:"pair,omitempty"`
	SharedTraces        []string  `json:"via,omitempty"`
	EstimatedResistance float64   `json:"estimated_resistance,omitempty"` // Ohms
}

// Touches reports whether the edge involves the component id.
func (e Edge) Touches(id string) bool {
	if e.Kind == ComponentTrace {
		return e.Component == id
	}
	return e.Pair[0] == id || e.Pair[1] == id
}

// MarshalJSON writes only the fields of the edge's own variant.
func (e Edge) MarshalJSON() ([]byte, error) {
	if e.Kind == ComponentTrace {
		return json.Marshal(struct {
			Kind      EdgeKind         `json:"type"`
			Component string           `json:"component"`
			Trace     string           `json:"trace"`
			Point     geometry.Point2D `json:"connection_point"`
		}{e.Kind, e.Component, e.Trace, e.Point})
	}
	return json.Marshal(struct {
		Kind                EdgeKind  `json:"type"`
		Pair                [2]string `json:"pair"`
		SharedTraces        []string  `json:"via"`
		EstimatedResistance float64   `json:"estimated_resistance"`
	}{e.Kind, e.Pair, e.SharedTraces, e.EstimatedResistance})
}

// Options configures connection inference.
type Options struct {
	Threshold float64 `toml:"threshold"` // Max centroid-to-trace-point distance in pixels (exclusive)

	// Copper model for resistance estimates. Length and width are assumed
	// per shared trace, not measured.
	AssumedLengthMM   float64 `toml:"assumed_length_mm"`
	AssumedWidthMM    float64 `toml:"assumed_width_mm"`
	CopperThicknessMM float64 `toml:"copper_thickness_mm"`
	Resistivity       float64 `toml:"resistivity"` // Ohm-metres
}

// DefaultOptions returns the canonical proximity threshold and a 1oz
// copper model.
func DefaultOptions() Options {
	return Options{
		Threshold:         50,
		AssumedLengthMM:   100,
		AssumedWidthMM:    0.2,
		CopperThicknessMM: 0.035,
		Resistivity:       1.7e-8,
	}
}

// Resolve returns all component-trace edges (in component, then trace
// order) followed by component-component edges for each unordered pair of
// components sharing at least one trace.
func Resolve(comps []component.Component, traces []trace.Segment, opts Options) []Edge {
	var edges []Edge
	attached := make(map[string][]string, len(comps))

	for _, c := range comps {
		for _, tr := range traces {
			if !tr.Within(c.Position, opts.Threshold) {
				continue
			}
			pt, _, _ := tr.NearestPoint(c.Position)
			edges = append(edges, Edge{
				Kind:      ComponentTrace,
				Component: c.ID,
				Trace:     tr.ID,
				Point:     pt,
			})
			attached[c.ID] = append(attached[c.ID], tr.ID)
		}
	}

	direct := len(edges)
	for i := 0; i < len(comps); i++ {
		for j := i + 1; j < len(comps); j++ {
			shared := intersect(attached[comps[i].ID], attached[comps[j].ID])
			if len(shared) == 0 {
				continue
			}
			edges = append(edges, Edge{
				Kind:                ComponentComponent,
				Pair:                [2]string{comps[i].ID, comps[j].ID},
				SharedTraces:        shared,
				EstimatedResistance: EstimateResistance(len(shared), opts),
			})
		}
	}

	logger.Info("connectivity: %d component-trace, %d component-component edges", direct, len(edges)-direct)
	return edges
}

// EstimateResistance models n parallel-assumed traces of fixed length and
// width as one copper strip: R = rho * L / (W * T). Zero traces yield 0.
func EstimateResistance(n int, opts Options) float64 {
	if n == 0 {
		return 0
	}

	totalLength := float64(n) * opts.AssumedLengthMM
	avgWidth := float64(n) * opts.AssumedWidthMM / float64(n)

	return (opts.Resistivity * (totalLength * 1e-3)) / (avgWidth * 1e-3 * opts.CopperThicknessMM * 1e-3)
}

// Degree counts the edges of either kind touching the component id.
func Degree(edges []Edge, id string) int {
	n := 0
	for _, e := range edges {
		if e.Touches(id) {
			n++
		}
	}
	return n
}

// intersect returns the elements of a that also appear in b, in a's order.
func intersect(a, b []string) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	set := make(map[string]bool, len(b))
	for _, id := range b {
		set[id] = true
	}
	var out []string
	for _, id := range a {
		if set[id] {
			out = append(out, id)
		}
	}
	return out
}
