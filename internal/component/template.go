package component

import (
	"math"

	"boardscan/internal/shape"

	"gonum.org/v1/gonum/stat"
)

// Range is an inclusive interval.
type Range struct {
	Min float64 `json:"min" toml:"min"`
	Max float64 `json:"max" toml:"max"`
}

// Contains reports whether v lies in [Min, Max].
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Mid returns the midpoint of the range.
func (r Range) Mid() float64 {
	return (r.Min + r.Max) / 2
}

// Closeness scores v linearly: 1 at the midpoint, 0 at either edge,
// negative outside the range.
func (r Range) Closeness(v float64) float64 {
	half := (r.Max - r.Min) / 2
	if half == 0 {
		if v == r.Min {
			return 1
		}
		return 0
	}
	return 1 - math.Abs(v-r.Mid())/half
}

// Template is the acceptance region for one component type.
type Template struct {
	Type        Type  `json:"type" toml:"type"`
	Area        Range `json:"area" toml:"area"`
	AspectRatio Range `json:"aspect_ratio" toml:"aspect_ratio"`
	Circularity Range `json:"circularity" toml:"circularity"`
}

// Accepts reports whether all three metrics fall inside the template.
func (t Template) Accepts(p shape.Primitive) bool {
	return t.Area.Contains(p.Area) &&
		t.AspectRatio.Contains(p.AspectRatio) &&
		t.Circularity.Contains(p.Circularity)
}

// Confidence is the mean per-metric closeness, clamped to [0, 1].
func (t Template) Confidence(p shape.Primitive) float64 {
	scores := []float64{
		t.Area.Closeness(p.Area),
		t.AspectRatio.Closeness(p.AspectRatio),
		t.Circularity.Closeness(p.Circularity),
	}
	return math.Max(0, math.Min(1, stat.Mean(scores, nil)))
}

// DefaultTemplates returns the templates in evaluation priority order.
// Ranges overlap; the first accepting template wins.
func DefaultTemplates() []Template {
	return []Template{
		{Type: Resistor, Area: Range{200, 2000}, AspectRatio: Range{2, 6}, Circularity: Range{0.3, 0.7}},
		{Type: Capacitor, Area: Range{150, 1500}, AspectRatio: Range{0.8, 2.5}, Circularity: Range{0.6, 1.0}},
		{Type: IC, Area: Range{500, 5000}, AspectRatio: Range{0.5, 3.0}, Circularity: Range{0.4, 0.8}},
		{Type: Diode, Area: Range{100, 800}, AspectRatio: Range{1.5, 4.0}, Circularity: Range{0.4, 0.7}},
		{Type: Transistor, Area: Range{150, 1200}, AspectRatio: Range{0.8, 2.0}, Circularity: Range{0.5, 0.9}},
		{Type: Inductor, Area: Range{300, 2500}, AspectRatio: Range{0.9, 1.8}, Circularity: Range{0.7, 1.0}},
		{Type: Connector, Area: Range{400, 3000}, AspectRatio: Range{0.3, 8.0}, Circularity: Range{0.2, 0.6}},
	}
}

// FirstMatch returns the first template in order that accepts p.
func FirstMatch(templates []Template, p shape.Primitive) (Template, bool) {
	for _, t := range templates {
		if t.Accepts(p) {
			return t, true
		}
	}
	return Template{}, false
}

// QuickClassify is the coarse circularity-only mapping used for a fast
// preview count. It ignores area and aspect ratio entirely.
func QuickClassify(circularity float64) (Type, float64, bool) {
	switch {
	case circularity > 0.8:
		return Capacitor, 0.85, true
	case circularity > 0.6:
		return IC, 0.75, true
	case circularity > 0.4:
		return Resistor, 0.70, true
	}
	return "", 0, false
}
