package trace

import (
	"math"

	"boardscan/pkg/geometry"
)

// Heuristic decides whether an unclassified blob is an elongated trace.
type Heuristic struct {
	MaxWideAspect float64 `toml:"max_wide_aspect"` // Aspect ratio above this is elongated horizontally
	MinTallAspect float64 `toml:"min_tall_aspect"` // Aspect ratio below this is elongated vertically
	MinArea       float64 `toml:"min_area"`        // Area must exceed this
	MinSpan       float64 `toml:"min_span"`        // Width or height must exceed this
}

// DefaultHeuristic returns the canonical trace acceptance thresholds.
func DefaultHeuristic() Heuristic {
	return Heuristic{
		MaxWideAspect: 5,
		MinTallAspect: 0.2,
		MinArea:       100,
		MinSpan:       100,
	}
}

// IsTrace applies the heuristic to a blob's metrics.
func (h Heuristic) IsTrace(area, aspectRatio float64, bounds geometry.Rect) bool {
	elongated := aspectRatio > h.MaxWideAspect || aspectRatio < h.MinTallAspect
	long := bounds.Width > h.MinSpan || bounds.Height > h.MinSpan
	return elongated && area > h.MinArea && long
}

// NewSegment builds a trace from a contour; the width estimate is the
// narrow side of its bounding rectangle.
func NewSegment(id string, path []geometry.Point2D, bounds geometry.Rect) Segment {
	return Segment{
		ID:    id,
		Path:  path,
		Width: math.Min(bounds.Width, bounds.Height),
	}
}
