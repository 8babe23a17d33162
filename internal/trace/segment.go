// Package trace provides copper trace segments and the heuristic that
// separates them from discrete component outlines.
package trace

import (
	"boardscan/pkg/geometry"
)

// Segment represents a detected copper trace.
type Segment struct {
	ID    string             `json:"id"`
	Path  []geometry.Point2D `json:"path"`
	Width float64            `json:"width"` // Narrow dimension of the contour's bounding box, in pixels
}

// Bounds returns the bounding rectangle of the trace path.
func (s Segment) Bounds() geometry.Rect {
	return geometry.BoundingBox(s.Path)
}

// NearestPoint returns the path vertex closest to p and its distance.
func (s Segment) NearestPoint(p geometry.Point2D) (geometry.Point2D, float64, bool) {
	return geometry.NearestPoint(p, s.Path)
}

// Within reports whether any path vertex lies strictly closer than
// threshold to p.
func (s Segment) Within(p geometry.Point2D, threshold float64) bool {
	for _, pt := range s.Path {
		if pt.Distance(p) < threshold {
			return true
		}
	}
	return false
}
