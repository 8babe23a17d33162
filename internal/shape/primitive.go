// Package shape extracts geometric primitives from circuit board images.
//
// The extractor binarizes the image and walks the outer contours only; each
// contour becomes a Primitive carrying the metrics the component classifier
// works from (area, perimeter, bounding rectangle, aspect ratio, circularity).
package shape

import (
	"math"

	"boardscan/pkg/geometry"
)

// Primitive is one closed external contour and its derived metrics.
type Primitive struct {
	Index       int                `json:"index"` // Contour discovery order
	Points      []geometry.Point2D `json:"points"`
	Area        float64            `json:"area"`
	Perimeter   float64            `json:"perimeter"`
	Bounds      geometry.Rect      `json:"bounds"`
	AspectRatio float64            `json:"aspect_ratio"` // Bounds width / height
	Circularity float64            `json:"circularity"`  // 4*pi*area/perimeter^2, 1.0 for a circle
}

// Circularity returns 4*pi*area/perimeter^2, or 0 when the perimeter is zero.
func Circularity(area, perimeter float64) float64 {
	if perimeter <= 0 {
		return 0
	}
	return 4 * math.Pi * area / (perimeter * perimeter)
}

// NewPrimitive derives aspect ratio and circularity from measured values.
// ok is false for degenerate shapes (zero perimeter or zero-height bounds),
// which callers skip without error.
func NewPrimitive(index int, points []geometry.Point2D, area, perimeter float64, bounds geometry.Rect) (Primitive, bool) {
	if perimeter <= 0 || bounds.Height <= 0 || bounds.Width <= 0 {
		return Primitive{}, false
	}
	if math.IsNaN(area) || math.IsNaN(perimeter) {
		return Primitive{}, false
	}

	return Primitive{
		Index:       index,
		Points:      points,
		Area:        area,
		Perimeter:   perimeter,
		Bounds:      bounds,
		AspectRatio: bounds.Width / bounds.Height,
		Circularity: Circularity(area, perimeter),
	}, true
}

// FromPolygon measures a polygon directly without an image. The bounding
// rectangle follows the pixel convention used for contours: a span of
// integer coordinates [a, b] is b-a+1 pixels wide.
func FromPolygon(index int, points []geometry.Point2D) (Primitive, bool) {
	box := geometry.BoundingBox(points)
	box.Width++
	box.Height++
	return NewPrimitive(index, points, geometry.PolygonArea(points), geometry.PolygonPerimeter(points), box)
}

// Metrics builds a primitive from metrics alone, for callers that already
// measured a region. The bounds are a w*h rectangle at the origin.
func Metrics(area, aspectRatio, circularity, width, height float64) Primitive {
	return Primitive{
		Area:        area,
		AspectRatio: aspectRatio,
		Circularity: circularity,
		Bounds:      geometry.Rect{Width: width, Height: height},
	}
}
