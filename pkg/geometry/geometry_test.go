package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolygonArea(t *testing.T) {
	square := []Point2D{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	assert.InDelta(t, 100.0, PolygonArea(square), 1e-9)

	// Winding direction must not change the sign.
	reversed := []Point2D{{0, 10}, {10, 10}, {10, 0}, {0, 0}}
	assert.InDelta(t, 100.0, PolygonArea(reversed), 1e-9)

	assert.Zero(t, PolygonArea(square[:2]))
}

func TestPolygonPerimeter(t *testing.T) {
	rect := []Point2D{{0, 0}, {30, 0}, {30, 10}, {0, 10}}
	assert.InDelta(t, 80.0, PolygonPerimeter(rect), 1e-9)
	assert.Zero(t, PolygonPerimeter(nil))
}

func TestNearestPoint(t *testing.T) {
	path := []Point2D{{0, 0}, {10, 0}, {20, 0}}

	pt, d, ok := NearestPoint(Point2D{X: 11, Y: 3}, path)
	assert.True(t, ok)
	assert.Equal(t, Point2D{X: 10, Y: 0}, pt)
	assert.InDelta(t, math.Hypot(1, 3), d, 1e-9)

	_, _, ok = NearestPoint(Point2D{}, nil)
	assert.False(t, ok)
}

func TestBoundingBoxAndCenter(t *testing.T) {
	r := BoundingBox([]Point2D{{5, 5}, {15, 2}, {9, 12}})
	assert.Equal(t, Rect{X: 5, Y: 2, Width: 10, Height: 10}, r)
	assert.Equal(t, Point2D{X: 10, Y: 7}, r.Center())
	assert.InDelta(t, 1.0, r.AspectRatio(), 1e-9)
	assert.Zero(t, Rect{Width: 4}.AspectRatio())
}
