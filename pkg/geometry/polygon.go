package geometry

import "math"

// PolygonArea returns the unsigned area of a closed polygon (shoelace formula).
func PolygonArea(polygon []Point2D) float64 {
	if len(polygon) < 3 {
		return 0
	}

	var sum float64
	n := len(polygon)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += polygon[i].X*polygon[j].Y - polygon[j].X*polygon[i].Y
	}
	return math.Abs(sum) / 2
}

// PolygonPerimeter returns the length of a closed polygon, including the
// closing edge from the last vertex back to the first.
func PolygonPerimeter(polygon []Point2D) float64 {
	if len(polygon) < 2 {
		return 0
	}

	var total float64
	n := len(polygon)
	for i := 0; i < n; i++ {
		total += polygon[i].Distance(polygon[(i+1)%n])
	}
	return total
}

// NearestPoint returns the vertex of path closest to p and its distance.
// Ties keep the earliest vertex. ok is false for an empty path.
func NearestPoint(p Point2D, path []Point2D) (nearest Point2D, dist float64, ok bool) {
	if len(path) == 0 {
		return Point2D{}, 0, false
	}

	dist = math.Inf(1)
	for _, pt := range path {
		if d := p.Distance(pt); d < dist {
			dist = d
			nearest = pt
		}
	}
	return nearest, dist, true
}
