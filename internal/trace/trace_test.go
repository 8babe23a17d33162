package trace

import (
	"testing"

	"boardscan/pkg/geometry"

	"github.com/stretchr/testify/assert"
)

func TestHeuristic_IsTrace(t *testing.T) {
	h := DefaultHeuristic()

	tests := []struct {
		name   string
		area   float64
		aspect float64
		bounds geometry.Rect
		want   bool
	}{
		{"wide strip", 1500, 50, geometry.NewRect(0, 0, 300, 6), true},
		{"tall strip", 1500, 0.02, geometry.NewRect(0, 0, 6, 300), true},
		{"short strip", 400, 8, geometry.NewRect(0, 0, 80, 10), false},
		{"tiny area", 90, 30, geometry.NewRect(0, 0, 150, 5), false},
		{"square blob", 10000, 1, geometry.NewRect(0, 0, 100, 100), false},
		{"aspect exactly five", 1000, 5, geometry.NewRect(0, 0, 150, 30), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, h.IsTrace(tt.area, tt.aspect, tt.bounds))
		})
	}
}

func TestNewSegment_Width(t *testing.T) {
	s := NewSegment("trace_1", []geometry.Point2D{{X: 0, Y: 0}, {X: 200, Y: 0}}, geometry.NewRect(0, 0, 201, 7))
	assert.Equal(t, 7.0, s.Width)
	assert.Equal(t, "trace_1", s.ID)
}

func TestSegment_Within(t *testing.T) {
	s := Segment{ID: "t", Path: []geometry.Point2D{{X: 0, Y: 0}, {X: 100, Y: 0}}}

	assert.True(t, s.Within(geometry.Point2D{X: 100, Y: 49}, 50))
	assert.False(t, s.Within(geometry.Point2D{X: 100, Y: 50}, 50), "threshold is exclusive")

	pt, d, ok := s.NearestPoint(geometry.Point2D{X: 90, Y: 0})
	assert.True(t, ok)
	assert.Equal(t, geometry.Point2D{X: 100, Y: 0}, pt)
	assert.Equal(t, 10.0, d)
}
