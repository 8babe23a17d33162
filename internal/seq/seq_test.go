package seq

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequence_PerPrefix(t *testing.T) {
	s := New(1)

	assert.Equal(t, "comp_1", s.NextID("comp_"))
	assert.Equal(t, "comp_2", s.NextID("comp_"))
	assert.Equal(t, "trace_1", s.NextID("trace_"))
	assert.Equal(t, 3, s.Peek("comp_"))
}

func TestSequence_IndependentRuns(t *testing.T) {
	a := New(0)
	b := New(0)

	a.Next("NET_")
	a.Next("NET_")

	assert.Equal(t, 0, b.Next("NET_"), "a second run must start from its own base")
	assert.Equal(t, 2, a.Next("NET_"))
}
