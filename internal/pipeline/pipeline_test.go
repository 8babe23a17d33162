package pipeline

import (
	"image"
	"testing"

	"boardscan/internal/component"
	"boardscan/internal/config"
	"boardscan/internal/connectivity"
	"boardscan/internal/shape"
	"boardscan/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rect(x1, y1, x2, y2 float64) []geometry.Point2D {
	return []geometry.Point2D{{X: x1, Y: y1}, {X: x2, Y: y1}, {X: x2, Y: y2}, {X: x1, Y: y2}}
}

// board is a resistor and a capacitor sharing one trace, plus a speck.
func board(t *testing.T) []shape.Primitive {
	t.Helper()
	polys := [][]geometry.Point2D{
		rect(0, 0, 40, 10),       // resistor
		rect(0, 20, 300, 24),     // trace
		rect(270, 0, 290, 20),    // capacitor
		rect(500, 500, 505, 505), // noise
	}
	prims := make([]shape.Primitive, 0, len(polys))
	for i, p := range polys {
		prim, ok := shape.FromPolygon(i, p)
		require.True(t, ok)
		prims = append(prims, prim)
	}
	return prims
}

func TestAnalyzePrimitives(t *testing.T) {
	res := AnalyzePrimitives(board(t), config.Default())

	require.Len(t, res.Components, 2)
	assert.Equal(t, "comp_1", res.Components[0].ID)
	assert.Equal(t, component.Resistor, res.Components[0].Type)
	assert.Equal(t, "comp_2", res.Components[1].ID)
	assert.Equal(t, component.Capacitor, res.Components[1].Type)
	require.Len(t, res.Traces, 1)
	assert.Equal(t, "trace_1", res.Traces[0].ID)
	assert.Equal(t, 4, res.Primitives)

	var pairs int
	for _, e := range res.Analysis.Connections {
		if e.Kind == connectivity.ComponentComponent {
			pairs++
			assert.Equal(t, [2]string{"comp_1", "comp_2"}, e.Pair)
		}
	}
	assert.Equal(t, 1, pairs)

	require.Len(t, res.Analysis.Netlist.Nets, 1)
	assert.Equal(t, []string{"comp_1", "comp_2"}, res.Analysis.Netlist.Nets[0].Components)

	assert.Equal(t, Summary{
		ComponentCount: 2,
		TypeCount:      2,
		ByType:         []TypeCount{{component.Resistor, 1}, {component.Capacitor, 1}},
		TraceCount:     1,
		Functions:      []string{"Signal Filtering"},
		CircuitType:    "General Purpose",
		TotalPowerMW:   260,
	}, res.Summary)

	assert.Equal(t, "Filter Circuit", res.Schematic.Title)
	assert.NotEmpty(t, res.RunID)
}

func TestAnalyzePrimitives_ReferentialClosure(t *testing.T) {
	res := AnalyzePrimitives(board(t), config.Default())

	comps := make(map[string]bool)
	for _, c := range res.Components {
		comps[c.ID] = true
	}
	traces := make(map[string]bool)
	for _, tr := range res.Traces {
		traces[tr.ID] = true
	}
	nets := make(map[string]bool)
	for _, n := range res.Analysis.Netlist.Nets {
		nets[n.ID] = true
		assert.True(t, traces[n.Trace])
		for _, id := range n.Components {
			assert.True(t, comps[id], "net member %s", id)
		}
	}

	for _, e := range res.Analysis.Connections {
		switch e.Kind {
		case connectivity.ComponentTrace:
			assert.True(t, comps[e.Component])
			assert.True(t, traces[e.Trace])
		case connectivity.ComponentComponent:
			assert.True(t, comps[e.Pair[0]])
			assert.True(t, comps[e.Pair[1]])
			for _, id := range e.SharedTraces {
				assert.True(t, traces[id])
			}
		}
	}
	for _, entry := range res.Analysis.Netlist.Components {
		assert.True(t, comps[entry.ID])
		for _, pin := range entry.Pins {
			if pin.Trace != "" {
				assert.True(t, nets[pin.Net])
			}
		}
	}
	for _, pc := range res.Schematic.Components {
		assert.True(t, comps[pc.ID])
	}
	for _, w := range res.Schematic.Wires {
		assert.True(t, comps[w.From.Component])
		assert.True(t, comps[w.To.Component])
	}
	for _, r := range res.Schematic.PowerRails {
		for _, c := range r.Connections {
			assert.True(t, comps[c.Component])
		}
	}
	for _, d := range res.Analysis.Power.Draws {
		assert.True(t, comps[d.Component])
	}
	flow := res.Analysis.SignalFlow
	for _, ids := range [][]string{flow.InputStages, flow.ProcessingStages, flow.OutputStages} {
		for _, id := range ids {
			assert.True(t, comps[id])
		}
	}
}

func TestAnalyzePrimitives_RunsAreIndependent(t *testing.T) {
	a := AnalyzePrimitives(board(t), config.Default())
	b := AnalyzePrimitives(board(t), config.Default())

	assert.NotEqual(t, a.RunID, b.RunID)
	assert.Equal(t, a.Components, b.Components)
	assert.Equal(t, a.Analysis.Netlist, b.Analysis.Netlist)
}

func TestAnalyzePrimitives_Empty(t *testing.T) {
	res := AnalyzePrimitives(nil, config.Default())

	assert.Empty(t, res.Components)
	assert.NotNil(t, res.Components)
	assert.Equal(t, []string{"Unknown Function"}, res.Summary.Functions)
	assert.Equal(t, "General Purpose", res.Summary.CircuitType)
	assert.Equal(t, "Electronic Circuit", res.Schematic.Title)
}

func TestAnalyze_Errors(t *testing.T) {
	_, err := Analyze(shape.Buffer{}, config.Default())
	assert.ErrorIs(t, err, shape.ErrEmptyImage)

	_, err = Analyze(shape.Buffer{Width: 2, Height: 2, Pix: make([]uint8, 3)}, config.Default())
	assert.ErrorIs(t, err, shape.ErrBadBuffer)

	_, err = AnalyzeImage(nil, config.Default())
	assert.ErrorIs(t, err, ErrNoImage)
}

func TestAnalyzeImage_BlankBoard(t *testing.T) {
	p := config.Default()
	p.Extract.Mode = shape.ThresholdFixed

	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}

	res, err := AnalyzeImage(img, p)
	require.NoError(t, err)
	assert.Empty(t, res.Components)
	assert.Empty(t, res.Traces)
}

func TestGo(t *testing.T) {
	out := <-Go(nil, config.Default())
	assert.ErrorIs(t, out.Err, ErrNoImage)
	assert.Nil(t, out.Result)

	p := config.Default()
	p.Extract.Mode = shape.ThresholdFixed
	ch := Go(image.NewRGBA(image.Rect(0, 0, 16, 16)), p)

	out = <-ch
	require.NoError(t, out.Err)
	require.NotNil(t, out.Result)

	_, open := <-ch
	assert.False(t, open, "channel must close after the single outcome")
}
