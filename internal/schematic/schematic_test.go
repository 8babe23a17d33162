package schematic

import (
	"bytes"
	"fmt"
	"image/png"
	"testing"

	"boardscan/internal/behavior"
	"boardscan/internal/component"
	"boardscan/internal/connectivity"
	"boardscan/pkg/colorutil"
	"boardscan/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func comps(types ...component.Type) []component.Component {
	out := make([]component.Component, len(types))
	for i, t := range types {
		out[i] = component.Component{ID: fmt.Sprintf("comp_%d", i+1), Type: t}
	}
	return out
}

func TestLayout_OrderAndPositions(t *testing.T) {
	in := comps(component.Resistor, component.Inductor, component.IC, component.Connector, component.Resistor)
	in[2].Properties.PinCount = 14

	placed := Layout(in, DefaultLayoutOptions())
	require.Len(t, placed, 5)

	var ids []string
	for _, p := range placed {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"comp_4", "comp_3", "comp_1", "comp_5", "comp_2"}, ids)

	assert.Equal(t, geometry.Point2D{X: 100, Y: 100}, placed[0].Position)
	assert.Equal(t, geometry.Point2D{X: 190, Y: 100}, placed[1].Position)
	assert.Equal(t, geometry.Point2D{X: 320, Y: 100}, placed[2].Position)
	assert.Equal(t, geometry.Point2D{X: 430, Y: 100}, placed[3].Position)
	assert.Equal(t, geometry.Point2D{X: 540, Y: 100}, placed[4].Position)

	assert.Equal(t, "U3", placed[1].Label)
	assert.Len(t, placed[1].Pins, 14)
	assert.Equal(t, "connector", placed[0].Symbol)
	assert.Len(t, placed[0].Pins, DefaultVariablePins)
}

func TestLayout_WrapAndNoOverlap(t *testing.T) {
	types := make([]component.Type, 12)
	for i := range types {
		types[i] = component.IC
	}
	opts := DefaultLayoutOptions()
	placed := Layout(comps(types...), opts)

	// 80 wide + 50 gap: 100, 230, 360, 490, 620, 750 then wrap.
	assert.Equal(t, 750.0, placed[5].Position.X)
	assert.Equal(t, 100.0, placed[5].Position.Y)
	assert.Equal(t, geometry.Point2D{X: 100, Y: 240}, placed[6].Position)

	for i := range placed {
		for j := i + 1; j < len(placed); j++ {
			assert.False(t, placed[i].Bounds().Intersects(placed[j].Bounds()),
				"%s overlaps %s", placed[i].ID, placed[j].ID)
		}
		assert.LessOrEqual(t, placed[i].Position.X, opts.ColumnBudget)
	}
}

func TestLayout_RowHeightIsTallestInRow(t *testing.T) {
	// resistor 60x20 then capacitors 30x40 until the cursor passes 800.
	types := []component.Type{component.Resistor}
	for i := 0; i < 9; i++ {
		types = append(types, component.Capacitor)
	}
	placed := Layout(comps(types...), DefaultLayoutOptions())

	// x: 100, 210, 290, 370, 450, 530, 610, 690, 770 -> 850 wraps.
	assert.Equal(t, 770.0, placed[8].Position.X)
	assert.Equal(t, geometry.Point2D{X: 100, Y: 220}, placed[9].Position)
}

func TestPinLayout(t *testing.T) {
	two := PinLayout(2, 60, 20)
	assert.Equal(t, []Pin{
		{ID: 1, Position: geometry.Point2D{X: 0, Y: 10}, Side: Left},
		{ID: 2, Position: geometry.Point2D{X: 60, Y: 10}, Side: Right},
	}, two)

	three := PinLayout(3, 50, 60)
	require.Len(t, three, 3)
	assert.Equal(t, Pin{ID: 1, Position: geometry.Point2D{X: 0, Y: 20}, Side: Left, Label: "B"}, three[0])
	assert.Equal(t, Pin{ID: 2, Position: geometry.Point2D{X: 25, Y: 0}, Side: Top, Label: "C"}, three[1])
	assert.Equal(t, Pin{ID: 3, Position: geometry.Point2D{X: 25, Y: 60}, Side: Bottom, Label: "E"}, three[2])

	eight := PinLayout(8, 80, 50)
	require.Len(t, eight, 8)
	assert.Equal(t, geometry.Point2D{X: 0, Y: 10}, eight[0].Position)
	assert.Equal(t, geometry.Point2D{X: 0, Y: 40}, eight[3].Position)
	assert.Equal(t, Pin{ID: 5, Position: geometry.Point2D{X: 80, Y: 40}, Side: Right}, eight[4])
	assert.Equal(t, geometry.Point2D{X: 80, Y: 10}, eight[7].Position)

	odd := PinLayout(5, 80, 60)
	require.Len(t, odd, 5)
	assert.Equal(t, 4, odd[3].ID)
	assert.Equal(t, Right, odd[3].Side)

	assert.Empty(t, PinLayout(0, 10, 10))
}

func TestWires(t *testing.T) {
	edges := []connectivity.Edge{
		{Kind: connectivity.ComponentTrace, Component: "comp_1", Trace: "trace_1"},
		{Kind: connectivity.ComponentTrace, Component: "comp_2", Trace: "trace_1"},
		{Kind: connectivity.ComponentComponent, Pair: [2]string{"comp_1", "comp_2"}},
	}

	wires := Wires(edges)
	require.Len(t, wires, 1)
	assert.Equal(t, "wire_2", wires[0].ID)
	assert.Equal(t, "NET_2", wires[0].Net)
	assert.Equal(t, Endpoint{Component: "comp_1", Pin: 1}, wires[0].From)
	assert.Equal(t, Endpoint{Component: "comp_2", Pin: 1}, wires[0].To)
	assert.Equal(t, PlaceholderPath, wires[0].Path)
	assert.Equal(t, PlaceholderRouting, wires[0].Routing)

	wires[0].Path[0].X = 99
	assert.Equal(t, 0.0, PlaceholderPath[0].X, "wire paths must not alias the shared placeholder")
}

func TestRails(t *testing.T) {
	rails := Rails(comps(component.IC, component.Transistor, component.Capacitor, component.Resistor))
	require.Len(t, rails, 2)

	assert.Equal(t, "VCC", rails[0].Name)
	assert.Equal(t, "+5V", rails[0].Voltage)
	assert.Equal(t, 70.0, rails[0].Y)
	assert.Equal(t, []RailConnection{{"comp_1", "VCC"}, {"comp_2", "VCC"}}, rails[0].Connections)

	assert.Equal(t, "GND", rails[1].Name)
	assert.Equal(t, 750.0, rails[1].Y)
	assert.Equal(t, []RailConnection{{"comp_1", "GND"}, {"comp_3", "GND"}}, rails[1].Connections)
}

func TestTitle(t *testing.T) {
	tests := []struct {
		functions []string
		want      string
	}{
		{[]string{behavior.SignalFiltering, behavior.VoltageRegulation}, "Power Supply Circuit"},
		{[]string{behavior.SignalFiltering, behavior.SignalAmplification}, "Amplifier Circuit"},
		{[]string{behavior.SignalFiltering, behavior.DigitalProcessing}, "Digital Logic Circuit"},
		{[]string{behavior.SignalFiltering}, "Filter Circuit"},
		{[]string{behavior.UnknownFunction}, DefaultTitle},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Title(behavior.Profile{EstimatedFunction: tt.functions}))
		})
	}
}

func TestAnnotations(t *testing.T) {
	p := behavior.Profile{CircuitType: "Analog Amplifier", EstimatedFunction: []string{"A", "B"}}
	a := Annotations(p, 360)

	require.Len(t, a, 3)
	assert.Equal(t, "Circuit Function: A, B", a[0].Text)
	assert.Equal(t, TextStyle{FontSize: 14, Bold: true}, a[0].Style)
	assert.Equal(t, "Estimated Power: 360mW", a[1].Text)
	assert.Equal(t, geometry.Point2D{X: 50, Y: 110}, a[2].Position)
	assert.Equal(t, "Type: Analog Amplifier", a[2].Text)
}

func sampleModel() Model {
	in := comps(component.Resistor, component.Capacitor, component.IC, component.Diode,
		component.Transistor, component.Inductor, component.Connector)
	in[0].Properties.EstimatedValue = "1/4W (1kΩ - 10kΩ)"
	edges := []connectivity.Edge{
		{Kind: connectivity.ComponentComponent, Pair: [2]string{"comp_1", "comp_2"}},
	}
	profile := behavior.Classify(in)
	return Synthesize(in, edges, profile, 1500, DefaultLayoutOptions())
}

func TestSVG_RoundTrip(t *testing.T) {
	m := sampleModel()

	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, m))

	sheet, err := ParseSVG(&buf)
	require.NoError(t, err)

	assert.Equal(t, 1000.0, sheet.Width)
	assert.Equal(t, 800.0, sheet.Height)
	assert.Equal(t, m.Title, sheet.Title)
	require.Len(t, sheet.Symbols, len(m.Components))
	for i, pc := range m.Components {
		got := sheet.Symbols[i]
		assert.Equal(t, pc.ID, got.ID)
		assert.Equal(t, pc.Position, got.Position)
		assert.Equal(t, pc.Size, got.Size)
		assert.Equal(t, pc.Label, got.Label)
		assert.Equal(t, pc.Value, got.Value)
	}
	require.Len(t, sheet.Wires, 1)
	assert.Equal(t, PlaceholderPath, sheet.Wires[0])
}

func TestSVG_Symbols(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, sampleModel()))
	svg := buf.String()

	assert.Contains(t, svg, `d="M 0 10 L 10 10 L 15 2 L 25 18 L 35 2 L 45 18 L 50 10 L 60 10"`, "resistor zigzag")
	assert.Contains(t, svg, `d="M 0 15 L 10 15 C 15 7 20 7 25 15 C 30 23 35 23 40 15 L 50 15"`, "inductor coil")
	assert.Contains(t, svg, `<polygon points="12,15 28,7 28,23"`, "diode triangle")
	assert.Contains(t, svg, `<circle cx="25" cy="25" r="16.666666666666668"`, "transistor body")
	assert.Contains(t, svg, `<rect x="10" y="10" width="60" height="40" fill="#f3f4f6"`, "ic body")
	assert.Contains(t, svg, `<line x1="12" y1="10" x2="12" y2="30" fill="none" stroke="#1f2937" stroke-width="3"/>`, "capacitor plate")
	assert.Contains(t, svg, `<line x1="50" y1="70" x2="950" y2="70" fill="none" stroke="#FF0000" stroke-width="4"/>`)
	assert.Contains(t, svg, `fill="#FF0000">VCC (+5V)</text>`, "rail label keeps the rail color")
	assert.Contains(t, svg, `>Estimated Power: 1500mW</text>`)
	assert.Contains(t, svg, `<g class="grid" opacity="0.1">`)
	assert.Contains(t, svg, `stroke="#059669"`)
}

func TestWritePNG(t *testing.T) {
	m := sampleModel()

	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, m, 1))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 1000, img.Bounds().Dx())
	assert.Equal(t, 800, img.Bounds().Dy())

	// A spot away from every grid line keeps the background color.
	r, g, b, _ := img.At(975, 790).RGBA()
	assert.Equal(t, colorutil.Background.R, uint8(r>>8))
	assert.Equal(t, colorutil.Background.G, uint8(g>>8))
	assert.Equal(t, colorutil.Background.B, uint8(b>>8))

	// The VCC rail is drawn in red.
	r, g, b, _ = img.At(500, 70).RGBA()
	assert.Equal(t, [3]uint8{255, 0, 0}, [3]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)})
}

func TestFlattenPath(t *testing.T) {
	p := flattenPath([]PathCmd{
		{MoveTo, pts(0, 0)},
		{CurveTo, pts(0, 10, 10, 10, 10, 0)},
	})
	require.Len(t, p, 1+curveSteps)
	assert.Equal(t, geometry.Point2D{X: 10, Y: 0}, p[len(p)-1])
}
