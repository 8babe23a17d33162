package schematic

import (
	"math"
	"strconv"

	"boardscan/pkg/colorutil"
	"boardscan/pkg/geometry"
)

// Palette, as hex strings so SVG output can carry them verbatim.
var (
	inkColor        = colorutil.Hex(colorutil.Ink)
	mutedColor      = colorutil.Hex(colorutil.Muted)
	wireColor       = colorutil.Hex(colorutil.Wire)
	backgroundColor = colorutil.Hex(colorutil.Background)
	bodyFillColor   = colorutil.Hex(colorutil.BodyFill)
)

const noColor = "none"

// GridSpacing is the distance between background grid lines.
const GridSpacing = 50

// Style is the paint of one shape. Empty colors mean "none".
type Style struct {
	Stroke      string
	StrokeWidth float64
	Fill        string
}

// Anchor is the horizontal text alignment.
type Anchor string

const (
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
)

// Font is the style of one text run. Class tags the run for parsing.
type Font struct {
	Size   float64
	Bold   bool
	Anchor Anchor
	Fill   string
	Class  string
}

// Group opens a nested drawing scope translated by Offset.
type Group struct {
	ID      string
	Class   string
	Offset  geometry.Point2D
	Opacity float64 // 0 means fully opaque
	Size    geometry.Size
}

// PathOp is an SVG path command letter.
type PathOp byte

const (
	MoveTo  PathOp = 'M'
	LineTo  PathOp = 'L'
	CurveTo PathOp = 'C' // Cubic bezier: two control points then the end point
)

// PathCmd is one path command and its points.
type PathCmd struct {
	Op  PathOp
	Pts []geometry.Point2D
}

// Canvas receives drawing commands. The SVG writer and the raster renderer
// both implement it so that exports and previews match exactly.
type Canvas interface {
	Begin(width, height float64)
	Rect(x, y, w, h float64, s Style)
	Line(x1, y1, x2, y2 float64, s Style)
	Circle(cx, cy, r float64, s Style)
	Polygon(pts []geometry.Point2D, s Style)
	Polyline(pts []geometry.Point2D, s Style)
	Path(cmds []PathCmd, s Style)
	Text(x, y float64, text string, f Font)
	BeginGroup(g Group)
	EndGroup()
}

// Draw issues the drawing commands for the full sheet.
func Draw(m Model, c Canvas) {
	c.Begin(m.Width, m.Height)
	c.Rect(0, 0, m.Width, m.Height, Style{Fill: backgroundColor})
	drawGrid(c, m.Width, m.Height)

	c.Text(20, 40, m.Title, Font{Size: 20, Bold: true, Fill: inkColor, Class: "title"})

	for _, pc := range m.Components {
		drawComponent(c, pc)
	}
	for _, w := range m.Wires {
		if len(w.Path) < 2 {
			continue
		}
		c.Polyline(w.Path, Style{Stroke: wireColor, StrokeWidth: 2})
	}
	for _, r := range m.PowerRails {
		c.Line(RailStartX, r.Y, RailEndX, r.Y, Style{Stroke: r.Color, StrokeWidth: 4})
		c.Text(RailLabelX, r.Y-5, r.Name+" ("+r.Voltage+")", Font{Size: 12, Bold: true, Fill: r.Color, Class: "rail"})
	}
	for _, a := range m.Annotations {
		c.Text(a.Position.X, a.Position.Y, a.Text, Font{Size: a.Style.FontSize, Bold: a.Style.Bold, Fill: inkColor, Class: "annotation"})
	}
}

func drawGrid(c Canvas, width, height float64) {
	c.BeginGroup(Group{Class: "grid", Opacity: 0.1})
	line := Style{Stroke: mutedColor, StrokeWidth: 1}
	for x := 0.0; x <= width; x += GridSpacing {
		c.Line(x, 0, x, height, line)
	}
	for y := 0.0; y <= height; y += GridSpacing {
		c.Line(0, y, width, y, line)
	}
	c.EndGroup()
}

func drawComponent(c Canvas, pc PlacedComponent) {
	w, h := pc.Size.Width, pc.Size.Height
	ink := Style{Stroke: inkColor, StrokeWidth: 2}
	heavy := Style{Stroke: inkColor, StrokeWidth: 3}

	c.BeginGroup(Group{ID: pc.ID, Class: "component", Offset: pc.Position, Size: pc.Size})

	switch pc.Symbol {
	case "resistor":
		m := h / 2
		c.Path([]PathCmd{
			{MoveTo, pts(0, m)},
			{LineTo, pts(10, m)},
			{LineTo, pts(15, m-8)},
			{LineTo, pts(25, m+8)},
			{LineTo, pts(35, m-8)},
			{LineTo, pts(45, m+8)},
			{LineTo, pts(50, m)},
			{LineTo, pts(w, m)},
		}, ink)

	case "capacitor":
		c.Line(w/2-3, h/4, w/2-3, 3*h/4, heavy)
		c.Line(w/2+3, h/4, w/2+3, 3*h/4, heavy)
		c.Line(0, h/2, w/2-3, h/2, ink)
		c.Line(w/2+3, h/2, w, h/2, ink)

	case "ic":
		c.Rect(10, 10, w-20, h-20, Style{Stroke: inkColor, StrokeWidth: 2, Fill: bodyFillColor})
		c.Circle(15, 15, 3, Style{Fill: inkColor})
		for _, p := range pc.Pins {
			switch p.Side {
			case Left:
				c.Line(0, p.Position.Y, 10, p.Position.Y, ink)
			case Right:
				c.Line(w-10, p.Position.Y, w, p.Position.Y, ink)
			}
		}

	case "diode":
		c.Polygon([]geometry.Point2D{
			{X: w/2 - 8, Y: h / 2},
			{X: w/2 + 8, Y: h/2 - 8},
			{X: w/2 + 8, Y: h/2 + 8},
		}, Style{Fill: inkColor})
		c.Line(w/2+8, h/2-10, w/2+8, h/2+10, heavy)
		c.Line(0, h/2, w/2-8, h/2, ink)
		c.Line(w/2+8, h/2, w, h/2, ink)

	case "transistor":
		c.Circle(w/2, h/2, math.Min(w, h)/3, ink)
		c.Line(w/2-8, h/2-8, w/2-8, h/2+8, heavy)
		c.Line(w/2-8, h/2-5, w/2+8, h/2-12, ink)
		c.Line(w/2-8, h/2+5, w/2+8, h/2+12, ink)

	case "inductor":
		m := h / 2
		c.Path([]PathCmd{
			{MoveTo, pts(0, m)},
			{LineTo, pts(10, m)},
			{CurveTo, pts(15, m-8, 20, m-8, 25, m)},
			{CurveTo, pts(30, m+8, 35, m+8, 40, m)},
			{LineTo, pts(w, m)},
		}, ink)

	default:
		c.Rect(0, 0, w, h, Style{Stroke: inkColor, StrokeWidth: 2, Fill: bodyFillColor})
	}

	c.Text(w/2, h+15, pc.Label, Font{Size: 12, Bold: true, Anchor: AnchorMiddle, Fill: inkColor, Class: "label"})
	if pc.Value != "" {
		c.Text(w/2, h+30, pc.Value, Font{Size: 10, Anchor: AnchorMiddle, Fill: mutedColor, Class: "value"})
	}

	c.EndGroup()
}

// pts builds a point list from x, y pairs.
func pts(xy ...float64) []geometry.Point2D {
	out := make([]geometry.Point2D, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, geometry.Point2D{X: xy[i], Y: xy[i+1]})
	}
	return out
}

// num formats a coordinate without trailing zeros.
func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
