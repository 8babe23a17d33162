package schematic

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"boardscan/internal/logger"
	"boardscan/pkg/colorutil"
	"boardscan/pkg/geometry"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// curveSteps is the number of segments a cubic bezier is flattened into.
const curveSteps = 16

type rasterScope struct {
	offset  geometry.Point2D
	opacity float64
}

// RasterCanvas draws the schematic onto an RGBA image. Text uses a fixed
// 7x13 bitmap face regardless of the requested size.
type RasterCanvas struct {
	img    *image.RGBA
	scale  float64
	scopes []rasterScope
}

// NewRasterCanvas returns a canvas that renders at the given scale.
func NewRasterCanvas(scale float64) *RasterCanvas {
	if scale <= 0 {
		scale = 1
	}
	return &RasterCanvas{scale: scale}
}

// Image returns the rendered image, or nil before Begin.
func (r *RasterCanvas) Image() *image.RGBA {
	return r.img
}

func (r *RasterCanvas) Begin(width, height float64) {
	w := int(math.Ceil(width * r.scale))
	h := int(math.Ceil(height * r.scale))
	r.img = image.NewRGBA(image.Rect(0, 0, w, h))
	r.scopes = []rasterScope{{opacity: 1}}
}

func (r *RasterCanvas) BeginGroup(g Group) {
	top := r.top()
	opacity := top.opacity
	if g.Opacity > 0 && g.Opacity < 1 {
		opacity *= g.Opacity
	}
	r.scopes = append(r.scopes, rasterScope{offset: top.offset.Add(g.Offset), opacity: opacity})
}

func (r *RasterCanvas) EndGroup() {
	if len(r.scopes) > 1 {
		r.scopes = r.scopes[:len(r.scopes)-1]
	}
}

func (r *RasterCanvas) top() rasterScope {
	if len(r.scopes) == 0 {
		return rasterScope{opacity: 1}
	}
	return r.scopes[len(r.scopes)-1]
}

// device maps a point in the current scope to image coordinates.
func (r *RasterCanvas) device(x, y float64) (float64, float64) {
	o := r.top().offset
	return (x + o.X) * r.scale, (y + o.Y) * r.scale
}

func (r *RasterCanvas) setPixel(x, y int, c color.RGBA) {
	if !(image.Point{X: x, Y: y}).In(r.img.Bounds()) {
		return
	}
	if op := r.top().opacity; op < 1 {
		c = colorutil.Blend(c, r.img.RGBAAt(x, y), op)
	}
	r.img.SetRGBA(x, y, c)
}

func (r *RasterCanvas) Rect(x, y, w, h float64, s Style) {
	x1, y1 := r.device(x, y)
	x2, y2 := r.device(x+w, y+h)

	if fill, ok := paintColor(s.Fill); ok {
		for py := int(math.Round(y1)); py < int(math.Round(y2)); py++ {
			for px := int(math.Round(x1)); px < int(math.Round(x2)); px++ {
				r.setPixel(px, py, fill)
			}
		}
	}
	if _, ok := paintColor(s.Stroke); ok {
		r.Line(x, y, x+w, y, s)
		r.Line(x+w, y, x+w, y+h, s)
		r.Line(x+w, y+h, x, y+h, s)
		r.Line(x, y+h, x, y, s)
	}
}

func (r *RasterCanvas) Line(x1, y1, x2, y2 float64, s Style) {
	stroke, ok := paintColor(s.Stroke)
	if !ok {
		return
	}
	ax, ay := r.device(x1, y1)
	bx, by := r.device(x2, y2)
	r.drawThickLine(ax, ay, bx, by, r.thickness(s), stroke)
}

func (r *RasterCanvas) Circle(cx, cy, radius float64, s Style) {
	dx, dy := r.device(cx, cy)
	x, y := int(math.Round(dx)), int(math.Round(dy))
	rad := int(math.Round(radius * r.scale))

	if fill, ok := paintColor(s.Fill); ok {
		r.fillCircle(x, y, rad, fill)
	}
	if stroke, ok := paintColor(s.Stroke); ok {
		for w := 0; w < r.thickness(s); w++ {
			r.drawCircle(x, y, rad-w, stroke)
		}
	}
}

func (r *RasterCanvas) Polygon(p []geometry.Point2D, s Style) {
	if len(p) < 3 {
		r.Polyline(p, s)
		return
	}
	if fill, ok := paintColor(s.Fill); ok {
		dev := make([]geometry.Point2D, len(p))
		for i, pt := range p {
			dev[i].X, dev[i].Y = r.device(pt.X, pt.Y)
		}
		r.fillPolygon(dev, fill)
	}
	if _, ok := paintColor(s.Stroke); ok {
		closed := append(append([]geometry.Point2D{}, p...), p[0])
		r.Polyline(closed, s)
	}
}

func (r *RasterCanvas) Polyline(p []geometry.Point2D, s Style) {
	for i := 0; i+1 < len(p); i++ {
		r.Line(p[i].X, p[i].Y, p[i+1].X, p[i+1].Y, s)
	}
}

func (r *RasterCanvas) Path(cmds []PathCmd, s Style) {
	r.Polyline(flattenPath(cmds), s)
}

func (r *RasterCanvas) Text(x, y float64, text string, f Font) {
	c, ok := paintColor(f.Fill)
	if !ok {
		c = colorutil.Black
	}
	face := basicfont.Face7x13

	dx, dy := r.device(x, y)
	if f.Anchor == AnchorMiddle {
		dx -= float64(font.MeasureString(face, text).Round()) / 2
	}

	d := &font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(int(math.Round(dx)), int(math.Round(dy))),
	}
	d.DrawString(text)
	if f.Bold {
		d.Dot = fixed.P(int(math.Round(dx))+1, int(math.Round(dy)))
		d.DrawString(text)
	}
}

func (r *RasterCanvas) thickness(s Style) int {
	t := int(math.Round(s.StrokeWidth * r.scale))
	if t < 1 {
		t = 1
	}
	return t
}

// flattenPath converts path commands to a polyline, approximating cubic
// curves with straight segments.
func flattenPath(cmds []PathCmd) []geometry.Point2D {
	var out []geometry.Point2D
	var cur geometry.Point2D
	for _, c := range cmds {
		switch c.Op {
		case MoveTo, LineTo:
			if len(c.Pts) == 0 {
				continue
			}
			cur = c.Pts[len(c.Pts)-1]
			out = append(out, c.Pts...)
		case CurveTo:
			if len(c.Pts) < 3 {
				continue
			}
			p0, p1, p2, p3 := cur, c.Pts[0], c.Pts[1], c.Pts[2]
			for i := 1; i <= curveSteps; i++ {
				t := float64(i) / curveSteps
				u := 1 - t
				out = append(out, geometry.Point2D{
					X: u*u*u*p0.X + 3*u*u*t*p1.X + 3*u*t*t*p2.X + t*t*t*p3.X,
					Y: u*u*u*p0.Y + 3*u*u*t*p1.Y + 3*u*t*t*p2.Y + t*t*t*p3.Y,
				})
			}
			cur = p3
		}
	}
	return out
}

func paintColor(s string) (color.RGBA, bool) {
	if s == "" || s == noColor {
		return color.RGBA{}, false
	}
	c, err := colorutil.ParseHex(s)
	if err != nil {
		logger.Warn("schematic: %v", err)
		return color.RGBA{}, false
	}
	return c, true
}

// fillCircle fills a circle with the given color.
func (r *RasterCanvas) fillCircle(cx, cy, rad int, c color.RGBA) {
	for y := cy - rad; y <= cy+rad; y++ {
		for x := cx - rad; x <= cx+rad; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= rad*rad {
				r.setPixel(x, y, c)
			}
		}
	}
}

// drawCircle draws a circle outline using Bresenham's algorithm.
func (r *RasterCanvas) drawCircle(cx, cy, rad int, c color.RGBA) {
	if rad <= 0 {
		return
	}
	x, y, err := rad, 0, 0

	for x >= y {
		r.setPixel(cx+x, cy+y, c)
		r.setPixel(cx+y, cy+x, c)
		r.setPixel(cx-y, cy+x, c)
		r.setPixel(cx-x, cy+y, c)
		r.setPixel(cx-x, cy-y, c)
		r.setPixel(cx-y, cy-x, c)
		r.setPixel(cx+y, cy-x, c)
		r.setPixel(cx+x, cy-y, c)

		y++
		if err <= 0 {
			err += 2*y + 1
		}
		if err > 0 {
			x--
			err -= 2*x + 1
		}
	}
}

// drawThickLine draws parallel Bresenham lines across the stroke width.
func (r *RasterCanvas) drawThickLine(x1, y1, x2, y2 float64, thickness int, c color.RGBA) {
	dx := x2 - x1
	dy := y2 - y1
	length := math.Sqrt(dx*dx + dy*dy)
	if length == 0 {
		r.setPixel(int(math.Round(x1)), int(math.Round(y1)), c)
		return
	}
	if thickness <= 1 {
		r.drawLine(int(math.Round(x1)), int(math.Round(y1)), int(math.Round(x2)), int(math.Round(y2)), c)
		return
	}

	// Perpendicular unit vector
	px := -dy / length
	py := dx / length

	half := float64(thickness-1) / 2
	for t := -half; t <= half; t += 1.0 {
		r.drawLine(
			int(math.Round(x1+px*t)), int(math.Round(y1+py*t)),
			int(math.Round(x2+px*t)), int(math.Round(y2+py*t)), c)
	}
}

// drawLine draws a line using Bresenham's algorithm.
func (r *RasterCanvas) drawLine(x1, y1, x2, y2 int, c color.RGBA) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx, sy := -1, -1
	if x1 < x2 {
		sx = 1
	}
	if y1 < y2 {
		sy = 1
	}

	err := dx - dy
	for {
		r.setPixel(x1, y1, c)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// fillPolygon fills pixels whose centers fall inside poly (even-odd rule).
func (r *RasterCanvas) fillPolygon(poly []geometry.Point2D, c color.RGBA) {
	bounds := geometry.BoundingBox(poly)
	for y := int(math.Floor(bounds.Y)); y <= int(math.Ceil(bounds.Y+bounds.Height)); y++ {
		for x := int(math.Floor(bounds.X)); x <= int(math.Ceil(bounds.X+bounds.Width)); x++ {
			if insidePolygon(float64(x)+0.5, float64(y)+0.5, poly) {
				r.setPixel(x, y, c)
			}
		}
	}
}

func insidePolygon(x, y float64, poly []geometry.Point2D) bool {
	in := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > y) != (b.Y > y) && x < (b.X-a.X)*(y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
	}
	return in
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// RenderImage rasterizes m at the given scale.
func RenderImage(m Model, scale float64) *image.RGBA {
	c := NewRasterCanvas(scale)
	Draw(m, c)
	return c.Image()
}

// WritePNG renders m and encodes it as PNG.
func WritePNG(w io.Writer, m Model, scale float64) error {
	if err := png.Encode(w, RenderImage(m, scale)); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
