package schematic

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"boardscan/pkg/geometry"
)

// SVGCanvas serializes drawing commands into a standalone SVG document.
type SVGCanvas struct {
	buf   bytes.Buffer
	depth int
}

// NewSVGCanvas returns an empty SVG canvas.
func NewSVGCanvas() *SVGCanvas {
	return &SVGCanvas{}
}

func (s *SVGCanvas) Begin(width, height float64) {
	s.buf.Reset()
	s.depth = 0
	fmt.Fprintf(&s.buf, `<svg width="%s" height="%s" viewBox="0 0 %s %s" xmlns="http://www.w3.org/2000/svg">`,
		num(width), num(height), num(width), num(height))
	s.buf.WriteByte('\n')
}

func (s *SVGCanvas) Rect(x, y, w, h float64, st Style) {
	fmt.Fprintf(&s.buf, `<rect x="%s" y="%s" width="%s" height="%s"%s/>`,
		num(x), num(y), num(w), num(h), paint(st))
	s.buf.WriteByte('\n')
}

func (s *SVGCanvas) Line(x1, y1, x2, y2 float64, st Style) {
	fmt.Fprintf(&s.buf, `<line x1="%s" y1="%s" x2="%s" y2="%s"%s/>`,
		num(x1), num(y1), num(x2), num(y2), paint(st))
	s.buf.WriteByte('\n')
}

func (s *SVGCanvas) Circle(cx, cy, r float64, st Style) {
	fmt.Fprintf(&s.buf, `<circle cx="%s" cy="%s" r="%s"%s/>`, num(cx), num(cy), num(r), paint(st))
	s.buf.WriteByte('\n')
}

func (s *SVGCanvas) Polygon(p []geometry.Point2D, st Style) {
	fmt.Fprintf(&s.buf, `<polygon points="%s"%s/>`, pointList(p), paint(st))
	s.buf.WriteByte('\n')
}

func (s *SVGCanvas) Polyline(p []geometry.Point2D, st Style) {
	fmt.Fprintf(&s.buf, `<polyline points="%s"%s/>`, pointList(p), paint(st))
	s.buf.WriteByte('\n')
}

func (s *SVGCanvas) Path(cmds []PathCmd, st Style) {
	var d []string
	for _, c := range cmds {
		d = append(d, string(rune(c.Op)))
		for _, p := range c.Pts {
			d = append(d, num(p.X), num(p.Y))
		}
	}
	fmt.Fprintf(&s.buf, `<path d="%s"%s/>`, strings.Join(d, " "), paint(st))
	s.buf.WriteByte('\n')
}

func (s *SVGCanvas) Text(x, y float64, text string, f Font) {
	fmt.Fprintf(&s.buf, `<text x="%s" y="%s"`, num(x), num(y))
	if f.Class != "" {
		fmt.Fprintf(&s.buf, ` class="%s"`, f.Class)
	}
	if f.Anchor != "" && f.Anchor != AnchorStart {
		fmt.Fprintf(&s.buf, ` text-anchor="%s"`, f.Anchor)
	}
	fmt.Fprintf(&s.buf, ` font-family="Arial, sans-serif" font-size="%s"`, num(f.Size))
	if f.Bold {
		s.buf.WriteString(` font-weight="bold"`)
	}
	if f.Fill != "" {
		fmt.Fprintf(&s.buf, ` fill="%s"`, f.Fill)
	}
	s.buf.WriteByte('>')
	_ = xml.EscapeText(&s.buf, []byte(text))
	s.buf.WriteString("</text>\n")
}

func (s *SVGCanvas) BeginGroup(g Group) {
	s.buf.WriteString("<g")
	if g.ID != "" {
		fmt.Fprintf(&s.buf, ` id="%s"`, g.ID)
	}
	if g.Class != "" {
		fmt.Fprintf(&s.buf, ` class="%s"`, g.Class)
	}
	if g.Size.Width > 0 || g.Size.Height > 0 {
		fmt.Fprintf(&s.buf, ` data-width="%s" data-height="%s"`, num(g.Size.Width), num(g.Size.Height))
	}
	if g.Offset.X != 0 || g.Offset.Y != 0 {
		fmt.Fprintf(&s.buf, ` transform="translate(%s, %s)"`, num(g.Offset.X), num(g.Offset.Y))
	}
	if g.Opacity > 0 && g.Opacity < 1 {
		fmt.Fprintf(&s.buf, ` opacity="%s"`, num(g.Opacity))
	}
	s.buf.WriteString(">\n")
	s.depth++
}

func (s *SVGCanvas) EndGroup() {
	if s.depth == 0 {
		return
	}
	s.depth--
	s.buf.WriteString("</g>\n")
}

// Bytes closes any open groups and returns the finished document.
func (s *SVGCanvas) Bytes() []byte {
	for s.depth > 0 {
		s.EndGroup()
	}
	out := make([]byte, 0, s.buf.Len()+7)
	out = append(out, s.buf.Bytes()...)
	return append(out, "</svg>\n"...)
}

// WriteSVG renders m as a standalone SVG document.
func WriteSVG(w io.Writer, m Model) error {
	c := NewSVGCanvas()
	Draw(m, c)
	if _, err := w.Write(c.Bytes()); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

func paint(st Style) string {
	var b strings.Builder
	fill := st.Fill
	if fill == "" {
		fill = noColor
	}
	fmt.Fprintf(&b, ` fill="%s"`, fill)
	if st.Stroke == "" {
		b.WriteString(` stroke="none"`)
	} else {
		fmt.Fprintf(&b, ` stroke="%s" stroke-width="%s"`, st.Stroke, num(st.StrokeWidth))
	}
	return b.String()
}

func pointList(p []geometry.Point2D) string {
	parts := make([]string, len(p))
	for i, pt := range p {
		parts[i] = num(pt.X) + "," + num(pt.Y)
	}
	return strings.Join(parts, " ")
}

// ParsedSymbol is a component group recovered from an SVG export.
type ParsedSymbol struct {
	ID       string
	Position geometry.Point2D
	Size     geometry.Size
	Label    string
	Value    string
}

// ParsedSheet is the geometry recovered from an SVG export.
type ParsedSheet struct {
	Width   float64
	Height  float64
	Title   string
	Symbols []ParsedSymbol
	Wires   [][]geometry.Point2D
}

// ParseSVG reads back the component groups, title and wires of a document
// produced by WriteSVG.
func ParseSVG(r io.Reader) (*ParsedSheet, error) {
	dec := xml.NewDecoder(r)
	sheet := &ParsedSheet{}

	var current *ParsedSymbol
	var textClass string
	var text strings.Builder
	groupDepth := 0
	symbolDepth := -1

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse svg: %w", err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			attrs := attrMap(el.Attr)
			switch el.Name.Local {
			case "svg":
				sheet.Width, _ = strconv.ParseFloat(attrs["width"], 64)
				sheet.Height, _ = strconv.ParseFloat(attrs["height"], 64)
			case "g":
				groupDepth++
				if attrs["class"] != "component" {
					continue
				}
				sym, err := parseSymbolGroup(attrs)
				if err != nil {
					return nil, err
				}
				current = &sym
				symbolDepth = groupDepth
			case "text":
				textClass = attrs["class"]
				text.Reset()
			case "polyline":
				if groupDepth == 0 {
					p, err := parsePoints(attrs["points"])
					if err != nil {
						return nil, err
					}
					sheet.Wires = append(sheet.Wires, p)
				}
			}

		case xml.CharData:
			if textClass != "" {
				text.Write(el)
			}

		case xml.EndElement:
			switch el.Name.Local {
			case "text":
				switch {
				case textClass == "title":
					sheet.Title = text.String()
				case current != nil && textClass == "label":
					current.Label = text.String()
				case current != nil && textClass == "value":
					current.Value = text.String()
				}
				textClass = ""
			case "g":
				if current != nil && groupDepth == symbolDepth {
					sheet.Symbols = append(sheet.Symbols, *current)
					current = nil
					symbolDepth = -1
				}
				groupDepth--
			}
		}
	}

	return sheet, nil
}

func attrMap(attrs []xml.Attr) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		m[a.Name.Local] = a.Value
	}
	return m
}

func parseSymbolGroup(attrs map[string]string) (ParsedSymbol, error) {
	sym := ParsedSymbol{ID: attrs["id"]}

	var err error
	if sym.Size.Width, err = strconv.ParseFloat(attrs["data-width"], 64); err != nil {
		return sym, fmt.Errorf("parse svg: symbol %s width: %w", sym.ID, err)
	}
	if sym.Size.Height, err = strconv.ParseFloat(attrs["data-height"], 64); err != nil {
		return sym, fmt.Errorf("parse svg: symbol %s height: %w", sym.ID, err)
	}
	if t := attrs["transform"]; t != "" {
		if _, err := fmt.Sscanf(t, "translate(%g, %g)", &sym.Position.X, &sym.Position.Y); err != nil {
			return sym, fmt.Errorf("parse svg: symbol %s transform %q: %w", sym.ID, t, err)
		}
	}
	return sym, nil
}

func parsePoints(s string) ([]geometry.Point2D, error) {
	var out []geometry.Point2D
	for _, pair := range strings.Fields(s) {
		xs, ys, ok := strings.Cut(pair, ",")
		if !ok {
			return nil, fmt.Errorf("parse svg: bad point %q", pair)
		}
		x, err := strconv.ParseFloat(xs, 64)
		if err != nil {
			return nil, fmt.Errorf("parse svg: bad point %q: %w", pair, err)
		}
		y, err := strconv.ParseFloat(ys, 64)
		if err != nil {
			return nil, fmt.Errorf("parse svg: bad point %q: %w", pair, err)
		}
		out = append(out, geometry.Point2D{X: x, Y: y})
	}
	return out, nil
}
