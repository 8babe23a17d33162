// Package colorutil provides the schematic palette and hex color helpers.
package colorutil

import (
	"fmt"
	"image/color"
	"strings"
)

// Schematic palette.
var (
	Black      = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Ink        = color.RGBA{R: 0x1f, G: 0x29, B: 0x37, A: 255} // Symbols and text
	Muted      = color.RGBA{R: 0x6b, G: 0x72, B: 0x80, A: 255} // Values and grid
	Wire       = color.RGBA{R: 0x05, G: 0x96, B: 0x69, A: 255}
	Background = color.RGBA{R: 0xf8, G: 0xf9, B: 0xfa, A: 255}
	BodyFill   = color.RGBA{R: 0xf3, G: 0xf4, B: 0xf6, A: 255} // IC and generic boxes
)

// ParseHex parses "#rrggbb" or "#rgb". The name "none" yields a fully
// transparent color.
func ParseHex(s string) (color.RGBA, error) {
	if s == "none" {
		return color.RGBA{}, nil
	}
	hex := strings.TrimPrefix(s, "#")

	var r, g, b uint8
	switch len(hex) {
	case 6:
		if _, err := fmt.Sscanf(hex, "%2x%2x%2x", &r, &g, &b); err != nil {
			return color.RGBA{}, fmt.Errorf("parse color %q: %w", s, err)
		}
	case 3:
		if _, err := fmt.Sscanf(hex, "%1x%1x%1x", &r, &g, &b); err != nil {
			return color.RGBA{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		r, g, b = r*17, g*17, b*17
	default:
		return color.RGBA{}, fmt.Errorf("parse color %q: bad length", s)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// Hex formats c as "#rrggbb", or "none" when fully transparent.
func Hex(c color.RGBA) string {
	if c.A == 0 {
		return "none"
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Blend mixes fg over bg with the given opacity in [0,1].
func Blend(fg, bg color.RGBA, opacity float64) color.RGBA {
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a)*opacity + float64(b)*(1-opacity) + 0.5)
	}
	return color.RGBA{R: mix(fg.R, bg.R), G: mix(fg.G, bg.G), B: mix(fg.B, bg.B), A: 255}
}
