package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// RGB is a 24-bit color as drawn into terminal cells
type RGB struct {
	R, G, B uint8
}

// Predefined default colors
var (
	RGBBlack = RGB{0, 0, 0}
	RGBWhite = RGB{255, 255, 255}

	// RgbBackground is the default scene background (Tokyo Night)
	RgbBackground = RGB{26, 27, 38}
)

// ParseHex parses "#rrggbb" into RGB
func ParseHex(s string) (RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return FromColorful(c), nil
}

// MustParseHex is ParseHex for compile-time constants, panics on malformed input
func MustParseHex(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParsePalette parses a list of hex colors, failing on the first malformed entry
func ParsePalette(hex []string) ([]RGB, error) {
	out := make([]RGB, 0, len(hex))
	for _, h := range hex {
		c, err := ParseHex(h)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// FromColorful converts a colorful color, clamping out-of-gamut values
func FromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{r, g, b}
}

// Colorful converts to a colorful color for blending in other color spaces
func (c RGB) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255.0, G: float64(c.G) / 255.0, B: float64(c.B) / 255.0}
}

// Hex returns the "#rrggbb" form of c
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// TCell converts to a tcell true color
func (c RGB) TCell() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Lerp blends from a toward b in RGB space, t clamped to [0,1]
func Lerp(a, b RGB, t float64) RGB {
	t = clamp01(t)
	return FromColorful(a.Colorful().BlendRgb(b.Colorful(), t))
}

// Fade blends from a toward b in Lab space for perceptually even depth falloff
func Fade(a, b RGB, t float64) RGB {
	t = clamp01(t)
	return FromColorful(a.Colorful().BlendLab(b.Colorful(), t))
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
