package wordcloud

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette returns n evenly spaced hues at a fixed chroma and lightness, so
// every word stays readable on a light background.
func Palette(n int) []color.Color {
	if n <= 0 {
		return nil
	}
	out := make([]color.Color, n)
	for i := range out {
		h := float64(i) * 360 / float64(n)
		out[i] = colorful.Hcl(h, 0.55, 0.45).Clamped()
	}
	return out
}

// ParseColor parses "#RRGGBB" or "RRGGBB".
func ParseColor(s string) (color.Color, error) {
	if len(s) > 0 && s[0] != '#' {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c, nil
}
