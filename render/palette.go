package render

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette holds the scene colors
type Palette struct {
	Background RGB
	Primary    RGB // active nodes and glows
	Secondary  RGB // idle nodes and glows
	Connection RGB
	Text       RGB
}

// DefaultPalette is a dark theme tuned for terminals (Tokyo Night background)
var DefaultPalette = Palette{
	Background: RGB{R: 26, G: 27, B: 38},
	Primary:    RGB{R: 122, G: 162, B: 247},
	Secondary:  RGB{R: 77, G: 95, B: 128},
	Connection: RGB{R: 61, G: 89, B: 161},
	Text:       RGB{R: 192, G: 202, B: 245},
}

// ParseColor parses a #rrggbb or #rgb hex color
func ParseColor(s string) (RGB, error) {
	if len(s) == 4 && s[0] == '#' {
		s = string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// Hex formats a color as #rrggbb
func Hex(c RGB) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// PaletteSpec is the textual form of a palette; empty fields keep the default
type PaletteSpec struct {
	Background string
	Primary    string
	Secondary  string
	Connection string
	Text       string
}

// NewPalette resolves a spec over DefaultPalette, reporting every bad field
func NewPalette(spec PaletteSpec) (Palette, error) {
	p := DefaultPalette
	var errs []error
	for _, f := range []struct {
		name string
		src  string
		dst  *RGB
	}{
		{"background", spec.Background, &p.Background},
		{"primary", spec.Primary, &p.Primary},
		{"secondary", spec.Secondary, &p.Secondary},
		{"connection", spec.Connection, &p.Connection},
		{"text", spec.Text, &p.Text},
	} {
		if f.src == "" {
			continue
		}
		c, err := ParseColor(f.src)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.name, err))
			continue
		}
		*f.dst = c
	}
	return p, errors.Join(errs...)
}

// Mix blends two colors in CIE-Lab space for perceptually even gradients
func Mix(a, b RGB, t float64) RGB {
	ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
	r, g, bl := ca.BlendLab(cb, t).Clamped().RGB255()
	return RGB{R: r, G: g, B: bl}
}
