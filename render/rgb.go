package render

import (
	"github.com/lixenwraith/ideanet/terminal"
)

// RGB is the 24-bit color every canvas paints with.
type RGB = terminal.RGB

func clamp(v float64) uint8 {
	switch {
	case v >= 255:
		return 255
	case v <= 0:
		return 0
	}
	return uint8(v)
}

// channels applies f to each channel pair of a and b.
func channels(a, b RGB, f func(x, y uint8) uint8) RGB {
	return RGB{R: f(a.R, b.R), G: f(a.G, b.G), B: f(a.B, b.B)}
}

// Blend mixes src over c with the given opacity.
func Blend(c, src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return c
	}
	if alpha >= 1 {
		return src
	}
	return channels(c, src, func(x, y uint8) uint8 {
		return uint8(float64(y)*alpha + float64(x)*(1-alpha))
	})
}

// Screen brightens c by src without clipping overlapping halos to white.
func Screen(c, src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return c
	}
	lit := channels(c, src, func(x, y uint8) uint8 {
		inv := (255 - int(x)) * (255 - int(y))
		return uint8(255 - (inv+127)/255)
	})
	return Blend(c, lit, alpha)
}
