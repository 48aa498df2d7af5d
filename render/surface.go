package render

import (
	"github.com/lixenwraith/ideanet/graph"
	"github.com/lixenwraith/ideanet/vmath"
)

// LineStyle describes how a connection is stroked
type LineStyle struct {
	Color  RGB
	Alpha  float64
	Width  float64
	Dashed bool // 4 on, 2 off
}

// Surface is a drawing target in container pixel coordinates
type Surface interface {
	// Size returns the drawable area in pixels
	Size() (width, height float64)

	Clear(bg RGB)
	Line(a, b vmath.Vec2, st LineStyle)

	// Glow draws a radial falloff from alpha at the centre to zero at radius
	Glow(center vmath.Vec2, radius float64, c RGB, alpha float64)

	// Glyph draws the kind's symbol rotated by rotation; returns false if the surface has no
	// asset for the kind, in which case nothing is drawn
	Glyph(kind graph.Kind, center vmath.Vec2, size, rotation float64, c RGB, alpha float64) bool

	Disc(center vmath.Vec2, radius float64, c RGB, alpha float64)

	// Text draws a single line starting at the given pixel position
	Text(pos vmath.Vec2, s string, c RGB)
}
