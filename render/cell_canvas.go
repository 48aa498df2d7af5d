package render

import (
	"math"

	"github.com/lixenwraith/ideanet/graph"
	"github.com/lixenwraith/ideanet/terminal"
	"github.com/lixenwraith/ideanet/vmath"
)

const (
	dashOn     = 4
	dashPeriod = 6

	// Cells are coarse, so line and glyph alpha is amplified to stay legible against the background
	defaultLineGain = 2.5
)

// CellCanvas is a Surface over a RenderBuffer; each cell covers CellW x CellH container pixels
type CellCanvas struct {
	buf    *RenderBuffer
	cellW  float64
	cellH  float64
	glyphs GlyphSet

	LineGain float64
}

// NewCellCanvas wraps buf; non-positive cell sizes default to 1
func NewCellCanvas(buf *RenderBuffer, cellW, cellH float64, glyphs GlyphSet) *CellCanvas {
	if cellW <= 0 {
		cellW = 1
	}
	if cellH <= 0 {
		cellH = 1
	}
	return &CellCanvas{buf: buf, cellW: cellW, cellH: cellH, glyphs: glyphs, LineGain: defaultLineGain}
}

// Buffer returns the backing buffer
func (c *CellCanvas) Buffer() *RenderBuffer {
	return c.buf
}

// Size returns the container size in pixels
func (c *CellCanvas) Size() (float64, float64) {
	w, h := c.buf.Size()
	return float64(w) * c.cellW, float64(h) * c.cellH
}

func (c *CellCanvas) toCell(p vmath.Vec2) (int, int) {
	return int(math.Floor(p.X / c.cellW)), int(math.Floor(p.Y / c.cellH))
}

func (c *CellCanvas) cellCenter(x, y int) vmath.Vec2 {
	return vmath.Vec2{X: (float64(x) + 0.5) * c.cellW, Y: (float64(y) + 0.5) * c.cellH}
}

// Clear implements Surface
func (c *CellCanvas) Clear(bg RGB) {
	c.buf.Clear(bg)
}

// lineRune picks a box-drawing rune from the segment slope in pixel space
func lineRune(dx, dy float64, faint bool) rune {
	if faint {
		return '·'
	}
	adx, ady := math.Abs(dx), math.Abs(dy)
	switch {
	case ady < adx*0.4:
		return '─'
	case adx < ady*0.4:
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

// Line implements Surface with Bresenham stepping over cells
func (c *CellCanvas) Line(a, b vmath.Vec2, st LineStyle) {
	x0, y0 := c.toCell(a)
	x1, y1 := c.toCell(b)
	r := lineRune(b.X-a.X, b.Y-a.Y, !st.Dashed && st.Width < 1)
	alpha := math.Min(1, st.Alpha*c.LineGain)

	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	e := dx + dy

	for i := 0; ; i++ {
		if !st.Dashed || i%dashPeriod < dashOn {
			cell := c.buf.Cell(x0, y0)
			c.buf.SetFgOnly(x0, y0, r, Blend(cell.Bg, st.Color, alpha), terminal.AttrNone)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// Glow implements Surface by screening the color into cell backgrounds with linear falloff
func (c *CellCanvas) Glow(center vmath.Vec2, radius float64, col RGB, alpha float64) {
	if radius <= 0 || alpha <= 0 {
		return
	}
	c.eachCellWithin(center, radius, func(x, y int, d float64) {
		c.buf.BlendBg(x, y, col, BlendScreen, alpha*(1-d/radius))
	})
}

// Disc implements Surface: cells inside the radius are tinted and the centre cell gets a dot
func (c *CellCanvas) Disc(center vmath.Vec2, radius float64, col RGB, alpha float64) {
	c.eachCellWithin(center, radius, func(x, y int, _ float64) {
		c.buf.BlendBg(x, y, col, BlendAlpha, alpha*0.5)
	})
	x, y := c.toCell(center)
	cell := c.buf.Cell(x, y)
	c.buf.SetFgOnly(x, y, '●', Blend(cell.Bg, col, math.Min(1, alpha*c.LineGain)), terminal.AttrNone)
}

// Glyph implements Surface; returns false when the glyph set has no frames for kind
func (c *CellCanvas) Glyph(kind graph.Kind, center vmath.Vec2, _ float64, rotation float64, col RGB, alpha float64) bool {
	frames := c.glyphs.Frames(kind)
	if len(frames) == 0 {
		return false
	}
	x, y := c.toCell(center)
	cell := c.buf.Cell(x, y)
	attrs := terminal.AttrNone
	if alpha >= nodeAlphaActive {
		attrs = terminal.AttrBold
	}
	c.buf.SetFgOnly(x, y, frames[frameIndex(rotation, len(frames))], Blend(cell.Bg, col, math.Min(1, alpha*c.LineGain)), attrs)
	return true
}

// Text implements Surface; text is clipped at the right edge
func (c *CellCanvas) Text(pos vmath.Vec2, s string, col RGB) {
	x, y := c.toCell(pos)
	for _, r := range s {
		c.buf.SetFgOnly(x, y, r, col, terminal.AttrNone)
		x++
	}
}

// eachCellWithin visits cells whose centre lies within radius of center
func (c *CellCanvas) eachCellWithin(center vmath.Vec2, radius float64, fn func(x, y int, d float64)) {
	x0, y0 := c.toCell(vmath.Vec2{X: center.X - radius, Y: center.Y - radius})
	x1, y1 := c.toCell(vmath.Vec2{X: center.X + radius, Y: center.Y + radius})
	w, h := c.buf.Size()
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, w-1), min(y1, h-1)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			d := vmath.V2Dist(c.cellCenter(x, y), center)
			if d < radius {
				fn(x, y, d)
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
