package render

import (
	"image/color"
	"io"
	"math"

	"git.sr.ht/~sbinet/gg"

	"github.com/lixenwraith/ideanet/graph"
	"github.com/lixenwraith/ideanet/vmath"
)

// glowRings approximates a radial gradient with stacked translucent discs
const glowRings = 6

// PNGCanvas is a Surface rasterised with gg; call Encode once the frame is drawn
type PNGCanvas struct {
	dc *gg.Context
}

// NewPNGCanvas creates a width x height raster surface
func NewPNGCanvas(width, height int) *PNGCanvas {
	return &PNGCanvas{dc: gg.NewContext(width, height)}
}

// Encode writes the frame as PNG
func (c *PNGCanvas) Encode(w io.Writer) error {
	return c.dc.EncodePNG(w)
}

func rgba(c RGB, alpha float64) color.RGBA {
	a := clamp(alpha * 255)
	// color.RGBA is premultiplied
	return color.RGBA{
		R: uint8(uint16(c.R) * uint16(a) / 255),
		G: uint8(uint16(c.G) * uint16(a) / 255),
		B: uint8(uint16(c.B) * uint16(a) / 255),
		A: a,
	}
}

// Size implements Surface
func (c *PNGCanvas) Size() (float64, float64) {
	return float64(c.dc.Width()), float64(c.dc.Height())
}

// Clear implements Surface
func (c *PNGCanvas) Clear(bg RGB) {
	c.dc.SetColor(rgba(bg, 1))
	c.dc.Clear()
}

// Line implements Surface
func (c *PNGCanvas) Line(a, b vmath.Vec2, st LineStyle) {
	c.dc.SetColor(rgba(st.Color, st.Alpha))
	c.dc.SetLineWidth(st.Width)
	if st.Dashed {
		c.dc.SetDash(dashOn, dashPeriod-dashOn)
	}
	c.dc.DrawLine(a.X, a.Y, b.X, b.Y)
	c.dc.Stroke()
	c.dc.SetDash()
}

// Glow implements Surface
func (c *PNGCanvas) Glow(center vmath.Vec2, radius float64, col RGB, alpha float64) {
	if radius <= 0 || alpha <= 0 {
		return
	}
	// Each ring adds a slice of alpha so the centre accumulates to about alpha
	ringAlpha := alpha / glowRings
	for i := 0; i < glowRings; i++ {
		r := radius * float64(glowRings-i) / glowRings
		c.dc.SetColor(rgba(col, ringAlpha))
		c.dc.DrawCircle(center.X, center.Y, r)
		c.dc.Fill()
	}
}

// Glyph implements Surface with simple vector shapes on the 24 unit glyph box
func (c *PNGCanvas) Glyph(kind graph.Kind, center vmath.Vec2, size, rotation float64, col RGB, alpha float64) bool {
	switch kind {
	case graph.KindBulb, graph.KindStar, graph.KindNote:
	default:
		return false
	}

	dc := c.dc
	dc.Push()
	dc.Translate(center.X, center.Y)
	dc.Rotate(rotation)
	dc.Scale(size*2/24, size*2/24)
	dc.Translate(-12, -12)
	dc.SetColor(rgba(col, alpha))
	dc.SetLineWidth(2)

	switch kind {
	case graph.KindStar:
		for i, p := range starPoints {
			if i == 0 {
				dc.MoveTo(p[0], p[1])
			} else {
				dc.LineTo(p[0], p[1])
			}
		}
		dc.ClosePath()
	case graph.KindBulb:
		dc.DrawArc(12, 12, 6, math.Pi*0.75, math.Pi*2.25)
		dc.DrawRoundedRectangle(9, 18, 6, 5, 2)
		for _, ray := range bulbRays {
			dc.MoveTo(ray[0], ray[1])
			dc.LineTo(ray[2], ray[3])
		}
	case graph.KindNote:
		dc.DrawRoundedRectangle(6, 2, 14, 20, 2)
		dc.MoveTo(9, 10)
		dc.LineTo(15, 10)
		dc.MoveTo(9, 14)
		dc.LineTo(15, 14)
	}
	dc.Stroke()
	dc.Pop()
	return true
}

// Disc implements Surface
func (c *PNGCanvas) Disc(center vmath.Vec2, radius float64, col RGB, alpha float64) {
	c.dc.SetColor(rgba(col, alpha))
	c.dc.DrawCircle(center.X, center.Y, radius)
	c.dc.Fill()
}

// Text implements Surface
func (c *PNGCanvas) Text(pos vmath.Vec2, s string, col RGB) {
	c.dc.SetColor(rgba(col, 1))
	c.dc.DrawString(s, pos.X, pos.Y)
}
