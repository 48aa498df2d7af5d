package render

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/lixenwraith/ideanet/graph"
	"github.com/lixenwraith/ideanet/vmath"
)

// SVGCanvas is a Surface that streams an SVG document
// Start is written on creation; Close writes the closing tag
type SVGCanvas struct {
	canvas *svg.SVG
	width  int
	height int

	// Radial gradients already defined, keyed by color and alpha
	gradients map[string]string
}

// NewSVGCanvas starts a width x height document on w
func NewSVGCanvas(w io.Writer, width, height int) *SVGCanvas {
	c := &SVGCanvas{
		canvas:    svg.New(w),
		width:     width,
		height:    height,
		gradients: make(map[string]string),
	}
	c.canvas.Start(width, height)
	return c
}

// Close ends the document
func (c *SVGCanvas) Close() {
	c.canvas.End()
}

// Size implements Surface
func (c *SVGCanvas) Size() (float64, float64) {
	return float64(c.width), float64(c.height)
}

func round(v float64) int {
	return int(math.Round(v))
}

// Clear implements Surface
func (c *SVGCanvas) Clear(bg RGB) {
	c.canvas.Rect(0, 0, c.width, c.height, "fill:"+Hex(bg))
}

// Line implements Surface
func (c *SVGCanvas) Line(a, b vmath.Vec2, st LineStyle) {
	style := fmt.Sprintf("stroke:%s;stroke-opacity:%.2f;stroke-width:%.1f", Hex(st.Color), st.Alpha, st.Width)
	if st.Dashed {
		style += fmt.Sprintf(";stroke-dasharray:%d,%d", dashOn, dashPeriod-dashOn)
	}
	c.canvas.Line(round(a.X), round(a.Y), round(b.X), round(b.Y), style)
}

// gradient returns the id of a radial gradient fading col from alpha to transparent
func (c *SVGCanvas) gradient(col RGB, alpha float64) string {
	key := fmt.Sprintf("%s/%.2f", Hex(col), alpha)
	if id, ok := c.gradients[key]; ok {
		return id
	}
	id := fmt.Sprintf("glow%d", len(c.gradients))
	c.canvas.Def()
	c.canvas.RadialGradient(id, 50, 50, 50, 50, 50, []svg.Offcolor{
		{Offset: 0, Color: Hex(col), Opacity: alpha},
		{Offset: 100, Color: Hex(col), Opacity: 0},
	})
	c.canvas.DefEnd()
	c.gradients[key] = id
	return id
}

// Glow implements Surface
func (c *SVGCanvas) Glow(center vmath.Vec2, radius float64, col RGB, alpha float64) {
	if radius <= 0 || alpha <= 0 {
		return
	}
	id := c.gradient(col, alpha)
	c.canvas.Circle(round(center.X), round(center.Y), max(1, round(radius)), "fill:url(#"+id+")")
}

// Glyph implements Surface using the outline paths
func (c *SVGCanvas) Glyph(kind graph.Kind, center vmath.Vec2, size, rotation float64, col RGB, alpha float64) bool {
	d, ok := svgGlyphPaths[kind]
	if !ok {
		return false
	}
	// Paths live on a 24 unit box; size is the half-extent
	scale := size * 2 / 24
	c.canvas.Gtransform(fmt.Sprintf("translate(%.2f,%.2f) rotate(%.3f) scale(%.4f) translate(-12,-12)",
		center.X, center.Y, rotation*180/math.Pi, scale))
	c.canvas.Path(d, fmt.Sprintf("fill:none;stroke:%s;stroke-opacity:%.2f;stroke-width:2;stroke-linecap:round;stroke-linejoin:round",
		Hex(col), alpha))
	c.canvas.Gend()
	return true
}

// Disc implements Surface
func (c *SVGCanvas) Disc(center vmath.Vec2, radius float64, col RGB, alpha float64) {
	c.canvas.Circle(round(center.X), round(center.Y), max(1, round(radius)),
		fmt.Sprintf("fill:%s;fill-opacity:%.2f", Hex(col), alpha))
}

// Text implements Surface
func (c *SVGCanvas) Text(pos vmath.Vec2, s string, col RGB) {
	c.canvas.Text(round(pos.X), round(pos.Y), s,
		fmt.Sprintf("fill:%s;font-family:monospace;font-size:12px", Hex(col)))
}
