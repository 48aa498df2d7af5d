package render

import (
	"github.com/lixenwraith/ideanet/graph"
)

const (
	edgeAlphaActive = 0.4
	edgeAlphaIdle   = 0.1
	edgeWidthActive = 1.0
	edgeWidthIdle   = 0.5

	glowSpread      = 1.5 // glow radius as a multiple of size
	glowAlpha       = 0.5
	activeScale     = 1.2
	nodeAlphaActive = 0.9
	nodeAlphaIdle   = 0.7
	glyphScale      = 0.8
	pulseAmplitude  = 0.05
)

// EdgeStyle returns the stroke for e: dashed, brighter and thicker when lit
func EdgeStyle(p Palette, e graph.Edge, ctx FrameContext) LineStyle {
	if e.BaseActive || ctx.IsActive(e.A) || ctx.IsActive(e.B) {
		return LineStyle{
			Color:  Mix(p.Connection, p.Primary, 0.35),
			Alpha:  edgeAlphaActive,
			Width:  edgeWidthActive,
			Dashed: true,
		}
	}
	return LineStyle{Color: p.Connection, Alpha: edgeAlphaIdle, Width: edgeWidthIdle}
}

// NodeStyle is the resolved appearance of one node for one frame
type NodeStyle struct {
	Color      RGB
	Alpha      float64
	GlowRadius float64
	GlowAlpha  float64
	DrawSize   float64 // glyph half-extent
	DiscRadius float64 // fallback disc, pulses with the node
}

// StyleNode computes the node's glow and symbol geometry
func StyleNode(p Palette, n *graph.Node, active bool) NodeStyle {
	scale, alpha, c := 1.0, nodeAlphaIdle, p.Secondary
	if active {
		scale, alpha, c = activeScale, nodeAlphaActive, p.Primary
	}
	drawSize := n.Size * scale * glyphScale
	return NodeStyle{
		Color:      c,
		Alpha:      alpha,
		GlowRadius: n.Size * glowSpread * scale,
		GlowAlpha:  glowAlpha,
		DrawSize:   drawSize,
		DiscRadius: drawSize * (1 + n.Pulse*pulseAmplitude),
	}
}

// EdgeLayer strokes every connection
type EdgeLayer struct{}

// Render draws all edges; edges with a missing endpoint are skipped
func (EdgeLayer) Render(ctx FrameContext, s Surface) {
	for _, e := range ctx.Store.Edges {
		a, okA := ctx.Store.Lookup(e.A)
		b, okB := ctx.Store.Lookup(e.B)
		if !okA || !okB {
			continue
		}
		s.Line(a.Pos, b.Pos, EdgeStyle(ctx.Palette, e, ctx))
	}
}

// NodeLayer draws each node as a glow followed by its glyph, or a disc when no glyph exists
type NodeLayer struct{}

// Render draws all nodes in store order
func (NodeLayer) Render(ctx FrameContext, s Surface) {
	for i := range ctx.Store.Nodes {
		n := &ctx.Store.Nodes[i]
		st := StyleNode(ctx.Palette, n, ctx.IsActive(n.ID))

		s.Glow(n.Pos, st.GlowRadius, st.Color, st.GlowAlpha)
		if n.Kind != graph.KindCircle && s.Glyph(n.Kind, n.Pos, st.DrawSize, n.Rotation, st.Color, st.Alpha) {
			continue
		}
		s.Disc(n.Pos, st.DiscRadius, st.Color, st.Alpha)
	}
}
