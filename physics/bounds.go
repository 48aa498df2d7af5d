package physics

import (
	"github.com/lixenwraith/ideanet/graph"
	"github.com/lixenwraith/ideanet/vmath"
)

// ReflectBoundsX handles horizontal wall contact, returns true if reflection occurred
// Velocity is pointed away from the touched wall and the position clamped into [size, width-size]
func ReflectBoundsX(n *graph.Node, width, lead float64) bool {
	lo, hi := n.Size, width-n.Size
	switch {
	case n.Pos.X <= lo:
		n.Vel.X = abs(n.Vel.X)
	case n.Pos.X >= hi:
		n.Vel.X = -abs(n.Vel.X)
	default:
		return false
	}
	n.Pos.X = vmath.Clamp(n.Pos.X, lo, hi)
	if n.Target != nil {
		n.Target.X = n.Pos.X + n.Vel.X*lead
	}
	return true
}

// ReflectBoundsY handles vertical wall contact, returns true if reflection occurred
func ReflectBoundsY(n *graph.Node, height, lead float64) bool {
	lo, hi := n.Size, height-n.Size
	switch {
	case n.Pos.Y <= lo:
		n.Vel.Y = abs(n.Vel.Y)
	case n.Pos.Y >= hi:
		n.Vel.Y = -abs(n.Vel.Y)
	default:
		return false
	}
	n.Pos.Y = vmath.Clamp(n.Pos.Y, lo, hi)
	if n.Target != nil {
		n.Target.Y = n.Pos.Y + n.Vel.Y*lead
	}
	return true
}

// ReflectBounds handles both axes, returns true if any reflection occurred
func ReflectBounds(n *graph.Node, width, height, lead float64) bool {
	rx := ReflectBoundsX(n, width, lead)
	ry := ReflectBoundsY(n, height, lead)
	return rx || ry
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
