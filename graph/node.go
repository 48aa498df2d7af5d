// Package graph holds the simulated idea nodes, their proximity connections, and the builder
// that lays both out for a container.
package graph

import (
	"github.com/lixenwraith/ideanet/vmath"
)

// Kind selects how a node is drawn; fixed for the node's lifetime
type Kind uint8

const (
	KindCircle Kind = iota
	KindBulb
	KindStar
	KindNote
	kindCount
)

var kindNames = [kindCount]string{
	KindCircle: "circle",
	KindBulb:   "bulb",
	KindStar:   "star",
	KindNote:   "note",
}

// AllKinds is the full idea-network kind set
var AllKinds = []Kind{KindCircle, KindBulb, KindStar, KindNote}

// String returns the lowercase kind name
func (k Kind) String() string {
	if k >= kindCount {
		return "unknown"
	}
	return kindNames[k]
}

// ParseKind maps a kind name back to its Kind
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return KindCircle, false
}

// Node is a single simulated entity
type Node struct {
	ID     string
	Label  string
	Kind   Kind
	Size   float64
	Pos    vmath.Vec2
	Vel    vmath.Vec2
	Target *vmath.Vec2 // nil: position advances by velocity only

	Pulse    float64
	PulseDir float64 // +1 or -1
	Rotation float64

	Connected []string
}

// IsConnected reports whether id is a neighbour of n
func (n *Node) IsConnected(id string) bool {
	for _, c := range n.Connected {
		if c == id {
			return true
		}
	}
	return false
}

// SetTarget stores a copy of p as the node's target
func (n *Node) SetTarget(p vmath.Vec2) {
	if n.Target == nil {
		n.Target = &vmath.Vec2{}
	}
	*n.Target = p
}

// ClearTarget drops the target so the node resumes free drift
func (n *Node) ClearTarget() {
	n.Target = nil
}
