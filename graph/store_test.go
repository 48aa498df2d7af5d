package graph

import (
	"testing"

	"github.com/lixenwraith/ideanet/vmath"
)

func TestNewStoreDerivesConnections(t *testing.T) {
	nodes := []Node{{ID: "a"}, {ID: "b"}, {ID: "c", Connected: []string{"stale"}}}
	edges := []Edge{{A: "a", B: "b"}, {A: "b", B: "c"}, {A: "c", B: "ghost"}}

	s := NewStore(100, 100, nodes, edges)

	tests := []struct {
		id   string
		want int
	}{
		{"a", 1},
		{"b", 2},
		{"c", 1},
	}
	for _, tt := range tests {
		if got := s.Degree(tt.id); got != tt.want {
			t.Errorf("Degree(%s) = %d, want %d", tt.id, got, tt.want)
		}
	}

	c, _ := s.Lookup("c")
	if c.IsConnected("stale") || c.IsConnected("ghost") {
		t.Errorf("Node c kept unknown connections: %v", c.Connected)
	}
	if s.Has("ghost") {
		t.Error("Store reports unknown id")
	}
}

func TestStoreNilSafe(t *testing.T) {
	var s *Store
	if s.Len() != 0 || s.Has("x") {
		t.Error("Nil store should be empty")
	}
	if _, ok := s.Lookup("x"); ok {
		t.Error("Nil store lookup succeeded")
	}
	s.ClearTargets()
}

func TestClearTargets(t *testing.T) {
	s := NewStore(100, 100, []Node{{ID: "a"}, {ID: "b"}}, nil)
	for i := range s.Nodes {
		s.Nodes[i].SetTarget(vmath.Vec2{X: 1, Y: 2})
	}
	s.ClearTargets()
	for _, n := range s.Nodes {
		if n.Target != nil {
			t.Errorf("Node %s target not cleared", n.ID)
		}
	}
}

func TestEdgeOther(t *testing.T) {
	e := Edge{A: "x", B: "y"}
	if e.Other("x") != "y" || e.Other("y") != "x" {
		t.Errorf("Other returned wrong endpoint")
	}
}
