package graph

// Edge is an undirected link between two node ids, static after construction
type Edge struct {
	A, B       string
	Strength   float64 // 1 - distance/maxDistance at construction
	BaseActive bool
}

// Other returns the endpoint opposite to id
func (e Edge) Other(id string) string {
	if e.A == id {
		return e.B
	}
	return e.A
}

// pairKey identifies an unordered node pair
type pairKey struct {
	lo, hi string
}

func makePairKey(a, b string) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// Store is one immutable-topology generation of the simulation
// Topology never changes after Build; nodes are mutated in place by the stepper only
type Store struct {
	Width  float64
	Height float64
	Nodes  []Node
	Edges  []Edge

	index map[string]int
}

// NewStore indexes nodes and edges into a store; connections are taken from the edges
func NewStore(width, height float64, nodes []Node, edges []Edge) *Store {
	s := &Store{
		Width:  width,
		Height: height,
		Nodes:  nodes,
		Edges:  edges,
		index:  make(map[string]int, len(nodes)),
	}
	for i := range s.Nodes {
		s.index[s.Nodes[i].ID] = i
		s.Nodes[i].Connected = s.Nodes[i].Connected[:0]
	}
	for _, e := range s.Edges {
		a, okA := s.index[e.A]
		b, okB := s.index[e.B]
		if !okA || !okB {
			continue
		}
		s.Nodes[a].Connected = append(s.Nodes[a].Connected, e.B)
		s.Nodes[b].Connected = append(s.Nodes[b].Connected, e.A)
	}
	return s
}

// Len returns node count
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Nodes)
}

// Has reports whether id belongs to this generation
func (s *Store) Has(id string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[id]
	return ok
}

// Lookup returns a pointer into the node slice
func (s *Store) Lookup(id string) (*Node, bool) {
	if s == nil {
		return nil, false
	}
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return &s.Nodes[i], true
}

// Degree returns the number of edges touching id
func (s *Store) Degree(id string) int {
	n, ok := s.Lookup(id)
	if !ok {
		return 0
	}
	return len(n.Connected)
}

// Degrees returns per-node edge counts in node order
func (s *Store) Degrees() []float64 {
	out := make([]float64, s.Len())
	for i := range out {
		out[i] = float64(len(s.Nodes[i].Connected))
	}
	return out
}

// ClearTargets drops every node target
func (s *Store) ClearTargets() {
	if s == nil {
		return
	}
	for i := range s.Nodes {
		s.Nodes[i].ClearTarget()
	}
}
