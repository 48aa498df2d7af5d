package graph

import (
	"gonum.org/v1/gonum/spatial/kdtree"
)

// nodePoint is a kd-tree point that remembers its node index
type nodePoint struct {
	idx  int
	x, y float64
}

func (p nodePoint) coord(d kdtree.Dim) float64 {
	if d == 0 {
		return p.x
	}
	return p.y
}

// Compare returns the signed distance of p from the plane passing through c and perpendicular to d
func (p nodePoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(nodePoint)
	return p.coord(d) - q.coord(d)
}

func (p nodePoint) Dims() int { return 2 }

// Distance returns squared Euclidean distance, matching kdtree.Point
func (p nodePoint) Distance(c kdtree.Comparable) float64 {
	q := c.(nodePoint)
	dx := p.x - q.x
	dy := p.y - q.y
	return dx*dx + dy*dy
}

// nodePoints satisfies kdtree.Interface
type nodePoints []nodePoint

func (p nodePoints) Index(i int) kdtree.Comparable { return p[i] }
func (p nodePoints) Len() int                      { return len(p) }
func (p nodePoints) Pivot(d kdtree.Dim) int {
	return nodePlane{nodePoints: p, Dim: d}.Pivot()
}
func (p nodePoints) Slice(start, end int) kdtree.Interface { return p[start:end] }

// nodePlane sorts points along one dimension for median partitioning
type nodePlane struct {
	kdtree.Dim
	nodePoints
}

func (p nodePlane) Less(i, j int) bool {
	return p.nodePoints[i].coord(p.Dim) < p.nodePoints[j].coord(p.Dim)
}
func (p nodePlane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
func (p nodePlane) Slice(start, end int) kdtree.SortSlicer {
	p.nodePoints = p.nodePoints[start:end]
	return p
}
func (p nodePlane) Swap(i, j int) {
	p.nodePoints[i], p.nodePoints[j] = p.nodePoints[j], p.nodePoints[i]
}

// neighbour is a candidate connection produced by the tree search
type neighbour struct {
	idx    int
	distSq float64
}

// nearestWithin returns every neighbour of q strictly closer than maxDist, excluding q itself
// Results are unsorted
func nearestWithin(tree *kdtree.Tree, q nodePoint, maxDist float64) []neighbour {
	keeper := kdtree.NewDistKeeper(maxDist * maxDist)
	tree.NearestSet(keeper, q)

	out := make([]neighbour, 0, len(keeper.Heap))
	for _, cd := range keeper.Heap {
		if cd.Comparable == nil {
			continue
		}
		p := cd.Comparable.(nodePoint)
		if p.idx == q.idx || cd.Dist >= maxDist*maxDist {
			continue
		}
		out = append(out, neighbour{idx: p.idx, distSq: cd.Dist})
	}
	return out
}
