package skeleton

import (
	"github.com/dhconnelly/rtreego"
)

// nodeSpatial adapts a *SkeletonNode to rtreego.Spatial: a degenerate,
// zero-area bounding rectangle at the node's position.
type nodeSpatial struct {
	node *SkeletonNode
}

func (s nodeSpatial) Bounds() rtreego.Rect {
	rect, err := rtreego.NewRect(rtreego.Point{float64(s.node.P.X), float64(s.node.P.Y)}, []float64{1e-6, 1e-6})
	if err != nil {
		// Only possible if a length is <= 0, which 1e-6 never is.
		panic(err)
	}
	return rect
}

// Index is a post-hoc spatial index over a Result's skeleton nodes,
// answering point/radius queries without touching the deterministic
// simulation state that produced the Result. It is built once, after
// Apply has already returned, and is read-only from then on.
type Index struct {
	tree *rtreego.Rtree
}

// NewIndex builds an Index over every skeleton node reachable from
// result — its start nodes, its end nodes, and (transitively) every node
// in between, collected by walking outgoing edges from the start nodes.
func NewIndex(result *Result) *Index {
	tree := rtreego.NewTree(2, 25, 50)

	seen := make(map[*SkeletonNode]bool)
	var walk func(n *SkeletonNode)
	walk = func(n *SkeletonNode) {
		if seen[n] {
			return
		}
		seen[n] = true
		tree.Insert(nodeSpatial{node: n})
		n.EachOutgoing(func(target *SkeletonNode, _ EdgeKind) {
			walk(target)
		})
	}

	for _, start := range result.StartNodes {
		walk(start)
	}
	for _, end := range result.EndNodes() {
		walk(end)
	}

	return &Index{tree: tree}
}

// Query returns every indexed skeleton node whose bounding rectangle
// intersects the square of side 2*radius centered on (x, y) — i.e. every
// node within Chebyshev distance radius of the query point.
func (idx *Index) Query(x, y, radius float32) []*SkeletonNode {
	bb, err := rtreego.NewRect(
		rtreego.Point{float64(x - radius), float64(y - radius)},
		[]float64{float64(2 * radius), float64(2 * radius)},
	)
	if err != nil {
		return nil
	}

	results := idx.tree.SearchIntersect(bb)
	nodes := make([]*SkeletonNode, len(results))
	for i, r := range results {
		nodes[i] = r.(nodeSpatial).node
	}
	return nodes
}
