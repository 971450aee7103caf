package skeleton

import "github.com/chazu/straightskeleton/pkg/geom2"

// EdgeKind distinguishes the two kinds of directed edges in the output
// skeleton graph.
type EdgeKind int

const (
	// EdgeMapping continues the trace of an initial boundary vertex.
	EdgeMapping EdgeKind = iota
	// EdgeDegeneracy connects skeleton nodes when the wavefront pinches or a
	// ring collapses; it does not continue the mapping of an initial vertex.
	EdgeDegeneracy
)

func (k EdgeKind) String() string {
	switch k {
	case EdgeMapping:
		return "mapping"
	case EdgeDegeneracy:
		return "degeneracy"
	default:
		return "unknown"
	}
}

// SkeletonNode is a vertex of the output skeleton graph: the position where
// a moving wavefront vertex was "laid down", plus the directed mapping and
// degeneracy edges connecting it to other skeleton nodes.
//
// SkeletonNodes are allocated once per input vertex at initialization, or
// by leaveSkeletonNode (at initialization and during simulation); they are
// never destroyed. Graph mutations are append-only except for
// remapIncoming, which atomically redirects every incoming edge of a node
// to a new target.
type SkeletonNode struct {
	P Vector2

	outgoing map[*SkeletonNode]EdgeKind
	incoming map[*SkeletonNode]EdgeKind
	reflex   bool
}

// Vector2 is a type alias kept local to the package so call sites read
// naturally (skeleton.Vector2 instead of geom2.Vector2 everywhere).
type Vector2 = geom2.Vector2

func newSkeletonNode(p Vector2) *SkeletonNode {
	return &SkeletonNode{
		P:        p,
		outgoing: make(map[*SkeletonNode]EdgeKind, 2),
		incoming: make(map[*SkeletonNode]EdgeKind, 2),
	}
}

// IsReflex reports whether this SkeletonNode is connected to a reflex
// vertex (the moving vertex that created it was a concave corner).
func (n *SkeletonNode) IsReflex() bool {
	return n.reflex
}

func (n *SkeletonNode) setReflex() {
	n.reflex = true
}

// Outgoing returns the directed edge kind from n to target, and whether
// such an edge exists.
func (n *SkeletonNode) Outgoing(target *SkeletonNode) (EdgeKind, bool) {
	k, ok := n.outgoing[target]
	return k, ok
}

// Incoming returns the directed edge kind from source to n, and whether
// such an edge exists.
func (n *SkeletonNode) Incoming(source *SkeletonNode) (EdgeKind, bool) {
	k, ok := n.incoming[source]
	return k, ok
}

// EachOutgoing calls fn for every outgoing edge of n.
func (n *SkeletonNode) EachOutgoing(fn func(target *SkeletonNode, kind EdgeKind)) {
	for target, kind := range n.outgoing {
		fn(target, kind)
	}
}

func (n *SkeletonNode) addEdge(target *SkeletonNode, kind EdgeKind) {
	n.outgoing[target] = kind
	target.incoming[n] = kind
}

// addMappingEdge records that n's moving vertex continued moving from n to
// target, keeping the output graph's skeleton-mapping-symmetry invariant
// (n.outgoing[target] == target.incoming[n]) intact.
func (n *SkeletonNode) addMappingEdge(target *SkeletonNode) {
	n.addEdge(target, EdgeMapping)
}

// addDegeneracyEdge records an internal connector produced when the
// wavefront pinches or a ring collapses to a line.
func (n *SkeletonNode) addDegeneracyEdge(target *SkeletonNode) {
	n.addEdge(target, EdgeDegeneracy)
}

// remapIncoming atomically redirects every incoming edge of n to newTarget.
// Used when two moving vertices merge at an EdgeEvent: the converging
// traces must now point at the surviving node's skeleton node. n must have
// no outgoing edges when this is called — it is about to be abandoned.
func (n *SkeletonNode) remapIncoming(newTarget *SkeletonNode) {
	for source, kind := range n.incoming {
		delete(source.outgoing, n)
		source.addEdge(newTarget, kind)
	}
	n.incoming = make(map[*SkeletonNode]EdgeKind, 2)
}

// FollowGraphInward walks outgoing Mapping edges from n until it reaches a
// leaf (a node with no outgoing Mapping edge — the final position the
// original vertex's wavefront trace converged to) and appends every leaf it
// finds to targets.
func (n *SkeletonNode) FollowGraphInward(targets *[]*SkeletonNode) {
	leaf := true
	for target, kind := range n.outgoing {
		if kind == EdgeMapping {
			target.FollowGraphInward(targets)
			leaf = false
		}
	}
	if leaf {
		*targets = append(*targets, n)
	}
}
