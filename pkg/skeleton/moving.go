package skeleton

// MovingNode is a vertex of the moving wavefront: the dynamic polygon that
// the scheduler advances event by event. MovingNodes form a circular
// doubly-linked ring; next.prev == self and prev.next == self always hold
// between event handlings (invariant 1 of the testable properties).
type MovingNode struct {
	// ID is an opaque per-Context identifier, useful for debugging and
	// visualisation; it carries no simulation meaning.
	ID int64

	skelNode *SkeletonNode

	next, prev *MovingNode

	// edgeDir is the unit vector from skelNode.P to next.skelNode.P. It is
	// stale between leaveSkeletonNode and the next updateEdge.
	edgeDir Vector2

	// edgeCollapseTime is the time until edge (self, next) collapses to
	// zero length under the current bisectors, or NaN if it is not
	// shrinking.
	edgeCollapseTime float32

	// bisector is direction * speed: the rate at which this vertex must
	// move so both incident edges advance at unit orthogonal speed.
	bisector Vector2

	reflex bool

	// events holds every Event that currently references this node, so
	// abortEventsForNode can drop them in O(deg) without scanning the
	// queue.
	events []Event

	// alive is false once this node has been removed from the arena
	// (edge collapse, degenerate-angle removal, or ring-of-two collapse).
	// Context.LiveNodes filters on it to keep ctx.nodes loop-agnostic
	// without needing to splice the arena itself.
	alive bool
}

// SkelNode returns the SkeletonNode this moving vertex currently sits on.
func (n *MovingNode) SkelNode() *SkeletonNode {
	return n.skelNode
}

// Next returns the next node in the wavefront ring.
func (n *MovingNode) Next() *MovingNode {
	return n.next
}

// Prev returns the previous node in the wavefront ring.
func (n *MovingNode) Prev() *MovingNode {
	return n.prev
}

// IsReflex reports whether bisector*edgePrevDir < 0, i.e. whether this
// vertex is currently a concave corner.
func (n *MovingNode) IsReflex() bool {
	return n.reflex
}

// EdgeCollapseTime returns the cached collapse time of edge (n, n.next).
func (n *MovingNode) EdgeCollapseTime() float32 {
	return n.edgeCollapseTime
}

// Bisector returns the current direction*speed vector for this vertex.
func (n *MovingNode) Bisector() Vector2 {
	return n.bisector
}

func (n *MovingNode) addEvent(e Event) {
	n.events = append(n.events, e)
}

func (n *MovingNode) removeEvent(e Event) {
	for i, ev := range n.events {
		if ev == e {
			n.events = append(n.events[:i], n.events[i+1:]...)
			return
		}
	}
	panic("skeleton: removeEvent called with an event not attached to this node")
}

func (n *MovingNode) tryRemoveEvent(e Event) bool {
	for i, ev := range n.events {
		if ev == e {
			n.events = append(n.events[:i], n.events[i+1:]...)
			return true
		}
	}
	return false
}

func (n *MovingNode) clearEvents() {
	n.events = nil
}

// calcBisector computes n's bisector from the two incident edge directions
// toward prev and next. init indicates this call is initializing the
// bisector for the very first time (kept as a parameter for symmetry with
// the source algorithm; it does not currently change behavior — see the
// Open Question recorded in DESIGN.md about the disabled reflex-side sanity
// check). It returns false, leaving the node's state untouched, if the ring
// has collapsed to two vertices. It returns false and marks the node
// degenerate if either incident edge is shorter than epsilon, or the two
// edges are anti-parallel enough that sin vanishes.
func (n *MovingNode) calcBisector(ctx *Context, init bool) bool {
	if n.next.next == n {
		return false
	}

	vPrev := n.prev.skelNode.P.Sub(n.skelNode.P)
	vPrevLen := vPrev.Length()
	if vPrevLen < ctx.Epsilon {
		n.setDegenerate()
		return false
	}

	vNext := n.next.skelNode.P.Sub(n.skelNode.P)
	vNextLen := vNext.Length()
	if vNextLen < ctx.Epsilon {
		n.setDegenerate()
		return false
	}

	vPrev = vPrev.Scale(1 / vPrevLen)
	vNext = vNext.Scale(1 / vNextLen)

	cos := vPrev.Dot(vNext)
	if cos < ctx.epsilonMinusOne {
		// Edges point in opposite directions (~180°): a flat corner moves
		// perpendicular to its edges, rotated according to the direction
		// of travel.
		n.bisector = vPrev.Rot90CCW().Scale(ctx.DistanceSign)
		n.reflex = false
		return true
	}

	b := vPrev.Add(vNext).Normalized()
	sin := vPrev.Determinant(b)
	if absf32(sin) < ctx.Epsilon {
		n.setDegenerate()
		return false
	}

	speed := ctx.DistanceSign / sin
	n.bisector = b.Scale(speed)
	n.reflex = n.bisector.Dot(vPrev) < 0
	return true
}

func absf32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}

func (n *MovingNode) setDegenerate() {
	n.bisector = Vector2{}
	n.reflex = false
}

// updateEdge recomputes edgeDir (unit vector toward next) and
// edgeCollapseTime. edgeCollapseTime is NaN if the edge is growing or
// advancing in parallel (it will never self-collapse).
func (n *MovingNode) updateEdge() {
	edge := n.next.skelNode.P.Sub(n.skelNode.P)
	edgeLen := edge.Length()
	n.edgeDir = edge.Scale(1 / edgeLen)

	shrinkSpeed := n.bisector.Dot(n.edgeDir) - n.next.bisector.Dot(n.edgeDir)
	if shrinkSpeed > 0 {
		n.edgeCollapseTime = edgeLen / shrinkSpeed
	} else {
		n.edgeCollapseTime = invalidTime
	}
}

// leaveSkeletonNode allocates a new SkeletonNode at n's current position,
// adds a mapping edge from the old node to the new one, and installs the
// new node as n.skelNode. Every change of direction starts a new mapping
// edge, which is what causes the output graph to trace each vertex's path.
func (n *MovingNode) leaveSkeletonNode() {
	old := n.skelNode
	n.skelNode = newSkeletonNode(old.P)
	old.addMappingEdge(n.skelNode)
}
