package skeleton

// handleNode is the shared post-mutation rehandler invoked after every
// structural ring change (an EdgeEvent merge, or one half of a SplitEvent
// split). It loops while the ring at node is degenerate, connecting
// neighbours with degeneracy edges and removing the offending vertex each
// time, until either the ring collapses entirely (handled by
// ensureValidPolygon) or node gets a valid bisector — at which point it
// leaves a new skeleton node, refreshes the two edges touching it, and
// regenerates every event that references it.
func handleNode(node *MovingNode, ctx *Context) {
	for ensureValidPolygon(node, ctx) {
		if node.calcBisector(ctx, false) {
			node.leaveSkeletonNode()
			node.updateEdge()
			node.prev.updateEdge()
			createEvents(node, ctx)
			return
		}
		node = handleDegenerateAngle(node, ctx)
	}
}

// handleInit is handleNode's counterpart used during Apply's
// initialization pass, before any events exist to regenerate: it resolves
// degenerate angles in the initial polygon but does not create events or
// leave a new skeleton node: initBisectors leaves a new skeleton node for
// every surviving node afterward, and initEvents then queues the events.
func handleInit(node *MovingNode, ctx *Context) {
	for ensureValidPolygon(node, ctx) {
		if node.calcBisector(ctx, true) {
			return
		}
		node = handleDegenerateAngle(node, ctx)
	}
}

// ensureValidPolygon checks whether node's ring still has more than two
// live vertices. If it has collapsed to exactly two (a degenerate line),
// it connects them with a degeneracy edge, removes both from the arena,
// and returns false.
func ensureValidPolygon(node *MovingNode, ctx *Context) bool {
	next := node.next
	if next == node {
		panic("skeleton: ring of one node")
	}
	if next != node.prev {
		return true
	}

	node.skelNode.addDegeneracyEdge(next.skelNode)
	ctx.removeMovingNode(node)
	ctx.removeMovingNode(next)
	return false
}

// createEvents aborts every event currently referencing node, then queues
// fresh EdgeEvents for the two edges touching node and the nearest fresh
// SplitEvent (if node is reflex), after testing node's two adjacent edges
// against every other eligible reflex vertex in the ring.
func createEvents(node *MovingNode, ctx *Context) {
	ctx.abortEventsForNode(node)

	ctx.tryQueueEdgeEvent(node, node.next)
	ctx.tryQueueEdgeEvent(node.prev, node)

	createAllSplitEvents(node, ctx)
}

// createAllSplitEvents tests node's two adjacent edges against every other
// eligible reflex vertex in the ring, and — if node itself is reflex —
// tests node against every eligible edge, keeping only the nearest
// candidate. Eligibility requires at least two edges of separation (a
// triangle has no valid splits; a concave quadrilateral needs none either:
// minimum valid ring size for a split is 5).
func createAllSplitEvents(node *MovingNode, ctx *Context) {
	current := node.next.next // processed before the loop
	end := node.prev.prev     // excluded from the loop, processed after it

	if current == end.next || current == end {
		return // triangle or quad: no eligible edges.
	}

	nodeIsReflex := node.IsReflex()
	var nearest *SplitEvent

	if current.IsReflex() {
		ctx.tryQueueSplitEvent(current, node.prev, node)
	}
	if nodeIsReflex {
		nearest = ctx.tryReplaceNearestSplitEvent(node, current, current.next, nearest)
	}

	for current = current.next; current != end; current = current.next {
		if current.IsReflex() {
			ctx.tryQueueSplitEvent(current, node, node.next)
			ctx.tryQueueSplitEvent(current, node.prev, node)
		}
		if nodeIsReflex {
			nearest = ctx.tryReplaceNearestSplitEvent(node, current, current.next, nearest)
		}
	}

	if current.IsReflex() {
		ctx.tryQueueSplitEvent(current, node, node.next)
	}

	if nearest != nil {
		ctx.enqueue(nearest)
	}
}

// createSplitEventsFor tests reflexNode against every eligible edge in the
// ring and enqueues only the nearest candidate. Used both by
// Context.RecheckAbortedReflexNodes and by the driver's initial event
// generation pass.
func createSplitEventsFor(reflexNode *MovingNode, ctx *Context) {
	current := reflexNode.next.next
	end := reflexNode.prev.prev // exclusive

	if current == end.next {
		return // triangle: quads fall out of the loop condition below.
	}

	var nearest *SplitEvent
	for ; current != end; current = current.next {
		nearest = ctx.tryReplaceNearestSplitEvent(reflexNode, current, current.next, nearest)
	}

	if nearest != nil {
		ctx.enqueue(nearest)
	}
}

// handleDegenerateAngle removes node from the ring, connects its former
// neighbours directly, and records a degeneracy edge from node's skeleton
// node to whichever neighbour is geometrically closer. It returns that
// neighbour so handleNode's loop can continue from it.
func handleDegenerateAngle(node *MovingNode, ctx *Context) *MovingNode {
	o1 := node.prev
	o2 := node.next
	if o1.next != node || o2.prev != node {
		panic("skeleton: handleDegenerateAngle: ring links are inconsistent")
	}
	o1.next = o2
	o2.prev = o1

	target := o1
	if node.skelNode.P.DistanceSquared(o2.skelNode.P) < node.skelNode.P.DistanceSquared(o1.skelNode.P) {
		target = o2
	}

	node.skelNode.addDegeneracyEdge(target.skelNode)
	ctx.removeMovingNode(node)
	return target
}
