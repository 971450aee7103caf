package skeleton

import "github.com/samber/lo"

const defaultEpsilon float32 = 0.0001

// Context owns all the mutable state of one simulation run: the moving-node
// arena, the ordered event queue, the aborted-reflex worklist, the current
// simulation time, and the target distance/sign. The core is strictly
// sequential, single-threaded, and synchronous — Apply runs to completion
// before returning, there are no suspension points, and a Context must not
// be used concurrently by more than one goroutine. Distinct polygons may
// run in parallel only with distinct Contexts; Reset lets a Context be
// reused sequentially across many runs without reallocating the arena.
type Context struct {
	Time         float32
	Distance     float32
	DistanceSign float32
	Epsilon      float32

	epsilonMinusOne float32

	// nodes is the arena of every MovingNode ever created this run, live or
	// not; LiveNodes filters to the alive ones in creation order. It is
	// loop-agnostic: nothing about it assumes a single ring, which is what
	// lets SplitEvent produce a second ring without a data-structure
	// change.
	nodes []*MovingNode

	queue *eventQueue

	// abortedReflex holds reflex nodes whose enqueued SplitEvent was
	// aborted (e.g. its opposite edge collapsed first) and which therefore
	// need their nearest-candidate split recomputed once the current event
	// finishes being handled. Kept as an insertion-ordered slice, not a
	// map, so RecheckAbortedReflexNodes assigns event serial numbers in a
	// reproducible order — the same reasoning that keeps ctx.nodes a slice
	// rather than a set.
	abortedReflex     []*MovingNode
	abortedReflexSeen map[*MovingNode]bool

	nextNodeID   int64
	nextEventSeq int64
}

// NewContext creates a Context with the default degeneracy epsilon
// (1e-4). Call SetEpsilon before Reset to use a different tolerance.
func NewContext() *Context {
	ctx := &Context{queue: newEventQueue(), abortedReflexSeen: make(map[*MovingNode]bool)}
	ctx.SetEpsilon(defaultEpsilon)
	return ctx
}

// SetEpsilon sets the degeneracy tolerance used by bisector/split
// predicates. Bigger values reduce errors from numerical instability at
// the cost of precision.
func (ctx *Context) SetEpsilon(epsilon float32) {
	ctx.Epsilon = epsilon
	ctx.epsilonMinusOne = epsilon - 1
}

// Reset clears the node arena, the event queue, and the aborted-reflex set,
// and restarts the id/serial counters, so a single Context can be reused
// across many runs (e.g. in a benchmark loop). The node arena's backing
// array is kept and reused; the event queue and the aborted-reflex
// membership map are replaced with freshly allocated ones.
func (ctx *Context) Reset(distance, distanceSign float32) {
	ctx.Distance = distance
	ctx.DistanceSign = distanceSign
	ctx.Time = 0

	ctx.nextNodeID = 1
	ctx.nextEventSeq = 0

	ctx.nodes = ctx.nodes[:0]
	ctx.queue = newEventQueue()
	ctx.abortedReflex = nil
	ctx.abortedReflexSeen = make(map[*MovingNode]bool)
}

// LiveNodes returns every currently-live MovingNode, in creation order.
func (ctx *Context) LiveNodes() []*MovingNode {
	return lo.Filter(ctx.nodes, func(n *MovingNode, _ int) bool { return n.alive })
}

func (ctx *Context) createMovingNode() *MovingNode {
	n := &MovingNode{ID: ctx.nextNodeID, alive: true}
	ctx.nextNodeID++
	ctx.nodes = append(ctx.nodes, n)
	return n
}

// removeMovingNode marks node dead, unlinks its ring pointers, and aborts
// any events still referencing it.
func (ctx *Context) removeMovingNode(node *MovingNode) {
	node.next = nil
	node.prev = nil
	node.alive = false
	ctx.abortEventsForNode(node)
}

// PollQueue removes and returns the nearest-in-time queued event, or nil.
// The returned event is also detached from its participants' events lists,
// so no later abort tries to remove it from the queue a second time.
func (ctx *Context) PollQueue() Event {
	e := ctx.queue.PopMin()
	switch ev := e.(type) {
	case *EdgeEvent:
		ev.n0.removeEvent(ev)
		ev.n1.removeEvent(ev)
	case *SplitEvent:
		ev.reflex.removeEvent(ev)
		ev.op0.removeEvent(ev)
		ev.op1.removeEvent(ev)
	}
	return e
}

// enqueue inserts e into the queue and fires its onEventQueued hook. e.time
// must be >= ctx.Time.
func (ctx *Context) enqueue(e Event) {
	if e.eventTime() < ctx.Time {
		panic("skeleton: enqueue: event time precedes context time")
	}
	ctx.queue.Push(e)
	e.onEventQueued()
}

func (ctx *Context) addAbortedReflex(reflex *MovingNode) {
	if ctx.abortedReflexSeen[reflex] {
		return
	}
	ctx.abortedReflexSeen[reflex] = true
	ctx.abortedReflex = append(ctx.abortedReflex, reflex)
}

// abortEventsForNode aborts every event referencing adjacent (it was just
// invalidated: removed from the ring, or about to be).
func (ctx *Context) abortEventsForNode(adjacent *MovingNode) {
	for _, e := range append([]Event(nil), adjacent.events...) {
		e.onEventAbortedNode(adjacent, ctx)
		ctx.queue.Remove(e)
	}
	adjacent.clearEvents()
}

// abortEventsForEdge aborts every event that references both ends of the
// edge (edgeNode0, edgeNode1) — the edge itself was invalidated.
func (ctx *Context) abortEventsForEdge(edgeNode0, edgeNode1 *MovingNode) {
	for _, e := range append([]Event(nil), edgeNode0.events...) {
		if edgeNode1.tryRemoveEvent(e) {
			edgeNode0.removeEvent(e)
			e.onEventAbortedEdge(edgeNode0, edgeNode1, ctx)
			ctx.queue.Remove(e)
		}
	}
}

// tryQueueEdgeEvent enqueues an EdgeEvent for edge (n0, n1) if its collapse
// time is finite and within the target distance.
func (ctx *Context) tryQueueEdgeEvent(n0, n1 *MovingNode) {
	t := ctx.Time + n0.edgeCollapseTime
	if t <= ctx.Distance { // false when t is NaN, as required.
		ctx.nextEventSeq++
		ctx.enqueue(newEdgeEvent(n0, n1, t, ctx.nextEventSeq))
	}
}

// tryQueueSplitEvent enqueues a SplitEvent for reflex against edge
// (op0, op1) if the candidate is reachable within the target distance.
func (ctx *Context) tryQueueSplitEvent(reflex, op0, op1 *MovingNode) {
	if !reflex.IsReflex() {
		panic("skeleton: tryQueueSplitEvent requires a reflex node")
	}
	t := ctx.Time + splitTime(reflex, op0, ctx.DistanceSign)
	if t <= ctx.Distance {
		ctx.nextEventSeq++
		ctx.enqueue(newSplitEvent(reflex, op0, op1, t, ctx.nextEventSeq))
	}
}

// tryReplaceNearestSplitEvent computes the candidate split time for reflex
// against (op0, op1) and returns whichever of nearest and the new
// candidate is sooner — without enqueuing either. Only the nearest
// candidate per reflex vertex is ever queued.
func (ctx *Context) tryReplaceNearestSplitEvent(reflex, op0, op1 *MovingNode, nearest *SplitEvent) *SplitEvent {
	if !reflex.IsReflex() {
		panic("skeleton: tryReplaceNearestSplitEvent requires a reflex node")
	}
	t := ctx.Time + splitTime(reflex, op0, ctx.DistanceSign)

	if nearest != nil && nearest.eventTime() <= t {
		return nearest
	}
	if t <= ctx.Distance {
		ctx.nextEventSeq++
		return newSplitEvent(reflex, op0, op1, t, ctx.nextEventSeq)
	}
	return nearest
}

// RecheckAbortedReflexNodes recomputes and enqueues a fresh nearest split
// candidate for every reflex node whose previous candidate was aborted.
// Must be called after every event is handled, so no reflex vertex is
// ever left without a queued split candidate it is still eligible for.
func (ctx *Context) RecheckAbortedReflexNodes() {
	for _, reflex := range ctx.abortedReflex {
		if reflex.next != nil && reflex.IsReflex() {
			createSplitEventsFor(reflex, ctx)
		}
	}
	ctx.abortedReflex = ctx.abortedReflex[:0]
	ctx.abortedReflexSeen = make(map[*MovingNode]bool)
}
