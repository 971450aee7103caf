package skeleton

import "github.com/chazu/straightskeleton/pkg/geom2"

// invalidTime is the sentinel for "this time does not exist" (edge not
// shrinking, split candidate geometrically impossible, ...). Any comparison
// `t <= distance` involving it is false, which the scheduler relies on to
// silently drop unreachable events.
var invalidTime = geom2.NaN()

func isInvalidTime(t float32) bool {
	return t != t // NaN is the only value that compares unequal to itself.
}

// eventKind orders event kinds at equal time: EdgeEvent must be handled
// before a simultaneous SplitEvent, to avoid creating a split against an
// edge that is about to vanish.
type eventKind int

const (
	kindEdge eventKind = iota
	kindSplit
)

// Event is the common contract shared by EdgeEvent and SplitEvent: a queue
// hook, two abort hooks (one for "a participant node was invalidated", one
// for "a participant edge was invalidated"), and handle. Ordering is total:
// first by time ascending, then by kind (edge before split), then by a
// monotonically issued serial number so the queue can hold distinct events
// at identical times without relying on non-deterministic object identity.
type Event interface {
	eventTime() float32
	eventKind() eventKind
	eventSeq() int64

	onEventQueued()
	onEventAbortedNode(adjacent *MovingNode, ctx *Context)
	onEventAbortedEdge(a, b *MovingNode, ctx *Context)

	handle(ctx *Context)

	heapIndex() int
	setHeapIndex(i int)
}

// lessEvent imposes a total order on events: time ascending, then kind
// (edge before split) so a simultaneous EdgeEvent is always handled
// first, then a monotonic serial number to break exact ties
// deterministically.
func lessEvent(a, b Event) bool {
	if a.eventTime() != b.eventTime() {
		return a.eventTime() < b.eventTime()
	}
	if a.eventKind() != b.eventKind() {
		return a.eventKind() < b.eventKind()
	}
	return a.eventSeq() < b.eventSeq()
}

// eventBase holds the bookkeeping shared by every concrete event kind.
type eventBase struct {
	time    float32
	seq     int64
	heapIdx int
}

func (e *eventBase) eventTime() float32    { return e.time }
func (e *eventBase) eventSeq() int64       { return e.seq }
func (e *eventBase) heapIndex() int        { return e.heapIdx }
func (e *eventBase) setHeapIndex(i int)    { e.heapIdx = i }

// EdgeEvent fires when edge (n0, n1) collapses to zero length.
type EdgeEvent struct {
	eventBase
	n0, n1 *MovingNode // n0.next == n1
}

func newEdgeEvent(n0, n1 *MovingNode, time float32, seq int64) *EdgeEvent {
	if n0 == n1 {
		panic("skeleton: EdgeEvent with n0 == n1")
	}
	if n0.next != n1 {
		panic("skeleton: EdgeEvent requires n0.next == n1")
	}
	return &EdgeEvent{eventBase: eventBase{time: time, seq: seq}, n0: n0, n1: n1}
}

func (e *EdgeEvent) eventKind() eventKind { return kindEdge }

func (e *EdgeEvent) onEventQueued() {
	e.n0.addEvent(e)
	e.n1.addEvent(e)
}

func (e *EdgeEvent) onEventAbortedNode(adjacent *MovingNode, ctx *Context) {
	if adjacent == e.n0 {
		e.n1.removeEvent(e)
	} else {
		e.n0.removeEvent(e)
	}
}

func (e *EdgeEvent) onEventAbortedEdge(a, b *MovingNode, ctx *Context) {
	// An EdgeEvent's only participants are the two ends of the aborted
	// edge, and abortEventsForEdge has already removed this event from both
	// of their events lists; nothing is left to do here.
}

func (e *EdgeEvent) handle(ctx *Context) {
	if e.n0.next != e.n1 {
		panic("skeleton: EdgeEvent.handle: n0.next != n1")
	}

	next := e.n1.next
	e.n0.next = next
	next.prev = e.n0

	if e.n0.IsReflex() || e.n1.IsReflex() {
		e.n0.skelNode.setReflex()
	}

	e.n1.skelNode.remapIncoming(e.n0.skelNode)
	ctx.removeMovingNode(e.n1)

	handleNode(e.n0, ctx)
}

// SplitEvent fires when a reflex vertex collides with a non-adjacent edge
// (op0 -> op1), splitting the polygon.
type SplitEvent struct {
	eventBase
	reflex   *MovingNode
	op0, op1 *MovingNode // op0.next == op1
}

func newSplitEvent(reflex, op0, op1 *MovingNode, time float32, seq int64) *SplitEvent {
	if reflex == op0 || reflex == op1 || op0 == op1 {
		panic("skeleton: SplitEvent requires three distinct nodes")
	}
	if op0.next != op1 {
		panic("skeleton: SplitEvent requires op0.next == op1")
	}
	return &SplitEvent{eventBase: eventBase{time: time, seq: seq}, reflex: reflex, op0: op0, op1: op1}
}

func (e *SplitEvent) eventKind() eventKind { return kindSplit }

func (e *SplitEvent) onEventQueued() {
	e.reflex.addEvent(e)
	e.op0.addEvent(e)
	e.op1.addEvent(e)
}

func (e *SplitEvent) onEventAbortedNode(adjacent *MovingNode, ctx *Context) {
	ctx.addAbortedReflex(e.reflex)

	switch adjacent {
	case e.reflex:
		e.op0.removeEvent(e)
		e.op1.removeEvent(e)
	case e.op0:
		e.reflex.removeEvent(e)
		e.op1.removeEvent(e)
	default:
		e.reflex.removeEvent(e)
		e.op0.removeEvent(e)
	}
}

func (e *SplitEvent) onEventAbortedEdge(a, b *MovingNode, ctx *Context) {
	ctx.addAbortedReflex(e.reflex)
	e.reflex.removeEvent(e)
}

func (e *SplitEvent) handle(ctx *Context) {
	if e.op0.next != e.op1 {
		panic("skeleton: SplitEvent.handle: op0.next != op1")
	}
	ctx.abortEventsForEdge(e.op0, e.op1)

	e.reflex.skelNode.setReflex()

	node0 := e.reflex
	reflexNext := e.reflex.next
	reflexPrev := e.reflex.prev

	node1 := ctx.createMovingNode()
	// Both moving nodes share the same skeleton node for now; if either
	// gets a valid bisector it will allocate its own in leaveSkeletonNode.
	node1.skelNode = node0.skelNode

	if node0.next != reflexNext || reflexNext.prev != node0 {
		panic("skeleton: SplitEvent.handle: reflex ring links are inconsistent")
	}

	node0.prev = e.op0
	e.op0.next = node0

	node1.next = e.op1
	e.op1.prev = node1

	node1.prev = reflexPrev
	reflexPrev.next = node1

	handleNode(node0, ctx) // aborts events of reflex (== node0)
	handleNode(node1, ctx)
}
