package skeleton

import (
	"math"

	"github.com/google/uuid"
)

// Config controls one run of Apply.
type Config struct {
	// Distance is the signed offset distance to run the wavefront to.
	// Positive grows the polygon outward, negative shrinks it inward.
	// math.Inf(-1) requests a full shrink to the complete skeleton; the
	// driver internally bounds this by 0.51 times the input polygon's
	// bounding-box diagonal, since the skeleton of any simple polygon
	// fully collapses well within that radius. math.Inf(1) is rejected
	// by validateConfig: there is no such thing as growing forever.
	Distance float32

	// Epsilon overrides the default degeneracy tolerance (1e-4) when
	// nonzero. See Context.SetEpsilon.
	Epsilon float32
}

// Result is the output of one Apply call: the finished skeleton graph,
// reachable from either its StartNodes (one per input vertex, in input
// order) or its EndNodes (the skeleton nodes the wavefront was left
// sitting on when the run finished advancing).
type Result struct {
	// RunID distinguishes this run for logging/tracing purposes; it carries
	// no simulation meaning.
	RunID uuid.UUID

	StartNodes []*SkeletonNode

	ctx *Context
}

// EndNodes returns the skeleton node every currently-live wavefront vertex
// is sitting on, in arena creation order.
func (r *Result) EndNodes() []*SkeletonNode {
	live := r.ctx.LiveNodes()
	ends := make([]*SkeletonNode, len(live))
	for i, n := range live {
		ends[i] = n.skelNode
	}
	return ends
}

// NodeLoops groups the live wavefront into its disjoint rings (normally
// one, but a SplitEvent can leave the wavefront as several independent
// rings), each as a slice of the skeleton nodes the ring currently sits
// on, in ring traversal order.
func (r *Result) NodeLoops() [][]*SkeletonNode {
	seen := make(map[*MovingNode]bool)
	var loops [][]*SkeletonNode

	for _, start := range r.ctx.LiveNodes() {
		if seen[start] {
			continue
		}
		var loop []*SkeletonNode
		for n := start; !seen[n]; n = n.next {
			seen[n] = true
			loop = append(loop, n.skelNode)
		}
		loops = append(loops, loop)
	}

	return loops
}

// Position returns n's final position. During a run, scale moves the
// SkeletonNode each live vertex sits on in place; once Apply has returned
// no position changes any more, so this is equivalent to reading n.P
// directly. It exists for symmetry with the Java source this package is
// ported from.
func (r *Result) Position(n *SkeletonNode) Vector2 {
	return n.P
}

// Apply runs the straight skeleton (or polygon offset) algorithm on
// polygon — a simple polygon's vertices listed in counter-clockwise order
// — to cfg.Distance, and returns the resulting skeleton graph. It panics
// with a *ContractError if polygon or cfg violate their preconditions;
// these are programmer errors, not recoverable runtime conditions.
func Apply(polygon []Vector2, cfg Config) *Result {
	if err := validatePolygon(polygon); err != nil {
		panic(err)
	}
	if err := validateConfig(cfg); err != nil {
		panic(err)
	}

	distanceSign := float32(1)
	if cfg.Distance < 0 {
		distanceSign = -1
	}

	distance := cfg.Distance * distanceSign // absolute value, always >= 0
	if math.IsInf(float64(cfg.Distance), -1) {
		distance = boundingDiagonal(polygon) * 0.51
	}

	ctx := NewContext()
	if cfg.Epsilon != 0 {
		ctx.SetEpsilon(cfg.Epsilon)
	}
	ctx.Reset(distance, distanceSign)

	startNodes := createNodes(polygon, ctx)
	initBisectors(ctx)
	initEvents(ctx)

	loop(ctx)

	return &Result{RunID: uuid.New(), StartNodes: startNodes, ctx: ctx}
}

// boundingDiagonal returns the diagonal length of polygon's axis-aligned
// bounding box.
func boundingDiagonal(polygon []Vector2) float32 {
	minP, maxP := polygon[0], polygon[0]
	for _, p := range polygon[1:] {
		if p.X < minP.X {
			minP.X = p.X
		}
		if p.Y < minP.Y {
			minP.Y = p.Y
		}
		if p.X > maxP.X {
			maxP.X = p.X
		}
		if p.Y > maxP.Y {
			maxP.Y = p.Y
		}
	}
	return maxP.Sub(minP).Length()
}

// createNodes allocates one SkeletonNode and one MovingNode per input
// vertex and links the moving nodes into a ring in input order, returning
// the skeleton nodes in the same order so Result.StartNodes can be indexed
// back against the original polygon.
func createNodes(polygon []Vector2, ctx *Context) []*SkeletonNode {
	startNodes := make([]*SkeletonNode, len(polygon))
	movingNodes := make([]*MovingNode, len(polygon))

	for i, p := range polygon {
		sk := newSkeletonNode(p)
		startNodes[i] = sk

		mn := ctx.createMovingNode()
		mn.skelNode = sk
		movingNodes[i] = mn
	}

	n := len(movingNodes)
	for i, mn := range movingNodes {
		mn.next = movingNodes[(i+1)%n]
		mn.prev = movingNodes[(i-1+n)%n]
	}

	return startNodes
}

// initBisectors computes every node's initial bisector against the ring
// topology exactly as the input polygon defined it, before any degenerate
// angle has been resolved and spliced out. Only once every node has been
// checked against that pristine topology does a second pass resolve the
// degenerates it found — so node i's resolution can never perturb the
// topology node i+1's bisector was computed against. Computing bisectors
// and splicing the ring in the same pass would make the result depend on
// ring order whenever two or more corners are simultaneously degenerate.
//
// Only afterward does it leave every surviving node's StartNodes entry at
// its true t=0 position by handing it a fresh SkeletonNode to move from,
// and only then compute each edge's initial collapse state.
// leaveSkeletonNode must run before updateEdge/tryQueueEdgeEvent/scale:
// otherwise scale's in-place mutation of n.skelNode.P would overwrite the
// Result.StartNodes[i] position it still shared for any vertex that
// never reaches a structural event.
func initBisectors(ctx *Context) {
	var degenerate []*MovingNode
	for _, n := range ctx.LiveNodes() {
		if !n.calcBisector(ctx, true) {
			degenerate = append(degenerate, n)
		}
	}

	for _, n := range degenerate {
		if n.next != nil { // not already spliced out by an earlier handleInit in this loop.
			handleInit(n, ctx)
		}
	}

	for _, n := range ctx.LiveNodes() {
		n.leaveSkeletonNode()
	}
	for _, n := range ctx.LiveNodes() {
		n.updateEdge()
	}
}

// initEvents queues the initial EdgeEvents and, for every reflex vertex,
// its nearest SplitEvent candidate.
func initEvents(ctx *Context) {
	for _, n := range ctx.LiveNodes() {
		ctx.tryQueueEdgeEvent(n, n.next)
	}
	for _, n := range ctx.LiveNodes() {
		if n.IsReflex() {
			createSplitEventsFor(n, ctx)
		}
	}
}

// loop is the scheduler's main drive: repeatedly pop the nearest event,
// advance ctx.Time to it, scale every live node to that time, handle the
// event, and recheck any reflex vertices whose split candidate was
// aborted along the way. It stops when the queue runs dry or the next
// event is beyond the target distance.
func loop(ctx *Context) {
	for {
		e := ctx.PollQueue()
		if e == nil || e.eventTime() > ctx.Distance {
			break // e, if any, is already popped and simply discarded unhandled.
		}

		scale(ctx, e.eventTime())
		e.handle(ctx)
		ctx.RecheckAbortedReflexNodes()
	}

	scale(ctx, ctx.Distance)
}

// scale advances every live node to time t along its current bisector,
// and advances ctx.Time to t.
func scale(ctx *Context, t float32) {
	dt := t - ctx.Time
	if dt == 0 {
		return
	}
	for _, n := range ctx.LiveNodes() {
		n.skelNode.P = n.skelNode.P.Add(n.bisector.Scale(dt))
	}
	ctx.Time = t
}
