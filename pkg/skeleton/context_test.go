package skeleton

import "testing"

func TestLiveNodesFiltersRemoved(t *testing.T) {
	ctx := NewContext()
	ctx.Reset(10, -1)

	a := ctx.createMovingNode()
	b := ctx.createMovingNode()
	a.next, a.prev = b, b
	b.next, b.prev = a, a

	if got := len(ctx.LiveNodes()); got != 2 {
		t.Fatalf("LiveNodes() = %d, want 2", got)
	}

	ctx.removeMovingNode(b)

	live := ctx.LiveNodes()
	if len(live) != 1 || live[0] != a {
		t.Fatalf("LiveNodes() = %v, want [a]", live)
	}
}

func TestResetClearsArenaAndCounters(t *testing.T) {
	ctx := NewContext()
	ctx.Reset(10, -1)
	first := ctx.createMovingNode()

	ctx.Reset(5, 1)
	if len(ctx.nodes) != 0 {
		t.Fatalf("nodes arena = %d after Reset, want 0", len(ctx.nodes))
	}
	second := ctx.createMovingNode()
	if second.ID != 1 {
		t.Errorf("second.ID = %d after Reset, want 1 (counter restarted)", second.ID)
	}
	if first.ID != 1 {
		t.Errorf("sanity: first.ID = %d, want 1", first.ID)
	}
	if ctx.Distance != 5 || ctx.DistanceSign != 1 {
		t.Errorf("Reset did not apply new distance/sign: got %v, %v", ctx.Distance, ctx.DistanceSign)
	}
}

func TestTryQueueEdgeEventRespectsDistanceBound(t *testing.T) {
	ctx := NewContext()
	ctx.Reset(1, -1) // only events within time 1 are reachable

	nodes, _ := testEdgeEventChain(t, 2)
	ctx.nodes = append(ctx.nodes, nodes...)
	for _, n := range nodes {
		n.alive = true
	}

	nodes[0].edgeCollapseTime = 0.5 // within bound
	ctx.tryQueueEdgeEvent(nodes[0], nodes[1])
	if ctx.queue.Len() != 1 {
		t.Errorf("queue.Len() = %d after a reachable EdgeEvent, want 1", ctx.queue.Len())
	}

	nodes[1].edgeCollapseTime = 5 // beyond bound
	ctx.tryQueueEdgeEvent(nodes[1], nodes[0])
	if ctx.queue.Len() != 1 {
		t.Errorf("queue.Len() = %d after an unreachable EdgeEvent, want still 1", ctx.queue.Len())
	}
}

func TestTryQueueEdgeEventSkipsInvalidTime(t *testing.T) {
	ctx := NewContext()
	ctx.Reset(10, -1)
	nodes, _ := testEdgeEventChain(t, 2)
	ctx.nodes = append(ctx.nodes, nodes...)

	nodes[0].edgeCollapseTime = invalidTime
	ctx.tryQueueEdgeEvent(nodes[0], nodes[1])
	if ctx.queue.Len() != 0 {
		t.Errorf("queue.Len() = %d for a non-shrinking edge, want 0", ctx.queue.Len())
	}
}
