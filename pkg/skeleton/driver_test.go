package skeleton

import (
	"math"
	"testing"

	"github.com/chazu/straightskeleton/pkg/geom2"
)

func v(x, y float32) Vector2 { return Vector2{X: x, Y: y} }

func approxEqual(a, b Vector2, eps float32) bool {
	return absf32(a.X-b.X) <= eps && absf32(a.Y-b.Y) <= eps
}

func containsApprox(pts []Vector2, want Vector2, eps float32) bool {
	for _, p := range pts {
		if approxEqual(p, want, eps) {
			return true
		}
	}
	return false
}

// S1 — square full collapse: all four mapping paths converge to the
// center, and the ring collapses via the ring-of-two degeneracy path.
func TestSquareFullCollapse(t *testing.T) {
	polygon := []Vector2{v(0, 0), v(4, 0), v(4, 4), v(0, 4)}
	result := Apply(polygon, Config{Distance: float32(math.Inf(-1))})

	for i, start := range result.StartNodes {
		var leaves []*SkeletonNode
		start.FollowGraphInward(&leaves)
		if len(leaves) != 1 {
			t.Fatalf("vertex %d: got %d convergence leaves, want 1", i, len(leaves))
		}
		if !approxEqual(leaves[0].P, v(2, 2), 1e-2) {
			t.Errorf("vertex %d converges to %v, want (2,2)", i, leaves[0].P)
		}
	}

	if len(result.EndNodes()) != 0 {
		t.Errorf("EndNodes() = %d, want 0 after full collapse", len(result.EndNodes()))
	}
}

// S2 — non-square rectangle inset by a finite distance.
func TestRectangleInset(t *testing.T) {
	polygon := []Vector2{v(0, 0), v(4, 0), v(4, 3), v(0, 3)}
	result := Apply(polygon, Config{Distance: -1})

	want := []Vector2{v(1, 1), v(3, 1), v(3, 2), v(1, 2)}
	ends := result.EndNodes()
	if len(ends) != 4 {
		t.Fatalf("EndNodes() = %d, want 4", len(ends))
	}
	for _, w := range want {
		pts := make([]Vector2, len(ends))
		for i, n := range ends {
			pts[i] = n.P
		}
		if !containsApprox(pts, w, 1e-3) {
			t.Errorf("inset polygon missing expected corner %v; got %v", w, pts)
		}
	}

	// This scenario fires zero events, so every StartNodes entry must
	// still hold its original t=0 position, not the final inset one.
	for i, start := range result.StartNodes {
		if start.P != polygon[i] {
			t.Errorf("StartNodes[%d].P = %v after Apply, want unchanged input vertex %v", i, start.P, polygon[i])
		}
	}
}

// S3 — L-shape: exactly one reflex vertex, exactly one SplitEvent, the
// ring partitions into two subloops that independently collapse.
func TestLShapeSplit(t *testing.T) {
	polygon := []Vector2{
		v(0, 0), v(10, 0), v(10, 8), v(7, 8), v(7, 10), v(0, 10),
	}
	result := Apply(polygon, Config{Distance: float32(math.Inf(-1))})

	if len(result.EndNodes()) != 0 {
		t.Errorf("EndNodes() = %d, want 0 after full collapse", len(result.EndNodes()))
	}

	// The reflex vertex (7,8) must have triggered exactly one split. Each
	// SplitEvent adds one MovingNode to the arena, so the arena holds one
	// node more than the input polygon.
	if got, want := len(result.ctx.nodes), len(polygon)+1; got != want {
		t.Errorf("arena holds %d moving nodes, want %d (exactly one SplitEvent)", got, want)
	}

	// The input vertices' traces must converge somewhere.
	total := 0
	for _, start := range result.StartNodes {
		var leaves []*SkeletonNode
		start.FollowGraphInward(&leaves)
		total += len(leaves)
	}
	if total == 0 {
		t.Error("expected at least one convergence leaf across all start nodes")
	}
}

// S4 — growing a square outward fires zero events (no edge ever shrinks).
func TestSquareGrow(t *testing.T) {
	polygon := []Vector2{v(0, 0), v(4, 0), v(4, 4), v(0, 4)}
	result := Apply(polygon, Config{Distance: 1})

	want := []Vector2{v(-1, -1), v(5, -1), v(5, 5), v(-1, 5)}
	ends := result.EndNodes()
	if len(ends) != 4 {
		t.Fatalf("EndNodes() = %d, want 4", len(ends))
	}
	pts := make([]Vector2, len(ends))
	for i, n := range ends {
		pts[i] = n.P
	}
	for _, w := range want {
		if !containsApprox(pts, w, 1e-3) {
			t.Errorf("outset polygon missing expected corner %v; got %v", w, pts)
		}
	}

	// This scenario fires zero events, so every StartNodes entry must
	// still hold its original t=0 position, not the final outset one.
	for i, start := range result.StartNodes {
		if start.P != polygon[i] {
			t.Errorf("StartNodes[%d].P = %v after Apply, want unchanged input vertex %v", i, start.P, polygon[i])
		}
	}
}

// S5 — arrowhead quadrilateral: despite a reflex vertex, a 4-gon never
// generates a SplitEvent (testable property invariant 8); collapse
// proceeds via EdgeEvents only.
func TestArrowheadNoSplit(t *testing.T) {
	polygon := []Vector2{v(0, 0), v(4, 0), v(2, 1), v(2, 4)}

	result := Apply(polygon, Config{Distance: float32(math.Inf(-1))})
	if len(result.EndNodes()) != 0 {
		t.Errorf("EndNodes() = %d, want 0 after full collapse", len(result.EndNodes()))
	}
	// Each SplitEvent adds one MovingNode to the arena.
	if got := len(result.ctx.nodes); got != len(polygon) {
		t.Errorf("arena holds %d moving nodes, want %d (no SplitEvent)", got, len(polygon))
	}
}

// S6 — a thin sliver collapses its short edge first and terminates via
// the ring-of-two degeneracy path rather than looping forever.
func TestSliverDegeneracy(t *testing.T) {
	polygon := []Vector2{v(0, 0), v(4, 0), v(4, 0.0001), v(0, 0.0001)}
	result := Apply(polygon, Config{Distance: float32(math.Inf(-1))})

	if len(result.EndNodes()) != 0 {
		t.Errorf("EndNodes() = %d, want 0 after full collapse", len(result.EndNodes()))
	}
}

// S7 (expansion) — a 6-vertex star/arrowhead with two simultaneously live
// reflex vertices, exercising the nearest-candidate-per-reflex economy of
// tryReplaceNearestSplitEvent with more than one reflex vertex present.
func TestStarTwoReflexVertices(t *testing.T) {
	polygon := []Vector2{
		v(0, 0), v(6, 0), v(3, 2), v(6, 6), v(0, 6), v(3, 3.5),
	}
	// A concave hexagon with two reflex corners (at (3,2) and (3,3.5)),
	// shaped like a bowtie/star. Just assert the run completes and fully
	// collapses without panicking on double-bookkeeping of either reflex
	// vertex's nearest split candidate.
	result := Apply(polygon, Config{Distance: float32(math.Inf(-1))})
	if len(result.EndNodes()) != 0 {
		t.Errorf("EndNodes() = %d, want 0 after full collapse", len(result.EndNodes()))
	}
}

// S8 (expansion) — offset equivalence (invariant 5): for a wavefront that
// has not yet reached its first structural event, every vertex moves at a
// constant velocity (its bisector), so the position a longer run would
// have been at an earlier time t must equal what a direct run to distance
// t actually produces. Result/Context expose no mid-run position query,
// so this is checked the other way around: the per-vertex velocity
// implied by two independent runs to two different sub-event distances
// must agree. If it does, then Apply(d2)'s position at elapsed time d1
// necessarily equals Apply(d1)'s final position, which is exactly what
// invariant 5 requires.
func TestOffsetEquivalence(t *testing.T) {
	polygon := []Vector2{v(0, 0), v(4, 0), v(4, 3), v(0, 3)}
	const d1, d2 = 0.5, 1.0 // both well short of the first collapse at t=1.5.

	near := Apply(polygon, Config{Distance: -d1})
	far := Apply(polygon, Config{Distance: -d2})

	nearEnds := near.EndNodes()
	farEnds := far.EndNodes()
	if len(nearEnds) != len(polygon) || len(farEnds) != len(polygon) {
		t.Fatalf("got %d/%d end nodes, want %d (no events expected before t=1.5)", len(nearEnds), len(farEnds), len(polygon))
	}

	for i, original := range polygon {
		velocityNear := nearEnds[i].P.Sub(original).Scale(1 / float32(d1))
		velocityFar := farEnds[i].P.Sub(original).Scale(1 / float32(d2))
		if velocityNear.Sub(velocityFar).Length() > 1e-4 {
			t.Errorf("vertex %d: velocity from Apply(%v) = %+v, velocity from Apply(%v) = %+v, want equal",
				i, -d1, velocityNear, -d2, velocityFar)
		}
	}
}

func TestApplyRejectsTooFewVertices(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected Apply to panic on a 2-vertex polygon")
		}
	}()
	Apply([]Vector2{v(0, 0), v(1, 0)}, Config{Distance: -1})
}

func TestApplyRejectsPositiveInfinity(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected Apply to panic on Distance = +Inf")
		}
	}()
	polygon := []Vector2{v(0, 0), v(4, 0), v(4, 4), v(0, 4)}
	Apply(polygon, Config{Distance: float32(math.Inf(1))})
}

func TestApplyRejectsNonDistinctVertices(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected Apply to panic on a duplicated vertex")
		}
	}()
	Apply([]Vector2{v(0, 0), v(0, 0), v(1, 1)}, Config{Distance: -1})
}

func TestApplyRejectsNonFiniteVertex(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected Apply to panic on a non-finite vertex")
		}
	}()
	Apply([]Vector2{v(0, 0), v(1, 0), v(geom2.NaN(), 1)}, Config{Distance: -1})
}
