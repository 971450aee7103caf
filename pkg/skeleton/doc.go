// Package skeleton computes the straight skeleton of a simple 2D polygon:
// the traces produced by the polygon's edges moving inward (or outward) at
// unit speed along their perpendicular bisectors, until self-intersection
// events reshape the wavefront.
//
// The entry point is Apply, which runs the event-driven simulation to
// completion and returns a Result describing the output graph. The
// simulation kernel (Context, MovingNode, the Event types, and the
// scheduler loop) is strictly sequential and single-threaded; see Context's
// doc comment for the concurrency contract.
package skeleton
