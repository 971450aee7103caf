// Package geom2 provides 2D vector primitives used by the straight-skeleton
// engine: dot product, the 2D cross product ("determinant"), length,
// normalization, and the NaN/Inf sentinel check that the scheduler relies on
// to drop unreachable events.
package geom2

import "math"

// Vector2 is a 2D vector or point. All components are float32: the skeleton
// engine operates in finite-precision floating point with an explicit
// epsilon rather than exact arithmetic.
type Vector2 struct {
	X, Y float32
}

// Add returns v + o.
func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v scaled by s.
func (v Vector2) Scale(s float32) Vector2 {
	return Vector2{v.X * s, v.Y * s}
}

// Dot returns the dot product of v and o.
func (v Vector2) Dot(o Vector2) float32 {
	return v.X*o.X + v.Y*o.Y
}

// Determinant returns the signed area of the parallelogram spanned by v and
// o (the 2D cross product, a.k.a. perpendicular dot product). Its sign
// defines "left of": Determinant(edge, p) > 0 means p is left of edge.
func (v Vector2) Determinant(o Vector2) float32 {
	return v.X*o.Y - v.Y*o.X
}

// LengthSquared returns the squared length of v. Cheaper than Length when
// only relative magnitude matters.
func (v Vector2) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y
}

// Length returns the Euclidean length of v.
func (v Vector2) Length() float32 {
	return float32(math.Sqrt(float64(v.LengthSquared())))
}

// Normalized returns v scaled to unit length. The caller is responsible for
// checking v's length against an epsilon first; Normalized of a near-zero
// vector returns garbage (Inf/NaN), which is the designed sentinel behavior
// for invalid geometry rather than a panic.
func (v Vector2) Normalized() Vector2 {
	return v.Scale(1 / v.Length())
}

// Rot90CCW returns v rotated 90 degrees counter-clockwise.
func (v Vector2) Rot90CCW() Vector2 {
	return Vector2{-v.Y, v.X}
}

// Negate returns -v.
func (v Vector2) Negate() Vector2 {
	return Vector2{-v.X, -v.Y}
}

// DistanceSquared returns the squared distance between v and o.
func (v Vector2) DistanceSquared(o Vector2) float32 {
	return v.Sub(o).LengthSquared()
}

// IsInvalid reports whether v has a NaN or infinite component. Catastrophic
// loss of precision during scaling can produce such positions. The skeleton
// package uses IsInvalid only to reject non-finite input vertices; positions
// produced during a run are not checked and are not logged.
func (v Vector2) IsInvalid() bool {
	return isInvalidFloat(v.X) || isInvalidFloat(v.Y)
}

func isInvalidFloat(f float32) bool {
	return f != f || f > math.MaxFloat32 || f < -math.MaxFloat32
}

// NaN returns the float32 NaN sentinel used throughout the engine as the
// "invalid time" value. Any comparison `t <= distance` involving NaN is
// false, which is exactly the semantics the scheduler depends on to drop
// unreachable events.
func NaN() float32 {
	return float32(math.NaN())
}
