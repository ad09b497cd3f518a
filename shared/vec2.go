// Package shared holds the deterministic simulation: value types, the
// replicated game state, the fixed-timestep mutator, physics, and the
// wire codec. It is imported by both the server and client binaries so
// that prediction on the client and authority on the server run the
// exact same code.
package shared

// Vec2 is a 2D vector of 32-bit floats, closed under +, -, and scalar *.
// It matches the wire layout exactly: two little-endian float32s.
type Vec2 struct {
	X, Y float32
}

// ZeroVec2 is the additive identity.
var ZeroVec2 = Vec2{}

func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

func (v Vec2) Mul(scalar float32) Vec2 {
	return Vec2{X: v.X * scalar, Y: v.Y * scalar}
}

// Lerp linearly interpolates between v and other at parameter t.
func (v Vec2) Lerp(other Vec2, t float32) Vec2 {
	return v.Add(other.Sub(v).Mul(t))
}
