// Package math provides the vector types used for facade geometry.
package math

import "math"

// Vec3 is a 3D position or direction in meters.
type Vec3 struct {
	X, Y, Z float64
}

// ZAxis is the world up direction levels are stacked along.
var ZAxis = Vec3{0, 0, 1}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns v * scalar.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Div returns v / scalar. A zero divisor yields the zero vector.
func (v Vec3) Div(s float64) Vec3 {
	if s == 0 {
		return Vec3{}
	}
	return Vec3{v.X / s, v.Y / s, v.Z / s}
}

// Length returns the magnitude.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns a unit vector.
func (v Vec3) Normalize() Vec3 {
	return v.Div(v.Length())
}

// UnitVector returns the direction from a to b scaled so that stepping by
// one unit of extent advances one meter of the markup width: (b-a)/extent.
func UnitVector(a, b Vec3, extent float64) Vec3 {
	return b.Sub(a).Div(extent)
}

// Step advances v by extent along unit. Boundary vertices of adjacent
// markup items are produced by chaining Step calls, never recomputed from
// the quad corners.
func Step(v, unit Vec3, extent float64) Vec3 {
	return v.Add(unit.Scale(extent))
}
