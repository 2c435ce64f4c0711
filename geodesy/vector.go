package geodesy

import "math"

// Vec3 is an ECEF Cartesian vector in metres.
//
// A Vec3 with NaN components is the "no geometric solution" sentinel used
// by the ray-intersection and visibility code; it propagates through vector
// arithmetic so composed transforms stay branch-free. Callers test for it
// with IsValid rather than inspecting components.
type Vec3 struct {
	X, Y, Z float64
}

// NaN3 returns the invalid-point sentinel.
func NaN3() Vec3 {
	n := math.NaN()
	return Vec3{X: n, Y: n, Z: n}
}

// IsValid reports whether all components are non-NaN.
func (v Vec3) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsNaN(v.Z)
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// Scale returns the vector scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Dot returns the dot product of two vectors.
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Norm returns the Euclidean norm of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalized returns a unit vector in the same direction, or the zero
// vector when v has zero norm.
func (v Vec3) Normalized() Vec3 {
	n := v.Norm()
	if n == 0 {
		return Vec3{}
	}
	return v.Scale(1 / n)
}

// mulEach returns the componentwise (Hadamard) product.
func (v Vec3) mulEach(other Vec3) Vec3 {
	return Vec3{X: v.X * other.X, Y: v.Y * other.Y, Z: v.Z * other.Z}
}

// Vec2 is a 2-component vector: sensor-plane UV pointing coordinates or a
// planar lattice point, depending on context. Like Vec3 it uses NaN
// components as the no-solution sentinel.
type Vec2 struct {
	U, V float64
}

// NaN2 returns the invalid-point sentinel.
func NaN2() Vec2 {
	n := math.NaN()
	return Vec2{U: n, V: n}
}

// IsValid reports whether both components are non-NaN.
func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.U) && !math.IsNaN(v.V)
}

// Norm returns the Euclidean norm of the vector.
func (v Vec2) Norm() float64 {
	return math.Hypot(v.U, v.V)
}
