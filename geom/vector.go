// Package geom holds the 2D math used by the physics core: vectors, convex
// polygons and a few shape builders.
package geom

import "math"

// Vector2D is an immutable 2D vector. Every operation returns a new value.
type Vector2D struct {
	X, Y float64
}

// Zero is the zero vector.
var Zero = Vector2D{}

func NewVector2D(x, y float64) Vector2D {
	return Vector2D{X: x, Y: y}
}

// FromPolar builds (magnitude*cos(angle), magnitude*sin(angle)).
func FromPolar(magnitude, angle float64) Vector2D {
	return UnitFromAngle(angle).Scale(magnitude)
}

// UnitFromAngle returns the unit vector at angle radians from +X.
func UnitFromAngle(angle float64) Vector2D {
	return Vector2D{X: math.Cos(angle), Y: math.Sin(angle)}
}

func (v1 Vector2D) Add(v2 Vector2D) Vector2D {
	return Vector2D{X: v1.X + v2.X, Y: v1.Y + v2.Y}
}

func (v1 Vector2D) Sub(v2 Vector2D) Vector2D {
	return Vector2D{X: v1.X - v2.X, Y: v1.Y - v2.Y}
}

func (v Vector2D) Negate() Vector2D {
	return Vector2D{X: -v.X, Y: -v.Y}
}

func (v Vector2D) Scale(factor float64) Vector2D {
	return Vector2D{X: v.X * factor, Y: v.Y * factor}
}

func (v Vector2D) Dot(other Vector2D) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Cross returns the z component of the 3D cross product.
func (v Vector2D) Cross(other Vector2D) float64 {
	return v.X*other.Y - v.Y*other.X
}

// Rotate applies the standard rotation matrix, counterclockwise for positive angles.
func (v Vector2D) Rotate(angle float64) Vector2D {
	sin, cos := math.Sincos(angle)
	return Vector2D{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Perpendicular is v rotated by +pi/2 without trigonometric round-off.
func (v Vector2D) Perpendicular() Vector2D {
	return Vector2D{X: -v.Y, Y: v.X}
}

func (v Vector2D) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

func (v Vector2D) MagnitudeSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

func (v Vector2D) Normalize() Vector2D {
	mag := v.Magnitude()
	if mag == 0 {
		return Vector2D{}
	}
	invMag := 1.0 / mag
	return Vector2D{X: v.X * invMag, Y: v.Y * invMag}
}

func (v Vector2D) Distance(other Vector2D) float64 {
	return v.Sub(other).Magnitude()
}

// IsFinite reports whether both components are neither NaN nor infinite.
func (v Vector2D) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}
