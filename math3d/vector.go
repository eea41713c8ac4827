package math3d

import (
	"fmt"
	"math"
)

type Vector3 struct {
	X float64
	Y float64
	Z float64
}

// Axes of the world space. Y is up and Z is forwards, the same as the chassis
// space of the body.
var (
	ZeroVector3 = Vector3{}
	Up          = Vector3{X: 0, Y: 1, Z: 0}
	Right       = Vector3{X: 1, Y: 0, Z: 0}
	Forward     = Vector3{X: 0, Y: 0, Z: 1}
)

// MakeVector3 returns a pointer to a new Vector3.
func MakeVector3(x float64, y float64, z float64) *Vector3 {
	return &Vector3{x, y, z}
}

func (v Vector3) String() string {
	return fmt.Sprintf("&Vec3{x=%0.3f y=%0.3f z=%0.3f}", v.X, v.Y, v.Z)
}

// Zero returns true if the vector is at 0,0,0.
func (v Vector3) Zero() bool {
	return (v.X == 0) && (v.Y == 0) && (v.Z == 0)
}

// Finite returns true if none of the components are NaN or infinite.
func (v Vector3) Finite() bool {
	return finite(v.X) && finite(v.Y) && finite(v.Z)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Add adds two vectors, and returns the result.
func (v Vector3) Add(vv Vector3) Vector3 {
	return Vector3{
		(v.X + vv.X),
		(v.Y + vv.Y),
		(v.Z + vv.Z),
	}
}

// Subtract returns the vector from vv to v.
func (v Vector3) Subtract(vv Vector3) Vector3 {
	return Vector3{
		(v.X - vv.X),
		(v.Y - vv.Y),
		(v.Z - vv.Z),
	}
}

func (v Vector3) MultiplyByScalar(s float64) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vector3) Negate() Vector3 {
	return Vector3{-v.X, -v.Y, -v.Z}
}

func (v Vector3) Dot(vv Vector3) float64 {
	return (v.X * vv.X) + (v.Y * vv.Y) + (v.Z * vv.Z)
}

// Cross returns the cross product of v and vv. With the Y axis up, the cross
// of Up and Forward is Right.
func (v Vector3) Cross(vv Vector3) Vector3 {
	return Vector3{
		(v.Y * vv.Z) - (v.Z * vv.Y),
		(v.Z * vv.X) - (v.X * vv.Z),
		(v.X * vv.Y) - (v.Y * vv.X),
	}
}

// SqrMagnitude returns the squared length of the vector, which is cheaper than
// Magnitude when only comparing.
func (v Vector3) SqrMagnitude() float64 {
	return v.Dot(v)
}

func (v Vector3) Magnitude() float64 {
	return math.Sqrt(v.SqrMagnitude())
}

// Unit returns a vector in the same direction with a magnitude of one. The
// zero vector is returned unchanged.
func (v Vector3) Unit() Vector3 {
	m := v.Magnitude()
	if m == 0 {
		return ZeroVector3
	}

	return v.MultiplyByScalar(1 / m)
}

// Horizontal returns the vector projected onto the ground (X/Z) plane.
func (v Vector3) Horizontal() Vector3 {
	return Vector3{v.X, 0, v.Z}
}

// Distance calculates and returns the distance between this vector and another,
// as a float64.
func (v Vector3) Distance(vv Vector3) float64 {
	dx := v.X - vv.X
	dy := v.Y - vv.Y
	dz := v.Z - vv.Z
	return math.Sqrt((dx * dx) + (dy * dy) + (dz * dz))
}

// MultiplyByMatrix44 returns a new Vector3, by multiplying this vector my a 4x4
// matrix.
func (v Vector3) MultiplyByMatrix44(m Matrix44) Vector3 {
	return Vector3{
		(v.X * m.m11) + (v.Y * m.m21) + (v.Z * m.m31) + m.m41,
		(v.X * m.m12) + (v.Y * m.m22) + (v.Z * m.m32) + m.m42,
		(v.X * m.m13) + (v.Y * m.m23) + (v.Z * m.m33) + m.m43,
	}
}
