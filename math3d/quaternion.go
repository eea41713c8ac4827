package math3d

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// Quaternion is a rotation in the world space. The product and inverse are
// delegated to gonum; this type only adds the conversions the controllers need.
type Quaternion struct {
	W float64
	X float64
	Y float64
	Z float64
}

var (
	IdentityRotation = Quaternion{W: 1}
)

func fromNumber(n quat.Number) Quaternion {
	return Quaternion{W: n.Real, X: n.Imag, Y: n.Jmag, Z: n.Kmag}
}

func (q Quaternion) number() quat.Number {
	return quat.Number{Real: q.W, Imag: q.X, Jmag: q.Y, Kmag: q.Z}
}

func (q Quaternion) String() string {
	return fmt.Sprintf("&Quat{w=%+.4f x=%+.4f y=%+.4f z=%+.4f}", q.W, q.X, q.Y, q.Z)
}

// AngleAxis returns the rotation of angle (in radians) around axis.
func AngleAxis(angle float64, axis Vector3) Quaternion {
	a := axis.Unit()
	s := math.Sin(angle / 2)
	return Quaternion{W: math.Cos(angle / 2), X: a.X * s, Y: a.Y * s, Z: a.Z * s}
}

// Mul returns the rotation q followed (in its own frame) by r.
func (q Quaternion) Mul(r Quaternion) Quaternion {
	return fromNumber(quat.Mul(q.number(), r.number()))
}

func (q Quaternion) Inverse() Quaternion {
	return fromNumber(quat.Inv(q.number()))
}

// Normalize returns q scaled to unit length. The zero quaternion becomes the
// identity.
func (q Quaternion) Normalize() Quaternion {
	n := quat.Abs(q.number())
	if n == 0 {
		return IdentityRotation
	}

	return fromNumber(quat.Scale(1/n, q.number()))
}

func (q Quaternion) Finite() bool {
	return finite(q.W) && finite(q.X) && finite(q.Y) && finite(q.Z)
}

// Rotate applies the rotation to v.
func (q Quaternion) Rotate(v Vector3) Vector3 {
	p := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	r := quat.Mul(quat.Mul(q.number(), p), quat.Conj(q.number()))
	return Vector3{r.Imag, r.Jmag, r.Kmag}
}

// Forward, Up and Right return the world axes of the rotated frame.
func (q Quaternion) Forward() Vector3 { return q.Rotate(Forward) }
func (q Quaternion) Up() Vector3      { return q.Rotate(Up) }
func (q Quaternion) Right() Vector3   { return q.Rotate(Right) }

// Angle returns the angle (in radians) between two rotations.
func (q Quaternion) Angle(r Quaternion) float64 {
	d := math.Abs(q.W*r.W + q.X*r.X + q.Y*r.Y + q.Z*r.Z)
	return 2 * math.Acos(math.Min(d, 1))
}

// FromToRotation returns the shortest rotation which turns from into to.
func FromToRotation(from, to Vector3) Quaternion {
	f := from.Unit()
	t := to.Unit()
	if f.Zero() || t.Zero() {
		return IdentityRotation
	}

	d := f.Dot(t)
	if d < -1+1e-12 {

		// Opposite vectors; any perpendicular axis will do, but pick one
		// deterministically so repeated calls agree.
		axis := Right.Cross(f)
		if axis.SqrMagnitude() < 1e-12 {
			axis = Up.Cross(f)
		}
		return AngleAxis(math.Pi, axis)
	}

	c := f.Cross(t)
	return Quaternion{W: 1 + d, X: c.X, Y: c.Y, Z: c.Z}.Normalize()
}

// LookRotation returns the rotation whose Z axis points along forward and
// whose Y axis is as close to up as possible. If the two are parallel, the
// shortest rotation from Z to forward is returned instead.
func LookRotation(forward, up Vector3) Quaternion {
	f := forward.Unit()
	if f.Zero() {
		return IdentityRotation
	}

	r := up.Cross(f).Unit()
	if r.Zero() {
		return FromToRotation(Forward, f)
	}

	u := f.Cross(r)
	return fromBasis(r, u, f)
}

// fromBasis builds a rotation from the world directions of its X, Y and Z
// axes, which must be orthonormal.
func fromBasis(r, u, f Vector3) Quaternion {
	m00, m01, m02 := r.X, u.X, f.X
	m10, m11, m12 := r.Y, u.Y, f.Y
	m20, m21, m22 := r.Z, u.Z, f.Z

	var q Quaternion
	trace := m00 + m11 + m22

	switch {
	case trace > 0:
		s := 0.5 / math.Sqrt(trace+1)
		q = Quaternion{W: 0.25 / s, X: (m21 - m12) * s, Y: (m02 - m20) * s, Z: (m10 - m01) * s}

	case m00 > m11 && m00 > m22:
		s := 2 * math.Sqrt(1+m00-m11-m22)
		q = Quaternion{W: (m21 - m12) / s, X: 0.25 * s, Y: (m01 + m10) / s, Z: (m02 + m20) / s}

	case m11 > m22:
		s := 2 * math.Sqrt(1+m11-m00-m22)
		q = Quaternion{W: (m02 - m20) / s, X: (m01 + m10) / s, Y: 0.25 * s, Z: (m12 + m21) / s}

	default:
		s := 2 * math.Sqrt(1+m22-m00-m11)
		q = Quaternion{W: (m10 - m01) / s, X: (m02 + m20) / s, Y: (m12 + m21) / s, Z: 0.25 * s}
	}

	return q.Normalize()
}

// FromEulerAngles returns the rotation which banks around Z, then pitches
// around X, then turns to the heading around Y.
func FromEulerAngles(ea EulerAngles) Quaternion {
	h := AngleAxis(ea.Heading, Up)
	p := AngleAxis(ea.Pitch, Right)
	b := AngleAxis(ea.Bank, Forward)
	return h.Mul(p).Mul(b)
}

// EulerAngles decomposes the rotation in the same order as FromEulerAngles.
// When pitched straight up or down the bank is folded into the heading.
func (q Quaternion) EulerAngles() EulerAngles {
	f := q.Forward()
	r := q.Right()
	u := q.Up()

	if math.Abs(f.Y) > 0.9999999 {
		return EulerAngles{
			Heading: math.Atan2(-r.Z, r.X),
			Pitch:   -math.Copysign(math.Pi/2, f.Y),
			Bank:    0,
		}
	}

	return EulerAngles{
		Heading: math.Atan2(f.X, f.Z),
		Pitch:   math.Asin(-f.Y),
		Bank:    math.Atan2(r.Y, u.Y),
	}
}
