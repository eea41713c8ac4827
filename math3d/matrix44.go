package math3d

import (
	"fmt"
)

// Matrix44 transforms row vectors: the rotation occupies the upper 3x3 and the
// translation the fourth row.
type Matrix44 struct {
	m11 float64 // 0
	m12 float64 // 1
	m13 float64 // 2
	m14 float64 // 3
	m21 float64 // 4
	m22 float64 // 5
	m23 float64 // 6
	m24 float64 // 7
	m31 float64 // 8
	m32 float64 // 9
	m33 float64 // 10
	m34 float64 // 11
	m41 float64 // 12
	m42 float64 // 13
	m43 float64 // 14
	m44 float64 // 15
}

func MakeMatrix44(v Vector3, q Quaternion) *Matrix44 {
	m := &Matrix44{}
	m.SetRotation(q)
	m.SetTranslation(v)
	return m
}

func (m Matrix44) String() string {
	return fmt.Sprintf(
		"&M44{%+.4f %+.4f %+.4f %+.4f | %+.4f %+.4f %+.4f %+.4f | %+.4f %+.4f %+.4f %+.4f | %+.4f %+.4f %+.4f %+.4f}",
		m.m11, m.m12, m.m13, m.m14,
		m.m21, m.m22, m.m23, m.m24,
		m.m31, m.m32, m.m33, m.m34,
		m.m41, m.m42, m.m43, m.m44)
}

// Elements returns the matrix as a 4D array of float64s. This is pretty much
// only useful for dumping its contents.
func (m Matrix44) Elements() [4][4]float64 {
	return [4][4]float64{
		{m.m11, m.m12, m.m13, m.m14},
		{m.m21, m.m22, m.m23, m.m24},
		{m.m31, m.m32, m.m33, m.m34},
		{m.m41, m.m42, m.m43, m.m44},
	}
}

// SetRotation overwrites the upper 3x3 with the given rotation. Each row is
// the world direction of one local axis.
func (m *Matrix44) SetRotation(q Quaternion) {
	q = q.Normalize()
	r := q.Right()
	u := q.Up()
	f := q.Forward()

	m.m11, m.m12, m.m13, m.m14 = r.X, r.Y, r.Z, 0
	m.m21, m.m22, m.m23, m.m24 = u.X, u.Y, u.Z, 0
	m.m31, m.m32, m.m33, m.m34 = f.X, f.Y, f.Z, 0
	m.m41, m.m42, m.m43, m.m44 = 0, 0, 0, 1
}

// SetTranslation sets the translation of a matrix by overwriting the fourth
// row. Other cells are left alone.
func (m *Matrix44) SetTranslation(v Vector3) {
	m.m41 = v.X
	m.m42 = v.Y
	m.m43 = v.Z
}
