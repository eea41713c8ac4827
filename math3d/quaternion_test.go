package math3d

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertVector(t *testing.T, exp, act Vector3, msgAndArgs ...interface{}) {
	t.Helper()
	assert.InDelta(t, 0, exp.Distance(act), 1e-9, msgAndArgs...)
}

func TestLookRotation(t *testing.T) {
	type eg struct {
		forward Vector3
		up      Vector3
		right   Vector3 // expected right axis of the result
	}

	examples := []eg{
		{Forward, Up, Right},
		{Right, Up, Vector3{0, 0, -1}},
		{Up.Negate(), Forward, Vector3{1, 0, 0}},
		{Vector3{0, 0, -1}, Up, Vector3{-1, 0, 0}},
	}

	for i, x := range examples {
		q := LookRotation(x.forward, x.up)
		assertVector(t, x.forward, q.Forward(), "example %d: forward", i+1)
		assertVector(t, x.right, q.Right(), "example %d: right", i+1)
		assert.InDelta(t, 1, math.Sqrt(q.W*q.W+q.X*q.X+q.Y*q.Y+q.Z*q.Z), 1e-12)
	}
}

func TestLookRotationParallelUp(t *testing.T) {
	q := LookRotation(Up, Up)
	assertVector(t, Up, q.Forward())
	assert.True(t, q.Finite())
}

func TestFromToRotation(t *testing.T) {
	type eg struct {
		from Vector3
		to   Vector3
	}

	examples := []eg{
		{Right, Up.Negate()},
		{Forward, Forward},
		{Forward, Vector3{0, 0, -1}},
		{Up, Up.Negate()},
		{Vector3{1, 2, 3}, Vector3{-2, 0.5, 1}},
	}

	for i, x := range examples {
		q := FromToRotation(x.from, x.to)
		assertVector(t, x.to.Unit(), q.Rotate(x.from.Unit()), "example %d", i+1)
	}
}

func TestEulerAnglesRoundTrip(t *testing.T) {
	examples := []EulerAngles{
		{0, 0, 0},
		{0.3, 0, 0},
		{0, 0.4, 0},
		{0, 0, -0.5},
		{2.0665, 0.7738, -0.4765},
		{-1.3089, 0.7674, 0.7102},
	}

	for i, ea := range examples {
		act := FromEulerAngles(ea).EulerAngles()
		assert.InDelta(t, ea.Heading, act.Heading, 1e-9, "example %d: heading", i+1)
		assert.InDelta(t, ea.Pitch, act.Pitch, 1e-9, "example %d: pitch", i+1)
		assert.InDelta(t, ea.Bank, act.Bank, 1e-9, "example %d: bank", i+1)
	}
}

func TestEulerAnglesGimbalLock(t *testing.T) {
	q := FromEulerAngles(EulerAngles{Heading: 0.3, Pitch: math.Pi / 2})
	ea := q.EulerAngles()
	assert.InDelta(t, math.Pi/2, ea.Pitch, 1e-6)
	assert.Equal(t, 0.0, ea.Bank)
	assert.InDelta(t, 0.0, q.Angle(FromEulerAngles(ea)), 1e-6)
}

func TestWrap(t *testing.T) {
	ea := EulerAngles{Heading: 3 * math.Pi / 2, Pitch: -3 * math.Pi / 2, Bank: math.Pi}.Wrap()
	assert.InDelta(t, -math.Pi/2, ea.Heading, 1e-12)
	assert.InDelta(t, math.Pi/2, ea.Pitch, 1e-12)
	assert.InDelta(t, math.Pi, ea.Bank, 1e-12)
}

func TestMulInverse(t *testing.T) {
	q := FromEulerAngles(EulerAngles{0.2, -0.4, 1.1})
	r := q.Mul(q.Inverse())
	assert.InDelta(t, 0, r.Angle(IdentityRotation), 1e-7)
}
