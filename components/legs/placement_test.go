package legs

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwingFootOffset(t *testing.T) {
	type eg struct {
		vel     Vector3
		height  float64
		gravity float64
		desired Vector3
		bias    float64
		exp     Vector3
	}

	examples := []eg{
		{Vector3{X: 1, Y: 0, Z: 0}, 0.5, 9.81, Vector3{}, 0.05, Vector3{X: 0.231444, Y: 0, Z: 0}},
		{Vector3{X: 0, Y: 0, Z: 0}, 0.5, 9.81, Vector3{}, 0.05, Vector3{X: 0, Y: 0, Z: 0}},
		{Vector3{X: 0, Y: 0, Z: 0}, 0.5, 9.81, Vector3{X: 0, Y: 0, Z: 1}, 0.05, Vector3{X: 0, Y: 0, Z: -0.05}},
		{Vector3{X: 0, Y: 0, Z: 2}, 0.4, 9.81, Vector3{X: 0, Y: 0, Z: 1}, 0.05, Vector3{X: 0, Y: 0, Z: 0.452397 - 0.05}},
	}

	approx := cmpopts.EquateApprox(0, 1e-6)
	for i, x := range examples {
		act, clamped, err := SwingFootOffset(x.vel, x.height, x.gravity, x.desired, x.bias)
		require.NoError(t, err)
		assert.False(t, clamped)
		if diff := cmp.Diff(x.exp, act, approx); diff != "" {
			t.Errorf("example %d: (-want +got)\n%s", i+1, diff)
		}
	}
}

func TestSwingFootOffsetMonotonicInSpeed(t *testing.T) {
	last := -1.0
	for s := 0.0; s <= 5; s += 0.05 {
		off, _, err := SwingFootOffset(Vector3{X: s, Y: 0, Z: s / 2}, 0.65, 9.81, Vector3{}, 0.05)
		require.NoError(t, err)
		require.True(t, off.Finite())

		m := off.Magnitude()
		assert.True(t, m >= last, "offset shrank at speed %v", s)
		last = m
	}
}

func TestSwingFootOffsetClampsNegativeHeight(t *testing.T) {
	off, clamped, err := SwingFootOffset(Vector3{X: 1, Y: 0, Z: 0}, -1, 9.81, Vector3{X: 0, Y: 0, Z: 1}, 0.05)
	require.NoError(t, err)
	assert.True(t, clamped)
	assert.InDelta(t, 0, off.Distance(Vector3{X: 0, Y: 0, Z: -0.05}), 1e-12)

	// Slightly negative heights are still inside the domain when the body is
	// moving fast enough.
	_, clamped, err = SwingFootOffset(Vector3{X: 3, Y: 0, Z: 0}, -0.01, 9.81, Vector3{}, 0.05)
	require.NoError(t, err)
	assert.False(t, clamped)
}

func TestSwingFootOffsetRejectsBadGravity(t *testing.T) {
	for _, g := range []float64{0, -9.81, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, _, err := SwingFootOffset(Vector3{X: 1, Y: 0, Z: 0}, 0.5, g, Vector3{}, 0.05)
		assert.ErrorIs(t, err, ErrConfig, "gravity=%v", g)
	}
}

func TestSwingFootOffsetRejectsNonFinite(t *testing.T) {
	_, _, err := SwingFootOffset(Vector3{X: math.NaN(), Y: 0, Z: 0}, 0.5, 9.81, Vector3{}, 0.05)
	assert.ErrorIs(t, err, ErrNumeric)

	_, _, err = SwingFootOffset(Vector3{}, math.Inf(1), 9.81, Vector3{}, 0.05)
	assert.ErrorIs(t, err, ErrNumeric)
}
