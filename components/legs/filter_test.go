package legs

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterConvergesToConstantInput(t *testing.T) {
	f := &VelocityFilter{}
	v := Vector3{X: 1.5, Y: -0.25, Z: 3}

	var out Vector3
	for i := 0; i < FilterSize; i++ {
		var err error
		out, err = f.Push(v)
		require.NoError(t, err)
	}

	assert.InDelta(t, 0, out.Distance(v), 1e-12)
}

func TestFilterAveragesWindow(t *testing.T) {
	f := &VelocityFilter{}

	// Half way through the first window, the other half is still zero.
	for i := 0; i < FilterSize/2; i++ {
		_, err := f.Push(Vector3{X: 2, Y: 0, Z: 0})
		require.NoError(t, err)
	}
	assert.InDelta(t, 1.0, f.Filtered().X, 1e-12)

	// Oldest samples are evicted first.
	for i := 0; i < FilterSize; i++ {
		_, err := f.Push(Vector3{X: 0, Y: 0, Z: 4})
		require.NoError(t, err)
	}
	assert.InDelta(t, 0, f.Filtered().Distance(Vector3{X: 0, Y: 0, Z: 4}), 1e-12)
}

func TestFilterMatchesRecompute(t *testing.T) {
	f := &VelocityFilter{}

	// Push an awkward sequence which doesn't land on a window boundary, so
	// the incremental value is compared before any resync.
	for i := 0; i < 10*FilterSize+7; i++ {
		x := float64(i)
		_, err := f.Push(Vector3{X: math.Sin(x) * 1e3, Y: math.Cos(x * 0.3), Z: x * 1e-3})
		require.NoError(t, err)
	}

	assert.InDelta(t, 0, f.Filtered().Distance(f.Recompute()), 1e-9)
}

func TestFilterRejectsNonFinite(t *testing.T) {
	f := &VelocityFilter{}
	_, err := f.Push(Vector3{X: 1, Y: 1, Z: 1})
	require.NoError(t, err)
	before := f.Filtered()

	for _, v := range []Vector3{{X: math.NaN(), Y: 0, Z: 0}, {X: 0, Y: math.Inf(1), Z: 0}, {X: 0, Y: 0, Z: math.Inf(-1)}} {
		out, err := f.Push(v)
		assert.ErrorIs(t, err, ErrNumeric)
		assert.Equal(t, before, out)
		assert.Equal(t, before, f.Filtered())
	}

	// The rejected samples didn't advance the cursor.
	for i := 0; i < FilterSize-1; i++ {
		_, err := f.Push(Vector3{X: 1, Y: 1, Z: 1})
		require.NoError(t, err)
	}
	assert.InDelta(t, 0, f.Filtered().Distance(Vector3{X: 1, Y: 1, Z: 1}), 1e-12)
}
