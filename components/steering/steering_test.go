package steering

import (
	"testing"
	"time"

	"github.com/adammck/biped"
	"github.com/adammck/biped/config"
	"github.com/adammck/biped/math3d"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tick(i int) biped.Tick {
	return biped.Tick{Elapsed: time.Duration(i) * 100 * time.Millisecond, Step: 100 * time.Millisecond}
}

func TestRampsTowardsCommand(t *testing.T) {
	p := config.Default(1)
	s := New(p, Fixed(math3d.Vector3{Z: 1}), 2)
	require.NoError(t, s.Boot())

	type eg struct {
		z float64
	}

	// 0.2 per tick, then holds at the command.
	examples := []eg{{0.2}, {0.4}, {0.6}, {0.8}, {1}, {1}}
	for i, x := range examples {
		require.NoError(t, s.Tick(tick(i)))
		assert.InDelta(t, x.z, p.DesiredVelocity.Z, 1e-9, "tick %d", i)
	}
}

func TestScript(t *testing.T) {
	sc := Script{
		{At: 0.25, Velocity: math3d.Vector3{X: 1}},
		{At: 0.5, Velocity: math3d.Vector3{Z: -1}},
	}

	type eg struct {
		tick int
		exp  math3d.Vector3
	}

	examples := []eg{
		{0, math3d.ZeroVector3},
		{2, math3d.ZeroVector3},
		{3, math3d.Vector3{X: 1}},
		{5, math3d.Vector3{Z: -1}},
		{50, math3d.Vector3{Z: -1}},
	}

	for _, x := range examples {
		act, err := sc.Command(tick(x.tick))
		require.NoError(t, err)
		assert.Equal(t, x.exp, act, "tick %d", x.tick)
	}
}

func TestBootRejectsZeroAcceleration(t *testing.T) {
	s := New(config.Default(1), Fixed{}, 0)
	assert.Error(t, s.Boot())
}
