package legs

import (
	"testing"

	"github.com/adammck/biped/components/legs/gait"
	"github.com/adammck/biped/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkFollowsSchedule(t *testing.T) {
	p := config.Default(1)

	f, err := Walk{}.Frame(p, 0.25, gait.Left)
	require.NoError(t, err)
	assert.Equal(t, gait.Swing, f.Phase)
	assert.InDelta(t, 0.5, f.Progress, 1e-12)

	f, err = Walk{}.Frame(p, 0.25, gait.Right)
	require.NoError(t, err)
	assert.Equal(t, gait.Stance, f.Phase)
}

func TestStandNeverSwings(t *testing.T) {
	p := config.Default(1)

	for _, tm := range []float64{0, 0.25, 0.5, 0.75} {
		for _, id := range []gait.Identity{gait.Left, gait.Right} {
			f, err := Stand{}.Frame(p, tm, id)
			require.NoError(t, err)
			assert.Equal(t, gait.Stance, f.Phase)
		}
	}

	_, err := Stand{}.Frame(p, 0, gait.Identity(3))
	assert.ErrorIs(t, err, gait.ErrInvalidIdentity)
}

func TestWalkKeepsScheduleError(t *testing.T) {
	p := config.Default(1)
	p.CyclePeriod = 0

	_, err := Walk{}.Frame(p, 0.25, gait.Left)
	assert.ErrorIs(t, err, ErrConfig)
	assert.ErrorIs(t, err, gait.ErrInvalidSchedule)
}
