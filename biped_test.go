package biped

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	booted bool
	ticks  []Tick
	err    error
}

func (r *recorder) Boot() error {
	r.booted = true
	return nil
}

func (r *recorder) Tick(t Tick) error {
	r.ticks = append(r.ticks, t)
	return r.err
}

func TestTick(t *testing.T) {
	b := New(10 * time.Millisecond)
	a := &recorder{err: errors.New("boom")}
	c := &recorder{}
	b.Add(a)
	b.Add(c)

	require.NoError(t, b.Boot())
	assert.True(t, a.booted)
	assert.True(t, c.booted)

	for i := 0; i < 3; i++ {
		assert.EqualError(t, b.Tick(), "boom")
	}

	// The failing component didn't stop the other one.
	require.Len(t, c.ticks, 3)
	assert.Equal(t, 20*time.Millisecond, c.ticks[2].Elapsed)
	assert.InDelta(t, 0.02, c.ticks[2].Time(), 1e-12)
	assert.InDelta(t, 0.01, c.ticks[2].Duration(), 1e-12)
	assert.Equal(t, 3, b.Ticks())
}
