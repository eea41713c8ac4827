package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/adammck/biped/components/legs/gait"
	"github.com/adammck/biped/math3d"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	p := Default(2)
	require.NoError(t, p.Validate())

	assert.InDelta(t, 1.3, p.DesiredHeight, 1e-12)
	assert.InDelta(t, 0.64, p.LiftHeight, 1e-12)
	assert.InDelta(t, 2*math.Sqrt(200), p.KD, 1e-12)
	assert.Equal(t, 1, p.SolverPasses)
	assert.Equal(t, gait.ProfileSine, p.LiftProfile)
}

func TestLoad(t *testing.T) {
	path := write(t, "tuning.json", `{
		"scale": 0.5,
		"gravity": 3.7,
		"desired_velocity": {"x": 0, "y": 0, "z": 0.4},
		"lift_profile": "bell",
		"solver_passes": 8
	}`)

	p, err := Load(path)
	require.NoError(t, err)

	assert.InDelta(t, 0.325, p.DesiredHeight, 1e-12)
	assert.InDelta(t, 0.16, p.LiftHeight, 1e-12)
	assert.Equal(t, 3.7, p.Gravity)
	assert.Equal(t, math3d.Vector3{Z: 0.4}, p.DesiredVelocity)
	assert.Equal(t, gait.ProfileBell, p.LiftProfile)
	assert.Equal(t, 8, p.SolverPasses)

	// Untouched parameters keep their defaults.
	assert.Equal(t, 0.5, p.SwingFraction)
}

func TestLoadOverridesScaledHeight(t *testing.T) {
	path := write(t, "tuning.json", `{"scale": 2, "desired_height": 1}`)

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1.0, p.DesiredHeight)
	assert.InDelta(t, 0.64, p.LiftHeight, 1e-12)
}

func TestLoadRejects(t *testing.T) {
	type eg struct {
		name string
		body string
	}

	examples := []eg{
		{"tuning.yaml", `{}`},
		{"tuning.json", `{"gravty": 9.81}`},
		{"tuning.json", `{"gravity": `},
		{"tuning.json", `{"gravity": 0}`},
		{"tuning.json", `{"swing_fraction": 0.6}`},
	}

	for _, x := range examples {
		_, err := Load(write(t, x.name, x.body))
		assert.Error(t, err, "name=%s body=%s", x.name, x.body)
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	type eg struct {
		mutate func(*Params)
	}

	examples := []eg{
		{func(p *Params) { p.Gravity = 0 }},
		{func(p *Params) { p.Gravity = -9.81 }},
		{func(p *Params) { p.CyclePeriod = 0 }},
		{func(p *Params) { p.SwingFraction = 0 }},
		{func(p *Params) { p.SwingFraction = 0.51 }},
		{func(p *Params) { p.SolverPasses = 0 }},
		{func(p *Params) { p.SolverTolerance = -1 }},
		{func(p *Params) { p.TickDuration = 0 }},
		{func(p *Params) { p.KP = math.NaN() }},
		{func(p *Params) { p.DesiredVelocity.X = math.Inf(1) }},
		{func(p *Params) { p.LiftProfile = "square" }},
	}

	for i, x := range examples {
		p := Default(1)
		x.mutate(p)
		assert.ErrorIs(t, p.Validate(), ErrInvalid, "example %d", i+1)
	}
}

func TestSnapshot(t *testing.T) {
	p := Default(1)
	s := p.Snapshot()

	p.DesiredVelocity = math3d.Vector3{X: 1}
	assert.Equal(t, math3d.ZeroVector3, s.DesiredVelocity)
}
