// Package config holds the tuning parameters shared by the limb controllers.
// Controllers only read them, and copy them at the start of each tick, so the
// host (or a steering component) may change them between ticks.
package config

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"

	"github.com/adammck/biped/components/legs/gait"
	"github.com/adammck/biped/math3d"
	"github.com/pkg/errors"
)

// ErrInvalid is returned by Validate and Load when a parameter can never work.
var ErrInvalid = errors.New("invalid parameters")

const (
	maxFileSize = 1 * 1024 * 1024

	// The height of the hip above the ground, and the peak height of the foot
	// during a swing, for a body of scale 1.
	desiredHeight = 0.65
	liftHeight    = 0.32

	defaultKP = 200.0
)

// Params are the balance and gait parameters of a body. Lengths are in the
// same units as the joint positions, and times are in seconds.
type Params struct {

	// Multiplier applied to the default heights.
	Scale float64 `json:"scale"`

	// The height of the ground in the world space.
	GroundOffset float64 `json:"ground_offset"`

	// The velocity which the body should walk at, in the world space. Usually
	// written by a steering component.
	DesiredVelocity math3d.Vector3 `json:"desired_velocity"`

	// The height of the hip above the ground.
	DesiredHeight float64 `json:"desired_height"`

	// Spring and damper gains which the actuation layer should drive each
	// joint towards its target with.
	KP float64 `json:"kp"`
	KD float64 `json:"kd"`

	// Scales the desired velocity when moving the hip each tick.
	VelocityGain float64 `json:"velocity_gain"`

	// Leans the swing foot placement against the desired velocity.
	VelocityBias float64 `json:"velocity_bias"`

	// Peak height of the foot above the ground during a swing.
	LiftHeight float64 `json:"lift_height"`

	Gravity float64 `json:"gravity"`

	// Duration of a full gait cycle, and the fraction of it which each limb
	// spends swinging.
	CyclePeriod   float64      `json:"cycle_period"`
	SwingFraction float64      `json:"swing_fraction"`
	LiftProfile   gait.Profile `json:"lift_profile"`

	// Bounds the work done by each solver call.
	SolverPasses    int     `json:"solver_passes"`
	SolverTolerance float64 `json:"solver_tolerance"`

	// Fixed duration of a single tick.
	TickDuration float64 `json:"tick_duration"`

	// Emit debug markers from the controllers.
	Debug bool `json:"debug"`
}

// Default returns the parameters for a body of the given scale.
func Default(scale float64) *Params {
	return &Params{
		Scale:           scale,
		GroundOffset:    0,
		DesiredVelocity: math3d.ZeroVector3,
		DesiredHeight:   desiredHeight * scale,
		KP:              defaultKP,
		KD:              2 * math.Sqrt(defaultKP),
		VelocityGain:    1,
		VelocityBias:    0.05,
		LiftHeight:      liftHeight * scale,
		Gravity:         9.81,
		CyclePeriod:     1,
		SwingFraction:   0.5,
		LiftProfile:     gait.ProfileSine,
		SolverPasses:    1,
		SolverTolerance: 1e-4,
		TickDuration:    1.0 / 60,
	}
}

// Load reads a JSON file over the defaults for scale 1, so that the file only
// needs to contain the parameters which differ. Unknown fields are rejected,
// to catch typos.
func Load(path string) (*Params, error) {
	clean := filepath.Clean(path)
	if ext := filepath.Ext(clean); ext != ".json" {
		return nil, errors.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(clean)
	if err != nil {
		return nil, errors.Wrap(err, "failed to stat config file")
	}

	if info.Size() > maxFileSize {
		return nil, errors.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(clean)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	p := Default(1)

	// Apply the scale first, so the heights it governs can still be
	// overridden individually.
	var s struct {
		Scale *float64 `json:"scale"`
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(err, "failed to parse config JSON")
	}
	if s.Scale != nil {
		p = Default(*s.Scale)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(p); err != nil {
		return nil, errors.Wrap(err, "failed to parse config JSON")
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate returns ErrInvalid if any of the parameters can never work.
func (p *Params) Validate() error {
	floats := map[string]float64{
		"scale":            p.Scale,
		"ground_offset":    p.GroundOffset,
		"desired_height":   p.DesiredHeight,
		"kp":               p.KP,
		"kd":               p.KD,
		"velocity_gain":    p.VelocityGain,
		"velocity_bias":    p.VelocityBias,
		"lift_height":      p.LiftHeight,
		"gravity":          p.Gravity,
		"cycle_period":     p.CyclePeriod,
		"swing_fraction":   p.SwingFraction,
		"solver_tolerance": p.SolverTolerance,
		"tick_duration":    p.TickDuration,
	}

	for k, v := range floats {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Wrapf(ErrInvalid, "%s is %v", k, v)
		}
	}

	if !p.DesiredVelocity.Finite() {
		return errors.Wrapf(ErrInvalid, "desired_velocity is %v", p.DesiredVelocity)
	}

	switch {
	case p.Gravity <= 0:
		return errors.Wrapf(ErrInvalid, "gravity must be positive, got %v", p.Gravity)

	case p.CyclePeriod <= 0:
		return errors.Wrapf(ErrInvalid, "cycle_period must be positive, got %v", p.CyclePeriod)

	case p.SwingFraction <= 0 || p.SwingFraction > 0.5:
		return errors.Wrapf(ErrInvalid, "swing_fraction must be in (0, 0.5], got %v", p.SwingFraction)

	case p.TickDuration <= 0:
		return errors.Wrapf(ErrInvalid, "tick_duration must be positive, got %v", p.TickDuration)

	case p.SolverPasses < 1:
		return errors.Wrapf(ErrInvalid, "solver_passes must be at least one, got %d", p.SolverPasses)

	case p.SolverTolerance < 0:
		return errors.Wrapf(ErrInvalid, "solver_tolerance must not be negative, got %v", p.SolverTolerance)
	}

	switch p.LiftProfile {
	case gait.ProfileSine, gait.ProfileBell, gait.ProfileParabola:
	default:
		return errors.Wrapf(ErrInvalid, "unknown lift_profile %q", p.LiftProfile)
	}

	return nil
}

// Snapshot returns a copy of the parameters, unaffected by later changes to p.
func (p *Params) Snapshot() Params {
	return *p
}
