package gait

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// Phase is the part of the step cycle which a limb is in.
type Phase int

const (
	Stance Phase = iota
	Swing
)

func (p Phase) String() string {
	switch p {
	case Stance:
		return "stance"
	case Swing:
		return "swing"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Identity offsets a limb within the cycle. Only two identities exist, half a
// cycle apart, so that a pair of limbs alternate.
type Identity int

const (
	Left  Identity = 0
	Right Identity = 1

	numIdentities = 2
)

var (
	ErrInvalidTime     = errors.New("invalid time")
	ErrInvalidIdentity = errors.New("invalid limb identity")
	ErrInvalidSchedule = errors.New("invalid schedule")
)

// Frame is the state of a single limb at an instant.
type Frame struct {
	Phase Phase

	// How far through the swing the limb is, from zero at lift-off towards one
	// at touch-down. Always zero in stance.
	Progress float64

	// The lift ratio, which should be multiplied by the step height. Always
	// zero in stance.
	Y float64
}

// Schedule maps time to the phase of each limb. It holds no mutable state, so
// the same inputs always produce the same Frame.
type Schedule struct {
	period  float64
	swing   float64
	profile Profile
}

// New returns a schedule with a cycle of period seconds, of which the first
// swingFraction is spent in swing. The fraction may not exceed one half,
// otherwise two limbs could be in the air at once.
func New(period, swingFraction float64, profile Profile) (*Schedule, error) {
	if !(period > 0) || math.IsInf(period, 0) {
		return nil, errors.Wrapf(ErrInvalidSchedule, "period must be positive, got %v", period)
	}

	if !(swingFraction > 0 && swingFraction <= 1.0/numIdentities) {
		return nil, errors.Wrapf(ErrInvalidSchedule, "swing fraction must be in (0, 0.5], got %v", swingFraction)
	}

	if _, ok := profiles[profile]; !ok {
		return nil, errors.Wrapf(ErrInvalidSchedule, "unknown lift profile: %q", profile)
	}

	return &Schedule{
		period:  period,
		swing:   swingFraction,
		profile: profile,
	}, nil
}

// Length returns the duration (in seconds) of a full cycle, after which every
// limb is back in the same phase.
func (s *Schedule) Length() float64 {
	return s.period
}

// CurrentPhase returns the phase of the given limb at time t (in seconds).
func (s *Schedule) CurrentPhase(t float64, id Identity) (Phase, error) {
	f, err := s.Frame(t, id)
	return f.Phase, err
}

// SwingProgress returns how far through its swing the given limb is at time t,
// or zero if it's in stance.
func (s *Schedule) SwingProgress(t float64, id Identity) (float64, error) {
	f, err := s.Frame(t, id)
	return f.Progress, err
}

// Frame returns the phase, swing progress and lift ratio of the given limb at
// time t.
func (s *Schedule) Frame(t float64, id Identity) (Frame, error) {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return Frame{}, errors.Wrapf(ErrInvalidTime, "t=%v", t)
	}

	if id < 0 || id >= numIdentities {
		return Frame{}, errors.Wrapf(ErrInvalidIdentity, "id=%d", id)
	}

	rel := s.position(t, id)
	if rel >= s.swing {
		return Frame{Phase: Stance}, nil
	}

	p := rel / s.swing
	return Frame{
		Phase:    Swing,
		Progress: p,
		Y:        Lift(s.profile, p),
	}, nil
}

// position returns the position of the limb within its own cycle, in [0, 1).
// The offset is subtracted from the base position (rather than added) so that
// identities never round into each other's swing window.
func (s *Schedule) position(t float64, id Identity) float64 {
	c := t / s.period
	base := c - math.Floor(c)
	if base >= 1 {
		base = 0
	}

	offset := float64(id) / numIdentities
	if base >= offset {
		return base - offset
	}

	return base - offset + 1
}
