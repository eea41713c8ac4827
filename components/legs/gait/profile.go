package gait

import (
	"math"
)

// Profile is the shape of the foot height over the course of a swing.
type Profile string

const (
	ProfileSine     Profile = "sine"
	ProfileBell     Profile = "bell"
	ProfileParabola Profile = "parabola"
)

var profiles = map[Profile]func(float64) float64{

	// Half a sine wave, peaking mid-swing.
	ProfileSine: func(p float64) float64 {
		return math.Sin(p * math.Pi)
	},

	// Bell curve centered mid-swing. Not quite zero at either end, so the foot
	// is lifted clear of the ground quickly.
	ProfileBell: func(p float64) float64 {
		return math.Pow(2, -math.Pow((p-0.5)*(math.E*2), 2))
	},

	ProfileParabola: func(p float64) float64 {
		return 4 * p * (1 - p)
	},
}

// Lift returns the lift ratio (between zero and one) at the given swing
// progress. Progress outside [0, 1] is clamped.
func Lift(profile Profile, progress float64) float64 {
	f, ok := profiles[profile]
	if !ok {
		f = profiles[ProfileSine]
	}

	return math.Max(0, f(math.Max(0, math.Min(1, progress))))
}
