package legs

import (
	"math"

	"github.com/adammck/biped/math3d"
	"github.com/pkg/errors"
)

// SwingFootOffset returns the horizontal offset from the body at which the
// swinging foot should land to cancel the momentum in velocity, modelling the
// body as an inverted pendulum of the given height pivoting on the foot. The
// bias term leans the step against the desired velocity, so the body is
// allowed to keep moving in that direction.
//
// If height is so negative that the pendulum is undefined, the radicand is
// clamped to zero and clamped is true; the offset is then the bias term alone.
func SwingFootOffset(velocity math3d.Vector3, height, gravity float64, desired math3d.Vector3, bias float64) (offset math3d.Vector3, clamped bool, err error) {
	if math.IsInf(gravity, 0) || !(gravity > 0) {
		return math3d.ZeroVector3, false, errors.Wrapf(ErrConfig, "gravity must be positive, got %v", gravity)
	}

	if !velocity.Finite() || !desired.Finite() || math.IsNaN(height) || math.IsInf(height, 0) || math.IsNaN(bias) || math.IsInf(bias, 0) {
		return math3d.ZeroVector3, false, errors.Wrapf(ErrNumeric, "velocity=%v height=%v desired=%v bias=%v", velocity, height, desired, bias)
	}

	r := height/gravity + velocity.SqrMagnitude()/(4*gravity*gravity)
	if r < 0 {
		r = 0
		clamped = true
	}

	offset = velocity.MultiplyByScalar(math.Sqrt(r)).Subtract(desired.MultiplyByScalar(bias))
	if !offset.Finite() {
		return math3d.ZeroVector3, clamped, errors.Wrapf(ErrDomain, "offset %v", offset)
	}

	return offset, clamped, nil
}
