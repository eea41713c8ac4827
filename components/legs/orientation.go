package legs

import (
	"github.com/adammck/biped/math3d"
)

// orientations returns the rotation of each joint in the solved chain,
// relative to its parent. Each joint above the foot looks sideways, across
// the segment below it and the character's forward direction, with its up
// axis pointing along that segment and its lateral axis away from the
// character's up. The foot is kept level.
//
// The returned count is the number of joints for which a fallback axis had to
// be used.
func orientations(p []math3d.Vector3, parents []math3d.Quaternion, root RootState, fallback math3d.Vector3) ([]math3d.Quaternion, int) {
	out := make([]math3d.Quaternion, len(p))
	forward := root.Forward()
	up := root.Up()
	degenerate := 0

	out[0] = parents[0].Inverse().Mul(math3d.LookRotation(math3d.Up, parents[0].Up()))

	for i := 1; i < len(p); i++ {
		x := p[i-1].Subtract(p[i])
		if x.Zero() {
			degenerate++
			x = fallback
			if x.Zero() {
				x = up
			}
		}

		y := x.Cross(forward)
		if y.Dot(up) > 0 {
			y = y.Negate()
		}
		if y.Unit().Zero() {
			degenerate++
			y = up.Negate()
		}

		z := y.Cross(x).Unit()
		if z.Zero() {
			degenerate++
		}

		out[i] = parents[i].Inverse().Mul(math3d.LookRotation(z, y))
	}

	return out, degenerate
}

// rollCorrection returns the rotation applied to the hip of a stance limb, to
// counter the roll and yaw of the body. It's derived from the rotation between
// the body's lateral axis and that axis projected onto the ground plane, so a
// level body needs no correction. Pitch is left alone.
func rollCorrection(right math3d.Vector3) math3d.Quaternion {
	e := math3d.FromToRotation(right, right.Horizontal()).EulerAngles().Wrap()
	return math3d.FromEulerAngles(math3d.EulerAngles{
		Heading: e.Pitch,
		Pitch:   0,
		Bank:    -e.Bank,
	})
}
