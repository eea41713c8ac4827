package math3d

import (
	"fmt"
)

// Pose is the position and orientation of a body in the world space.
type Pose struct {
	Position Vector3
	Rotation Quaternion
}

func (p Pose) String() string {
	ea := p.Rotation.EulerAngles()
	return fmt.Sprintf("Pose{x=%+07.3f y=%+07.3f z=%+07.3f, r=%s}", p.Position.X, p.Position.Y, p.Position.Z, ea)
}

// World returns a matrix to transform a vector in the space of the posed body
// into the world space.
func (p Pose) World() Matrix44 {
	return *MakeMatrix44(p.Position, p.Rotation)
}

// Project transforms a point in the space of the posed body into the world
// space.
func (p Pose) Project(v Vector3) Vector3 {
	return v.MultiplyByMatrix44(p.World())
}
