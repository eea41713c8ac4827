package legs

import (
	"github.com/adammck/biped/math3d"
)

// JointState is a single joint of a limb, as last seen by the host.
type JointState struct {
	Pose math3d.Pose

	// World rotation of the body which the joint is physically connected to.
	// Targets are expressed relative to this.
	ParentRotation math3d.Quaternion

	// Center of mass of the joint's body, in the joint's own space.
	CenterOfMass math3d.Vector3
}

// RootState is the character's root body.
type RootState struct {
	Pose     math3d.Pose
	Velocity math3d.Vector3
}

func (r RootState) Forward() math3d.Vector3 { return r.Pose.Rotation.Forward() }
func (r RootState) Up() math3d.Vector3      { return r.Pose.Rotation.Up() }
func (r RootState) Right() math3d.Vector3   { return r.Pose.Rotation.Right() }

// JointTarget is where the actuation layer should drive a joint towards.
type JointTarget struct {

	// World position.
	Position math3d.Vector3

	// Rotation relative to the parent body.
	Rotation math3d.Quaternion

	// Spring and damper gains.
	KP float64
	KD float64
}

// Body is the part of the host which a controller can see and move. Joints are
// ordered from the foot to the hip, and the same number must be returned and
// accepted on every call.
type Body interface {
	Joints() ([]JointState, error)
	Root() (RootState, error)
	Apply([]JointTarget) error
}
