// Package body is a kinematic stand-in for the host: every target applied to a
// limb is taken up instantly, and the root follows the hips around.
package body

import (
	"github.com/adammck/biped/components/legs"
	"github.com/adammck/biped/math3d"
	"github.com/pkg/errors"
)

type FakeBody struct {
	Root  legs.RootState
	Limbs []*FakeLimb

	// Offset from the mean hip position to the root.
	offset math3d.Vector3
	last   math3d.Vector3
}

// FakeLimb implements legs.Body for a single limb of a FakeBody.
type FakeLimb struct {
	body   *FakeBody
	joints []legs.JointState

	// The most recent batches of targets applied, most recent last. Only the
	// last Keep batches are kept, or just the latest if Keep is zero.
	Applied [][]legs.JointTarget
	Keep    int

	// If set, returned from Joints.
	Err error

	// The number of upcoming calls to Apply which should fail.
	FailApply int
}

// New returns a level body at the given position, with no limbs.
func New(position math3d.Vector3) *FakeBody {
	return &FakeBody{
		Root: legs.RootState{
			Pose: math3d.Pose{
				Position: position,
				Rotation: math3d.IdentityRotation,
			},
		},
	}
}

// Attach adds a limb with joints at the given world positions, from the foot
// to the hip. Every joint starts with the identity rotation.
func (b *FakeBody) Attach(positions ...math3d.Vector3) *FakeLimb {
	l := &FakeLimb{
		body:   b,
		joints: make([]legs.JointState, len(positions)),
	}

	for i, p := range positions {
		l.joints[i] = legs.JointState{
			Pose: math3d.Pose{
				Position: p,
				Rotation: math3d.IdentityRotation,
			},
			ParentRotation: math3d.IdentityRotation,
		}
	}

	b.Limbs = append(b.Limbs, l)
	b.offset = b.Root.Pose.Position.Subtract(b.hips())
	b.last = b.hips()
	return l
}

// hips returns the mean position of the hips of every limb.
func (b *FakeBody) hips() math3d.Vector3 {
	sum := math3d.ZeroVector3
	n := 0

	for _, l := range b.Limbs {
		if len(l.joints) == 0 {
			continue
		}

		sum = sum.Add(l.joints[len(l.joints)-1].Pose.Position)
		n++
	}

	if n == 0 {
		return sum
	}

	return sum.MultiplyByScalar(1 / float64(n))
}

// Step moves the root along with the hips, and updates its velocity from how
// far they moved since the last step.
func (b *FakeBody) Step(dt float64) error {
	if !(dt > 0) {
		return errors.Errorf("step must be positive, got %v", dt)
	}

	h := b.hips()
	b.Root.Velocity = h.Subtract(b.last).MultiplyByScalar(1 / dt)
	b.Root.Pose.Position = h.Add(b.offset)
	b.last = h
	return nil
}

// SetJoint overwrites the state of a single joint.
func (l *FakeLimb) SetJoint(i int, s legs.JointState) {
	l.joints[i] = s
}

func (l *FakeLimb) Joints() ([]legs.JointState, error) {
	if l.Err != nil {
		return nil, l.Err
	}

	return append([]legs.JointState(nil), l.joints...), nil
}

func (l *FakeLimb) Root() (legs.RootState, error) {
	return l.body.Root, nil
}

// Apply moves each joint to its target. Rotations are relative to the parent,
// which is the next joint up the chain, or the root for the hip.
func (l *FakeLimb) Apply(targets []legs.JointTarget) error {
	if len(targets) != len(l.joints) {
		return errors.Errorf("expected %d targets, got %d", len(l.joints), len(targets))
	}

	if l.FailApply > 0 {
		l.FailApply--
		return errors.New("apply failed")
	}

	l.record(targets)

	parent := l.body.Root.Pose.Rotation
	for i := len(targets) - 1; i >= 0; i-- {
		rot := parent.Mul(targets[i].Rotation).Normalize()
		l.joints[i] = legs.JointState{
			Pose: math3d.Pose{
				Position: targets[i].Position,
				Rotation: rot,
			},
			ParentRotation: parent,
			CenterOfMass:   l.joints[i].CenterOfMass,
		}
		parent = rot
	}

	return nil
}

func (l *FakeLimb) record(targets []legs.JointTarget) {
	keep := l.Keep
	if keep < 1 {
		keep = 1
	}

	l.Applied = append(l.Applied, append([]legs.JointTarget(nil), targets...))
	if n := len(l.Applied); n > keep {
		copy(l.Applied, l.Applied[n-keep:])
		for i := keep; i < n; i++ {
			l.Applied[i] = nil
		}
		l.Applied = l.Applied[:keep]
	}
}

// Last returns the most recently applied targets, or nil.
func (l *FakeLimb) Last() []legs.JointTarget {
	if len(l.Applied) == 0 {
		return nil
	}

	return l.Applied[len(l.Applied)-1]
}
