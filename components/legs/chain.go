package legs

import (
	"fmt"

	"github.com/adammck/biped/math3d"
	"github.com/pkg/errors"
)

// minSegmentLength is the shortest segment which a chain may contain. Anything
// shorter has no direction, so can't be solved.
const minSegmentLength = 1e-6

// Chain is the positions of the joints of a limb in the world space, from the
// foot (index zero) to the hip (the last index). The length of each segment is
// fixed when the chain is created.
type Chain struct {
	Joints  []math3d.Vector3
	lengths []float64
}

// NewChain returns a chain with the given joint positions, measuring each
// segment. The positions are copied.
func NewChain(joints []math3d.Vector3) (*Chain, error) {
	if len(joints) < 2 {
		return nil, errors.Wrapf(ErrConfig, "chain needs at least two joints, got %d", len(joints))
	}

	lengths := make([]float64, len(joints)-1)
	for i := range lengths {
		if !joints[i].Finite() || !joints[i+1].Finite() {
			return nil, errors.Wrapf(ErrNumeric, "joint %d or %d is not finite", i, i+1)
		}

		lengths[i] = joints[i].Distance(joints[i+1])
		if lengths[i] < minSegmentLength {
			return nil, errors.Wrapf(ErrConfig, "segment %d has zero length", i)
		}
	}

	return &Chain{
		Joints:  append([]math3d.Vector3(nil), joints...),
		lengths: lengths,
	}, nil
}

func (c *Chain) String() string {
	return fmt.Sprintf("&Chain{%v %v}", c.Joints, c.lengths)
}

func (c *Chain) Len() int {
	return len(c.Joints)
}

// Lengths returns the fixed length of each segment. Segment i joins joint i to
// joint i+1.
func (c *Chain) Lengths() []float64 {
	return append([]float64(nil), c.lengths...)
}

// Reach returns the sum of the segment lengths.
func (c *Chain) Reach() float64 {
	t := 0.0
	for _, l := range c.lengths {
		t += l
	}
	return t
}

func (c *Chain) Foot() math3d.Vector3 {
	return c.Joints[0]
}

func (c *Chain) Hip() math3d.Vector3 {
	return c.Joints[len(c.Joints)-1]
}

// Set overwrites the joint positions without changing the segment lengths.
func (c *Chain) Set(joints []math3d.Vector3) error {
	if len(joints) != len(c.Joints) {
		return errors.Wrapf(ErrConfig, "expected %d joints, got %d", len(c.Joints), len(joints))
	}

	for i, j := range joints {
		if !j.Finite() {
			return errors.Wrapf(ErrNumeric, "joint %d is %v", i, j)
		}
	}

	copy(c.Joints, joints)
	return nil
}

// Clone returns a deep copy of the chain.
func (c *Chain) Clone() *Chain {
	return &Chain{
		Joints:  append([]math3d.Vector3(nil), c.Joints...),
		lengths: c.lengths,
	}
}

// reverse flips the chain in place, so that the hip becomes index zero.
func (c *Chain) reverse() {
	for i, j := 0, len(c.Joints)-1; i < j; i, j = i+1, j-1 {
		c.Joints[i], c.Joints[j] = c.Joints[j], c.Joints[i]
	}

	l := make([]float64, len(c.lengths))
	for i, v := range c.lengths {
		l[len(l)-1-i] = v
	}
	c.lengths = l
}
