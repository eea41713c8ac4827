package legs

import (
	"github.com/adammck/biped"
	"github.com/adammck/biped/components/legs/gait"
	"github.com/adammck/biped/config"
	"github.com/adammck/biped/debug"
	"github.com/adammck/biped/math3d"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "legs",
})

// Controller drives a single limb. Each tick it decides whether the limb is
// swinging or standing, picks a target for the foot, solves the chain towards
// it, then moves the hip along with the desired velocity and hands the
// resulting joint targets to the body.
type Controller struct {
	Name     string
	Identity gait.Identity

	body     Body
	params   *config.Params
	strategy Strategy
	sink     debug.Sink
	log      *logrus.Entry

	chain  *Chain
	filter VelocityFilter
	phase  gait.Phase

	// The targets most recently applied. Re-applied if a tick fails.
	last []JointTarget

	degenerate int
}

// New returns a controller for the limb exposed by body. The chain is measured
// once, here, and its segment lengths are preserved from then on. The params
// are read (never written) at the start of every tick. The sink may be nil.
func New(name string, id gait.Identity, body Body, params *config.Params, strategy Strategy, sink debug.Sink) (*Controller, error) {
	if id != gait.Left && id != gait.Right {
		return nil, errors.Wrapf(ErrConfig, "invalid identity %d", id)
	}

	if body == nil || params == nil || strategy == nil {
		return nil, errors.Wrap(ErrConfig, "body, params and strategy are required")
	}

	if err := params.Validate(); err != nil {
		return nil, asConfigError(err)
	}

	joints, err := body.Joints()
	if err != nil {
		return nil, errors.Wrap(err, "error while reading joints")
	}

	pos := make([]math3d.Vector3, len(joints))
	for i, j := range joints {
		pos[i] = j.Pose.Position
	}

	chain, err := NewChain(pos)
	if err != nil {
		return nil, err
	}

	return &Controller{
		Name:     name,
		Identity: id,
		body:     body,
		params:   params,
		strategy: strategy,
		sink:     sink,
		log:      log.WithFields(logrus.Fields{"limb": name, "id": int(id)}),
		chain:    chain,
		phase:    gait.Stance,
	}, nil
}

// NewPair returns two controllers which alternate, one for each body.
func NewPair(left, right Body, params *config.Params, strategy Strategy, sink debug.Sink) ([2]*Controller, error) {
	l, err := New("left", gait.Left, left, params, strategy, sink)
	if err != nil {
		return [2]*Controller{}, errors.Wrap(err, "left")
	}

	r, err := New("right", gait.Right, right, params, strategy, sink)
	if err != nil {
		return [2]*Controller{}, errors.Wrap(err, "right")
	}

	return [2]*Controller{l, r}, nil
}

// Boot forgets any filtered velocity and held targets.
func (c *Controller) Boot() error {
	c.filter = VelocityFilter{}
	c.last = nil
	c.phase = gait.Stance
	c.log.Infof("booted with %d joints, reach=%0.3f", c.chain.Len(), c.chain.Reach())
	return nil
}

// Phase returns the phase of the limb during the last successful tick.
func (c *Controller) Phase() gait.Phase {
	return c.phase
}

// Degenerate returns the number of times a fallback axis was needed, either to
// bend a straight chain or to orient a joint.
func (c *Controller) Degenerate() int {
	return c.degenerate
}

// Chain returns a copy of the joint positions solved during the last tick.
func (c *Controller) Chain() *Chain {
	return c.chain.Clone()
}

// Tick computes and applies new targets for every joint. If anything goes
// wrong, the previous targets are applied again and the error is returned.
func (c *Controller) Tick(t biped.Tick) error {
	p := c.params.Snapshot()

	targets, err := c.targets(&p, t.Time(), t.Duration())
	if err != nil {
		c.hold()
		return errors.Wrapf(err, "%s", c.Name)
	}

	if err := c.body.Apply(targets); err != nil {
		c.hold()
		return errors.Wrapf(err, "%s: error while applying targets", c.Name)
	}

	c.last = targets
	return nil
}

// hold re-applies the last good targets, if there are any.
func (c *Controller) hold() {
	if c.last == nil {
		c.log.Warn("no previous targets to hold")
		return
	}

	c.log.Warn("holding previous targets")
	if err := c.body.Apply(c.last); err != nil {
		c.log.Warnf("error while holding targets: %s", err)
	}
}

func (c *Controller) targets(p *config.Params, now, dt float64) ([]JointTarget, error) {
	joints, err := c.body.Joints()
	if err != nil {
		return nil, errors.Wrap(err, "error while reading joints")
	}

	if len(joints) != c.chain.Len() {
		return nil, errors.Wrapf(ErrConfig, "expected %d joints, got %d", c.chain.Len(), len(joints))
	}

	root, err := c.body.Root()
	if err != nil {
		return nil, errors.Wrap(err, "error while reading root")
	}

	if !root.Pose.Position.Finite() || !root.Pose.Rotation.Finite() {
		return nil, errors.Wrapf(ErrNumeric, "root is %v", root.Pose)
	}

	// The filter sees every tick, in either phase, so it's warm by the time
	// the limb next swings. A bad sample is dropped and the previous value is
	// used.
	vel, err := c.filter.Push(root.Velocity)
	if err != nil {
		c.log.Warnf("rejected velocity sample: %s", err)
	}

	frame, err := c.strategy.Frame(p, now, c.Identity)
	if err != nil {
		return nil, err
	}

	if frame.Phase != c.phase {
		c.log.Debugf("%s -> %s", c.phase, frame.Phase)
	}

	pos := make([]math3d.Vector3, len(joints))
	parents := make([]math3d.Quaternion, len(joints))
	for i, j := range joints {
		pos[i] = j.Pose.Position
		parents[i] = j.ParentRotation
		if !j.ParentRotation.Finite() {
			return nil, errors.Wrapf(ErrNumeric, "parent rotation of joint %d is %v", i, j.ParentRotation)
		}
	}

	if err := c.chain.Set(pos); err != nil {
		return nil, err
	}

	// Targets are measured from the hip, so the foot lands relative to the
	// body rather than relative to where it happens to be.
	foot := joints[0]
	anchor := joints[len(joints)-1].Pose.Position
	var target math3d.Vector3

	switch frame.Phase {
	case gait.Swing:
		offset, clamped, err := SwingFootOffset(vel, root.Pose.Position.Y-p.GroundOffset, p.Gravity, p.DesiredVelocity, p.VelocityBias)
		if err != nil {
			return nil, err
		}

		if clamped {
			c.log.Warnf("root is below the ground (y=%0.3f), placement clamped", root.Pose.Position.Y)
		}

		target = anchor.Add(offset)
		target.Y = p.GroundOffset + p.LiftHeight*frame.Y
		c.mark(p, debug.TagPlacementTarget, target)
		c.mark(p, debug.TagCurrentFoot, foot.Pose.Position)

	default:

		// Under the hip, corrected for the drift of the foot's center of mass.
		com := foot.Pose.Project(foot.CenterOfMass)
		target = anchor.Add(foot.Pose.Position.Subtract(com))
		target.Y = p.GroundOffset
		c.mark(p, debug.TagPlacementTarget, target)
	}

	if !target.Finite() {
		return nil, errors.Wrapf(ErrNumeric, "foot target is %v", target)
	}

	s := Solver{Passes: p.SolverPasses, Tolerance: p.SolverTolerance}
	fallbacks := []math3d.Vector3{p.DesiredVelocity, root.Up(), root.Forward()}

	r := s.Place(c.chain, target, fallbacks...)
	c.count(r.Degenerate, "foot placement")

	hip := c.chain.Hip().Add(p.DesiredVelocity.MultiplyByScalar(p.VelocityGain * dt))
	hip.Y = p.GroundOffset + p.DesiredHeight

	r = s.Balance(c.chain, hip, root.Forward(), fallbacks...)
	c.count(r.Degenerate, "hip placement")

	for _, j := range c.chain.Joints {
		c.mark(p, debug.TagSolvedJoint, j)
	}

	rots, n := orientations(c.chain.Joints, parents, root, p.DesiredVelocity)
	c.count(n > 0, "orientation")

	if frame.Phase == gait.Stance {
		h := len(rots) - 1
		rots[h] = rots[h].Mul(rollCorrection(root.Right()))
	}

	targets := make([]JointTarget, len(rots))
	for i := range rots {
		targets[i] = JointTarget{
			Position: c.chain.Joints[i],
			Rotation: rots[i],
			KP:       p.KP,
			KD:       p.KD,
		}

		if !targets[i].Position.Finite() || !targets[i].Rotation.Finite() {
			return nil, errors.Wrapf(ErrNumeric, "target of joint %d is %v", i, targets[i])
		}
	}

	c.phase = frame.Phase
	return targets, nil
}

func (c *Controller) count(degenerate bool, what string) {
	if !degenerate {
		return
	}

	c.degenerate++
	c.log.Debugf("fallback axis used during %s (%d so far)", what, c.degenerate)
}

func (c *Controller) mark(p *config.Params, tag debug.Tag, v math3d.Vector3) {
	if !p.Debug || c.sink == nil {
		return
	}

	c.sink.Mark(debug.Marker{Limb: c.Name, Tag: tag, Position: v})
}
