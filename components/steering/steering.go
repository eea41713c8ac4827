package steering

import (
	"github.com/adammck/biped"
	"github.com/adammck/biped/config"
	"github.com/adammck/biped/math3d"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "steering",
})

// Source provides the velocity which the body is being asked to walk at.
type Source interface {
	Command(biped.Tick) (math3d.Vector3, error)
}

// Steering moves the desired velocity in the shared params towards the
// commanded velocity, no faster than the acceleration limit. It should be
// ticked before the limbs, so they all see the same value.
type Steering struct {
	params *config.Params
	source Source

	// Maximum change in desired velocity, per second.
	Acceleration float64
}

func New(params *config.Params, source Source, acceleration float64) *Steering {
	return &Steering{
		params:       params,
		source:       source,
		Acceleration: acceleration,
	}
}

func (s *Steering) Boot() error {
	if !(s.Acceleration > 0) {
		return errors.Errorf("acceleration must be positive, got %v", s.Acceleration)
	}

	return nil
}

func (s *Steering) Tick(t biped.Tick) error {
	cmd, err := s.source.Command(t)
	if err != nil {
		return errors.Wrap(err, "error while reading command")
	}

	if !cmd.Finite() {
		return errors.Errorf("command is not finite: %v", cmd)
	}

	cur := s.params.DesiredVelocity
	diff := cmd.Subtract(cur)
	limit := s.Acceleration * t.Duration()

	if diff.Magnitude() > limit {
		diff = diff.Unit().MultiplyByScalar(limit)
	}

	if !diff.Zero() {
		s.params.DesiredVelocity = cur.Add(diff)
		log.Debugf("desired velocity=%s", s.params.DesiredVelocity)
	}

	return nil
}

// Fixed is a source which always commands the same velocity.
type Fixed math3d.Vector3

func (f Fixed) Command(biped.Tick) (math3d.Vector3, error) {
	return math3d.Vector3(f), nil
}

// Step is a single entry in a Script.
type Step struct {
	At       float64
	Velocity math3d.Vector3
}

// Script is a source which commands each velocity from the time (in seconds)
// given, until the next. Before the first step, it commands zero.
type Script []Step

func (s Script) Command(t biped.Tick) (math3d.Vector3, error) {
	v := math3d.ZeroVector3
	for _, st := range s {
		if st.At > t.Time() {
			break
		}
		v = st.Velocity
	}

	return v, nil
}
