package legs

import (
	"github.com/adammck/biped/components/legs/gait"
	"github.com/adammck/biped/config"
	"github.com/pkg/errors"
)

// Strategy decides which phase a limb is in. The controller does the rest.
type Strategy interface {
	Frame(p *config.Params, t float64, id gait.Identity) (gait.Frame, error)
}

// Walk follows a gait schedule built from the cycle parameters, so a pair of
// limbs alternate between swing and stance.
type Walk struct{}

func (Walk) Frame(p *config.Params, t float64, id gait.Identity) (gait.Frame, error) {
	s, err := gait.New(p.CyclePeriod, p.SwingFraction, p.LiftProfile)
	if err != nil {
		return gait.Frame{}, asConfigError(err)
	}

	return s.Frame(t, id)
}

// Stand keeps every limb in stance.
type Stand struct{}

func (Stand) Frame(p *config.Params, t float64, id gait.Identity) (gait.Frame, error) {
	if id != gait.Left && id != gait.Right {
		return gait.Frame{}, errors.Wrapf(gait.ErrInvalidIdentity, "id=%d", id)
	}

	return gait.Frame{Phase: gait.Stance}, nil
}
