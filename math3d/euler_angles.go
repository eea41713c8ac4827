package math3d

import (
	"fmt"
	"math"

	"github.com/adammck/biped/utils"
)

// EulerAngles are in radians.
type EulerAngles struct {
	Heading float64 // y
	Pitch   float64 // x
	Bank    float64 // z
}

// Wrap returns the same angles, each shifted into (-π, π].
func (ea EulerAngles) Wrap() EulerAngles {
	return EulerAngles{
		Heading: wrap(ea.Heading),
		Pitch:   wrap(ea.Pitch),
		Bank:    wrap(ea.Bank),
	}
}

func wrap(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a > math.Pi {
		a -= 2 * math.Pi
	} else if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

func (ea EulerAngles) String() string {
	return fmt.Sprintf("&Euler{h=%+.2f° p=%+.2f° b=%+.2f°}", utils.Deg(ea.Heading), utils.Deg(ea.Pitch), utils.Deg(ea.Bank))
}
