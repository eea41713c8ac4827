package biped

import (
	"time"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "biped",
})

// Tick is passed to every component, once per fixed step.
type Tick struct {

	// Time since the biped was booted.
	Elapsed time.Duration

	// Fixed duration of every tick.
	Step time.Duration
}

// Time returns the elapsed time in seconds.
func (t Tick) Time() float64 {
	return t.Elapsed.Seconds()
}

// Duration returns the step in seconds.
func (t Tick) Duration() float64 {
	return t.Step.Seconds()
}

type Component interface {
	Boot() error
	Tick(Tick) error
}

type Biped struct {
	Components []Component

	// Fixed duration of each tick.
	Step time.Duration

	ticks int
}

// New creates a biped which advances by step every tick.
func New(step time.Duration) *Biped {
	return &Biped{
		Components: []Component{},
		Step:       step,
	}
}

// Add registers a component to receive ticks every frame.
func (b *Biped) Add(c Component) {
	b.Components = append(b.Components, c)
}

// Boot calls Boot on each component.
func (b *Biped) Boot() error {
	for _, c := range b.Components {
		err := c.Boot()
		if err != nil {
			return err
		}
	}

	b.ticks = 0
	return nil
}

// Tick calls Tick on each component, in the order they were added. A failing
// component doesn't prevent the others from ticking; the first error is
// returned after all of them have run.
func (b *Biped) Tick() error {
	t := Tick{
		Elapsed: time.Duration(b.ticks) * b.Step,
		Step:    b.Step,
	}
	b.ticks++

	var first error
	for _, c := range b.Components {
		err := c.Tick(t)
		if err != nil {
			log.Warnf("tick %d: %s", b.ticks, err)
			if first == nil {
				first = err
			}
		}
	}

	return first
}

// Ticks returns the number of ticks since boot.
func (b *Biped) Ticks() int {
	return b.ticks
}
