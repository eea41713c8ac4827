// Package debug collects the points which controllers emit for visualization.
// Nothing in the controllers reads them back.
package debug

import (
	"sync"

	"github.com/adammck/biped/math3d"
)

// Tag says what a marker is, so that a viewer can color it.
type Tag string

const (
	TagPlacementTarget Tag = "placement-target"
	TagCurrentFoot     Tag = "current-foot"
	TagSolvedJoint     Tag = "solved-joint"
)

type Marker struct {
	Limb     string         `json:"limb"`
	Tag      Tag            `json:"tag"`
	Position math3d.Vector3 `json:"position"`
}

// Sink receives markers from a controller, during its tick.
type Sink interface {
	Mark(Marker)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(Marker)

func (f SinkFunc) Mark(m Marker) {
	f(m)
}

// Collector is a sink which keeps every marker until it's drained. It's safe
// to use from multiple goroutines, so the host may drain it while another
// goroutine ticks the controllers.
type Collector struct {
	mu      sync.Mutex
	markers []Marker
}

func (c *Collector) Mark(m Marker) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.markers = append(c.markers, m)
}

// Markers returns a copy of the markers collected so far.
func (c *Collector) Markers() []Marker {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Marker(nil), c.markers...)
}

// Drain returns the markers collected so far, and forgets them.
func (c *Collector) Drain() []Marker {
	c.mu.Lock()
	defer c.mu.Unlock()
	m := c.markers
	c.markers = nil
	return m
}

// Tagged returns the collected markers with the given tag.
func (c *Collector) Tagged(tag Tag) []Marker {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := []Marker{}
	for _, m := range c.markers {
		if m.Tag == tag {
			out = append(out, m)
		}
	}

	return out
}
