package legs

import (
	"math"

	"github.com/adammck/biped/math3d"
	"gonum.org/v1/gonum/spatial/r3"
)

// Below this distance, a point is considered to lie on a line.
const colinearEpsilon = 1e-9

// Solver moves a chain towards a target with forward-and-backward reaching:
// the effector is placed on the target and each joint pulled after it, then
// the anchor is put back and each joint pulled after that. Segment lengths are
// preserved by every call.
//
// Passes bounds the number of round trips per call, so the cost of a call is
// fixed. With a single pass the effector approaches the target over
// successive calls rather than reaching it at once.
type Solver struct {
	Passes    int
	Tolerance float64
}

// Result describes a single call to the solver.
type Result struct {

	// The number of round trips made.
	Passes int

	// Distance between the effector and the target after solving.
	Error float64

	// False if the target was further from the anchor than the reach of the
	// chain, in which case the chain was straightened towards it.
	Reachable bool

	// True if the chain was straight, or the forward direction was parallel to
	// a segment, and a fallback axis had to be used to decide which way to
	// bend it.
	Degenerate bool
}

// Place moves the foot (joint zero) towards target, keeping the hip where it
// is. If the chain is straight, it's bent along the first of the fallback axes
// which isn't parallel to it.
func (s Solver) Place(c *Chain, target math3d.Vector3, fallbacks ...math3d.Vector3) Result {
	return s.reach(c, target, fallbacks)
}

// Balance moves the hip (the last joint) towards target, keeping the foot
// where it is. Then, since each interior joint is free to spin around the
// line between its neighbours, it's turned to the side which faces forward.
func (s Solver) Balance(c *Chain, target, forward math3d.Vector3, fallbacks ...math3d.Vector3) Result {
	c.reverse()
	defer c.reverse()

	r := s.reach(c, target, append([]math3d.Vector3{forward}, fallbacks...))
	if s.bend(c, forward, fallbacks) {
		r.Degenerate = true
	}

	return r
}

// reach moves joint zero of the chain towards the target, anchoring the last.
func (s Solver) reach(c *Chain, target math3d.Vector3, fallbacks []math3d.Vector3) Result {
	p := c.Joints
	l := c.lengths
	n := len(p)
	anchor := p[n-1]
	r := Result{Reachable: true}

	// Unreachable: straighten the whole chain towards the target. This is the
	// best that can be done, and saves iterating.
	dist := anchor.Distance(target)
	reach := c.Reach()
	if dist > reach {
		d := target.Subtract(anchor).Unit()
		for i := n - 2; i >= 0; i-- {
			p[i] = p[i+1].Add(d.MultiplyByScalar(l[i]))
		}

		r.Reachable = false
		r.Passes = 1
		r.Error = p[0].Distance(target)
		return r
	}

	// A straight chain can't be bent by reaching along it, since every joint
	// would be pulled along the same line. Nudge the interior joints to one
	// side to give the solver something to work with.
	if n > 2 && dist < reach*(1-1e-9) && s.straight(p) {
		r.Degenerate = true
		s.unbend(p, l, fallbacks)
	}

	passes := s.Passes
	if passes < 1 {
		passes = 1
	}

	for r.Passes < passes {
		r.Passes++

		// Backward: effector to the target.
		p[0] = target
		for i := 1; i < n; i++ {
			p[i] = p[i-1].Add(direction(p[i].Subtract(p[i-1]), anchor.Subtract(target), fallbacks).MultiplyByScalar(l[i-1]))
		}

		// Forward: anchor back where it was.
		p[n-1] = anchor
		for i := n - 2; i >= 0; i-- {
			p[i] = p[i+1].Add(direction(p[i].Subtract(p[i+1]), target.Subtract(anchor), fallbacks).MultiplyByScalar(l[i]))
		}

		if p[0].Distance(target) <= s.Tolerance {
			break
		}
	}

	r.Error = p[0].Distance(target)
	return r
}

// straight returns true if every interior joint lies on the line between the
// two ends of the chain.
func (s Solver) straight(p []math3d.Vector3) bool {
	a := p[0]
	axis := p[len(p)-1].Subtract(a).Unit()
	if axis.Zero() {
		return false
	}

	for _, j := range p[1 : len(p)-1] {
		if radial(j.Subtract(a), axis).Magnitude() > colinearEpsilon {
			return false
		}
	}

	return true
}

// unbend pushes each interior joint sideways by half the length of the segment
// below it, along the first fallback axis which isn't parallel to the chain.
func (s Solver) unbend(p []math3d.Vector3, l []float64, fallbacks []math3d.Vector3) {
	axis := p[len(p)-1].Subtract(p[0]).Unit()
	side, ok := perpendicular(axis, fallbacks)
	if !ok {
		return
	}

	for i := 1; i < len(p)-1; i++ {
		p[i] = p[i].Add(side.MultiplyByScalar(l[i-1] / 2))
	}
}

// bend spins each interior joint around the line between its neighbours, so
// that it sits on the forward side of that line. Both adjacent segments keep
// their lengths, and the ends of the chain don't move. Returns true if a
// fallback axis was needed.
func (s Solver) bend(c *Chain, forward math3d.Vector3, fallbacks []math3d.Vector3) bool {
	p := c.Joints
	degenerate := false

	for j := 1; j < len(p)-1; j++ {
		a := p[j-1]
		u := p[j+1].Subtract(a).Unit()
		if u.Zero() {
			continue
		}

		centre := a.Add(u.MultiplyByScalar(p[j].Subtract(a).Dot(u)))
		rad := p[j].Subtract(centre)
		if rad.Magnitude() < colinearEpsilon {
			continue
		}

		want, ok := perpendicular(u, []math3d.Vector3{forward})
		if !ok {
			degenerate = true
			want, ok = perpendicular(u, fallbacks)
			if !ok {
				continue
			}
		}

		// Signed angle from the current side to the wanted side, around u.
		ru := rad.Unit()
		angle := math.Atan2(ru.Cross(want).Dot(u), ru.Dot(want))

		rot := r3.NewRotation(angle, r3.Vec{X: u.X, Y: u.Y, Z: u.Z})
		v := rot.Rotate(r3.Vec{X: rad.X, Y: rad.Y, Z: rad.Z})
		p[j] = centre.Add(math3d.Vector3{X: v.X, Y: v.Y, Z: v.Z})
	}

	return degenerate
}

// radial returns the component of v perpendicular to the unit vector axis.
func radial(v, axis math3d.Vector3) math3d.Vector3 {
	return v.Subtract(axis.MultiplyByScalar(v.Dot(axis)))
}

// perpendicular returns the unit component of the first candidate which isn't
// parallel to axis.
func perpendicular(axis math3d.Vector3, candidates []math3d.Vector3) (math3d.Vector3, bool) {
	for _, c := range candidates {
		r := radial(c, axis)
		if r.Magnitude() > colinearEpsilon {
			return r.Unit(), true
		}
	}

	return math3d.ZeroVector3, false
}

// direction returns v as a unit vector. If v is zero, i.e. two joints have
// been pulled onto each other, the first non-zero alternative is used instead
// so that the segment keeps its length.
func direction(v, alt math3d.Vector3, fallbacks []math3d.Vector3) math3d.Vector3 {
	if u := v.Unit(); !u.Zero() {
		return u
	}

	if u := alt.Unit(); !u.Zero() {
		return u
	}

	for _, f := range fallbacks {
		if u := f.Unit(); !u.Zero() {
			return u
		}
	}

	return math3d.Up
}
