package legs

import (
	"github.com/adammck/biped/math3d"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// FilterSize is the number of samples averaged by a VelocityFilter.
const FilterSize = 32

// VelocityFilter is a moving average over the last FilterSize velocity samples.
// The zero value is ready to use, and starts as if it had seen FilterSize zero
// samples.
type VelocityFilter struct {
	samples  [FilterSize]math3d.Vector3
	filtered math3d.Vector3
	cursor   int
}

// Push adds a sample, evicting the oldest, and returns the new average. The
// average is updated incrementally, then recomputed from scratch each time the
// cursor wraps so that rounding errors can't accumulate.
//
// Non-finite samples are rejected with ErrNumeric, and the previous average is
// returned unchanged.
func (f *VelocityFilter) Push(v math3d.Vector3) (math3d.Vector3, error) {
	if !v.Finite() {
		return f.filtered, errors.Wrapf(ErrNumeric, "velocity sample %v", v)
	}

	evicted := f.samples[f.cursor]
	f.samples[f.cursor] = v
	f.filtered = f.filtered.Add(v.Subtract(evicted).MultiplyByScalar(1.0 / FilterSize))

	f.cursor = (f.cursor + 1) % FilterSize
	if f.cursor == 0 {
		f.filtered = f.Recompute()
	}

	return f.filtered, nil
}

// Filtered returns the current average without modifying the filter.
func (f *VelocityFilter) Filtered() math3d.Vector3 {
	return f.filtered
}

// Recompute returns the average of the buffer, summed in full. It should
// always be within rounding error of Filtered.
func (f *VelocityFilter) Recompute() math3d.Vector3 {
	var xs, ys, zs [FilterSize]float64
	for i, s := range f.samples {
		xs[i] = s.X
		ys[i] = s.Y
		zs[i] = s.Z
	}

	return math3d.Vector3{
		X: floats.Sum(xs[:]) / FilterSize,
		Y: floats.Sum(ys[:]) / FilterSize,
		Z: floats.Sum(zs[:]) / FilterSize,
	}
}
