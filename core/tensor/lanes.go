package tensor

import (
	"github.com/YuminosukeSato/spikelib/pkg/errors"
)

// NumLanes returns the number of 1-D lanes along axis, i.e. the product of
// every other dimension.
func (t *Dense) NumLanes(axis int) (int, error) {
	a, err := NormalizeAxis(axis, len(t.shape))
	if err != nil {
		return 0, err
	}
	return t.numLanes(a), nil
}

func (t *Dense) numLanes(a int) int {
	n := 1
	for i, d := range t.shape {
		if i != a {
			n *= d
		}
	}
	return n
}

// laneBase returns the flat offset of element 0 of lane i along axis a.
// Lanes are numbered in row-major order over the batch axes.
func (t *Dense) laneBase(a, i int) int {
	base := 0
	for k := len(t.shape) - 1; k >= 0; k-- {
		if k == a {
			continue
		}
		d := t.shape[k]
		base += (i % d) * t.strides[k]
		i /= d
	}
	return base
}

// Lane returns a copy of lane i along axis.
func (t *Dense) Lane(axis, i int) ([]float64, error) {
	a, err := NormalizeAxis(axis, len(t.shape))
	if err != nil {
		return nil, err
	}
	if n := t.numLanes(a); i < 0 || i >= n {
		return nil, errors.NewValueError("Dense.Lane", "lane index out of range")
	}
	return t.lane(a, i), nil
}

func (t *Dense) lane(a, i int) []float64 {
	base, stride, n := t.laneBase(a, i), t.strides[a], t.shape[a]
	out := make([]float64, n)
	for j := 0; j < n; j++ {
		out[j] = t.data[base+j*stride]
	}
	return out
}

func (t *Dense) setLane(a, i int, values []float64) {
	base, stride := t.laneBase(a, i), t.strides[a]
	for j, v := range values {
		t.data[base+j*stride] = v
	}
}

// SetLane overwrites lane i along axis with values.
func (t *Dense) SetLane(axis, i int, values []float64) error {
	a, err := NormalizeAxis(axis, len(t.shape))
	if err != nil {
		return err
	}
	if n := t.numLanes(a); i < 0 || i >= n {
		return errors.NewValueError("Dense.SetLane", "lane index out of range")
	}
	if len(values) != t.shape[a] {
		return errors.NewDimensionError("Dense.SetLane", t.shape[a], len(values), a)
	}
	t.setLane(a, i, values)
	return nil
}

// UpdateLanes calls fn on every lane along axis and writes the (possibly
// modified) lane back into t. fn must not change the lane length.
func (t *Dense) UpdateLanes(axis int, fn func(lane []float64) error) error {
	a, err := NormalizeAxis(axis, len(t.shape))
	if err != nil {
		return err
	}
	n := t.numLanes(a)
	for i := 0; i < n; i++ {
		lane := t.lane(a, i)
		if err := fn(lane); err != nil {
			return err
		}
		t.setLane(a, i, lane)
	}
	return nil
}

// MapLanes applies fn to every lane of X along axis and assembles the results
// into a new tensor whose axis length is outLen. Every result must have
// exactly outLen values.
func MapLanes(X *Dense, axis, outLen int, fn func(lane []float64) ([]float64, error)) (*Dense, error) {
	a, err := NormalizeAxis(axis, len(X.shape))
	if err != nil {
		return nil, err
	}
	if outLen < 0 {
		return nil, errors.NewValidationError("outLen", "must be non-negative", outLen)
	}
	shape := X.Shape()
	shape[a] = outLen
	out, err := New(shape, nil)
	if err != nil {
		return nil, err
	}
	n := X.numLanes(a)
	for i := 0; i < n; i++ {
		res, err := fn(X.lane(a, i))
		if err != nil {
			return nil, err
		}
		if len(res) != outLen {
			return nil, errors.NewDimensionError("tensor.MapLanes", outLen, len(res), a)
		}
		out.setLane(a, i, res)
	}
	return out, nil
}

// MapLanesRagged applies fn to every lane of X along axis and keeps each
// result as its own train. The batch shape of the result is X's shape with
// axis removed.
func MapLanesRagged(X *Dense, axis int, fn func(lane []float64) ([]float64, error)) (*Ragged, error) {
	a, err := NormalizeAxis(axis, len(X.shape))
	if err != nil {
		return nil, err
	}
	batch := make([]int, 0, len(X.shape)-1)
	for i, d := range X.shape {
		if i != a {
			batch = append(batch, d)
		}
	}
	n := X.numLanes(a)
	trains := make([][]float64, n)
	for i := 0; i < n; i++ {
		res, err := fn(X.lane(a, i))
		if err != nil {
			return nil, err
		}
		trains[i] = res
	}
	return &Ragged{batchShape: batch, trains: trains}, nil
}

// Trains returns a copy of every lane along axis, in lane order.
func (t *Dense) Trains(axis int) ([][]float64, error) {
	a, err := NormalizeAxis(axis, len(t.shape))
	if err != nil {
		return nil, err
	}
	n := t.numLanes(a)
	out := make([][]float64, n)
	for i := 0; i < n; i++ {
		out[i] = t.lane(a, i)
	}
	return out, nil
}

// IsRagged reports false: a Dense tensor is always rectangular.
func (t *Dense) IsRagged() bool {
	return false
}
