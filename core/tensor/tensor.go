// Package tensor provides a dense N-dimensional float64 array with
// axis-lane iteration, plus an explicit ragged collection for results whose
// per-train length varies.
//
// A lane is the 1-D slice of a tensor obtained by fixing every index except
// the one along a chosen axis. In spike-train terms the chosen axis indexes
// time steps and each lane is one train; the remaining axes are batch axes.
package tensor

import (
	"fmt"

	"github.com/YuminosukeSato/spikelib/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Dense is a row-major N-dimensional array of float64 values.
type Dense struct {
	shape   []int
	strides []int
	data    []float64
}

// New creates a tensor with the given shape backed by data.
// If data is nil a zero-filled backing slice is allocated.
// The data slice is used directly, not copied.
func New(shape []int, data []float64) (*Dense, error) {
	size := 1
	for i, d := range shape {
		if d < 0 {
			return nil, errors.NewValidationError("shape", fmt.Sprintf("dimension %d is negative", i), shape)
		}
		size *= d
	}
	if data == nil {
		data = make([]float64, size)
	}
	if len(data) != size {
		return nil, errors.NewDimensionError("tensor.New", size, len(data), 0)
	}
	s := append([]int(nil), shape...)
	return &Dense{shape: s, strides: stridesOf(s), data: data}, nil
}

// Zeros returns a zero-filled tensor of the given shape.
// It panics on a negative dimension.
func Zeros(shape ...int) *Dense {
	t, err := New(shape, nil)
	if err != nil {
		panic(err)
	}
	return t
}

func stridesOf(shape []int) []int {
	strides := make([]int, len(shape))
	acc := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= shape[i]
	}
	return strides
}

// Shape returns a copy of the tensor's shape.
func (t *Dense) Shape() []int {
	return append([]int(nil), t.shape...)
}

// NDim returns the number of dimensions.
func (t *Dense) NDim() int {
	return len(t.shape)
}

// Size returns the total number of elements.
func (t *Dense) Size() int {
	return len(t.data)
}

// Data returns the backing slice in row-major order. Writes are visible to the tensor.
func (t *Dense) Data() []float64 {
	return t.data
}

func (t *Dense) offset(idx []int) int {
	if len(idx) != len(t.shape) {
		panic(fmt.Sprintf("tensor: %d indices for %d dimensions", len(idx), len(t.shape)))
	}
	off := 0
	for i, v := range idx {
		if v < 0 || v >= t.shape[i] {
			panic(fmt.Sprintf("tensor: index %d out of range [0,%d) on axis %d", v, t.shape[i], i))
		}
		off += v * t.strides[i]
	}
	return off
}

// At returns the element at the given multi-index. It panics when out of range.
func (t *Dense) At(idx ...int) float64 {
	return t.data[t.offset(idx)]
}

// Set stores v at the given multi-index. It panics when out of range.
func (t *Dense) Set(v float64, idx ...int) {
	t.data[t.offset(idx)] = v
}

// Clone returns a deep copy.
func (t *Dense) Clone() *Dense {
	return &Dense{
		shape:   append([]int(nil), t.shape...),
		strides: append([]int(nil), t.strides...),
		data:    append([]float64(nil), t.data...),
	}
}

// NormalizeAxis maps a possibly negative axis onto [0, ndim).
// -1 refers to the last axis.
func NormalizeAxis(axis, ndim int) (int, error) {
	a := axis
	if a < 0 {
		a += ndim
	}
	if a < 0 || a >= ndim {
		return 0, errors.NewValueError("tensor.NormalizeAxis",
			fmt.Sprintf("axis %d is out of bounds for tensor of dimension %d", axis, ndim))
	}
	return a, nil
}

// FromMatrix copies a gonum matrix into a 2-D tensor (rows, cols).
func FromMatrix(m mat.Matrix) *Dense {
	r, c := m.Dims()
	t := Zeros(r, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			t.data[i*c+j] = m.At(i, j)
		}
	}
	return t
}

// Matrix copies a 2-D tensor into a gonum dense matrix.
func (t *Dense) Matrix() (*mat.Dense, error) {
	if len(t.shape) != 2 {
		return nil, errors.NewDimensionError("Dense.Matrix", 2, len(t.shape), 0)
	}
	if t.shape[0] == 0 || t.shape[1] == 0 {
		return nil, errors.NewModelError("Dense.Matrix", "empty tensor", errors.ErrEmptyData)
	}
	return mat.NewDense(t.shape[0], t.shape[1], append([]float64(nil), t.data...)), nil
}

// String renders shape and size, e.g. "Dense(shape=[2 5], size=10)".
func (t *Dense) String() string {
	return fmt.Sprintf("Dense(shape=%v, size=%d)", t.shape, len(t.data))
}
