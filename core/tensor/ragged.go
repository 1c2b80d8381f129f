package tensor

import (
	"fmt"

	"github.com/YuminosukeSato/spikelib/pkg/errors"
)

// Batch is the result of a tensor-mode transform: either a rectangular
// *Dense or a *Ragged collection of independently sized trains.
type Batch interface {
	// Trains returns one copied slice per train in row-major batch order.
	// Dense tensors split along axis; Ragged ignores axis.
	Trains(axis int) ([][]float64, error)

	// IsRagged reports whether trains may differ in length.
	IsRagged() bool
}

var (
	_ Batch = (*Dense)(nil)
	_ Batch = (*Ragged)(nil)
)

// Ragged holds one variable-length train per batch index.
// It is never coerced back into a rectangular tensor.
type Ragged struct {
	batchShape []int
	trains     [][]float64
}

// NewRagged creates a ragged collection. The product of batchShape must equal
// len(trains). The train slices are used directly.
func NewRagged(batchShape []int, trains [][]float64) (*Ragged, error) {
	n := 1
	for _, d := range batchShape {
		n *= d
	}
	if n != len(trains) {
		return nil, errors.NewDimensionError("tensor.NewRagged", n, len(trains), 0)
	}
	return &Ragged{batchShape: append([]int(nil), batchShape...), trains: trains}, nil
}

// BatchShape returns the shape of the batch axes.
func (r *Ragged) BatchShape() []int {
	return append([]int(nil), r.batchShape...)
}

// NumTrains returns the number of trains.
func (r *Ragged) NumTrains() int {
	return len(r.trains)
}

// Train returns train i without copying.
func (r *Ragged) Train(i int) []float64 {
	return r.trains[i]
}

// At returns the train at the given batch multi-index without copying.
func (r *Ragged) At(idx ...int) []float64 {
	if len(idx) != len(r.batchShape) {
		panic(fmt.Sprintf("tensor: %d indices for batch of %d dimensions", len(idx), len(r.batchShape)))
	}
	flat := 0
	for k, v := range idx {
		if v < 0 || v >= r.batchShape[k] {
			panic(fmt.Sprintf("tensor: batch index %d out of range [0,%d) on axis %d", v, r.batchShape[k], k))
		}
		flat = flat*r.batchShape[k] + v
	}
	return r.trains[flat]
}

// Lengths returns the length of every train.
func (r *Ragged) Lengths() []int {
	out := make([]int, len(r.trains))
	for i, tr := range r.trains {
		out[i] = len(tr)
	}
	return out
}

// Trains implements Batch.
func (r *Ragged) Trains(int) ([][]float64, error) {
	out := make([][]float64, len(r.trains))
	for i, tr := range r.trains {
		out[i] = append([]float64(nil), tr...)
	}
	return out, nil
}

// IsRagged implements Batch.
func (r *Ragged) IsRagged() bool {
	return true
}

// Clone returns a deep copy.
func (r *Ragged) Clone() *Ragged {
	trains, _ := r.Trains(0)
	return &Ragged{batchShape: r.BatchShape(), trains: trains}
}

func (r *Ragged) String() string {
	return fmt.Sprintf("Ragged(batch=%v, trains=%d)", r.batchShape, len(r.trains))
}
