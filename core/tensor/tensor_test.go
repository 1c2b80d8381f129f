package tensor

import (
	"testing"

	"github.com/YuminosukeSato/spikelib/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		shape   []int
		data    []float64
		wantErr bool
	}{
		{"nil data allocates", []int{2, 3}, nil, false},
		{"matching data", []int{2, 2}, []float64{1, 2, 3, 4}, false},
		{"size mismatch", []int{2, 2}, []float64{1, 2, 3}, true},
		{"negative dimension", []int{-1, 2}, nil, true},
		{"zero dimension", []int{0, 4}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := New(tt.shape, tt.data)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.shape, d.Shape())
		})
	}
}

func TestAtSetRowMajor(t *testing.T) {
	d, err := New([]int{2, 3}, []float64{0, 1, 2, 3, 4, 5})
	require.NoError(t, err)

	assert.Equal(t, 5.0, d.At(1, 2))
	assert.Equal(t, 3.0, d.At(1, 0))

	d.Set(42, 0, 1)
	assert.Equal(t, 42.0, d.Data()[1])

	assert.Panics(t, func() { d.At(2, 0) })
	assert.Panics(t, func() { d.At(0) })
}

func TestNormalizeAxis(t *testing.T) {
	a, err := NormalizeAxis(-1, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, a)

	a, err = NormalizeAxis(0, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, a)

	_, err = NormalizeAxis(3, 3)
	require.Error(t, err)
	var ve *errors.ValueError
	assert.True(t, errors.As(err, &ve))

	_, err = NormalizeAxis(-4, 3)
	assert.Error(t, err)
}

func TestLanes(t *testing.T) {
	// shape (2, 3): axis 1 gives 2 lanes of length 3, axis 0 gives 3 lanes of length 2.
	d, err := New([]int{2, 3}, []float64{0, 1, 2, 3, 4, 5})
	require.NoError(t, err)

	n, err := d.NumLanes(-1)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	lane, err := d.Lane(1, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4, 5}, lane)

	n, err = d.NumLanes(0)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	lane, err = d.Lane(0, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 5}, lane)

	// Lane returns a copy.
	lane[0] = 99
	assert.Equal(t, 2.0, d.At(0, 2))

	_, err = d.Lane(0, 3)
	assert.Error(t, err)
}

func TestLanes3D(t *testing.T) {
	data := make([]float64, 2*3*4)
	for i := range data {
		data[i] = float64(i)
	}
	d, err := New([]int{2, 3, 4}, data)
	require.NoError(t, err)

	// Middle axis: lanes are ordered by (i, k) row-major.
	n, err := d.NumLanes(1)
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	lane, err := d.Lane(1, 5) // i=1, k=1
	require.NoError(t, err)
	assert.Equal(t, []float64{13, 17, 21}, lane)
}

func TestSetLane(t *testing.T) {
	d := Zeros(2, 3)
	require.NoError(t, d.SetLane(0, 1, []float64{7, 8}))
	assert.Equal(t, []float64{0, 7, 0, 0, 8, 0}, d.Data())

	err := d.SetLane(0, 1, []float64{1, 2, 3})
	require.Error(t, err)
	var de *errors.DimensionError
	assert.True(t, errors.As(err, &de))
}

func TestUpdateLanes(t *testing.T) {
	d, err := New([]int{2, 2}, []float64{1, 2, 3, 4})
	require.NoError(t, err)

	err = d.UpdateLanes(-1, func(lane []float64) error {
		lane[0], lane[1] = lane[1], lane[0]
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 1, 4, 3}, d.Data())
}

func TestMapLanes(t *testing.T) {
	d, err := New([]int{2, 3}, []float64{1, 2, 4, 10, 20, 40})
	require.NoError(t, err)

	sum := func(lane []float64) ([]float64, error) {
		s := 0.0
		for _, v := range lane {
			s += v
		}
		return []float64{s}, nil
	}

	out, err := MapLanes(d, -1, 1, sum)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, out.Shape())
	assert.Equal(t, []float64{7, 70}, out.Data())

	// Input is untouched.
	assert.Equal(t, []float64{1, 2, 4, 10, 20, 40}, d.Data())

	_, err = MapLanes(d, -1, 2, sum)
	require.Error(t, err)
	var de *errors.DimensionError
	assert.True(t, errors.As(err, &de))
}

func TestMapLanesRagged(t *testing.T) {
	d, err := New([]int{2, 3}, []float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)

	i := 0
	r, err := MapLanesRagged(d, 1, func(lane []float64) ([]float64, error) {
		i++
		return lane[:i], nil
	})
	require.NoError(t, err)
	assert.True(t, r.IsRagged())
	assert.Equal(t, []int{2}, r.BatchShape())
	assert.Equal(t, []int{1, 2}, r.Lengths())
	assert.Equal(t, []float64{4, 5}, r.At(1))
}

func TestRagged(t *testing.T) {
	_, err := NewRagged([]int{2, 2}, [][]float64{{1}, {2}})
	require.Error(t, err)

	r, err := NewRagged([]int{2}, [][]float64{{1, 2}, {3}})
	require.NoError(t, err)
	assert.Equal(t, 2, r.NumTrains())

	trains, err := r.Trains(0)
	require.NoError(t, err)
	trains[0][0] = 100
	assert.Equal(t, 1.0, r.Train(0)[0])

	c := r.Clone()
	c.Train(1)[0] = 9
	assert.Equal(t, 3.0, r.Train(1)[0])
}

func TestBatchDense(t *testing.T) {
	var b Batch = Zeros(3, 2)
	assert.False(t, b.IsRagged())
	trains, err := b.Trains(-1)
	require.NoError(t, err)
	assert.Len(t, trains, 3)
}

func TestMatrixBridge(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	d := FromMatrix(m)
	assert.Equal(t, []int{2, 2}, d.Shape())
	assert.Equal(t, 3.0, d.At(1, 0))

	back, err := d.Matrix()
	require.NoError(t, err)
	assert.True(t, mat.Equal(m, back))

	_, err = Zeros(2, 2, 2).Matrix()
	assert.Error(t, err)

	_, err = Zeros(0, 2).Matrix()
	assert.True(t, errors.Is(err, errors.ErrEmptyData))
}
