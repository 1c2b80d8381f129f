package preprocessing

import (
	"math"
	"math/rand"
	"testing"

	"github.com/YuminosukeSato/spikelib/core/tensor"
	"github.com/YuminosukeSato/spikelib/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func mustBinarizer(t *testing.T, binSize float64, opts ...BinarizationOption) *TrainBinarizationTransform {
	t.Helper()
	b, err := NewTrainBinarizationTransform(binSize, opts...)
	require.NoError(t, err)
	return b
}

func TestNewTrainBinarizationTransformValidation(t *testing.T) {
	tests := []struct {
		name    string
		binSize float64
		opts    []BinarizationOption
	}{
		{"zero bin size", 0, nil},
		{"negative bin size", -1, nil},
		{"nan bin size", math.NaN(), nil},
		{"inf bin size", math.Inf(1), nil},
		{"zero duration", 1, []BinarizationOption{WithTrainDuration(0)}},
		{"negative duration", 1, []BinarizationOption{WithTrainDuration(-5)}},
		{"nan start", 1, []BinarizationOption{WithStartTime(math.NaN())}},
		{"inf start", 1, []BinarizationOption{WithStartTime(math.Inf(-1))}},
		{"nan duration", 1, []BinarizationOption{WithTrainDuration(math.NaN())}},
		{"inf duration", 1, []BinarizationOption{WithTrainDuration(math.Inf(1))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTrainBinarizationTransform(tt.binSize, tt.opts...)
			require.Error(t, err)
			var ve *errors.ValidationError
			assert.True(t, errors.As(err, &ve))
		})
	}
}

func TestBinarizationScenario(t *testing.T) {
	// spike times [1 3 4 7], 3 bins of width 2 over [1, 7]
	b := mustBinarizer(t, 2)
	got, err := b.SingleTrainTransform([]float64{1, 2, 1, 3})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 1}, got)

	// Same spikes with the range anchored at zero.
	b = mustBinarizer(t, 2, WithStartTime(0))
	got, err = b.SingleTrainTransform([]float64{1, 2, 1, 3})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 1}, got)
}

func TestBinarizationLastBinClosed(t *testing.T) {
	// spike times [2 4 6 10] over [0, 10], 5 bins: 10 falls in the last bin.
	b := mustBinarizer(t, 2, WithStartTime(0), WithTrainDuration(10))
	got, err := b.SingleTrainTransform([]float64{2, 2, 2, 4})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 1, 1, 1}, got)
}

func TestBinarizationDropsOutOfRange(t *testing.T) {
	// spike times [1 5 12 20], range [4, 14], 7 bins of width 10/7
	b := mustBinarizer(t, 2, WithStartTime(4), WithTrainDuration(10))
	got, err := b.SingleTrainTransform([]float64{1, 4, 7, 8})
	require.NoError(t, err)
	assert.Len(t, got, 7)
	assert.Equal(t, 2.0, floats.Sum(got))
}

func TestBinarizationFixedSize(t *testing.T) {
	b := mustBinarizer(t, 10, WithStartTime(0), WithTrainDuration(100))
	assert.True(t, b.FixedSizeOutput())
	assert.Equal(t, 10, b.NumBins())

	rng := rand.New(rand.NewSource(3))
	for trial := 0; trial < 20; trial++ {
		train := make([]float64, 1+rng.Intn(40))
		for i := range train {
			train[i] = rng.ExpFloat64() * float64(1+trial)
		}
		got, err := b.SingleTrainTransform(train)
		require.NoError(t, err)
		assert.Len(t, got, 10)
	}

	assert.False(t, mustBinarizer(t, 10, WithStartTime(0)).FixedSizeOutput())
	assert.False(t, mustBinarizer(t, 10, WithTrainDuration(100)).FixedSizeOutput())
	assert.Equal(t, -1, mustBinarizer(t, 10).NumBins())
}

func TestBinarizationCountConservation(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	b := mustBinarizer(t, 5, WithStartTime(10), WithTrainDuration(50))

	for trial := 0; trial < 20; trial++ {
		train := make([]float64, 1+rng.Intn(60))
		for i := range train {
			train[i] = rng.Float64() * 4
		}
		times := make([]float64, len(train))
		floats.CumSum(times, train)

		inRange := 0
		for _, ts := range times {
			if ts >= 10 && ts <= 60 {
				inRange++
			}
		}

		got, err := b.SingleTrainTransform(train)
		require.NoError(t, err)
		assert.Equal(t, float64(inRange), floats.Sum(got))
	}

	// Without a fixed range every spike is inside [min, max].
	b = mustBinarizer(t, 0.5)
	train := []float64{1, 0.3, 2, 0.7, 1.1, 4}
	got, err := b.SingleTrainTransform(train)
	require.NoError(t, err)
	assert.Equal(t, float64(len(train)), floats.Sum(got))
}

func TestBinarizationBinaryRange(t *testing.T) {
	b := mustBinarizer(t, 3, WithKeepSpikeCounts(false))
	got, err := b.SingleTrainTransform([]float64{0.5, 0.1, 0.1, 0.1, 5, 0.2, 9})
	require.NoError(t, err)
	require.NotEmpty(t, got)
	for _, v := range got {
		assert.True(t, v == 0 || v == 1, "value %v is not 0 or 1", v)
	}
	assert.Equal(t, 1.0, got[0])
}

func TestBinarizationSinglePrecision(t *testing.T) {
	b := mustBinarizer(t, 1)
	got, err := b.SingleTrainTransform([]float64{0.25, 0.25, 0.25, 3})
	require.NoError(t, err)
	for _, v := range got {
		assert.Equal(t, v, float64(float32(v)))
	}
}

func TestBinarizationErrors(t *testing.T) {
	b := mustBinarizer(t, 2)

	_, err := b.SingleTrainTransform(nil)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))

	// A single spike has start == end without a fixed duration.
	_, err = b.SingleTrainTransform([]float64{5})
	assert.True(t, errors.Is(err, errors.ErrDegenerateBinning))

	// end / binSize rounds to zero bins.
	_, err = mustBinarizer(t, 10).SingleTrainTransform([]float64{1, 2, 3})
	assert.True(t, errors.Is(err, errors.ErrDegenerateBinning))
	var me *errors.ModelError
	assert.True(t, errors.As(err, &me))

	_, err = b.SingleTrainTransform([]float64{1, math.NaN()})
	var ne *errors.NumericalInstabilityError
	assert.True(t, errors.As(err, &ne))

	// Fixed range ending before zero gives no bins.
	neg := mustBinarizer(t, 1, WithStartTime(-10), WithTrainDuration(5))
	_, err = neg.SingleTrainTransform([]float64{1})
	assert.True(t, errors.Is(err, errors.ErrDegenerateBinning))
	_, err = TransformTensor(neg, tensor.Zeros(2, 3))
	assert.True(t, errors.Is(err, errors.ErrDegenerateBinning))
}

func TestBinarizationTensorFixed(t *testing.T) {
	// times [1 3 6] -> [2 1]; times [4 8 12] -> [1 1], 12 dropped
	X, err := tensor.New([]int{2, 3}, []float64{1, 2, 3, 4, 4, 4})
	require.NoError(t, err)

	b := mustBinarizer(t, 5, WithStartTime(0), WithTrainDuration(10))
	out, err := TransformTensor(b, X)
	require.NoError(t, err)
	require.False(t, out.IsRagged())

	d := out.(*tensor.Dense)
	assert.Equal(t, []int{2, 2}, d.Shape())
	assert.Equal(t, []float64{2, 1, 1, 1}, d.Data())

	// Trains laid out along axis 0.
	XT, err := tensor.New([]int{3, 2}, []float64{1, 4, 2, 4, 3, 4})
	require.NoError(t, err)
	out, err = TransformTensor(b, XT, WithAxis(0))
	require.NoError(t, err)
	d = out.(*tensor.Dense)
	assert.Equal(t, []int{2, 2}, d.Shape())
	assert.Equal(t, []float64{2, 1, 1, 1}, d.Data())
}

func TestBinarizationTensorRagged(t *testing.T) {
	X, err := tensor.New([]int{2, 4}, []float64{1, 2, 1, 3, 1, 1, 1, 1})
	require.NoError(t, err)

	out, err := TransformTensor(mustBinarizer(t, 2), X)
	require.NoError(t, err)
	require.True(t, out.IsRagged())

	r := out.(*tensor.Ragged)
	assert.Equal(t, []int{2}, r.BatchShape())
	assert.Equal(t, []int{3, 2}, r.Lengths())
	assert.Equal(t, []float64{1, 2, 1}, r.Train(0))
	assert.Equal(t, []float64{2, 2}, r.Train(1))
}

func TestBinarizationSeriesMode(t *testing.T) {
	tbl := newTable(t, "1 2 1 3", "1 1 1 1")
	b := mustBinarizer(t, 2)
	out, err := TransformTable(b, tbl, WithFormat(FormatTable))
	require.NoError(t, err)
	assert.Equal(t, []string{"1.00 2.00 1.00", "2.00 2.00"}, out.SeriesColumn())
}

func TestBinarizationParams(t *testing.T) {
	b := mustBinarizer(t, 2, WithStartTime(0), WithKeepSpikeCounts(false))
	assert.Same(t, b, b.Fit(nil, nil))

	params := b.GetParams()
	assert.Equal(t, 2.0, params["bin_size"])
	assert.Equal(t, false, params["keep_spike_counts"])
	assert.Nil(t, params["train_duration"])
	assert.Equal(t, 0.0, params["start_time"])
	assert.Equal(t,
		"TrainBinarizationTransform(bin_size=2, keep_spike_counts=false, train_duration=None, start_time=0)",
		b.String())
}
