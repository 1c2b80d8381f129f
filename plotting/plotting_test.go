package plotting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/YuminosukeSato/spikelib/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
)

func TestRaster(t *testing.T) {
	p, err := Raster([][]float64{{1, 3, 4}, {}, {2, 7}}, WithTitle("raster"))
	require.NoError(t, err)
	assert.Equal(t, "raster", p.Title.Text)
	assert.Equal(t, 3.0, p.Y.Max)

	_, err = Raster(nil)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))

	_, err = Raster([][]float64{{}, {}})
	assert.True(t, errors.Is(err, errors.ErrEmptyData))
}

func TestBinnedTrain(t *testing.T) {
	_, err := BinnedTrain([]float64{1, 0, 2}, 10)
	require.NoError(t, err)

	_, err = BinnedTrain(nil, 10)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))

	_, err = BinnedTrain([]float64{1}, 0)
	var ve *errors.ValidationError
	assert.True(t, errors.As(err, &ve))
}

func TestSaveFormats(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"raster.png", "raster.svg"} {
		path := filepath.Join(dir, name)
		require.NoError(t, SaveRaster([][]float64{{1, 2.5, 4}, {0.5, 3}}, path, WithSize(3*vg.Inch, 2*vg.Inch)))
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}

	path := filepath.Join(dir, "bins.png")
	require.NoError(t, SaveBinnedTrain([]float64{0, 1, 3, 1}, 2, path))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestSaveUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raster.bmp")
	err := SaveRaster([][]float64{{1}}, path)
	require.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
