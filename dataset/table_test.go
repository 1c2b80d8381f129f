package dataset

import (
	"math/rand"
	"testing"

	"github.com/YuminosukeSato/spikelib/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable(t *testing.T) {
	tbl, err := NewTable([]string{"1 2", "3"}, []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, "3", tbl.Series(1))
	assert.Equal(t, "a", tbl.Group(0))

	_, err = NewTable([]string{"1"}, []string{"a", "b"})
	require.Error(t, err)
	var de *errors.DimensionError
	assert.True(t, errors.As(err, &de))

	tbl, err = NewTable([]string{"1"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "", tbl.Group(0))
}

func TestTableRowLocalMutation(t *testing.T) {
	tbl, err := NewTable([]string{"1", "2", "3"}, []string{"a", "a", "b"})
	require.NoError(t, err)

	tbl.SetSeries(1, "20")
	assert.Equal(t, []string{"1", "20", "3"}, tbl.SeriesColumn())
	assert.Equal(t, []string{"a", "a", "b"}, tbl.Groups())
}

func TestTableClone(t *testing.T) {
	tbl, err := NewTable([]string{"1", "2"}, []string{"a", "b"})
	require.NoError(t, err)

	c := tbl.Clone()
	c.SetSeries(0, "x")
	assert.Equal(t, "1", tbl.Series(0))
	assert.Equal(t, "x", c.Series(0))
}

func TestTableSubset(t *testing.T) {
	tbl, err := NewTable([]string{"1", "2", "3"}, []string{"a", "b", "c"})
	require.NoError(t, err)

	sub, err := tbl.Subset([]int{2, 0})
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "1"}, sub.SeriesColumn())
	assert.Equal(t, []string{"c", "a"}, sub.Groups())

	_, err = tbl.Subset([]int{3})
	assert.Error(t, err)
}

func TestGroupShuffleSplit(t *testing.T) {
	groups := []string{"s1", "s1", "s2", "s2", "s3", "s4", "s4", "s5"}

	train, test, err := GroupShuffleSplit(groups, 0.3, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	assert.Equal(t, len(groups), len(train)+len(test))

	trainGroups := make(map[string]bool)
	for _, i := range train {
		trainGroups[groups[i]] = true
	}
	testGroups := make(map[string]bool)
	for _, i := range test {
		testGroups[groups[i]] = true
		assert.False(t, trainGroups[groups[i]], "group %s on both sides", groups[i])
	}
	// ceil(0.3 * 5) = 2 groups in test.
	assert.Len(t, testGroups, 2)
	assert.Len(t, trainGroups, 3)

	train2, test2, err := GroupShuffleSplit(groups, 0.3, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	assert.Equal(t, train, train2)
	assert.Equal(t, test, test2)
}

func TestGroupShuffleSplitClamp(t *testing.T) {
	groups := []string{"a", "b"}
	train, test, err := GroupShuffleSplit(groups, 0.99, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Len(t, train, 1)
	assert.Len(t, test, 1)
}

func TestGroupShuffleSplitErrors(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	tests := []struct {
		name     string
		groups   []string
		testSize float64
	}{
		{"single group", []string{"a", "a"}, 0.5},
		{"zero test size", []string{"a", "b"}, 0},
		{"full test size", []string{"a", "b"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := GroupShuffleSplit(tt.groups, tt.testSize, rng)
			require.Error(t, err)
			var ve *errors.ValidationError
			assert.True(t, errors.As(err, &ve))
		})
	}
}

func TestSplitTable(t *testing.T) {
	tbl, err := NewTable([]string{"1", "2", "3", "4"}, []string{"a", "a", "b", "c"})
	require.NoError(t, err)

	train, test, err := SplitTable(tbl, 0.5, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	assert.Equal(t, 4, train.Len()+test.Len())
}
