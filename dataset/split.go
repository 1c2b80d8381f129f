package dataset

import (
	"math"
	"math/rand"
	"sort"

	"github.com/YuminosukeSato/spikelib/pkg/errors"
)

// GroupShuffleSplit partitions row indices into a train and a test side so
// that all rows of one group land on the same side.
//
// testSize is the fraction of distinct groups assigned to test. It is rounded
// up and clamped so that both sides hold at least one group. Groups are
// permuted with rng, so the same seed gives the same split. Both returned
// index slices are sorted.
func GroupShuffleSplit(groups []string, testSize float64, rng *rand.Rand) (train, test []int, err error) {
	if math.IsNaN(testSize) || testSize <= 0 || testSize >= 1 {
		return nil, nil, errors.NewValidationError("testSize", "must be in (0, 1)", testSize)
	}
	if rng == nil {
		return nil, nil, errors.NewValidationError("rng", "random generator is required", nil)
	}

	// Distinct groups in first-seen order so the permutation depends only on rng.
	var distinct []string
	seen := make(map[string]bool)
	for _, g := range groups {
		if !seen[g] {
			seen[g] = true
			distinct = append(distinct, g)
		}
	}
	if len(distinct) < 2 {
		return nil, nil, errors.NewValidationError("groups", "at least 2 distinct groups are required", len(distinct))
	}

	nTest := int(math.Ceil(testSize * float64(len(distinct))))
	if nTest < 1 {
		nTest = 1
	}
	if nTest > len(distinct)-1 {
		nTest = len(distinct) - 1
	}

	rng.Shuffle(len(distinct), func(i, j int) {
		distinct[i], distinct[j] = distinct[j], distinct[i]
	})
	inTest := make(map[string]bool, nTest)
	for _, g := range distinct[:nTest] {
		inTest[g] = true
	}

	for i, g := range groups {
		if inTest[g] {
			test = append(test, i)
		} else {
			train = append(train, i)
		}
	}
	sort.Ints(train)
	sort.Ints(test)
	return train, test, nil
}

// SplitTable applies GroupShuffleSplit to t's groups column and returns the
// two sides as new tables.
func SplitTable(t *Table, testSize float64, rng *rand.Rand) (train, test *Table, err error) {
	trainIdx, testIdx, err := GroupShuffleSplit(t.Groups(), testSize, rng)
	if err != nil {
		return nil, nil, err
	}
	if train, err = t.Subset(trainIdx); err != nil {
		return nil, nil, err
	}
	if test, err = t.Subset(testIdx); err != nil {
		return nil, nil, err
	}
	return train, test, nil
}
