package config

import (
	"math/rand"

	"github.com/YuminosukeSato/spikelib/pkg/errors"
	"github.com/YuminosukeSato/spikelib/preprocessing"
)

// NewRand returns a generator seeded from c.Seed.
func (c Config) NewRand() *rand.Rand {
	return rand.New(rand.NewSource(c.Seed))
}

// TransformOptions converts the dispatch section into transform options.
func (c Config) TransformOptions() []preprocessing.TransformOption {
	t := c.Transform
	return []preprocessing.TransformOption{
		preprocessing.WithFormat(t.Format),
		preprocessing.WithAxis(t.Axis),
		preprocessing.WithDelimiter(t.Delimiter),
		preprocessing.WithPrecision(t.Precision),
		preprocessing.WithInPlace(t.InPlace),
	}
}

// Build constructs the transform described by s. Shuffle steps draw from rng.
func (s StepConfig) Build(rng *rand.Rand) (preprocessing.SpikeTrainTransformer, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	switch s.Kind {
	case KindISIShuffle:
		return preprocessing.NewISIShuffleTransform(preprocessing.WithRand(rng)), nil
	case KindSpikeTimesToISI:
		return preprocessing.NewSpikeTimesToISITransform(), nil
	default:
		var opts []preprocessing.BinarizationOption
		if s.KeepSpikeCounts != nil {
			opts = append(opts, preprocessing.WithKeepSpikeCounts(*s.KeepSpikeCounts))
		}
		if s.TrainDuration != nil {
			opts = append(opts, preprocessing.WithTrainDuration(*s.TrainDuration))
		}
		if s.StartTime != nil {
			opts = append(opts, preprocessing.WithStartTime(*s.StartTime))
		}
		b, err := preprocessing.NewTrainBinarizationTransform(s.BinSize, opts...)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
}

// BuildPipeline builds every configured step into one pipeline. All shuffle
// steps share a single generator seeded from c.Seed.
func (c Config) BuildPipeline() (*preprocessing.Pipeline, error) {
	rng := c.NewRand()
	steps := make([]preprocessing.SpikeTrainTransformer, len(c.Pipeline))
	for i, s := range c.Pipeline {
		tr, err := s.Build(rng)
		if err != nil {
			return nil, errors.Wrapf(err, "pipeline[%d]", i)
		}
		steps[i] = tr
	}
	return preprocessing.NewPipeline(steps...)
}
