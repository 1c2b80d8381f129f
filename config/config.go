// Package config loads spikelib settings from an optional YAML file with an
// environment overlay.
//
// Environment variables use the prefix SPIKELIB__ and a double underscore
// between nesting levels, e.g. SPIKELIB__TRANSFORM__PRECISION=3 overrides
// transform.precision.
package config

import (
	"fmt"
	"io/fs"
	"math"
	"strings"

	"github.com/YuminosukeSato/spikelib/pkg/errors"
	"github.com/YuminosukeSato/spikelib/pkg/log"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "SPIKELIB__"

// Transform kinds accepted in StepConfig.Kind.
const (
	KindISIShuffle      = "isi_shuffle"
	KindBinarize        = "binarize"
	KindSpikeTimesToISI = "spike_times_to_isi"
)

// DispatchConfig controls how transforms are applied to their input.
type DispatchConfig struct {
	Format    string `koanf:"format"` // numpy|series
	Axis      int    `koanf:"axis"`
	Delimiter string `koanf:"delimiter"` // empty splits on whitespace
	Precision int    `koanf:"precision"`
	InPlace   bool   `koanf:"in_place"`
}

// StepConfig describes one pipeline step.
type StepConfig struct {
	Kind            string   `koanf:"kind"`
	BinSize         float64  `koanf:"bin_size"`
	KeepSpikeCounts *bool    `koanf:"keep_spike_counts"` // default true
	TrainDuration   *float64 `koanf:"train_duration"`
	StartTime       *float64 `koanf:"start_time"`
}

// DriverConfig carries the experiment settings handed to the fit/predict
// collaborator. Nothing in this module interprets them beyond validation.
type DriverConfig struct {
	Dataset              string  `koanf:"dataset"`
	Window               int     `koanf:"window"`
	Step                 int     `koanf:"step"`
	Trials               int     `koanf:"trials"`
	Scale                bool    `koanf:"scale"`
	RemoveLowVariance    bool    `koanf:"remove_low_variance"`
	TrainSubsampleFactor float64 `koanf:"train_subsample_factor"`
	TestSubsampleFactor  float64 `koanf:"test_subsample_factor"`
	TestSize             float64 `koanf:"test_size"`
	FeatureSet           string  `koanf:"feature_set"`
	NTrees               int     `koanf:"n_trees"`
}

// Config is the full configuration.
type Config struct {
	Seed      int64          `koanf:"seed"`
	LogLevel  string         `koanf:"log_level"`
	Transform DispatchConfig `koanf:"transform"`
	Pipeline  []StepConfig   `koanf:"pipeline"`
	Driver    DriverConfig   `koanf:"driver"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Seed:     0,
		LogLevel: "info",
		Transform: DispatchConfig{
			Format:    "numpy",
			Axis:      -1,
			Precision: 2,
		},
		Driver: DriverConfig{
			Dataset:              "./data/allen",
			Window:               50,
			Step:                 20,
			Trials:               10,
			Scale:                true,
			RemoveLowVariance:    true,
			TrainSubsampleFactor: 0.7,
			TestSubsampleFactor:  0.7,
			TestSize:             0.5,
			NTrees:               200,
		},
	}
}

// Load merges defaults, the YAML file at path (skipped when empty or
// missing) and SPIKELIB__ environment variables, then validates the result.
func Load(path string) (Config, error) {
	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil &&
			!errors.Is(err, fs.ErrNotExist) {
			return Config{}, errors.Wrapf(err, "config: load %s", path)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, "__", envKey), nil); err != nil {
		return Config{}, errors.Wrap(err, "config: load environment")
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, errors.Wrap(err, "config: unmarshal")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	log.GetLogger().Debug("configuration loaded",
		log.ComponentKey, "config",
		log.ConfigPathKey, path,
		log.SeedKey, cfg.Seed,
		log.StepsKey, len(cfg.Pipeline),
	)
	return cfg, nil
}

// envKey maps SPIKELIB__TRANSFORM__IN_PLACE to transform__in_place.
func envKey(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// Validate checks values that would otherwise fail later inside a transform.
func (c Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Transform.Precision < 0 {
		return errors.NewValidationError("transform.precision", "must be non-negative", c.Transform.Precision)
	}
	for i, s := range c.Pipeline {
		if err := s.Validate(); err != nil {
			return errors.Wrapf(err, "pipeline[%d]", i)
		}
	}
	d := c.Driver
	if math.IsNaN(d.TestSize) || d.TestSize <= 0 || d.TestSize >= 1 {
		return errors.NewValidationError("driver.test_size", "must be in (0, 1)", d.TestSize)
	}
	for name, f := range map[string]float64{
		"driver.train_subsample_factor": d.TrainSubsampleFactor,
		"driver.test_subsample_factor":  d.TestSubsampleFactor,
	} {
		if math.IsNaN(f) || f <= 0 || f > 1 {
			return errors.NewValidationError(name, "must be in (0, 1]", f)
		}
	}
	if d.NTrees <= 0 {
		return errors.NewValidationError("driver.n_trees", "must be positive", d.NTrees)
	}
	return nil
}

// Validate checks the kind and the parameters that apply to it.
func (s StepConfig) Validate() error {
	switch s.Kind {
	case KindISIShuffle, KindSpikeTimesToISI:
		return nil
	case KindBinarize:
		if math.IsNaN(s.BinSize) || s.BinSize <= 0 {
			return errors.NewValidationError("bin_size", "must be positive", s.BinSize)
		}
		return nil
	default:
		return errors.NewValidationError("kind",
			fmt.Sprintf("must be one of %s, %s, %s", KindISIShuffle, KindBinarize, KindSpikeTimesToISI), s.Kind)
	}
}
