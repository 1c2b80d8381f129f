// Package log defines standard attribute keys for spike-train processing.
//
// Using these keys across packages keeps log records from different
// transforms comparable. Keys follow a hierarchical naming convention
// (e.g. "model.name", "data.trains") to enable structured log filtering.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the transform or model type.
	// Examples: "ISIShuffleTransform", "TrainBinarizationTransform", "Pipeline"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "transform", "fit_transform"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "preprocessing", "config", "plotting"
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of the pipeline lifecycle.
	PhaseKey = "ml.phase"
)

// Data Shape and Characteristics
const (
	// TrainsKey is the number of spike trains in a batch or table.
	TrainsKey = "data.trains"

	// ShapeKey is the shape of a tensor input.
	ShapeKey = "data.shape"

	// FormatKey is the dispatch format ("numpy" or a series-table format).
	FormatKey = "data.format"

	// RaggedKey reports whether a tensor-mode result has variable-length trains.
	RaggedKey = "data.ragged"

	// RowKey is a table row index, used when reporting per-row failures.
	RowKey = "data.row"
)

// Spike-train specific parameters
const (
	// AxisKey is the time-step axis used in tensor mode.
	AxisKey = "spike.axis"

	// BinSizeKey is the bin width of a binarization transform.
	BinSizeKey = "spike.bin_size"

	// BinsKey is the number of bins produced for a train.
	BinsKey = "spike.bins"

	// DelimiterKey is the series field delimiter in table mode.
	DelimiterKey = "spike.delimiter"

	// DroppedSpikesKey counts spike times that fell outside the histogram range.
	DroppedSpikesKey = "spike.dropped"

	// StepsKey is the number of steps in a pipeline.
	StepsKey = "pipeline.steps"
)

// Performance Metrics
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)

// Error and Warning Context
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	ErrorCodeKey = "error.code"

	// StacktraceKey contains stack trace information for debugging.
	// Populated by the zerolog logger from cockroachdb/errors safe details.
	StacktraceKey = "error.stacktrace"

	// ErrAttrKey is the key used for the error value itself.
	ErrAttrKey = "error"
)

// Configuration
const (
	// HyperParamsKey contains transform parameters as a structured object.
	HyperParamsKey = "model.hyperparams"

	// SeedKey records the random seed used for shuffling.
	SeedKey = "config.seed"

	// ConfigPathKey records the configuration file that was loaded.
	ConfigPathKey = "config.path"
)

// Standard attribute value constants.
const (
	OperationFit          = "fit"
	OperationTransform    = "transform"
	OperationFitTransform = "fit_transform"

	PhasePreprocessing = "preprocessing"

	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorEmptyData         = "EMPTY_DATA"
	ErrorInvalidInput      = "INVALID_INPUT"
	ErrorParseFailure      = "PARSE_FAILURE"
)
