// Package log defines the standard attribute keys for bfte log entries.
//
// Keys follow a dotted hierarchy ("model.name", "data.samples") so entries
// from the feature pipeline, training and inference can be filtered the
// same way.

package log

// Model and operation context.
const (
	// ModelNameKey identifies the model type, e.g. "LinearRegression".
	ModelNameKey = "model.name"

	// EstimatorIDKey identifies one training run or model instance.
	EstimatorIDKey = "estimator.id"

	// OperationKey is the operation being performed: fit, predict, extract...
	OperationKey = "ml.operation"

	// ComponentKey is the package emitting the entry.
	ComponentKey = "ml.component"

	// PhaseKey is the lifecycle phase: preprocessing, training, inference.
	PhaseKey = "ml.phase"
)

// Data shape.
const (
	SamplesKey   = "data.samples"
	FeaturesKey  = "data.features"
	BatchSizeKey = "data.batch_size"

	// ChunkKey is the zero-based chunk index in the feature pipeline.
	ChunkKey = "data.chunk"

	// DroppedKey counts input rows discarded (empty lines, undefined entropy).
	DroppedKey = "data.dropped"

	// PathKey is a file the operation reads or writes.
	PathKey = "io.path"
)

// Performance and evaluation.
const (
	DurationMsKey = "perf.duration_ms"
	R2ScoreKey    = "metrics.r2_score"
	MSEKey        = "metrics.mse"
	MAEKey        = "metrics.mae"

	// ConditionKey is the condition number of the normal-equation matrix.
	ConditionKey = "solver.condition"
)

// Prediction context.
const (
	PredsKey = "preds.count"

	// EntropyKey is an entropy value in bits.
	EntropyKey = "preds.entropy"

	// StrengthKey is a strength label derived from an entropy value.
	StrengthKey = "preds.strength"
)

// Error context.
const (
	ErrorCodeKey  = "error.code"
	StacktraceKey = "error.stacktrace"
)

// Configuration.
const (
	RandomSeedKey    = "config.random_seed"
	ConfigVersionKey = "config.version"
)

// Standard attribute values.
const (
	OperationFit     = "fit"
	OperationPredict = "predict"
	OperationScore   = "score"
	OperationExtract = "extract"
	OperationLoad    = "load"
	OperationSave    = "save"

	PhaseTraining      = "training"
	PhaseInference     = "inference"
	PhasePreprocessing = "preprocessing"

	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorEmptyData         = "EMPTY_DATA"
	ErrorSingularMatrix    = "SINGULAR_MATRIX"
)
