package log

// Attribute keys shared by every log record the library emits. Keys use a
// dotted hierarchy ("model.name", "data.samples") so records can be filtered
// by prefix.

// Model and operation context.
const (
	// ModelNameKey identifies the type of model, e.g. "LinearRegression".
	ModelNameKey = "model.name"

	// EstimatorIDKey identifies one model instance (a UUID string).
	EstimatorIDKey = "estimator.id"

	// OperationKey names the operation: "fit", "predict", "transform", "evaluate".
	OperationKey = "ml.operation"

	// ComponentKey names the package doing the work: "linear", "preprocessing", "metrics".
	ComponentKey = "ml.component"

	// PhaseKey is the lifecycle phase: "training", "inference", "preprocessing", "evaluation".
	PhaseKey = "ml.phase"

	// MethodKey is the fitting strategy, "least_squares" or "gradient_descent".
	MethodKey = "ml.method"
)

// Data shape.
const (
	SamplesKey  = "data.samples"
	FeaturesKey = "data.features"

	// CategoriesKey is the number of distinct values found in a categorical column.
	CategoriesKey = "data.categories"

	// ColumnKey is the index of the column being processed.
	ColumnKey = "data.column"
)

// Performance and training progress.
const (
	DurationMsKey = "perf.duration_ms"

	// LossKey records the training loss (MSE for gradient descent).
	LossKey = "metrics.loss"

	R2ScoreKey = "metrics.r2_score"
	RMSEKey    = "metrics.rmse"
	MAEKey     = "metrics.mae"

	// EpochKey is the gradient-descent iteration index.
	EpochKey = "training.epoch"

	IterationsKey   = "hyperparams.iterations"
	LearningRateKey = "hyperparams.learning_rate"
	RandomSeedKey   = "config.random_seed"
)

// Prediction output.
const (
	// PredsKey is the number of predictions made.
	PredsKey = "preds.count"
)

// Error context.
const (
	// StacktraceKey carries the stack trace of a logged error.
	StacktraceKey = "error.stacktrace"

	// ErrorCodeKey is one of the Error* codes below.
	ErrorCodeKey = "error.code"
)

// Standard attribute values.
const (
	OperationFit          = "fit"
	OperationPredict      = "predict"
	OperationTransform    = "transform"
	OperationFitTransform = "fit_transform"
	OperationEvaluate     = "evaluate"

	PhaseTraining      = "training"
	PhaseInference     = "inference"
	PhasePreprocessing = "preprocessing"
	PhaseEvaluation    = "evaluation"

	ErrorNotFitted       = "NOT_FITTED"
	ErrorInvalidArgument = "INVALID_ARGUMENT"
	ErrorSingularMatrix  = "SINGULAR_MATRIX"
	ErrorNumerical       = "NUMERICAL_INSTABILITY"
)
