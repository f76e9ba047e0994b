// Package linear implements ordinary multiple linear regression.
//
// LinearRegression fits y ≈ Xw + b with one of two strategies:
//
//   - LeastSquares: the closed-form normal equation (XᵀX)w = Xᵀy, solved
//     with an LU factorisation.
//   - GradientDescent: full-batch gradient descent on the mean squared error.
//
// Example usage:
//
//	lr := linear.NewLinearRegression(linear.WithRandomState(42))
//	if err := lr.Fit(X, y, linear.WithMethod(linear.GradientDescent)); err != nil {
//		log.Fatal(err)
//	}
//	predictions, err := lr.Predict(XTest)
//
// A LinearRegression is not safe for concurrent use; Fit mutates the model
// that Predict reads.
package linear

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linreg/core/matrix"
	"github.com/YuminosukeSato/linreg/core/model"
	"github.com/YuminosukeSato/linreg/metrics"
	"github.com/YuminosukeSato/linreg/pkg/errors"
	"github.com/YuminosukeSato/linreg/pkg/log"
)

const modelName = "LinearRegression"

// diagnosticEvery is the gradient descent iteration stride between MSE
// diagnostics.
const diagnosticEvery = 1000

// Method selects the fitting strategy used by Fit.
type Method string

// Supported fitting strategies.
const (
	LeastSquares    Method = "least_squares"
	GradientDescent Method = "gradient_descent"
)

// ParseMethod validates a method name.
func ParseMethod(s string) (Method, error) {
	switch m := Method(s); m {
	case LeastSquares, GradientDescent:
		return m, nil
	default:
		return "", unsupportedMethod("linear.ParseMethod", m)
	}
}

func unsupportedMethod(op string, m Method) error {
	return errors.NewValueError(op, fmt.Sprintf("method %s not available for training linear regression", m))
}

// LinearRegression is an ordinary least squares linear model.
type LinearRegression struct {
	state        *model.StateManager
	coefficients *mat.VecDense
	intercept    float64

	id          string
	randomState int64
	seeded      bool
	diagnostics io.Writer
	logger      log.Logger

	// hyperparameters of the last successful fit
	method       Method
	learningRate float64
	iterations   int
}

var _ model.Regressor = (*LinearRegression)(nil)

// NewLinearRegression creates an unfitted model.
func NewLinearRegression(opts ...Option) *LinearRegression {
	lr := &LinearRegression{
		state:       model.NewStateManager(modelName),
		id:          uuid.NewString(),
		diagnostics: os.Stdout,
	}
	for _, opt := range opts {
		opt(lr)
	}

	if lr.logger == nil {
		lr.logger = log.GetLoggerWithName("linear")
	}
	lr.logger = lr.logger.With(
		log.ModelNameKey, modelName,
		log.EstimatorIDKey, lr.id,
		log.ComponentKey, "linear",
	)

	return lr
}

// Fit trains the model on X (n_samples × n_features) and y (n_samples × 1).
//
// A leading column of ones is added to X and the result is handed to
// FitMultiple or FitGradientDescent depending on WithMethod. On success the
// coefficients and intercept are replaced in full.
//
// Errors:
//   - InvalidArgument: unknown method, empty X, y row count different from
//     X, y with more than one column, non-positive learning rate or
//     iteration count.
//   - NumericalError: XᵀX is singular (LeastSquares only).
func (lr *LinearRegression) Fit(X, y mat.Matrix, opts ...FitOption) (err error) {
	defer errors.Recover(&err, "LinearRegression.Fit")

	cfg := defaultFitConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.method != LeastSquares && cfg.method != GradientDescent {
		return unsupportedMethod("LinearRegression.Fit", cfg.method)
	}

	r, c := X.Dims()
	ry, cy := y.Dims()
	if r == 0 || c == 0 {
		return errors.NewValueError("LinearRegression.Fit", "empty data")
	}
	if ry != r {
		return errors.NewDimensionError("LinearRegression.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewDimensionError("LinearRegression.Fit", 1, cy, 1)
	}
	if !(cfg.learningRate > 0) {
		return errors.NewValidationError("learning_rate", "must be positive", cfg.learningRate)
	}
	if cfg.iterations <= 0 {
		return errors.NewValidationError("iterations", "must be positive", cfg.iterations)
	}

	startTime := time.Now()
	lr.logger.Info("Training started",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
		log.MethodKey, string(cfg.method),
		log.SamplesKey, r,
		log.FeaturesKey, c,
	)

	XWithBias := matrix.AddBias(X)

	switch cfg.method {
	case GradientDescent:
		err = lr.FitGradientDescent(XWithBias, y, cfg.learningRate, cfg.iterations)
	default:
		err = lr.FitMultiple(XWithBias, y)
	}
	if err != nil {
		lr.logger.Error("Training failed", err,
			log.OperationKey, log.OperationFit,
			log.MethodKey, string(cfg.method),
		)
		return err
	}

	lr.logger.Info("Training completed",
		log.OperationKey, log.OperationFit,
		log.MethodKey, string(cfg.method),
		log.DurationMsKey, time.Since(startTime).Milliseconds(),
	)

	return nil
}

// FitMultiple fits the model in closed form on a matrix that already
// carries the bias column in position 0. The first solution entry becomes
// the intercept, the rest the coefficients. On failure the model is left as
// it was.
func (lr *LinearRegression) FitMultiple(XWithBias, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "LinearRegression.FitMultiple")

	yVec, err := checkBiasInput("LinearRegression.FitMultiple", XWithBias, y)
	if err != nil {
		return err
	}

	w, err := matrix.SolveNormalEquation(XWithBias, yVec)
	if err != nil {
		return err
	}

	r, _ := XWithBias.Dims()
	lr.setParameters(w, r)
	lr.method = LeastSquares
	lr.learningRate = 0
	lr.iterations = 0
	return nil
}

// FitGradientDescent fits the model with full-batch gradient descent on a
// matrix that already carries the bias column in position 0.
//
// Parameters start uniformly in [0, 0.01). Each iteration computes
// gradient = (2/m)·Xᵀ(Xw − y) and updates every parameter at once. Exactly
// iterations steps run; there is no early stopping. Every 1000th step
// (starting at 0) writes "Epoch <k>: MSE = <value>" to the diagnostic
// writer.
//
// A learning rate too large for the data scale makes the parameters
// diverge. That is not returned as an error: the model is still fitted, a
// NumericalInstabilityError warning is raised and CheckFinite reports it.
func (lr *LinearRegression) FitGradientDescent(XWithBias, y mat.Matrix, learningRate float64, iterations int) (err error) {
	defer errors.Recover(&err, "LinearRegression.FitGradientDescent")

	yVec, err := checkBiasInput("LinearRegression.FitGradientDescent", XWithBias, y)
	if err != nil {
		return err
	}
	if !(learningRate > 0) {
		return errors.NewValidationError("learning_rate", "must be positive", learningRate)
	}
	if iterations <= 0 {
		return errors.NewValidationError("iterations", "must be positive", iterations)
	}

	m, n := XWithBias.Dims()
	rng := lr.newRNG()

	// theta[0] is the intercept, theta[1:] the coefficients.
	theta := mat.NewVecDense(n, nil)
	for j := 0; j < n; j++ {
		theta.SetVec(j, rng.Float64()*0.01)
	}

	predictions := mat.NewVecDense(m, nil)
	residuals := mat.NewVecDense(m, nil)
	gradient := mat.NewVecDense(n, nil)
	scale := 2 / float64(m)

	for k := 0; k < iterations; k++ {
		predictions.MulVec(XWithBias, theta)
		residuals.SubVec(predictions, yVec)

		if k%diagnosticEvery == 0 {
			mse := mat.Dot(residuals, residuals) / float64(m)
			fmt.Fprintf(lr.diagnostics, "Epoch %d: MSE = %v\n", k, mse)
			lr.logger.Debug("Gradient descent progress",
				log.EpochKey, k,
				log.LossKey, mse,
			)
		}

		gradient.MulVec(XWithBias.T(), residuals)
		gradient.ScaleVec(scale, gradient)
		theta.AddScaledVec(theta, -learningRate, gradient)
	}

	lr.setParameters(theta, m)
	lr.method = GradientDescent
	lr.learningRate = learningRate
	lr.iterations = iterations

	if err := lr.CheckFinite(); err != nil {
		lr.logger.Warn("Gradient descent diverged",
			log.LearningRateKey, learningRate,
			log.IterationsKey, iterations,
			log.ErrorCodeKey, log.ErrorNumerical,
		)
		errors.Warn(err)
	}

	return nil
}

func checkBiasInput(op string, XWithBias, y mat.Matrix) (*mat.VecDense, error) {
	r, c := XWithBias.Dims()
	if r == 0 || c < 2 {
		return nil, errors.NewValueError(op, "X must hold a bias column and at least one feature")
	}
	ry, cy := y.Dims()
	if ry != r {
		return nil, errors.NewDimensionError(op, r, ry, 0)
	}
	if cy != 1 {
		return nil, errors.NewDimensionError(op, 1, cy, 1)
	}
	return matrix.ColumnVector(y)
}

// setParameters splits w into intercept and coefficients and marks the model
// fitted.
func (lr *LinearRegression) setParameters(w *mat.VecDense, nSamples int) {
	n := w.Len()
	lr.intercept = w.AtVec(0)
	lr.coefficients = mat.VecDenseCopyOf(w.SliceVec(1, n))
	lr.state.SetFitted(n-1, nSamples)
}

func (lr *LinearRegression) newRNG() *rand.Rand {
	if lr.seeded {
		return rand.New(rand.NewPCG(uint64(lr.randomState), uint64(lr.randomState)))
	}
	now := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(now, now^0xdeadbeef))
}

// CheckFinite returns a NumericalError when any learned parameter is NaN or
// infinite, as happens after divergent gradient descent.
func (lr *LinearRegression) CheckFinite() error {
	if err := lr.state.RequireFitted("CheckFinite"); err != nil {
		return err
	}
	values := append([]float64{lr.intercept}, lr.Coefficients()...)
	return errors.CheckNumericalStability("gradient_descent", values, lr.iterations)
}

// Predict returns X·coefficients + intercept, one value per row of X.
//
// Errors:
//   - NotFitted: the model has not been fitted.
//   - InvalidArgument: X has no rows, or its column count differs from the
//     number of fitted coefficients.
func (lr *LinearRegression) Predict(X mat.Matrix) (_ *mat.VecDense, err error) {
	defer errors.Recover(&err, "LinearRegression.Predict")

	if err := lr.state.RequireFitted("Predict"); err != nil {
		return nil, err
	}

	r, c := X.Dims()
	if c != lr.coefficients.Len() {
		return nil, errors.NewDimensionError("LinearRegression.Predict", lr.coefficients.Len(), c, 1)
	}
	if r == 0 {
		return nil, errors.NewValueError("LinearRegression.Predict", "empty data")
	}

	predictions := mat.NewVecDense(r, nil)
	predictions.MulVec(X, lr.coefficients)
	for i := 0; i < r; i++ {
		predictions.SetVec(i, predictions.AtVec(i)+lr.intercept)
	}

	lr.logger.Debug("Prediction completed",
		log.OperationKey, log.OperationPredict,
		log.PhaseKey, log.PhaseInference,
		log.PredsKey, r,
	)

	return predictions, nil
}

// Score returns the R² of the predictions for X against y.
func (lr *LinearRegression) Score(X, y mat.Matrix) (float64, error) {
	predictions, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}
	yVec, err := matrix.ColumnVector(y)
	if err != nil {
		return 0, err
	}
	return metrics.R2Score(yVec, predictions)
}

// Coefficients returns a copy of the learned weights, or nil before Fit.
func (lr *LinearRegression) Coefficients() []float64 {
	if lr.coefficients == nil {
		return nil
	}
	out := make([]float64, lr.coefficients.Len())
	copy(out, lr.coefficients.RawVector().Data)
	return out
}

// Intercept returns the learned bias term, or 0 before Fit.
func (lr *LinearRegression) Intercept() float64 {
	if !lr.state.IsFitted() {
		return 0
	}
	return lr.intercept
}

// IsFitted reports whether Fit has succeeded at least once.
func (lr *LinearRegression) IsFitted() bool {
	return lr.state.IsFitted()
}

// NFeatures returns the number of features seen during fitting.
func (lr *LinearRegression) NFeatures() int {
	n, _ := lr.state.Dimensions()
	return n
}

// ID returns the estimator id attached to every log record of this model.
func (lr *LinearRegression) ID() string {
	return lr.id
}

// GetParams returns the configuration and the hyperparameters of the last fit.
func (lr *LinearRegression) GetParams() map[string]interface{} {
	params := map[string]interface{}{
		"method":        string(lr.method),
		"learning_rate": lr.learningRate,
		"iterations":    lr.iterations,
		"random_state":  nil,
	}
	if lr.seeded {
		params["random_state"] = lr.randomState
	}
	return params
}

// ExportWeights captures the fitted parameters for persistence with
// model.SaveWeights.
func (lr *LinearRegression) ExportWeights() (*model.ModelWeights, error) {
	if err := lr.state.RequireFitted("ExportWeights"); err != nil {
		return nil, err
	}
	return &model.ModelWeights{
		ModelType:       modelName,
		Version:         model.WeightsVersion,
		Coefficients:    lr.Coefficients(),
		Intercept:       lr.intercept,
		Hyperparameters: lr.GetParams(),
		Metadata: map[string]interface{}{
			"estimator_id": lr.id,
		},
		IsFitted: true,
	}, nil
}

// ImportWeights replaces the model parameters with w.
func (lr *LinearRegression) ImportWeights(w *model.ModelWeights) error {
	if err := w.Validate(); err != nil {
		return err
	}
	if w.ModelType != modelName {
		return errors.NewValidationError("model_type", "expected "+modelName, w.ModelType)
	}
	if !w.IsFitted {
		lr.state.Reset()
		lr.coefficients = nil
		lr.intercept = 0
		return nil
	}

	params := make([]float64, 0, len(w.Coefficients)+1)
	params = append(params, w.Intercept)
	params = append(params, w.Coefficients...)
	lr.setParameters(mat.NewVecDense(len(params), params), 0)

	if m, ok := w.Hyperparameters["method"].(string); ok {
		lr.method = Method(m)
	}
	return nil
}
