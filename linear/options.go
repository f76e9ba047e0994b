package linear

import (
	"io"

	"github.com/YuminosukeSato/linreg/pkg/log"
)

// Option configures a LinearRegression at construction time.
type Option func(*LinearRegression)

// WithRandomState seeds the generator used to initialise gradient descent,
// making fits reproducible.
func WithRandomState(seed int64) Option {
	return func(lr *LinearRegression) {
		lr.randomState = seed
		lr.seeded = true
	}
}

// WithDiagnosticWriter redirects the "Epoch <k>: MSE = <value>" lines that
// gradient descent prints. Pass io.Discard to silence them.
func WithDiagnosticWriter(w io.Writer) Option {
	return func(lr *LinearRegression) {
		lr.diagnostics = w
	}
}

// WithLogger replaces the component logger.
func WithLogger(logger log.Logger) Option {
	return func(lr *LinearRegression) {
		lr.logger = logger
	}
}

// Default fit hyperparameters.
const (
	DefaultLearningRate = 0.01
	DefaultIterations   = 1000
)

type fitConfig struct {
	method       Method
	learningRate float64
	iterations   int
}

func defaultFitConfig() fitConfig {
	return fitConfig{
		method:       LeastSquares,
		learningRate: DefaultLearningRate,
		iterations:   DefaultIterations,
	}
}

// FitOption configures a single call to Fit.
type FitOption func(*fitConfig)

// WithMethod selects the fitting strategy. The default is LeastSquares.
func WithMethod(m Method) FitOption {
	return func(c *fitConfig) {
		c.method = m
	}
}

// WithLearningRate sets the gradient descent step size. Ignored by
// LeastSquares.
func WithLearningRate(rate float64) FitOption {
	return func(c *fitConfig) {
		c.learningRate = rate
	}
}

// WithIterations sets the number of gradient descent iterations. Ignored by
// LeastSquares.
func WithIterations(n int) FitOption {
	return func(c *fitConfig) {
		c.iterations = n
	}
}
