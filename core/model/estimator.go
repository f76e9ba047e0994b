package model

import "gonum.org/v1/gonum/mat"

// Predictor produces one prediction per row of X.
type Predictor interface {
	Predict(X mat.Matrix) (*mat.VecDense, error)
}

// Scorer computes the coefficient of determination R² on (X, y).
type Scorer interface {
	Score(X, y mat.Matrix) (float64, error)
}

// LinearModel exposes the parameters of a fitted linear model.
type LinearModel interface {
	// Coefficients returns a copy of the learned weights, one per feature.
	Coefficients() []float64
	// Intercept returns the learned bias term.
	Intercept() float64
}

// WeightPorter moves a model's learned parameters in and out of
// ModelWeights.
type WeightPorter interface {
	ExportWeights() (*ModelWeights, error)
	ImportWeights(w *ModelWeights) error
}

// Regressor is the full surface of a linear regression estimator.
type Regressor interface {
	Predictor
	Scorer
	LinearModel
	WeightPorter
	IsFitted() bool
}
