// Package metrics computes regression quality measures from true and
// predicted target vectors.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/linreg/pkg/errors"
)

// pair validates two vectors of equal, non-zero length and returns their
// contents as contiguous slices.
func pair(op string, yTrue, yPred *mat.VecDense) (t, p []float64, err error) {
	if yTrue == nil || yTrue.Len() == 0 {
		return nil, nil, errors.NewValueError(op, "empty vector")
	}
	n := yTrue.Len()
	if yPred == nil || yPred.Len() != n {
		got := 0
		if yPred != nil {
			got = yPred.Len()
		}
		return nil, nil, errors.NewDimensionError(op, n, got, 0)
	}
	return mat.Col(nil, 0, yTrue), mat.Col(nil, 0, yPred), nil
}

// sumSquares returns RSS = Σ(yTrue−yPred)² and TSS = Σ(yTrue−mean)².
func sumSquares(t, p []float64) (rss, tss float64) {
	diff := make([]float64, len(t))
	floats.SubTo(diff, t, p)
	rss = floats.Dot(diff, diff)

	dev := make([]float64, len(t))
	copy(dev, t)
	floats.AddConst(-stat.Mean(t, nil), dev)
	tss = floats.Dot(dev, dev)
	return rss, tss
}

// MSE is the mean squared error (1/n)·Σ(yTrue−yPred)².
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	t, p, err := pair("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	d := floats.Distance(t, p, 2)
	return d * d / float64(len(t)), nil
}

// MSEMatrix is MSE for n×1 matrices.
func MSEMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	rTrue, cTrue := yTrue.Dims()
	rPred, cPred := yPred.Dims()

	if rTrue == 0 || cTrue == 0 {
		return 0, errors.NewValueError("MSEMatrix", "empty matrix")
	}
	if rTrue != rPred {
		return 0, errors.NewDimensionError("MSEMatrix", rTrue, rPred, 0)
	}
	if cTrue != 1 || cPred != 1 {
		return 0, errors.NewValueError("MSEMatrix", "must be a column vector (n×1 matrix)")
	}

	return MSE(
		mat.NewVecDense(rTrue, mat.Col(nil, 0, yTrue)),
		mat.NewVecDense(rPred, mat.Col(nil, 0, yPred)),
	)
}

// RMSE is the root mean squared error sqrt(MSE).
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE is the mean absolute error (1/n)·Σ|yTrue−yPred|.
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	t, p, err := pair("MAE", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return floats.Distance(t, p, 1) / float64(len(t)), nil
}

// R2Score is the coefficient of determination 1 − RSS/TSS. Unlike
// EvaluateRegression it refuses constant yTrue, where R² is undefined.
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	t, p, err := pair("R2Score", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	rss, tss := sumSquares(t, p)
	if tss == 0 {
		return 0, errors.NewValueError("R2Score", "total sum of squares is zero (no variance in yTrue)")
	}
	return 1 - rss/tss, nil
}

// MAPE is the mean absolute percentage error over the non-zero entries of
// yTrue, in percent.
func MAPE(yTrue, yPred *mat.VecDense) (float64, error) {
	t, p, err := pair("MAPE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var sum float64
	validCount := 0
	for i, v := range t {
		if v == 0 {
			continue
		}
		sum += math.Abs(v-p[i]) / math.Abs(v)
		validCount++
	}
	if validCount == 0 {
		return 0, errors.NewValueError("MAPE", "all yTrue values are zero")
	}

	return sum / float64(validCount) * 100, nil
}

// ExplainedVarianceScore is 1 − Var(yTrue−yPred)/Var(yTrue), using
// population variances.
func ExplainedVarianceScore(yTrue, yPred *mat.VecDense) (float64, error) {
	t, p, err := pair("ExplainedVarianceScore", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	diff := make([]float64, len(t))
	floats.SubTo(diff, t, p)

	_, varYTrue := stat.PopMeanVariance(t, nil)
	_, varDiff := stat.PopMeanVariance(diff, nil)
	if varYTrue == 0 {
		return 0, errors.NewValueError("ExplainedVarianceScore", "no variance in yTrue")
	}

	return 1 - varDiff/varYTrue, nil
}
