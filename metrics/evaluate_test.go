package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linreg/pkg/errors"
)

// captureWarnings collects warnings raised during the test.
func captureWarnings(t *testing.T) *[]error {
	t.Helper()
	var warnings []error
	errors.SetWarningHandler(func(w error) { warnings = append(warnings, w) })
	t.Cleanup(func() { errors.SetWarningHandler(func(error) {}) })
	return &warnings
}

func TestEvaluateRegressionPerfect(t *testing.T) {
	y := mat.NewVecDense(5, []float64{3, -1, 4, 1, 5})

	result, err := EvaluateRegression(y, y)
	require.NoError(t, err)
	assert.Len(t, result, 3)
	assert.Equal(t, 1.0, result[KeyR2])
	assert.Equal(t, 0.0, result[KeyRMSE])
	assert.Equal(t, 0.0, result[KeyMAE])
}

func TestEvaluateRegression(t *testing.T) {
	yTrue := mat.NewVecDense(4, []float64{1, 2, 3, 4})
	yPred := mat.NewVecDense(4, []float64{1.5, 2.5, 2.5, 3.5})

	result, err := EvaluateRegression(yTrue, yPred)
	require.NoError(t, err)
	assert.InDelta(t, 0.8, result[KeyR2], 1e-12)
	assert.InDelta(t, 0.5, result[KeyRMSE], 1e-12)
	assert.InDelta(t, 0.5, result[KeyMAE], 1e-12)

	r2, err := R2Score(yTrue, yPred)
	require.NoError(t, err)
	assert.InDelta(t, r2, result[KeyR2], 1e-12)
}

func TestEvaluateRegressionConstantTarget(t *testing.T) {
	tests := []struct {
		name   string
		yPred  []float64
		isNaN  bool
		signed int
	}{
		{"perfect predictions", []float64{2, 2, 2}, true, 0},
		{"imperfect predictions", []float64{1, 2, 3}, false, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := captureWarnings(t)

			result, err := EvaluateRegression(
				mat.NewVecDense(3, []float64{2, 2, 2}),
				mat.NewVecDense(3, tt.yPred),
			)
			require.NoError(t, err)

			if tt.isNaN {
				assert.True(t, math.IsNaN(result[KeyR2]))
			} else {
				assert.True(t, math.IsInf(result[KeyR2], tt.signed))
			}

			require.Len(t, *warnings, 1)
			var w *errors.UndefinedMetricWarning
			require.True(t, errors.As((*warnings)[0], &w))
			assert.Equal(t, "R2", w.Metric)
		})
	}
}

func TestEvaluateRegressionInvalid(t *testing.T) {
	_, err := EvaluateRegression(mat.NewVecDense(2, []float64{1, 2}), mat.NewVecDense(3, []float64{1, 2, 3}))
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = EvaluateRegression(&mat.VecDense{}, &mat.VecDense{})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = EvaluateRegression(nil, nil)
	assert.True(t, errors.IsInvalidArgument(err))
}
