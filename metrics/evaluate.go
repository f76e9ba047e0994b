package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linreg/pkg/errors"
	"github.com/YuminosukeSato/linreg/pkg/log"
)

// Keys of a Result.
const (
	KeyR2   = "R2"
	KeyRMSE = "RMSE"
	KeyMAE  = "MAE"
)

// Result maps a metric name to its value.
type Result map[string]float64

// EvaluateRegression computes R², RMSE and MAE of yPred against yTrue.
//
// When yTrue is constant the R² denominator is zero. The returned R2 is then
// the raw non-finite quotient (NaN for perfect predictions, -Inf otherwise)
// and an UndefinedMetricWarning is raised through errors.Warn.
func EvaluateRegression(yTrue, yPred *mat.VecDense) (Result, error) {
	t, p, err := pair("EvaluateRegression", yTrue, yPred)
	if err != nil {
		return nil, err
	}

	n := float64(len(t))
	rss, tss := sumSquares(t, p)

	r2 := 1 - rss/tss
	if tss == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("R2", "constant y_true (total sum of squares is zero)", r2))
	}

	mae, err := MAE(yTrue, yPred)
	if err != nil {
		return nil, err
	}

	result := Result{
		KeyR2:   r2,
		KeyRMSE: math.Sqrt(rss / n),
		KeyMAE:  mae,
	}

	log.GetLoggerWithName("metrics").Debug("Regression evaluated",
		log.OperationKey, log.OperationEvaluate,
		log.PhaseKey, log.PhaseEvaluation,
		log.SamplesKey, len(t),
		log.R2ScoreKey, result[KeyR2],
		log.RMSEKey, result[KeyRMSE],
		log.MAEKey, result[KeyMAE],
	)

	return result, nil
}
