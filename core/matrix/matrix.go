// Package matrix builds the dense matrices the regressors work on and solves
// the least-squares normal equation.
package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linreg/core/parallel"
	"github.com/YuminosukeSato/linreg/pkg/errors"
)

// FromRows copies rows into a new dense matrix. Every row must have the same,
// non-zero length.
func FromRows(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.NewModelError("matrix.FromRows", "empty data", errors.ErrEmptyData)
	}

	c := len(rows[0])
	data := make([]float64, 0, len(rows)*c)
	for i, row := range rows {
		if len(row) != c {
			return nil, errors.NewValueError("matrix.FromRows",
				fmt.Sprintf("row %d has %d values, expected %d", i, len(row), c))
		}
		data = append(data, row...)
	}
	return mat.NewDense(len(rows), c, data), nil
}

// AddBias returns a copy of X with a leading column of ones. Large inputs are
// filled row ranges at a time on several goroutines.
func AddBias(X mat.Matrix) *mat.Dense {
	r, c := X.Dims()
	out := mat.NewDense(r, c+1, nil)

	parallel.ParallelizeWithThreshold(r, parallel.DefaultThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			out.Set(i, 0, 1.0)
			for j := 0; j < c; j++ {
				out.Set(i, j+1, X.At(i, j))
			}
		}
	})

	return out
}

// ColumnVector converts a single-column matrix into a vector. The result does
// not share storage with m.
func ColumnVector(m mat.Matrix) (*mat.VecDense, error) {
	r, c := m.Dims()
	if r == 0 {
		return nil, errors.NewModelError("matrix.ColumnVector", "empty data", errors.ErrEmptyData)
	}
	if c != 1 {
		return nil, errors.NewDimensionError("matrix.ColumnVector", 1, c, 1)
	}
	return mat.NewVecDense(r, mat.Col(nil, 0, m)), nil
}

// SolveNormalEquation solves (XᵀX)w = Xᵀy for w with an LU factorisation.
// A singular or numerically singular XᵀX, as produced by collinear columns or
// fewer rows than columns, returns an error wrapping errors.ErrSingularMatrix.
func SolveNormalEquation(X mat.Matrix, y mat.Vector) (*mat.VecDense, error) {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return nil, errors.NewModelError("matrix.SolveNormalEquation", "empty data", errors.ErrEmptyData)
	}
	if y.Len() != r {
		return nil, errors.NewDimensionError("matrix.SolveNormalEquation", r, y.Len(), 0)
	}
	if r < c {
		// rank(XᵀX) <= r
		return nil, errors.NewModelError("matrix.SolveNormalEquation", "singular matrix",
			errors.Wrapf(errors.ErrSingularMatrix, "%d observations for %d parameters", r, c))
	}

	var xtx mat.Dense
	xtx.Mul(X.T(), X)

	var xty mat.VecDense
	xty.MulVec(X.T(), y)

	w := mat.NewVecDense(c, nil)
	if err := w.SolveVec(&xtx, &xty); err != nil {
		return nil, errors.NewModelError("matrix.SolveNormalEquation", "singular matrix",
			errors.Wrap(errors.ErrSingularMatrix, err.Error()))
	}

	if err := errors.CheckNumericalStability("normal_equation", w.RawVector().Data, 0); err != nil {
		return nil, errors.NewModelError("matrix.SolveNormalEquation", "singular matrix",
			errors.Wrap(errors.ErrSingularMatrix, "non-finite solution"))
	}

	return w, nil
}
