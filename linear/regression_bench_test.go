package linear

import (
	"io"
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linreg/core/matrix"
	"github.com/YuminosukeSato/linreg/pkg/log"
)

// createBenchmarkData returns X with values in [-1, 1) and
// y = 1 + Σ 0.5·(j+1)·x_j plus small noise.
func createBenchmarkData(rows, cols int) (*mat.Dense, *mat.Dense) {
	rng := rand.New(rand.NewPCG(42, 42))

	X := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			X.Set(i, j, rng.Float64()*2.0-1.0)
		}
	}

	y := mat.NewDense(rows, 1, nil)
	for i := 0; i < rows; i++ {
		sum := 1.0
		for j := 0; j < cols; j++ {
			sum += X.At(i, j) * float64(j+1) * 0.5
		}
		sum += (rng.Float64() - 0.5) * 0.1
		y.Set(i, 0, sum)
	}

	return X, y
}

func quietModel() *LinearRegression {
	logger, _ := log.NewTestLogger(log.LevelError)
	return NewLinearRegression(
		WithRandomState(42),
		WithDiagnosticWriter(io.Discard),
		WithLogger(logger),
	)
}

func BenchmarkLinearRegressionFit(b *testing.B) {
	sizes := []struct {
		name string
		rows int
		cols int
	}{
		{"Small_100x10", 100, 10},
		{"Small_500x10", 500, 10},
		{"Medium_1000x10", 1000, 10}, // parallel threshold
		{"Medium_2000x10", 2000, 10},
		{"Large_5000x20", 5000, 20},
		{"Large_10000x20", 10000, 20},
		{"XLarge_50000x50", 50000, 50},
	}

	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			X, y := createBenchmarkData(size.rows, size.cols)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := quietModel().Fit(X, y); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkLinearRegressionFitGradientDescent(b *testing.B) {
	sizes := []struct {
		name string
		rows int
		cols int
	}{
		{"GD_100x5", 100, 5},
		{"GD_1000x10", 1000, 10},
	}

	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			X, y := createBenchmarkData(size.rows, size.cols)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				err := quietModel().Fit(X, y, WithMethod(GradientDescent), WithIterations(1000))
				if err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkAddBias(b *testing.B) {
	sizes := []struct {
		name string
		rows int
		cols int
	}{
		{"Bias_900x10", 900, 10}, // below the parallel threshold
		{"Bias_5000x20", 5000, 20},
		{"Bias_10000x20", 10000, 20},
	}

	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			X, _ := createBenchmarkData(size.rows, size.cols)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = matrix.AddBias(X)
			}
		})
	}
}
