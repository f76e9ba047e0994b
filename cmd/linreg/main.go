// Command linreg fits a linear regression on synthetic mixed-type data and
// reports its coefficients and quality metrics.
package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linreg/core/model"
	"github.com/YuminosukeSato/linreg/linear"
	"github.com/YuminosukeSato/linreg/metrics"
	"github.com/YuminosukeSato/linreg/pkg/errors"
	"github.com/YuminosukeSato/linreg/pkg/log"
	"github.com/YuminosukeSato/linreg/preprocessing"
)

var version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "linreg",
		Short:         "Fit and apply ordinary least squares linear regression",
		Version:       version,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return log.SetupLogger(logLevel)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(fitCmd(), predictCmd())
	return root
}

// fitConfig holds the flags of the fit command.
type fitConfig struct {
	method       string
	learningRate float64
	iterations   int
	samples      int
	features     int
	categories   int
	dropFirst    bool
	noise        float64
	seed         uint64
	export       string
}

func fitCmd() *cobra.Command {
	var cfg fitConfig

	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Generate synthetic data, fit a model and print its metrics",
		Example: `  linreg fit --samples 500 --features 3 --categories 4
  linreg fit --method gradient_descent --learning-rate 0.05 --iterations 5000
  linreg fit --export model.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFit(cfg, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.method, "method", string(linear.LeastSquares), "fitting strategy (least_squares, gradient_descent)")
	f.Float64Var(&cfg.learningRate, "learning-rate", linear.DefaultLearningRate, "gradient descent step size")
	f.IntVar(&cfg.iterations, "iterations", linear.DefaultIterations, "gradient descent iterations")
	f.IntVar(&cfg.samples, "samples", 200, "number of synthetic observations")
	f.IntVar(&cfg.features, "features", 2, "number of numeric features")
	f.IntVar(&cfg.categories, "categories", 3, "distinct values of the categorical feature (0 disables it)")
	f.BoolVar(&cfg.dropFirst, "drop-first", true, "drop the lowest category when one-hot encoding")
	f.Float64Var(&cfg.noise, "noise", 0.1, "standard deviation of the target noise")
	f.Uint64Var(&cfg.seed, "seed", 42, "random seed for data generation and initialisation")
	f.StringVar(&cfg.export, "export", "", "write the fitted weights to this JSON file")

	return cmd
}

// synthesize builds a table whose first column is categorical when
// categories > 0, followed by numeric features in [0, 1). The target is
// 1 + Σ (j+1)·x_j + 0.5·category index + noise.
func synthesize(cfg fitConfig) (preprocessing.Table, *mat.VecDense, []string) {
	rng := rand.New(rand.NewPCG(cfg.seed, cfg.seed))

	var names []string
	if cfg.categories > 0 {
		names = append(names, "group")
	}
	for j := 0; j < cfg.features; j++ {
		names = append(names, "x"+strconv.Itoa(j))
	}

	table := make(preprocessing.Table, cfg.samples)
	y := mat.NewVecDense(cfg.samples, nil)
	for i := range table {
		row := make([]any, 0, len(names))
		target := 1.0
		if cfg.categories > 0 {
			c := rng.IntN(cfg.categories)
			row = append(row, "g"+strconv.Itoa(c))
			target += 0.5 * float64(c)
		}
		for j := 0; j < cfg.features; j++ {
			x := rng.Float64()
			row = append(row, x)
			target += float64(j+1) * x
		}
		table[i] = row
		y.SetVec(i, target+cfg.noise*rng.NormFloat64())
	}
	return table, y, names
}

func runFit(cfg fitConfig, out io.Writer) error {
	method, err := linear.ParseMethod(cfg.method)
	if err != nil {
		return err
	}
	if cfg.samples <= 0 || cfg.features < 0 || cfg.features+cfg.categories == 0 {
		return errors.NewValueError("linreg fit", "need at least one observation and one feature")
	}

	logger := log.GetLoggerWithName("cmd")
	table, y, names := synthesize(cfg)

	var categorical []int
	if cfg.categories > 0 {
		categorical = []int{0}
	}
	enc := preprocessing.NewOneHotEncoder(categorical, preprocessing.WithDropFirst(cfg.dropFirst))
	encoded, err := enc.FitTransform(table)
	if err != nil {
		return err
	}
	featureNames := enc.GetFeatureNamesOut(names)

	X, err := preprocessing.ToDense(encoded)
	if err != nil {
		return err
	}

	lr := linear.NewLinearRegression(
		linear.WithRandomState(int64(cfg.seed)),
		linear.WithDiagnosticWriter(out),
	)
	err = lr.Fit(X, y,
		linear.WithMethod(method),
		linear.WithLearningRate(cfg.learningRate),
		linear.WithIterations(cfg.iterations),
	)
	if err != nil {
		logger.Error("Fit failed", err, log.MethodKey, cfg.method)
		return err
	}
	if err := lr.CheckFinite(); err != nil {
		return err
	}

	pred, err := lr.Predict(X)
	if err != nil {
		return err
	}
	result, err := metrics.EvaluateRegression(y, pred)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "method: %s\n", method)
	fmt.Fprintf(out, "intercept: %.6f\n", lr.Intercept())
	for j, c := range lr.Coefficients() {
		fmt.Fprintf(out, "%s: %.6f\n", featureNames[j], c)
	}
	for _, key := range []string{metrics.KeyR2, metrics.KeyRMSE, metrics.KeyMAE} {
		fmt.Fprintf(out, "%s = %.6f\n", key, result[key])
	}

	if cfg.export == "" {
		return nil
	}
	w, err := lr.ExportWeights()
	if err != nil {
		return err
	}
	w.Features = featureNames
	if err := model.SaveWeights(w, cfg.export); err != nil {
		return err
	}
	logger.Info("Weights exported", "path", cfg.export, log.EstimatorIDKey, lr.ID())
	return nil
}

func predictCmd() *cobra.Command {
	var weights string

	cmd := &cobra.Command{
		Use:     "predict --weights FILE VALUE...",
		Short:   "Predict one observation with exported weights",
		Example: `  linreg predict --weights model.json 0 1 0.3 0.7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPredict(weights, args, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&weights, "weights", "", "weights file written by fit --export")
	_ = cmd.MarkFlagRequired("weights")

	return cmd
}

func runPredict(path string, args []string, out io.Writer) error {
	w, err := model.LoadWeights(path)
	if err != nil {
		return err
	}

	lr := linear.NewLinearRegression()
	if err := lr.ImportWeights(w); err != nil {
		return err
	}

	if len(args) != len(w.Coefficients) {
		return errors.NewDimensionError("linreg predict", len(w.Coefficients), len(args), 1)
	}
	row := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return errors.Wrapf(err, "value %d", i)
		}
		row[i] = v
	}

	pred, err := lr.Predict(mat.NewDense(1, len(row), row))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%.6f\n", pred.AtVec(0))
	return nil
}
