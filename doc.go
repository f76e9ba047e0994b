// Package linreg is ordinary multiple linear regression for Go.
//
// The module is split into small packages:
//
//   - linear: LinearRegression, fitted by the normal equation or by batch
//     gradient descent.
//   - metrics: EvaluateRegression (R², RMSE, MAE) and standalone metrics.
//   - preprocessing: one-hot encoding of categorical columns in mixed-type
//     tables, and conversion to gonum matrices.
//   - core/matrix: bias augmentation and the normal-equation solve.
//   - core/model: fitted-state tracking and weight serialization.
//   - pkg/errors, pkg/log: error taxonomy and structured logging.
//
// # Quick Start
//
//	table := preprocessing.Table{
//	    {"north", 1.2, 3.0},
//	    {"south", 0.7, 2.1},
//	    {"east", 2.3, 1.4},
//	    ...
//	}
//	encoded, err := preprocessing.OneHotEncode(table, []int{0}, true)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	X, err := preprocessing.ToDense(encoded)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	lr := linear.NewLinearRegression()
//	if err := lr.Fit(X, y); err != nil {
//	    log.Fatal(err)
//	}
//	pred, _ := lr.Predict(X)
//	result, _ := metrics.EvaluateRegression(y, pred)
//	fmt.Println(result["R2"], result["RMSE"], result["MAE"])
//
// # Errors
//
// Every failure is one of three kinds, checked with errors.IsInvalidArgument,
// errors.IsNotFitted and errors.IsNumerical from pkg/errors. Errors carry a
// stack trace; print it with fmt.Printf("%+v", err).
//
// # Logging
//
// Components log through pkg/log, backed by zerolog. Call
// log.SetupLogger("debug") to see training progress.
package linreg
