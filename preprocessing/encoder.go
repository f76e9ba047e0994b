// Package preprocessing turns mixed-type tables into numeric feature
// matrices.
package preprocessing

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linreg/core/model"
	"github.com/YuminosukeSato/linreg/pkg/errors"
	"github.com/YuminosukeSato/linreg/pkg/log"
)

// Table is a row-major table whose cells may be numbers, strings or bools.
type Table = [][]any

// OneHotEncode replaces each column listed in categoricalIndices with one
// indicator column per distinct value, in ascending category order, at the
// column's original position. With dropFirst the lowest category gets no
// column and is encoded as an all-zero block. Indicators are float64 1 or 0.
//
// X is not modified. Indices out of range or listed twice, ragged rows and
// empty input return an InvalidArgument error.
//
// Example:
//
//	X := preprocessing.Table{{"a", 1.5}, {"b", 2.0}, {"a", 0.5}}
//	out, err := preprocessing.OneHotEncode(X, []int{0}, false)
//	// out: {{1, 0, 1.5}, {0, 1, 2.0}, {1, 0, 0.5}}
func OneHotEncode(X Table, categoricalIndices []int, dropFirst bool) (Table, error) {
	enc := NewOneHotEncoder(categoricalIndices, WithDropFirst(dropFirst))
	return enc.FitTransform(X)
}

// EncoderOption configures a OneHotEncoder.
type EncoderOption func(*OneHotEncoder)

// WithDropFirst drops the lowest category of every encoded column.
func WithDropFirst(drop bool) EncoderOption {
	return func(e *OneHotEncoder) {
		e.dropFirst = drop
	}
}

// WithEncoderLogger replaces the component logger.
func WithEncoderLogger(logger log.Logger) EncoderOption {
	return func(e *OneHotEncoder) {
		e.logger = logger
	}
}

// OneHotEncoder learns the categories of selected columns with Fit and
// encodes tables with Transform. Categories not seen during Fit encode as an
// all-zero block.
type OneHotEncoder struct {
	state     *model.StateManager
	indices   []int
	dropFirst bool
	logger    log.Logger

	// aligned with the sorted indices
	categories [][]any
	lookup     []map[any]int
	nColumns   int
}

// NewOneHotEncoder creates an encoder for the given column indices.
func NewOneHotEncoder(categoricalIndices []int, opts ...EncoderOption) *OneHotEncoder {
	e := &OneHotEncoder{
		state:   model.NewStateManager("OneHotEncoder"),
		indices: slices.Clone(categoricalIndices),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.GetLoggerWithName("preprocessing")
	}
	e.logger = e.logger.With(
		log.ModelNameKey, "OneHotEncoder",
		log.ComponentKey, "preprocessing",
	)
	return e
}

// checkTable returns the column count of a non-empty rectangular table.
func checkTable(op string, X Table) (int, error) {
	if len(X) == 0 || len(X[0]) == 0 {
		return 0, errors.NewValueError(op, "empty data")
	}
	nCols := len(X[0])
	for i, row := range X {
		if len(row) != nCols {
			return 0, errors.NewValueError(op,
				fmt.Sprintf("row %d has %d columns, expected %d", i, len(row), nCols))
		}
	}
	return nCols, nil
}

// checkIndices returns the indices in ascending order.
func checkIndices(indices []int, nCols int) ([]int, error) {
	sorted := slices.Clone(indices)
	slices.Sort(sorted)
	for i, idx := range sorted {
		if idx < 0 || idx >= nCols {
			return nil, errors.NewValidationError("categorical_indices",
				fmt.Sprintf("index out of range for %d columns", nCols), idx)
		}
		if i > 0 && sorted[i-1] == idx {
			return nil, errors.NewValidationError("categorical_indices", "duplicate index", idx)
		}
	}
	return sorted, nil
}

// Fit learns the sorted distinct values of every categorical column.
func (e *OneHotEncoder) Fit(X Table) (err error) {
	defer errors.Recover(&err, "OneHotEncoder.Fit")

	nCols, err := checkTable("OneHotEncoder.Fit", X)
	if err != nil {
		return err
	}
	sorted, err := checkIndices(e.indices, nCols)
	if err != nil {
		return err
	}

	categories := make([][]any, len(sorted))
	lookup := make([]map[any]int, len(sorted))
	for k, col := range sorted {
		seen := make(map[any]struct{})
		var values []any
		for _, row := range X {
			v, err := normalizeCategory("OneHotEncoder.Fit", row[col])
			if err != nil {
				return err
			}
			if _, ok := seen[v]; !ok {
				seen[v] = struct{}{}
				values = append(values, v)
			}
		}
		slices.SortFunc(values, compareCategories)

		idx := make(map[any]int, len(values))
		for i, v := range values {
			idx[v] = i
		}
		categories[k] = values
		lookup[k] = idx

		e.logger.Debug("Categories learned",
			log.OperationKey, log.OperationFit,
			log.PhaseKey, log.PhasePreprocessing,
			log.ColumnKey, col,
			log.CategoriesKey, len(values),
		)
	}

	e.indices = sorted
	e.categories = categories
	e.lookup = lookup
	e.nColumns = nCols
	e.state.SetFitted(nCols, len(X))
	return nil
}

// Transform encodes X with the categories learned by Fit. X must have the
// same column count as the fitted table. X is not modified.
func (e *OneHotEncoder) Transform(X Table) (_ Table, err error) {
	defer errors.Recover(&err, "OneHotEncoder.Transform")

	if err := e.state.RequireFitted("Transform"); err != nil {
		return nil, err
	}
	nCols, err := checkTable("OneHotEncoder.Transform", X)
	if err != nil {
		return nil, err
	}
	if nCols != e.nColumns {
		return nil, errors.NewDimensionError("OneHotEncoder.Transform", e.nColumns, nCols, 1)
	}

	// position of each categorical column within e.categories
	pos := make(map[int]int, len(e.indices))
	for k, col := range e.indices {
		pos[col] = k
	}

	width := e.NOutputs()
	out := make(Table, len(X))
	for i, row := range X {
		encoded := make([]any, 0, width)
		for j, cell := range row {
			k, ok := pos[j]
			if !ok {
				encoded = append(encoded, cell)
				continue
			}
			block, err := e.indicatorBlock(k, cell)
			if err != nil {
				return nil, err
			}
			encoded = append(encoded, block...)
		}
		out[i] = encoded
	}

	e.logger.Debug("Table encoded",
		log.OperationKey, log.OperationTransform,
		log.PhaseKey, log.PhasePreprocessing,
		log.SamplesKey, len(X),
		log.FeaturesKey, width,
	)

	return out, nil
}

// indicatorBlock encodes one cell of the k-th categorical column.
func (e *OneHotEncoder) indicatorBlock(k int, cell any) ([]any, error) {
	v, err := normalizeCategory("OneHotEncoder.Transform", cell)
	if err != nil {
		return nil, err
	}

	first := 0
	if e.dropFirst {
		first = 1
	}
	n := len(e.categories[k])
	block := make([]any, 0, n-first)
	hot, known := e.lookup[k][v]
	for c := first; c < n; c++ {
		if known && c == hot {
			block = append(block, 1.0)
		} else {
			block = append(block, 0.0)
		}
	}
	return block, nil
}

// FitTransform fits the encoder on X and encodes it.
func (e *OneHotEncoder) FitTransform(X Table) (_ Table, err error) {
	defer errors.Recover(&err, "OneHotEncoder.FitTransform")
	if err := e.Fit(X); err != nil {
		return nil, err
	}
	return e.Transform(X)
}

// IsFitted reports whether Fit has succeeded.
func (e *OneHotEncoder) IsFitted() bool {
	return e.state.IsFitted()
}

// Categories returns the learned categories of each encoded column, in
// ascending column order. Dropped categories are included.
func (e *OneHotEncoder) Categories() [][]any {
	if !e.state.IsFitted() {
		return nil
	}
	out := make([][]any, len(e.categories))
	for i, c := range e.categories {
		out[i] = slices.Clone(c)
	}
	return out
}

// NOutputs returns the column count produced by Transform, or 0 before Fit.
func (e *OneHotEncoder) NOutputs() int {
	if !e.state.IsFitted() {
		return 0
	}
	n := e.nColumns
	for _, c := range e.categories {
		n += len(c) - 1
		if e.dropFirst {
			n--
		}
	}
	return n
}

// GetFeatureNamesOut returns the column names of the encoded table. Input
// names default to "x0", "x1", ... when inputFeatures is shorter than the
// table. Encoded columns are named "<input>_<category>".
//
// Example:
//
//	input ["animal", "weight"], column 0 categorical with cat and dog
//	output ["animal_cat", "animal_dog", "weight"]
func (e *OneHotEncoder) GetFeatureNamesOut(inputFeatures []string) []string {
	if !e.state.IsFitted() {
		return nil
	}

	pos := make(map[int]int, len(e.indices))
	for k, col := range e.indices {
		pos[col] = k
	}

	names := make([]string, 0, e.NOutputs())
	for j := 0; j < e.nColumns; j++ {
		name := fmt.Sprintf("x%d", j)
		if j < len(inputFeatures) {
			name = inputFeatures[j]
		}

		k, ok := pos[j]
		if !ok {
			names = append(names, name)
			continue
		}
		cats := e.categories[k]
		if e.dropFirst && len(cats) > 0 {
			cats = cats[1:]
		}
		for _, c := range cats {
			names = append(names, name+"_"+categoryName(c))
		}
	}
	return names
}

// ToDense converts an all-numeric table into a feature matrix.
func ToDense(X Table) (*mat.Dense, error) {
	nCols, err := checkTable("preprocessing.ToDense", X)
	if err != nil {
		return nil, err
	}

	out := mat.NewDense(len(X), nCols, nil)
	for i, row := range X {
		for j, cell := range row {
			f, ok := asFloat(cell)
			if !ok {
				return nil, errors.NewValueError("preprocessing.ToDense",
					fmt.Sprintf("non-numeric value %v at row %d, column %d", cell, i, j))
			}
			out.Set(i, j, f)
		}
	}
	return out, nil
}
