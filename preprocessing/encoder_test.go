package preprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/linreg/pkg/errors"
)

func column(values ...any) Table {
	t := make(Table, len(values))
	for i, v := range values {
		t[i] = []any{v}
	}
	return t
}

func TestOneHotEncodeSingleColumn(t *testing.T) {
	X := column("a", "b", "a", "c")

	tests := []struct {
		name      string
		dropFirst bool
		want      Table
	}{
		{
			name:      "keep all",
			dropFirst: false,
			want: Table{
				{1.0, 0.0, 0.0},
				{0.0, 1.0, 0.0},
				{1.0, 0.0, 0.0},
				{0.0, 0.0, 1.0},
			},
		},
		{
			name:      "drop first",
			dropFirst: true,
			want: Table{
				{0.0, 0.0},
				{1.0, 0.0},
				{0.0, 0.0},
				{0.0, 1.0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := OneHotEncode(X, []int{0}, tt.dropFirst)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOneHotEncodeSplicesAtOriginalIndex(t *testing.T) {
	X := Table{
		{1.5, "red", 10, true},
		{2.5, "blue", 20, false},
		{3.5, "red", 10, true},
	}

	got, err := OneHotEncode(X, []int{1, 3}, false)
	require.NoError(t, err)

	// blue, red | false, true
	want := Table{
		{1.5, 0.0, 1.0, 10, 0.0, 1.0},
		{2.5, 1.0, 0.0, 20, 1.0, 0.0},
		{3.5, 0.0, 1.0, 10, 0.0, 1.0},
	}
	assert.Equal(t, want, got)

	// input untouched
	assert.Equal(t, Table{
		{1.5, "red", 10, true},
		{2.5, "blue", 20, false},
		{3.5, "red", 10, true},
	}, X)
}

func TestOneHotEncodeIndexOrderDoesNotMatter(t *testing.T) {
	X := Table{{"x", "p"}, {"y", "q"}}

	a, err := OneHotEncode(X, []int{0, 1}, false)
	require.NoError(t, err)
	b, err := OneHotEncode(X, []int{1, 0}, false)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestOneHotEncodeMixedCategoryOrder(t *testing.T) {
	enc := NewOneHotEncoder([]int{0})
	_, err := enc.FitTransform(column("b", 2, true, 1.0, "a", false, int64(1)))
	require.NoError(t, err)

	assert.Equal(t, [][]any{{1.0, 2.0, "a", "b", false, true}}, enc.Categories())
}

func TestOneHotEncodeBlocksSumToOne(t *testing.T) {
	X := Table{
		{"a", 1}, {"b", 2}, {"c", 1}, {"a", 3}, {"b", 3},
	}

	for _, dropFirst := range []bool{false, true} {
		got, err := OneHotEncode(X, []int{0, 1}, dropFirst)
		require.NoError(t, err)
		require.Len(t, got, len(X))

		for i, row := range got {
			// first block covers categories a,b,c; second 1,2,3
			first, second := row[:3], row[3:]
			if dropFirst {
				first, second = row[:2], row[2:]
			}
			sum := func(block []any) float64 {
				var s float64
				for _, v := range block {
					s += v.(float64)
				}
				return s
			}

			wantFirst, wantSecond := 1.0, 1.0
			if dropFirst && X[i][0] == "a" {
				wantFirst = 0
			}
			if dropFirst && X[i][1] == 1 {
				wantSecond = 0
			}
			assert.Equal(t, wantFirst, sum(first), "row %d", i)
			assert.Equal(t, wantSecond, sum(second), "row %d", i)
		}
	}
}

func TestOneHotEncodeNoCategoricalColumns(t *testing.T) {
	X := Table{{1, 2}, {3, 4}}
	got, err := OneHotEncode(X, nil, false)
	require.NoError(t, err)
	assert.Equal(t, X, got)
}

func TestOneHotEncodeInvalid(t *testing.T) {
	tests := []struct {
		name    string
		X       Table
		indices []int
	}{
		{"empty table", Table{}, []int{0}},
		{"empty row", Table{{}}, []int{0}},
		{"ragged rows", Table{{"a", 1}, {"b"}}, []int{0}},
		{"index out of range", Table{{"a"}}, []int{1}},
		{"negative index", Table{{"a"}}, []int{-1}},
		{"duplicate index", Table{{"a", "b"}}, []int{1, 1}},
		{"nil cell", Table{{nil}}, []int{0}},
		{"unsupported type", Table{{[]int{1}}}, []int{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := OneHotEncode(tt.X, tt.indices, false)
			require.Error(t, err)
			assert.True(t, errors.IsInvalidArgument(err), "unexpected error kind: %v", err)
		})
	}
}

func TestOneHotEncoderTransformUnseenCategory(t *testing.T) {
	enc := NewOneHotEncoder([]int{0})
	require.NoError(t, enc.Fit(column("cat", "dog")))

	got, err := enc.Transform(column("dog", "bird"))
	require.NoError(t, err)
	assert.Equal(t, Table{{0.0, 1.0}, {0.0, 0.0}}, got)
}

func TestOneHotEncoderUnfitted(t *testing.T) {
	enc := NewOneHotEncoder([]int{0})
	assert.False(t, enc.IsFitted())
	assert.Nil(t, enc.Categories())
	assert.Nil(t, enc.GetFeatureNamesOut(nil))
	assert.Zero(t, enc.NOutputs())

	_, err := enc.Transform(column("a"))
	require.Error(t, err)
	assert.True(t, errors.IsNotFitted(err))
}

func TestOneHotEncoderDimensionMismatch(t *testing.T) {
	enc := NewOneHotEncoder([]int{0})
	require.NoError(t, enc.Fit(Table{{"a", 1}}))

	_, err := enc.Transform(column("a"))
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestOneHotEncoderGetFeatureNamesOut(t *testing.T) {
	X := Table{{"cat", 4.2, 1}, {"dog", 3.1, 2}}

	enc := NewOneHotEncoder([]int{0, 2})
	out, err := enc.FitTransform(X)
	require.NoError(t, err)

	names := enc.GetFeatureNamesOut([]string{"animal", "weight"})
	assert.Equal(t, []string{"animal_cat", "animal_dog", "weight", "x2_1", "x2_2"}, names)
	assert.Len(t, out[0], len(names))
	assert.Equal(t, len(names), enc.NOutputs())

	dropped := NewOneHotEncoder([]int{0, 2}, WithDropFirst(true))
	_, err = dropped.FitTransform(X)
	require.NoError(t, err)
	assert.Equal(t, []string{"animal_dog", "weight", "x2_2"}, dropped.GetFeatureNamesOut([]string{"animal", "weight"}))
	assert.Equal(t, 3, dropped.NOutputs())
}

func TestToDense(t *testing.T) {
	m, err := ToDense(Table{{1, 2.5}, {int64(3), float32(4)}})
	require.NoError(t, err)

	r, c := m.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, 2.5, m.At(0, 1))
	assert.Equal(t, 3.0, m.At(1, 0))

	_, err = ToDense(Table{{1, "a"}})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}
