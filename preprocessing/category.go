package preprocessing

import (
	"cmp"
	"fmt"
	"math"
	"strconv"

	"github.com/YuminosukeSato/linreg/pkg/errors"
)

// asFloat converts any Go numeric kind to float64.
func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	default:
		return 0, false
	}
}

// normalizeCategory maps a cell to the value it is compared by. Numbers
// become float64 so 1 and 1.0 are the same category. Strings and bools are
// kept. Anything else, including nil and NaN, is rejected.
func normalizeCategory(op string, v any) (any, error) {
	switch x := v.(type) {
	case string, bool:
		return x, nil
	}
	f, ok := asFloat(v)
	if !ok {
		return nil, errors.NewValueError(op, fmt.Sprintf("unsupported category %v of type %T", v, v))
	}
	if math.IsNaN(f) {
		return nil, errors.NewValueError(op, "NaN is not a valid category")
	}
	return f, nil
}

// kindRank orders categories of different kinds: numbers, then strings,
// then bools.
func kindRank(v any) int {
	switch v.(type) {
	case float64:
		return 0
	case string:
		return 1
	default:
		return 2
	}
}

// compareCategories orders two normalized categories.
func compareCategories(a, b any) int {
	if c := cmp.Compare(kindRank(a), kindRank(b)); c != 0 {
		return c
	}
	switch x := a.(type) {
	case float64:
		return cmp.Compare(x, b.(float64))
	case string:
		return cmp.Compare(x, b.(string))
	case bool:
		y := b.(bool)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		default:
			return 1
		}
	}
	return 0
}

// categoryName renders a category for feature names.
func categoryName(v any) string {
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return fmt.Sprint(v)
}
