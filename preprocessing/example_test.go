package preprocessing_test

import (
	"fmt"

	"github.com/YuminosukeSato/linreg/preprocessing"
)

func ExampleOneHotEncode() {
	X := preprocessing.Table{
		{"a", 1.5},
		{"b", 2.0},
		{"a", 0.5},
		{"c", 4.0},
	}

	encoded, err := preprocessing.OneHotEncode(X, []int{0}, false)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, row := range encoded {
		fmt.Println(row)
	}
	// Output:
	// [1 0 0 1.5]
	// [0 1 0 2]
	// [1 0 0 0.5]
	// [0 0 1 4]
}

func ExampleOneHotEncoder_GetFeatureNamesOut() {
	enc := preprocessing.NewOneHotEncoder([]int{0}, preprocessing.WithDropFirst(true))
	if err := enc.Fit(preprocessing.Table{{"red", 1}, {"green", 2}, {"blue", 3}}); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(enc.GetFeatureNamesOut([]string{"color", "size"}))
	// Output: [color_green color_red size]
}
