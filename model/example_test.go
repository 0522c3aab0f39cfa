package model_test

import (
	"fmt"

	"github.com/efyj-go/efyj/matrix"
	"github.com/efyj-go/efyj/model"
)

// ExampleNewModel builds a two-leaf model and inspects its shape: root
// "score" aggregates leaves "a" (scale x/y) and "b" (scale p/q) via a
// lookup table whose row r holds r%2.
func ExampleNewModel() {
	tbl, err := matrix.NewDense(4, 1)
	if err != nil {
		panic(err)
	}
	for r := 0; r < 4; r++ {
		if err := tbl.Set(r, 0, int8(r%2)); err != nil {
			panic(err)
		}
	}

	m, err := model.NewModel([]model.Attribute{
		{Name: "score", Scale: model.Scale{Values: []string{"low", "high"}}, Children: []int{1, 2}, Table: tbl},
		{Name: "a", Scale: model.Scale{Values: []string{"x", "y"}}},
		{Name: "b", Scale: model.Scale{Values: []string{"p", "q"}}},
	})
	if err != nil {
		panic(err)
	}

	fmt.Println("leaves:", m.NumLeaves())
	fmt.Println("root scale size:", m.RootScaleSize())

	idx := m.RowIndex(0, []int8{1, 0}) // a=1 (y), b=0 (p)
	fmt.Println("row index:", idx)

	v, err := m.Root().Table.At(idx, 0)
	if err != nil {
		panic(err)
	}
	fmt.Println("table value at that row:", v)

	// Output:
	// leaves: 2
	// root scale size: 2
	// row index: 2
	// table value at that row: 0
}
