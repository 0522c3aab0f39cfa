package repository_test

import (
	"fmt"

	"github.com/efyj-go/efyj/matrix"
	"github.com/efyj-go/efyj/model"
	"github.com/efyj-go/efyj/repository"
)

// ExampleRepository_ExtractOptions shows the round-trip guarantee:
// evaluating a model's own extracted option template always yields
// squared kappa 1.
func ExampleRepository_ExtractOptions() {
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

	repo := repository.New(nil)

	ds, err := repo.ExtractOptions(m)
	if err != nil {
		panic(err)
	}

	result, err := repo.Evaluate(m, ds)
	if err != nil {
		panic(err)
	}

	fmt.Println(result.SquaredKappa)

	// Output:
	// 1
}
