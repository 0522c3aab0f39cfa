package kappa_test

import (
	"fmt"

	"github.com/efyj-go/efyj/kappa"
)

// ExampleCalculator_Squared shows perfect agreement between observed and
// simulated class vectors scoring kappa 1.
func ExampleCalculator_Squared() {
	calc, err := kappa.NewCalculator(3)
	if err != nil {
		panic(err)
	}

	obs := []int8{0, 1, 2, 0, 1, 2}
	sim := []int8{0, 1, 2, 0, 1, 2}

	k, err := calc.Squared(obs, sim)
	if err != nil {
		panic(err)
	}

	fmt.Println(k)

	// Output:
	// 1
}
