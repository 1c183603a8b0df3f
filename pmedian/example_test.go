// Runnable examples for pmedian. Each one uses the three-site instance
//
//	          A   B   C   demand
//	customer0 2   5   9   10
//	customer1 8   1   4    5
//
// and prints a stable // Output: block.
package pmedian_test

import (
	"fmt"
	"os"

	"github.com/katalvlaran/pmedian/costmodel"
	"github.com/katalvlaran/pmedian/mip/pbsolver"
	"github.com/katalvlaran/pmedian/pmedian"
)

func exampleModel() *costmodel.CostModel {
	cm, err := costmodel.New(
		[][]float64{{2, 5, 9}, {8, 1, 4}},
		[]float64{10, 5},
		costmodel.WithFacilityNames([]string{"A", "B", "C"}),
	)
	if err != nil {
		panic(err)
	}
	return cm
}

// ExampleReduce closes A (delta 30) rather than B (delta 35).
func ExampleReduce() {
	cm := exampleModel()
	res, err := pmedian.Reduce(cm, 1, pmedian.DefaultGreedyOptions())
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, st := range res.Trace {
		fmt.Printf("close %s: +%g -> %g\n", cm.FacilityName(st.Removed), st.Delta, st.Objective)
	}
	fmt.Println(cm.FacilityNames(res.Selected), res.Objective)
	// Output:
	// close A: +30 -> 55
	// [B] 55
}

// ExampleSolveExact solves the same instance with the gophersat backend.
func ExampleSolveExact() {
	cm := exampleModel()
	res, err := pmedian.SolveExact(cm, 1, pbsolver.New(pbsolver.DefaultOptions()), pmedian.DefaultExactOptions())
	if err != nil || res == nil {
		fmt.Println("no solution", err)
		return
	}
	fmt.Println(cm.FacilityNames(res.Selected), res.Objective)
	// Output:
	// [B] 55
}

// ExampleFormulate exports the p=2 model in LP format.
func ExampleFormulate() {
	model, err := pmedian.Formulate(exampleModel(), 2)
	if err != nil {
		fmt.Println(err)
		return
	}
	_ = model.WriteLP(os.Stdout)
	// Output:
	// \Problem name: location
	//
	// Minimize
	//  obj: 20 y_0_A + 50 y_0_B + 90 y_0_C + 40 y_1_A + 5 y_1_B + 20 y_1_C
	// Subject To
	//  Demand_0: y_0_A + y_0_B + y_0_C = 1
	//  Demand_1: y_1_A + y_1_B + y_1_C = 1
	//  Cons_0_A: y_0_A - x_A <= 0
	//  Cons_0_B: y_0_B - x_B <= 0
	//  Cons_0_C: y_0_C - x_C <= 0
	//  Cons_1_A: y_1_A - x_A <= 0
	//  Cons_1_B: y_1_B - x_B <= 0
	//  Cons_1_C: y_1_C - x_C <= 0
	//  numConst: x_A + x_B + x_C = 2
	//
	// Binaries
	//  x_A x_B x_C y_0_A y_0_B y_0_C y_1_A y_1_B y_1_C
	// End
}
