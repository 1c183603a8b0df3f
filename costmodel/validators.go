package costmodel

import (
	"fmt"
	"math"
)

// validatorErrorf tags a sentinel with the validator that raised it.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateValue checks one cost or demand: finite and non-negative.
//
// Errors: ErrNaNInf, ErrNegative.
// Complexity: O(1).
func ValidateValue(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return validatorErrorf("ValidateValue", ErrNaNInf)
	}
	if v < 0 {
		return validatorErrorf("ValidateValue", ErrNegative)
	}
	return nil
}

// ValidateInput runs ValidateValue over every cost and demand, reporting
// the first offending position. New does not call it; loaders do, before
// handing data to New.
//
// Errors: ErrNaNInf, ErrNegative.
// Complexity: O(m·n).
func ValidateInput(cost [][]float64, demand []float64) error {
	for i, row := range cost {
		for j, v := range row {
			if err := ValidateValue(v); err != nil {
				return validatorErrorf(fmt.Sprintf("ValidateInput: cost[%d][%d]=%g", i, j, v), err)
			}
		}
	}
	for i, v := range demand {
		if err := ValidateValue(v); err != nil {
			return validatorErrorf(fmt.Sprintf("ValidateInput: demand[%d]=%g", i, v), err)
		}
	}
	return nil
}
