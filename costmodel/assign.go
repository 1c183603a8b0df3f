package costmodel

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
)

// Assign serves every customer from the cheapest facility in selected.
// Ties go to the facility that comes first in selected, so the result depends
// only on the order of selected and is reproducible bit-for-bit.
//
// Contract: selected is non-empty and every id is in [0, Facilities()).
//
// Complexity: O(m·|selected|).
func (cm *CostModel) Assign(selected []int) (assign []int, mincost []float64) {
	var (
		m   = cm.Customers()
		i   int
		row []float64
	)
	assign = make([]int, m)
	mincost = make([]float64, m)
	for i = 0; i < m; i++ {
		row = cm.Row(i)
		assign[i], mincost[i] = argMin(row, selected)
	}

	return assign, mincost
}

// Nearest returns the first facility in order with the lowest cost for
// customer i, and that cost. order must be non-empty.
//
// Complexity: O(|order|).
func (cm *CostModel) Nearest(i int, order []int) (int, float64) {
	return argMin(cm.Row(i), order)
}

// argMin returns the first j in order minimising row[j].
func argMin(row []float64, order []int) (int, float64) {
	var (
		best  = order[0]
		bestC = row[best]
		c     float64
	)
	for _, j := range order[1:] {
		c = row[j]
		if c < bestC { // strict: earlier entries win ties
			best, bestC = j, c
		}
	}
	return best, bestC
}

// Verify checks that selected is a set of distinct, in-range facilities and
// that assign is exactly Assign(selected). Violations wrap ErrInvalidAssignment.
//
// Complexity: O(m·|selected|).
func (cm *CostModel) Verify(selected, assign []int) error {
	if len(selected) == 0 {
		return fmt.Errorf("costmodel: empty selected set: %w", ErrInvalidAssignment)
	}
	if len(assign) != cm.Customers() {
		return fmt.Errorf("costmodel: %d assignments for %d customers: %w", len(assign), cm.Customers(), ErrInvalidAssignment)
	}

	open := mapset.NewThreadUnsafeSetWithSize[int](len(selected))
	for _, j := range selected {
		if j < 0 || j >= cm.Facilities() {
			return fmt.Errorf("costmodel: facility %d out of range: %w", j, ErrInvalidAssignment)
		}
		if !open.Add(j) {
			return fmt.Errorf("costmodel: facility %d selected twice: %w", j, ErrInvalidAssignment)
		}
	}

	want, _ := cm.Assign(selected)
	for i, j := range assign {
		if !open.Contains(j) {
			return fmt.Errorf("costmodel: customer %d served by closed facility %d: %w", i, j, ErrInvalidAssignment)
		}
		if want[i] != j {
			return fmt.Errorf("costmodel: customer %d served by %d, cheapest open is %d: %w", i, j, want[i], ErrInvalidAssignment)
		}
	}

	return nil
}
