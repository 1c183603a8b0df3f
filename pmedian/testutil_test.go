// Shared fixtures for the pmedian tests: the three-site scenario, a witness
// instance where the drop heuristic is beaten, seeded random instances with
// integral data and a brute-force optimum for cross-checking.
package pmedian_test

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pmedian/costmodel"
)

const (
	// epsObj absorbs summation-order drift between incremental and full objectives.
	epsObj = 1e-9

	// seedBase is the first seed of the random instance family.
	seedBase = int64(20240601)

	// solverDeadline bounds every exact solve on the small instances here.
	solverDeadline = 10 * time.Second
)

// within fails t unless fn returns before solverDeadline. fn must not call
// t.FailNow; assertions belong after within returns.
func within(t *testing.T, fn func()) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	select {
	case <-done:
	case <-time.After(solverDeadline):
		t.Fatalf("still running after %v", solverDeadline)
	}
}

// scenario: sites A,B,C; demand [10,5];
// customer0: A=2 B=5 C=9, customer1: A=8 B=1 C=4.
func scenario(t testing.TB) *costmodel.CostModel {
	t.Helper()
	cm, err := costmodel.New(
		[][]float64{
			{2, 5, 9},
			{8, 1, 4},
		},
		[]float64{10, 5},
		costmodel.WithFacilityNames([]string{"A", "B", "C"}),
		costmodel.WithCustomerNames([]string{"c0", "c1"}),
	)
	require.NoError(t, err)
	return cm
}

// hiddenCenter: site C is nobody's first choice but the best single site.
func hiddenCenter(t testing.TB) *costmodel.CostModel {
	t.Helper()
	cm, err := costmodel.New(
		[][]float64{
			{0, 10, 4},
			{10, 0, 4},
		},
		[]float64{1, 1},
		costmodel.WithFacilityNames([]string{"A", "B", "C"}),
	)
	require.NoError(t, err)
	return cm
}

// randomModel draws integral costs in [1,50] and demands in [1,5].
func randomModel(t testing.TB, seed int64, m, n int) *costmodel.CostModel {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	cost := make([][]float64, m)
	demand := make([]float64, m)
	for i := range cost {
		cost[i] = make([]float64, n)
		for j := range cost[i] {
			cost[i][j] = float64(1 + rng.Intn(50))
		}
		demand[i] = float64(1 + rng.Intn(5))
	}
	cm, err := costmodel.New(cost, demand)
	require.NoError(t, err)
	return cm
}

// bruteForce enumerates every p-subset and returns the best objective.
func bruteForce(cm *costmodel.CostModel, p int) float64 {
	var (
		n    = cm.Facilities()
		best = math.Inf(1)
		pick = make([]int, 0, p)
		rec  func(next int)
	)
	rec = func(next int) {
		if len(pick) == p {
			_, mincost := cm.Assign(pick)
			if obj := cm.Objective(mincost); obj < best {
				best = obj
			}
			return
		}
		for j := next; j <= n-(p-len(pick)); j++ {
			pick = append(pick, j)
			rec(j + 1)
			pick = pick[:len(pick)-1]
		}
	}
	rec(0)
	return best
}
