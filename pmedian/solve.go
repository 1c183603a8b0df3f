package pmedian

import (
	"math"
	"sync"

	"github.com/katalvlaran/pmedian/costmodel"
	"github.com/katalvlaran/pmedian/mip"
)

// Solve routes to Reduce or SolveExact according to opts.Algo.
// For Exact a nil Result with a nil error means "no solution".
func Solve(cm *costmodel.CostModel, p int, opts Options) (*Result, error) {
	switch opts.Algo {
	case Greedy:
		return Reduce(cm, p, opts.Greedy)
	case Exact:
		return SolveExact(cm, p, opts.Solver, opts.Exact)
	default:
		return nil, ErrUnknownAlgorithm
	}
}

// Comparison pairs the two strategies on one instance.
type Comparison struct {
	Greedy *Result
	Exact  *Result // nil when the engine found no solution

	// Gap is Greedy.Objective − Exact.Objective, NaN when Exact is nil.
	// A difference within GapTol·max(1, |Exact.Objective|) of zero is
	// summation-order noise and reads as exactly 0.
	Gap float64
}

// GapTol is the relative tolerance under which Comparison.Gap is set to 0.
const GapTol = 1e-9

// Compare runs Reduce and SolveExact concurrently over the same read-only
// CostModel. Each run owns its working state. The first error wins, greedy
// first.
func Compare(cm *costmodel.CostModel, p int, s mip.Solver, opts Options) (*Comparison, error) {
	var (
		wg            sync.WaitGroup
		greedy, exact *Result
		gErr, eErr    error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		greedy, gErr = Reduce(cm, p, opts.Greedy)
	}()
	go func() {
		defer wg.Done()
		exact, eErr = SolveExact(cm, p, s, opts.Exact)
	}()
	wg.Wait()

	if gErr != nil {
		return nil, gErr
	}
	if eErr != nil {
		return nil, eErr
	}

	cmp := &Comparison{Greedy: greedy, Exact: exact, Gap: math.NaN()}
	if exact != nil {
		cmp.Gap = greedy.Objective - exact.Objective
		if math.Abs(cmp.Gap) <= GapTol*math.Max(1, math.Abs(exact.Objective)) {
			cmp.Gap = 0
		}
	}
	return cmp, nil
}
