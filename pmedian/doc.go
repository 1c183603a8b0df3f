// Package pmedian solves the p-median facility-location problem over a
// costmodel.CostModel: open exactly p of the candidate facilities and serve
// each customer from the cheapest open one, minimising
//
//	Σ_i demand[i] · cost[i][assign[i]].
//
// Two independent strategies share the read-only model:
//
//   - Reduce: greedy drop heuristic. Starts from every facility that is some
//     customer's cheapest, then repeatedly closes the facility whose removal
//     raises the objective least (first in selection order on ties) until p
//     remain. Removal deltas only touch customers served by the candidate, and
//     per-customer minima are cached and updated incrementally.
//     Complexity: O(m·n) setup + O(m·|S|) per step. Not optimal by design of
//     the heuristic; the trace of every step is returned.
//
//   - SolveExact: builds the classic binary program (Formulate) with open
//     variables x[j], service variables y[i][j], coverage, consistency and
//     cardinality rows, and delegates it to a mip.Solver. A nil Result with a
//     nil error means the engine found no solution.
//
// Solve dispatches on Options.Algo; Compare runs both strategies concurrently
// and reports the optimality gap of the heuristic, which is never negative.
//
// Errors are sentinels (ErrInvalidParameter, ErrSolverFailure,
// ErrUnknownAlgorithm) matched with errors.Is.
package pmedian
