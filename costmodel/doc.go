// Package costmodel holds the immutable data model shared by every p-median
// strategy: a dense customer × facility cost matrix and a per-customer demand
// vector.
//
// A CostModel is built once with New and never mutated afterwards, so a single
// value may be read concurrently by several solver runs (for example a greedy
// reduction racing an exact solve). Working state (selected sets, caches) always
// lives in the solver run that owns it.
//
// Besides raw accessors the package provides the two derived operations every
// strategy needs:
//
//   - Assign: per-customer arg-min over an ordered facility set, ties broken by
//     the first facility in that order.
//   - Objective: Σ demand[i]·mincost[i].
//
// and Verify, which checks a (selected, assignment) pair against the model.
//
// Input values are trusted: the loader (see package dataset) is responsible for
// finiteness and non-negativity; New only checks shape.
package costmodel
