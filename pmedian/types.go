package pmedian

import (
	"errors"
	"log/slog"

	"github.com/katalvlaran/pmedian/costmodel"
	"github.com/katalvlaran/pmedian/mip"
)

var (
	// ErrInvalidParameter is costmodel.ErrInvalidParameter: p outside
	// [1, facilities], mismatched dimensions, bad options or a nil solver.
	// Returned before any solving work starts.
	ErrInvalidParameter = costmodel.ErrInvalidParameter

	// ErrSolverFailure marks an error raised by the external solver itself, or
	// a solution that violates the model it was given. The underlying cause is
	// kept in the chain. Infeasibility is not a failure: see SolveExact.
	ErrSolverFailure = errors.New("pmedian: solver failure")

	// ErrUnknownAlgorithm is returned by Solve for an unknown Options.Algo.
	ErrUnknownAlgorithm = errors.New("pmedian: unknown algorithm")
)

// Algorithm selects a strategy in Solve.
type Algorithm int

const (
	// Greedy is the drop heuristic (Reduce).
	Greedy Algorithm = iota
	// Exact is the binary program solved by an external engine (SolveExact).
	Exact
)

func (a Algorithm) String() string {
	switch a {
	case Greedy:
		return "greedy"
	case Exact:
		return "exact"
	default:
		return "unknown"
	}
}

// DefaultEps is the tolerance used to read solver values as binaries.
const DefaultEps = 1e-6

// Step records one greedy removal.
type Step struct {
	Removed   int     // facility closed in this step
	Delta     float64 // objective increase caused by the removal
	Objective float64 // objective after the removal
	Selected  []int   // open facilities after the removal (snapshot)
}

// Result is the outcome of either strategy.
type Result struct {
	Algorithm Algorithm

	// Selected lists the p open facilities. Greedy keeps the order of first
	// appearance used during the reduction; Exact lists them by index.
	Selected []int

	// Assignment[i] is the open facility serving customer i; it always equals
	// CostModel.Assign(Selected).
	Assignment []int

	// MinCost[i] is cost[i][Assignment[i]].
	MinCost []float64

	// Objective is Σ demand[i]·MinCost[i].
	Objective float64

	// Trace holds one Step per greedy removal (Greedy only).
	Trace []Step

	// SolverObjective is the objective reported by the engine (Exact only).
	SolverObjective float64
}

// GreedyOptions configures Reduce.
type GreedyOptions struct {
	// Workers > 1 computes removal deltas concurrently. Results are identical
	// to the sequential run. 0 means 1.
	Workers int

	// Logger receives one Debug record per removal. nil disables logging.
	Logger *slog.Logger
}

// DefaultGreedyOptions returns a sequential, silent configuration.
func DefaultGreedyOptions() GreedyOptions {
	return GreedyOptions{Workers: 1}
}

// ExactOptions configures SolveExact.
type ExactOptions struct {
	// Eps: a value v is read as 1 iff v > 1−Eps. 0 means DefaultEps.
	Eps float64
}

// DefaultExactOptions returns ExactOptions{Eps: DefaultEps}.
func DefaultExactOptions() ExactOptions {
	return ExactOptions{Eps: DefaultEps}
}

// Options drives the Solve dispatcher.
type Options struct {
	Algo   Algorithm
	Greedy GreedyOptions
	Exact  ExactOptions
	// Solver is required for Exact.
	Solver mip.Solver
}

// DefaultOptions selects the greedy heuristic with default settings.
func DefaultOptions() Options {
	return Options{
		Algo:   Greedy,
		Greedy: DefaultGreedyOptions(),
		Exact:  DefaultExactOptions(),
	}
}
