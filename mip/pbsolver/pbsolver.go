// Package pbsolver solves mip.Model values with the pure-Go CDCL engine of
// github.com/crillab/gophersat.
//
// Every mip variable k becomes the boolean variable k+1. Coefficients are
// multiplied by the smallest power of two that makes them integral, which is
// exact for every finite float64, so no weight is ever rounded. Each row is
// compiled to plain clauses: one clause when any single literal satisfies
// it, an interval-reduced BDD otherwise, and a ripple-carry adder with a
// comparator when the BDD outgrows Options.MaxNodes.
//
// The objective is minimised by bisection over its integral bound, each
// query on a fresh engine, so the search ends after at most 63 queries.
// The reported Solution.Objective is re-evaluated on the model.
package pbsolver

import (
	"github.com/crillab/gophersat/solver"
	"github.com/pkg/errors"

	"github.com/katalvlaran/pmedian/mip"
)

// DefaultMaxNodes is the BDD size past which a row switches to an adder.
const DefaultMaxNodes = 1 << 16

// Options configures the backend.
type Options struct {
	// MaxNodes caps the decision diagram of one row (≤ 0 means the default).
	MaxNodes int
	// Verbose lets gophersat print its search statistics on stdout.
	Verbose bool
}

// DefaultOptions returns quiet options with the default node budget.
func DefaultOptions() Options {
	return Options{MaxNodes: DefaultMaxNodes}
}

// Solver implements mip.Solver.
type Solver struct {
	opts Options
}

var _ mip.Solver = (*Solver)(nil)

// New returns a Solver; a non-positive MaxNodes falls back to the default.
func New(opts Options) *Solver {
	if opts.MaxNodes <= 0 {
		opts.MaxNodes = DefaultMaxNodes
	}
	return &Solver{opts: opts}
}

// Solve minimises m. It returns (nil, nil) when the engine proves m
// unsatisfiable. Engine panics are recovered into errors.
func (s *Solver) Solve(m *mip.Model) (sol *mip.Solution, err error) {
	if err = m.Validate(); err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			sol, err = nil, errors.Errorf("pbsolver: engine panic: %v", r)
		}
	}()

	base, err := s.encode(m)
	if err != nil {
		return nil, err
	}
	obj, err := objective(m)
	if err != nil {
		return nil, err
	}

	best, ok := s.run(base)
	if !ok {
		return nil, nil
	}
	var (
		lo = int64(0)
		hi = cost(obj, best)
	)
	for lo < hi {
		mid := lo + (hi-lo)/2
		q := base.clone()
		q.atMost(obj.lits, obj.weights, mid, s.opts.MaxNodes)
		model, found := s.run(q)
		if !found {
			lo = mid + 1
			continue
		}
		best, hi = model, cost(obj, model)
	}

	values := make([]float64, len(m.Vars))
	for k := range values {
		if best[k] {
			values[k] = 1
		}
	}
	return &mip.Solution{Values: values, Objective: m.Evaluate(values)}, nil
}

// encode compiles every constraint row; the returned clauses fix the
// feasible set and are shared by all objective queries.
func (s *Solver) encode(m *mip.Model) (*cnf, error) {
	f := newCNF(len(m.Vars))
	for _, c := range m.Constraints {
		lins, err := rows(c)
		if err != nil {
			return nil, err
		}
		for _, l := range lins {
			f.atLeast(l, s.opts.MaxNodes)
		}
	}
	return f, nil
}

// run solves f on a fresh engine. The returned model is indexed by
// variable−1 and always covers the mip variables.
func (s *Solver) run(f *cnf) ([]bool, bool) {
	engine := solver.New(solver.ParseSlice(f.clauses))
	engine.Verbose = s.opts.Verbose
	if engine.Solve() != solver.Sat {
		return nil, false
	}
	return engine.Model(), true
}

// cost is the integral objective of a model.
func cost(obj linear, model []bool) int64 {
	var sum int64
	for k, l := range obj.lits {
		if (l > 0) == model[abs(l)-1] {
			sum += obj.weights[k]
		}
	}
	return sum
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
