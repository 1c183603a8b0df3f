package pmedian

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/katalvlaran/pmedian/costmodel"
	"github.com/katalvlaran/pmedian/mip"
)

// Variable layout of Formulate for m customers and n facilities:
//
//	x[j]    -> j                 j ∈ [0,n)
//	y[i][j] -> n + i·n + j       i ∈ [0,m)
func xVar(j int) int       { return j }
func yVar(n, i, j int) int { return n + i*n + j }

// Formulate builds the binary p-median program:
//
//	min  Σ_i Σ_j cost[i][j]·demand[i]·y[i][j]
//	s.t. Σ_j y[i][j] = 1          ∀i   (Demand_<customer>)
//	     y[i][j] − x[j] ≤ 0        ∀i,j (Cons_<customer>_<facility>)
//	     Σ_j x[j] = p                   (numConst)
//	     x, y binary
//
// Variables are named x_<facility> and y_<customer>_<facility>. Labels are
// made LP-safe and a name that would repeat gets a "~<k>" suffix, so distinct
// labels never collide.
//
// Complexity: O(m·n) variables and constraints.
func Formulate(cm *costmodel.CostModel, p int) (*mip.Model, error) {
	if cm == nil {
		return nil, fmt.Errorf("pmedian: nil cost model: %w", ErrInvalidParameter)
	}
	if err := cm.ValidateP(p); err != nil {
		return nil, err
	}

	var (
		m     = cm.Customers()
		n     = cm.Facilities()
		model = mip.NewModel("location")
		vars  = make(lpNames, n+m*n)
		rows  = make(lpNames, m+m*n+1)
		i, j  int
	)
	model.Vars = make([]mip.Variable, 0, n+m*n)
	model.Objective = make([]mip.Term, 0, m*n)
	model.Constraints = make([]mip.Constraint, 0, m+m*n+1)

	for j = 0; j < n; j++ {
		model.AddBinary(vars.unique("x_" + lpName(cm.FacilityName(j))))
	}
	for i = 0; i < m; i++ {
		for j = 0; j < n; j++ {
			model.AddBinary(vars.unique("y_" + lpName(cm.CustomerName(i)) + "_" + lpName(cm.FacilityName(j))))
		}
	}

	// Objective.
	for i = 0; i < m; i++ {
		for j = 0; j < n; j++ {
			model.AddObjective(yVar(n, i, j), cm.Cost(i, j)*cm.Demand(i))
		}
	}

	// Coverage.
	for i = 0; i < m; i++ {
		terms := make([]mip.Term, n)
		for j = 0; j < n; j++ {
			terms[j] = mip.Term{Var: yVar(n, i, j), Coef: 1}
		}
		model.AddConstraint(rows.unique("Demand_"+lpName(cm.CustomerName(i))), terms, mip.Equal, 1)
	}

	// Consistency.
	for i = 0; i < m; i++ {
		for j = 0; j < n; j++ {
			model.AddConstraint(
				rows.unique("Cons_"+lpName(cm.CustomerName(i))+"_"+lpName(cm.FacilityName(j))),
				[]mip.Term{{Var: yVar(n, i, j), Coef: 1}, {Var: xVar(j), Coef: -1}},
				mip.LessEq, 0,
			)
		}
	}

	// Cardinality.
	terms := make([]mip.Term, n)
	for j = 0; j < n; j++ {
		terms[j] = mip.Term{Var: xVar(j), Coef: 1}
	}
	model.AddConstraint(rows.unique("numConst"), terms, mip.Equal, float64(p))

	return model, nil
}

// lpSymbols are the punctuation marks allowed in LP identifiers.
const lpSymbols = "!\"#$%&()/,.;?@_`'{}|~"

// lpName joins whitespace-separated parts with '_' and maps every character
// an LP reader would reject to '_'.
func lpName(label string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune(lpSymbols, r) {
			return r
		}
		return '_'
	}, strings.Join(strings.Fields(label), "_"))
}

// lpNames hands out identifiers that are unique within one namespace: a
// name already taken gets the first free "~<k>" suffix.
type lpNames map[string]struct{}

func (ns lpNames) unique(base string) string {
	name := base
	for k := 1; ; k++ {
		if _, taken := ns[name]; !taken {
			break
		}
		name = base + "~" + strconv.Itoa(k)
	}
	ns[name] = struct{}{}
	return name
}

// SolveExact formulates the program, hands it to s and decodes the answer.
//
// Outcomes:
//   - (res, nil): res.Selected has exactly p facilities (index order).
//   - (nil, nil): the engine returned no solution. For 1 ≤ p ≤ n the program
//     is always feasible, so callers should treat this as suspicious, but it
//     is not an error.
//   - ErrInvalidParameter: bad p, options or nil s; nothing was solved.
//   - ErrSolverFailure: s returned an error (kept in the chain, not retried)
//     or a solution that breaks coverage, consistency or cardinality.
//
// Values above 1−Eps read as 1. Customers are re-assigned to their cheapest
// open facility (CostModel.Assign), which is what any optimal y does up to
// ties and zero demands; Objective is computed from the CostModel while the
// engine's figure is kept in SolverObjective.
func SolveExact(cm *costmodel.CostModel, p int, s mip.Solver, opts ExactOptions) (*Result, error) {
	if s == nil {
		return nil, fmt.Errorf("pmedian: nil solver: %w", ErrInvalidParameter)
	}
	eps := opts.Eps
	if eps == 0 {
		eps = DefaultEps
	}
	if eps < 0 || eps >= 0.5 {
		return nil, fmt.Errorf("pmedian: eps=%g: %w", opts.Eps, ErrInvalidParameter)
	}
	model, err := Formulate(cm, p)
	if err != nil {
		return nil, err
	}

	sol, err := s.Solve(model)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSolverFailure, err)
	}
	if sol == nil {
		return nil, nil
	}

	selected, err := decode(cm, p, sol, eps)
	if err != nil {
		return nil, err
	}
	assign, mincost := cm.Assign(selected)

	return &Result{
		Algorithm:       Exact,
		Selected:        selected,
		Assignment:      assign,
		MinCost:         mincost,
		Objective:       cm.Objective(mincost),
		SolverObjective: sol.Objective,
	}, nil
}

// decode reads x and checks y against the model rows.
func decode(cm *costmodel.CostModel, p int, sol *mip.Solution, eps float64) ([]int, error) {
	var (
		m    = cm.Customers()
		n    = cm.Facilities()
		i, j int
	)
	if len(sol.Values) != n+m*n {
		return nil, fmt.Errorf("%w: %d values for %d variables", ErrSolverFailure, len(sol.Values), n+m*n)
	}

	open := make([]bool, n)
	selected := make([]int, 0, p)
	for j = 0; j < n; j++ {
		if sol.Value(xVar(j), eps) {
			open[j] = true
			selected = append(selected, j)
		}
	}
	if len(selected) != p {
		return nil, fmt.Errorf("%w: %d facilities open, want %d", ErrSolverFailure, len(selected), p)
	}

	var served int
	for i = 0; i < m; i++ {
		served = 0
		for j = 0; j < n; j++ {
			if !sol.Value(yVar(n, i, j), eps) {
				continue
			}
			if !open[j] {
				return nil, fmt.Errorf("%w: customer %s served by closed facility %s",
					ErrSolverFailure, cm.CustomerName(i), cm.FacilityName(j))
			}
			served++
		}
		if served != 1 {
			return nil, fmt.Errorf("%w: customer %s served %d times",
				ErrSolverFailure, cm.CustomerName(i), served)
		}
	}

	return selected, nil
}
