package mip

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrBadModel is returned by Validate for dangling variable references,
	// duplicate names or non-finite coefficients.
	ErrBadModel = errors.New("mip: malformed model")

	// ErrUnsupported is returned by a backend that cannot represent some part
	// of a valid Model (for example fractional coefficients in a 0-1 engine).
	ErrUnsupported = errors.New("mip: unsupported model")
)

// Sense is the relation of a constraint row to its right-hand side.
type Sense int

const (
	// LessEq is Σ terms ≤ RHS.
	LessEq Sense = iota
	// Equal is Σ terms = RHS.
	Equal
	// GreaterEq is Σ terms ≥ RHS.
	GreaterEq
)

func (s Sense) String() string {
	switch s {
	case LessEq:
		return "<="
	case Equal:
		return "="
	case GreaterEq:
		return ">="
	default:
		return fmt.Sprintf("Sense(%d)", int(s))
	}
}

// Variable is a declared binary decision variable.
type Variable struct {
	Name string
}

// Term is Coef·Vars[Var].
type Term struct {
	Var  int
	Coef float64
}

// Constraint is Σ Terms (Sense) RHS.
type Constraint struct {
	Name  string
	Terms []Term
	Sense Sense
	RHS   float64
}

// Model is a minimisation over binary variables.
type Model struct {
	Name        string
	Vars        []Variable
	Objective   []Term
	Constraints []Constraint
}

// Solution carries one value per declared variable (in [0,1] up to engine
// tolerance) and the objective value reported by the engine.
type Solution struct {
	Values    []float64
	Objective float64
}

// NewModel returns an empty model with the given name.
func NewModel(name string) *Model { return &Model{Name: name} }

// AddBinary declares a binary variable and returns its index.
func (m *Model) AddBinary(name string) int {
	m.Vars = append(m.Vars, Variable{Name: name})
	return len(m.Vars) - 1
}

// AddObjective appends coef·Vars[v] to the objective.
func (m *Model) AddObjective(v int, coef float64) {
	m.Objective = append(m.Objective, Term{Var: v, Coef: coef})
}

// AddConstraint appends a constraint row and returns its index.
func (m *Model) AddConstraint(name string, terms []Term, sense Sense, rhs float64) int {
	m.Constraints = append(m.Constraints, Constraint{Name: name, Terms: terms, Sense: sense, RHS: rhs})
	return len(m.Constraints) - 1
}

// Value returns sol.Values[v] interpreted as a binary with tolerance eps:
// true iff the value exceeds 1−eps.
func (s *Solution) Value(v int, eps float64) bool {
	return s.Values[v] > 1-eps
}

// Validate checks references, names and coefficients.
//
// Complexity: O(vars + nonzeros).
func (m *Model) Validate() error {
	if m == nil {
		return fmt.Errorf("mip: nil model: %w", ErrBadModel)
	}
	names := make(map[string]struct{}, len(m.Vars))
	for k, v := range m.Vars {
		if v.Name == "" {
			return fmt.Errorf("mip: variable %d has no name: %w", k, ErrBadModel)
		}
		if _, dup := names[v.Name]; dup {
			return fmt.Errorf("mip: duplicate variable %q: %w", v.Name, ErrBadModel)
		}
		names[v.Name] = struct{}{}
	}
	if err := m.checkTerms("objective", m.Objective); err != nil {
		return err
	}
	for _, c := range m.Constraints {
		if err := m.checkTerms(c.Name, c.Terms); err != nil {
			return err
		}
		if math.IsNaN(c.RHS) || math.IsInf(c.RHS, 0) {
			return fmt.Errorf("mip: constraint %q has non-finite rhs: %w", c.Name, ErrBadModel)
		}
		if c.Sense < LessEq || c.Sense > GreaterEq {
			return fmt.Errorf("mip: constraint %q has %v: %w", c.Name, c.Sense, ErrBadModel)
		}
	}

	return nil
}

func (m *Model) checkTerms(where string, terms []Term) error {
	for _, t := range terms {
		if t.Var < 0 || t.Var >= len(m.Vars) {
			return fmt.Errorf("mip: %s references variable %d: %w", where, t.Var, ErrBadModel)
		}
		if math.IsNaN(t.Coef) || math.IsInf(t.Coef, 0) {
			return fmt.Errorf("mip: %s has non-finite coefficient: %w", where, ErrBadModel)
		}
	}
	return nil
}

// Evaluate returns the objective value of a 0/1 assignment given by values.
// values must hold exactly one entry per variable; any other length yields
// NaN.
func (m *Model) Evaluate(values []float64) float64 {
	if len(values) != len(m.Vars) {
		return math.NaN()
	}
	var sum float64
	for _, t := range m.Objective {
		sum += t.Coef * values[t.Var]
	}
	return sum
}
