package mip

// Solver is the boundary to an external 0-1 / mixed-integer engine.
// Solve may block for a long time and is not cancelable.
type Solver interface {
	Solve(m *Model) (*Solution, error)
}

// SolverFunc adapts an ordinary function to the Solver interface.
type SolverFunc func(m *Model) (*Solution, error)

// Solve calls f(m).
func (f SolverFunc) Solve(m *Model) (*Solution, error) { return f(m) }
