package pbsolver_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/pmedian/mip"
	"github.com/katalvlaran/pmedian/mip/pbsolver"
)

// deadline bounds every Solve call; the models below are tiny.
const deadline = 10 * time.Second

// solveWithin fails the test unless s answers before deadline.
func solveWithin(t *testing.T, s *pbsolver.Solver, m *mip.Model) (*mip.Solution, error) {
	t.Helper()
	type answer struct {
		sol *mip.Solution
		err error
	}
	done := make(chan answer, 1)
	go func() {
		sol, err := s.Solve(m)
		done <- answer{sol, err}
	}()
	select {
	case a := <-done:
		return a.sol, a.err
	case <-time.After(deadline):
		t.Fatalf("Solve(%s) still running after %v", m.Name, deadline)
		return nil, nil
	}
}

// PBSolverSuite exercises the gophersat backend on hand-sized models, once
// with decision diagrams and once with adders only.
type PBSolverSuite struct {
	suite.Suite
	opts   pbsolver.Options
	solver *pbsolver.Solver
}

func (s *PBSolverSuite) SetupTest() {
	s.solver = pbsolver.New(s.opts)
}

func (s *PBSolverSuite) solve(m *mip.Model) (*mip.Solution, error) {
	return solveWithin(s.T(), s.solver, m)
}

// pick builds "open exactly one of two sites for one customer".
func pick(costA, costB float64) *mip.Model {
	m := mip.NewModel("pick")
	xa := m.AddBinary("x_A")
	xb := m.AddBinary("x_B")
	ya := m.AddBinary("y_A")
	yb := m.AddBinary("y_B")
	m.AddObjective(ya, costA)
	m.AddObjective(yb, costB)
	m.AddConstraint("cover", []mip.Term{{Var: ya, Coef: 1}, {Var: yb, Coef: 1}}, mip.Equal, 1)
	m.AddConstraint("consA", []mip.Term{{Var: ya, Coef: 1}, {Var: xa, Coef: -1}}, mip.LessEq, 0)
	m.AddConstraint("consB", []mip.Term{{Var: yb, Coef: 1}, {Var: xb, Coef: -1}}, mip.LessEq, 0)
	m.AddConstraint("card", []mip.Term{{Var: xa, Coef: 1}, {Var: xb, Coef: 1}}, mip.Equal, 1)
	return m
}

// subset builds "choose exactly k of n items" with item j weighing
// weights[j].
func subset(k int, weights []float64) *mip.Model {
	m := mip.NewModel(fmt.Sprintf("subset_%d_of_%d", k, len(weights)))
	card := make([]mip.Term, len(weights))
	for j, w := range weights {
		v := m.AddBinary(fmt.Sprintf("item_%d", j))
		m.AddObjective(v, w)
		card[j] = mip.Term{Var: v, Coef: 1}
	}
	m.AddConstraint("card", card, mip.Equal, float64(k))
	return m
}

func (s *PBSolverSuite) TestPicksCheaperSite() {
	sol, err := s.solve(pick(20, 50))
	require.NoError(s.T(), err)
	require.NotNil(s.T(), sol)
	require.Equal(s.T(), []float64{1, 0, 1, 0}, sol.Values)
	require.Equal(s.T(), 20.0, sol.Objective)

	sol, err = s.solve(pick(7.5, 2.25))
	require.NoError(s.T(), err)
	require.Equal(s.T(), []float64{0, 1, 0, 1}, sol.Values)
	require.Equal(s.T(), 2.25, sol.Objective)

	sol, err = s.solve(pick(50, 20))
	require.NoError(s.T(), err)
	require.Equal(s.T(), []float64{0, 1, 0, 1}, sol.Values)
}

func (s *PBSolverSuite) TestWeightsAreNotRounded() {
	// Three decimals would make both sites cost 1.000.
	sol, err := s.solve(pick(1.0004, 1.0001))
	require.NoError(s.T(), err)
	require.Equal(s.T(), []float64{0, 1, 0, 1}, sol.Values)
	require.Equal(s.T(), 1.0001, sol.Objective)

	sol, err = s.solve(pick(0.001, 0.004))
	require.NoError(s.T(), err)
	require.Equal(s.T(), []float64{1, 0, 1, 0}, sol.Values)
}

func (s *PBSolverSuite) TestChoosesCheapestSubset() {
	// A permutation of 1..12; the four cheapest sum to 10.
	weights := []float64{7, 3, 12, 1, 9, 5, 11, 2, 8, 4, 10, 6}
	sol, err := s.solve(subset(4, weights))
	require.NoError(s.T(), err)
	require.Equal(s.T(), 10.0, sol.Objective)
	for j, w := range weights {
		require.Equal(s.T(), w <= 4, sol.Values[j] == 1, "item %d", j)
	}
}

func (s *PBSolverSuite) TestGreaterEqAndUnusedVariable() {
	m := mip.NewModel("ge")
	a := m.AddBinary("a")
	b := m.AddBinary("b")
	c := m.AddBinary("c")
	_ = m.AddBinary("unused")
	m.AddObjective(a, 3)
	m.AddObjective(b, 1)
	m.AddObjective(c, 1)
	m.AddConstraint("two", []mip.Term{{Var: a, Coef: 1}, {Var: b, Coef: 1}, {Var: c, Coef: 1}}, mip.GreaterEq, 2)

	sol, err := s.solve(m)
	require.NoError(s.T(), err)
	require.Len(s.T(), sol.Values, 4)
	require.Equal(s.T(), 2.0, sol.Objective)
	require.Equal(s.T(), 0.0, sol.Values[a])
}

func (s *PBSolverSuite) TestNegativeObjectiveCoefficient() {
	m := mip.NewModel("neg")
	a := m.AddBinary("a")
	b := m.AddBinary("b")
	m.AddObjective(a, -4)
	m.AddObjective(b, -1)
	m.AddConstraint("atmost1", []mip.Term{{Var: a, Coef: 1}, {Var: b, Coef: 1}}, mip.LessEq, 1)

	sol, err := s.solve(m)
	require.NoError(s.T(), err)
	require.Equal(s.T(), []float64{1, 0}, sol.Values)
	require.Equal(s.T(), -4.0, sol.Objective)
}

func (s *PBSolverSuite) TestRepeatedVariableIsMerged() {
	m := mip.NewModel("merge")
	a := m.AddBinary("a")
	b := m.AddBinary("b")
	m.AddObjective(a, 2)
	m.AddObjective(a, -5)
	m.AddObjective(b, 1)
	// 2a − a + b ≥ 1 reads a + b ≥ 1.
	m.AddConstraint("cover", []mip.Term{{Var: a, Coef: 2}, {Var: a, Coef: -1}, {Var: b, Coef: 1}}, mip.GreaterEq, 1)

	sol, err := s.solve(m)
	require.NoError(s.T(), err)
	require.Equal(s.T(), []float64{1, 0}, sol.Values)
	require.Equal(s.T(), -3.0, sol.Objective)
}

func (s *PBSolverSuite) TestFractionalConstraintIsExact() {
	m := mip.NewModel("frac")
	a := m.AddBinary("a")
	b := m.AddBinary("b")
	m.AddObjective(a, 1)
	m.AddObjective(b, 1)
	m.AddConstraint("both", []mip.Term{{Var: a, Coef: 0.5}, {Var: b, Coef: 0.25}}, mip.GreaterEq, 0.75)

	sol, err := s.solve(m)
	require.NoError(s.T(), err)
	require.Equal(s.T(), []float64{1, 1}, sol.Values)

	m.AddConstraint("half", []mip.Term{{Var: a, Coef: 0.5}}, mip.LessEq, 0.375)
	sol, err = s.solve(m)
	require.NoError(s.T(), err)
	require.Nil(s.T(), sol)
}

func (s *PBSolverSuite) TestOutOfRangeMagnitudesUnsupported() {
	m := mip.NewModel("wide")
	a := m.AddBinary("a")
	b := m.AddBinary("b")
	m.AddObjective(a, 1e300)
	m.AddObjective(b, 1e-300)

	_, err := s.solve(m)
	require.ErrorIs(s.T(), err, mip.ErrUnsupported)
}

func (s *PBSolverSuite) TestInfeasibleIsNilNil() {
	m := mip.NewModel("unsat")
	a := m.AddBinary("a")
	b := m.AddBinary("b")
	m.AddObjective(a, 1)
	m.AddConstraint("both", []mip.Term{{Var: a, Coef: 1}, {Var: b, Coef: 1}}, mip.Equal, 2)
	m.AddConstraint("none", []mip.Term{{Var: a, Coef: 1}, {Var: b, Coef: 1}}, mip.LessEq, 0)

	sol, err := s.solve(m)
	require.NoError(s.T(), err)
	require.Nil(s.T(), sol)
}

func (s *PBSolverSuite) TestEmptyObjective() {
	m := mip.NewModel("feasibility")
	a := m.AddBinary("a")
	m.AddConstraint("on", []mip.Term{{Var: a, Coef: 1}}, mip.GreaterEq, 1)

	sol, err := s.solve(m)
	require.NoError(s.T(), err)
	require.Equal(s.T(), []float64{1}, sol.Values)
	require.Equal(s.T(), 0.0, sol.Objective)
}

func (s *PBSolverSuite) TestInvalidModel() {
	m := pick(1, 2)
	m.AddObjective(42, 1)
	_, err := s.solve(m)
	require.ErrorIs(s.T(), err, mip.ErrBadModel)
}

func TestPBSolverSuite(t *testing.T) {
	t.Run("bdd", func(t *testing.T) {
		suite.Run(t, &PBSolverSuite{opts: pbsolver.DefaultOptions()})
	})
	t.Run("adder", func(t *testing.T) {
		suite.Run(t, &PBSolverSuite{opts: pbsolver.Options{MaxNodes: 1}})
	})
}

func TestNew_FallsBackToDefaultMaxNodes(t *testing.T) {
	s := pbsolver.New(pbsolver.Options{MaxNodes: -3})
	sol, err := solveWithin(t, s, pick(0.004, 0.001))
	require.NoError(t, err)
	require.Equal(t, []float64{0, 1, 0, 1}, sol.Values)
}
