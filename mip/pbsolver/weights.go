package pbsolver

import (
	"math"
	"math/bits"

	"github.com/pkg/errors"

	"github.com/katalvlaran/pmedian/mip"
)

// maxMagnitude bounds every scaled coefficient and every row total, so the
// int64 arithmetic of the encoders cannot overflow.
const maxMagnitude = int64(1) << 61

// dyadic splits a finite x into mant·2^exp with mant odd; zero yields (0, 0).
func dyadic(x float64) (mant int64, exp int) {
	if x == 0 {
		return 0, 0
	}
	frac, e := math.Frexp(x)
	mant = int64(frac * (1 << 53))
	exp = e - 53
	tz := bits.TrailingZeros64(uint64(mant))
	return mant >> tz, exp + tz
}

// integerize returns xs multiplied by the smallest power of two that makes
// every value an integer. No value is rounded: a set whose exponents are too
// far apart is rejected with mip.ErrUnsupported.
func integerize(where string, xs []float64) ([]int64, error) {
	var (
		mants = make([]int64, len(xs))
		exps  = make([]int, len(xs))
		shift int
		k     int
	)
	for k = range xs {
		mants[k], exps[k] = dyadic(xs[k])
		if mants[k] != 0 && -exps[k] > shift {
			shift = -exps[k]
		}
	}

	out := make([]int64, len(xs))
	for k = range xs {
		if mants[k] == 0 {
			continue
		}
		up := exps[k] + shift
		if up >= 62 || abs64(mants[k]) > maxMagnitude>>up {
			return nil, errors.Wrapf(mip.ErrUnsupported, "pbsolver: %s: %g needs more than 61 bits once scaled to an integer", where, xs[k])
		}
		out[k] = mants[k] << up
	}
	return out, nil
}

func abs64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

// linear is Σ weights[k]·lits[k] ≥ bound with every weight positive; a
// literal is a signed DIMACS variable.
type linear struct {
	lits    []int
	weights []int64
	bound   int64
}

// total returns Σ weights.
func (l linear) total() int64 {
	var sum int64
	for _, w := range l.weights {
		sum += w
	}
	return sum
}

// collect merges repeated variables and drops zero coefficients. vars and
// coefs are parallel; the result keeps first-appearance order.
func collect(where string, vars []int, coefs []int64) ([]int, []int64, error) {
	var (
		pos    = make(map[int]int, len(vars))
		order  = make([]int, 0, len(vars))
		merged = make([]int64, 0, len(vars))
		total  int64
		k, at  int
		seen   bool
	)
	for k = range vars {
		if at, seen = pos[vars[k]]; seen {
			merged[at] += coefs[k]
			continue
		}
		pos[vars[k]] = len(order)
		order = append(order, vars[k])
		merged = append(merged, coefs[k])
	}

	outV := make([]int, 0, len(order))
	outC := make([]int64, 0, len(order))
	for k = range order {
		if merged[k] == 0 {
			continue
		}
		total += abs64(merged[k])
		if total > maxMagnitude {
			return nil, nil, errors.Wrapf(mip.ErrUnsupported, "pbsolver: %s: coefficient total exceeds 2^61", where)
		}
		outV = append(outV, order[k])
		outC = append(outC, merged[k])
	}
	return outV, outC, nil
}

// atLeast rewrites Σ coefs[k]·x(vars[k]) ≥ rhs over positive literals:
// c·x with c < 0 becomes |c|·¬x and adds |c| to the bound.
func atLeast(vars []int, coefs []int64, rhs int64) linear {
	l := linear{
		lits:    make([]int, len(vars)),
		weights: make([]int64, len(vars)),
		bound:   rhs,
	}
	for k, v := range vars {
		lit, w := v+1, coefs[k]
		if w < 0 {
			lit, w = -lit, -w
			l.bound += w
		}
		l.lits[k], l.weights[k] = lit, w
	}
	return l
}

// rows converts one constraint to ≥ form: a ≥ row stays, a ≤ row is negated,
// an = row becomes both.
func rows(c mip.Constraint) ([]linear, error) {
	where := "constraint " + c.Name
	xs := make([]float64, 0, len(c.Terms)+1)
	vars := make([]int, 0, len(c.Terms))
	for _, t := range c.Terms {
		xs = append(xs, t.Coef)
		vars = append(vars, t.Var)
	}
	xs = append(xs, c.RHS)

	ints, err := integerize(where, xs)
	if err != nil {
		return nil, err
	}
	rhs := ints[len(ints)-1]
	vars, coefs, err := collect(where, vars, ints[:len(ints)-1])
	if err != nil {
		return nil, err
	}

	neg := make([]int64, len(coefs))
	for k, w := range coefs {
		neg[k] = -w
	}
	switch c.Sense {
	case mip.GreaterEq:
		return []linear{atLeast(vars, coefs, rhs)}, nil
	case mip.LessEq:
		return []linear{atLeast(vars, neg, -rhs)}, nil
	default:
		return []linear{atLeast(vars, coefs, rhs), atLeast(vars, neg, -rhs)}, nil
	}
}

// objective converts the objective to positive weights over literals; the
// constant left over by negative coefficients does not move the arg-min.
func objective(m *mip.Model) (linear, error) {
	xs := make([]float64, len(m.Objective))
	vars := make([]int, len(m.Objective))
	for k, t := range m.Objective {
		xs[k], vars[k] = t.Coef, t.Var
	}
	ints, err := integerize("objective", xs)
	if err != nil {
		return linear{}, err
	}
	vars, coefs, err := collect("objective", vars, ints)
	if err != nil {
		return linear{}, err
	}
	return atLeast(vars, coefs, 0), nil
}
