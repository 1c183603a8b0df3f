package pbsolver

import (
	"math"
	"math/bits"
	"sort"
)

// cnf accumulates DIMACS clauses. Variables 1..n mirror the mip variables,
// n+1 is forced true and serves as the constant literal; auxiliary
// variables follow.
type cnf struct {
	nvars   int
	top     int
	clauses [][]int
}

func newCNF(n int) *cnf {
	f := &cnf{nvars: n + 1, top: n + 1}
	f.clauses = append(f.clauses, []int{f.top})
	return f
}

// clone shares the clauses built so far; appends to the copy never reach f.
func (f *cnf) clone() *cnf {
	return &cnf{nvars: f.nvars, top: f.top, clauses: f.clauses[:len(f.clauses):len(f.clauses)]}
}

func (f *cnf) yes() int { return f.top }
func (f *cnf) no() int  { return -f.top }

func (f *cnf) newVar() int {
	f.nvars++
	return f.nvars
}

// clause adds the disjunction of lits after folding constants and repeats.
// A clause left empty is added as the false literal.
func (f *cnf) clause(lits ...int) {
	out := make([]int, 0, len(lits))
	for _, l := range lits {
		switch {
		case l == f.yes():
			return
		case l == f.no():
			continue
		}
		dup := false
		for _, o := range out {
			if o == -l {
				return
			}
			if o == l {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, l)
		}
	}
	if len(out) == 0 {
		out = append(out, f.no())
	}
	f.clauses = append(f.clauses, out)
}

func (f *cnf) and(a, b int) int {
	switch {
	case a == f.no() || b == f.no() || a == -b:
		return f.no()
	case a == f.yes():
		return b
	case b == f.yes() || a == b:
		return a
	}
	z := f.newVar()
	f.clause(-z, a)
	f.clause(-z, b)
	f.clause(z, -a, -b)
	return z
}

func (f *cnf) or(a, b int) int { return -f.and(-a, -b) }

func (f *cnf) xor(a, b int) int {
	switch {
	case a == f.no():
		return b
	case b == f.no():
		return a
	case a == f.yes():
		return -b
	case b == f.yes():
		return -a
	case a == b:
		return f.no()
	case a == -b:
		return f.yes()
	}
	z := f.newVar()
	f.clause(-z, a, b)
	f.clause(-z, -a, -b)
	f.clause(z, -a, b)
	f.clause(z, a, -b)
	return z
}

// atLeast adds Σ w·l ≥ bound. Rows where any single literal suffices become
// one clause; the rest are flipped to Σ w·¬l ≤ total−bound.
func (f *cnf) atLeast(row linear, maxNodes int) {
	if row.bound <= 0 {
		return
	}
	total := row.total()
	if total < row.bound {
		f.clause()
		return
	}
	single := true
	for _, w := range row.weights {
		if w < row.bound {
			single = false
			break
		}
	}
	if single {
		f.clause(row.lits...)
		return
	}

	neg := make([]int, len(row.lits))
	for k, l := range row.lits {
		neg[k] = -l
	}
	f.atMost(neg, row.weights, total-row.bound, maxNodes)
}

// atMost adds Σ weights·lits ≤ k for k ≥ 0. A reduced BDD is tried first;
// past maxNodes nodes its clauses are dropped and a binary adder with a
// comparator is used instead.
func (f *cnf) atMost(lits []int, weights []int64, k int64, maxNodes int) {
	saved := *f
	b := newBDD(f, lits, weights, maxNodes)
	if root, ok := b.root(k); ok {
		f.clause(root)
		return
	}
	*f = saved
	f.clause(f.atMostBits(f.sum(lits, weights), k))
}

// bddNode is a decision node valid for every bound in [lo, hi].
type bddNode struct {
	lo, hi int64
	lit    int
}

// bdd builds the interval-reduced decision diagram of Σ w·l ≤ K with terms
// ordered by decreasing weight. Each node v on literal x with children
// on (x true) and off (x false) contributes ¬v∨off and ¬v∨¬x∨on.
type bdd struct {
	f       *cnf
	lits    []int
	weights []int64
	suffix  []int64
	levels  [][]bddNode
	nodes   int
	budget  int
}

func newBDD(f *cnf, lits []int, weights []int64, budget int) *bdd {
	order := make([]int, len(lits))
	for k := range order {
		order[k] = k
	}
	sort.SliceStable(order, func(a, b int) bool { return weights[order[a]] > weights[order[b]] })

	b := &bdd{
		f:       f,
		lits:    make([]int, len(lits)),
		weights: make([]int64, len(lits)),
		suffix:  make([]int64, len(lits)+1),
		levels:  make([][]bddNode, len(lits)),
		budget:  budget,
	}
	for k, at := range order {
		b.lits[k], b.weights[k] = lits[at], weights[at]
	}
	for k := len(lits) - 1; k >= 0; k-- {
		b.suffix[k] = b.suffix[k+1] + b.weights[k]
	}
	return b
}

// root returns the literal of the diagram for bound k, or false once the
// node budget is exhausted.
func (b *bdd) root(k int64) (int, bool) {
	_, _, lit, ok := b.build(0, k)
	return lit, ok
}

func (b *bdd) build(i int, k int64) (lo, hi int64, lit int, ok bool) {
	if k < 0 {
		return math.MinInt64, -1, b.f.no(), true
	}
	if k >= b.suffix[i] {
		return b.suffix[i], math.MaxInt64, b.f.yes(), true
	}
	if nd, found := b.lookup(i, k); found {
		return nd.lo, nd.hi, nd.lit, true
	}

	w := b.weights[i]
	lo0, hi0, off, ok := b.build(i+1, k)
	if !ok {
		return 0, 0, 0, false
	}
	lo1, hi1, on, ok := b.build(i+1, k-w)
	if !ok {
		return 0, 0, 0, false
	}
	lo = max(lo0, shift(lo1, w))
	hi = min(hi0, shift(hi1, w))

	if off == on {
		lit = off
	} else {
		b.nodes++
		if b.nodes > b.budget {
			return 0, 0, 0, false
		}
		lit = b.f.newVar()
		b.f.clause(-lit, off)
		b.f.clause(-lit, -b.lits[i], on)
	}
	b.insert(i, bddNode{lo: lo, hi: hi, lit: lit})
	return lo, hi, lit, true
}

// shift adds w to a finite interval end.
func shift(x, w int64) int64 {
	if x == math.MinInt64 || x == math.MaxInt64 {
		return x
	}
	return x + w
}

func (b *bdd) lookup(i int, k int64) (bddNode, bool) {
	lvl := b.levels[i]
	at := sort.Search(len(lvl), func(n int) bool { return lvl[n].lo > k }) - 1
	if at >= 0 && k <= lvl[at].hi {
		return lvl[at], true
	}
	return bddNode{}, false
}

func (b *bdd) insert(i int, nd bddNode) {
	lvl := b.levels[i]
	at := sort.Search(len(lvl), func(n int) bool { return lvl[n].lo > nd.lo })
	lvl = append(lvl, bddNode{})
	copy(lvl[at+1:], lvl[at:])
	lvl[at] = nd
	b.levels[i] = lvl
}

// sum returns the little-endian bits of Σ weights·lits built from ripple
// carry adders over a balanced pairing of the terms.
func (f *cnf) sum(lits []int, weights []int64) []int {
	vecs := make([][]int, 0, len(lits))
	for k, l := range lits {
		var v []int
		for w := weights[k]; w > 0; w >>= 1 {
			if w&1 == 1 {
				v = append(v, l)
			} else {
				v = append(v, f.no())
			}
		}
		vecs = append(vecs, v)
	}
	if len(vecs) == 0 {
		return nil
	}
	for len(vecs) > 1 {
		next := make([][]int, 0, (len(vecs)+1)/2)
		for k := 0; k+1 < len(vecs); k += 2 {
			next = append(next, f.add(vecs[k], vecs[k+1]))
		}
		if len(vecs)%2 == 1 {
			next = append(next, vecs[len(vecs)-1])
		}
		vecs = next
	}
	return vecs[0]
}

// add is a ripple-carry adder.
func (f *cnf) add(a, b []int) []int {
	var (
		n     = max(len(a), len(b))
		out   = make([]int, 0, n+1)
		carry = f.no()
	)
	for i := 0; i < n; i++ {
		x, y := f.bit(a, i), f.bit(b, i)
		xy := f.xor(x, y)
		out = append(out, f.xor(xy, carry))
		carry = f.or(f.and(x, y), f.and(xy, carry))
	}
	return append(out, carry)
}

func (f *cnf) bit(v []int, i int) int {
	if i < len(v) {
		return v[i]
	}
	return f.no()
}

// atMostBits returns a literal equivalent to bits ≤ k, comparing from the
// least significant bit up.
func (f *cnf) atMostBits(v []int, k int64) int {
	res := f.yes()
	n := max(len(v), bits.Len64(uint64(k)))
	for i := 0; i < n; i++ {
		if k>>i&1 == 1 {
			res = f.or(-f.bit(v, i), res)
		} else {
			res = f.and(-f.bit(v, i), res)
		}
	}
	return res
}
