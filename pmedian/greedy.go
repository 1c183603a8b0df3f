package pmedian

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/katalvlaran/pmedian/costmodel"
)

// Reduce runs the greedy drop heuristic and returns exactly p open facilities.
//
// Stages:
//  1. Validate p and options (ErrInvalidParameter, nothing else is computed).
//  2. S ← distinct cheapest facilities, in order of first appearance over
//     customers 0..m−1 (lowest index among equal costs); assign over S.
//  3. While |S| > p: compute the removal delta of every f ∈ S over the
//     customers f serves, close the smallest (first in S order on ties),
//     reassign only its customers, record a Step.
//  4. If |S| < p, append unused facilities by index; this changes neither the
//     assignment nor the objective.
//
// The objective along Trace is non-decreasing.
//
// Complexity: O(m·n) for stage 2, O(m·|S|) per removal in stage 3.
func Reduce(cm *costmodel.CostModel, p int, opts GreedyOptions) (*Result, error) {
	if cm == nil {
		return nil, fmt.Errorf("pmedian: nil cost model: %w", ErrInvalidParameter)
	}
	if err := cm.ValidateP(p); err != nil {
		return nil, err
	}
	if opts.Workers < 0 {
		return nil, fmt.Errorf("pmedian: workers=%d: %w", opts.Workers, ErrInvalidParameter)
	}

	r := newReducer(cm, opts)
	r.logInitial()
	for len(r.selected) > p {
		r.computeDeltas()
		r.remove(r.pickCheapest())
	}
	r.pad(p)

	return &Result{
		Algorithm:  Greedy,
		Selected:   r.selected,
		Assignment: r.assign,
		MinCost:    r.mincost,
		Objective:  r.objective,
		Trace:      r.trace,
	}, nil
}

// reducer is the private working state of one Reduce call.
type reducer struct {
	cm      *costmodel.CostModel
	workers int
	log     *slog.Logger

	selected  []int     // open facilities, fixed relative order
	assign    []int     // customer -> open facility
	mincost   []float64 // customer -> cost[i][assign[i]]
	served    [][]int   // facility -> customers it serves
	objective float64

	deltas []float64 // deltas[k] belongs to selected[k]
	trace  []Step
}

func newReducer(cm *costmodel.CostModel, opts GreedyOptions) *reducer {
	var (
		m    = cm.Customers()
		n    = cm.Facilities()
		all  = make([]int, n)
		used = make([]bool, n)
		i, j int
	)
	for j = 0; j < n; j++ {
		all[j] = j
	}

	r := &reducer{cm: cm, workers: opts.Workers, log: opts.Logger}
	for i = 0; i < m; i++ {
		j, _ = cm.Nearest(i, all)
		if !used[j] {
			used[j] = true
			r.selected = append(r.selected, j)
		}
	}
	if r.workers < 1 {
		r.workers = 1
	}

	// Re-derive over S so that ties follow S order from the start.
	r.assign, r.mincost = cm.Assign(r.selected)
	r.objective = cm.Objective(r.mincost)
	r.served = make([][]int, n)
	for i, j = range r.assign {
		r.served[j] = append(r.served[j], i)
	}
	r.deltas = make([]float64, len(r.selected))

	return r
}

// removalDelta is the objective increase if f closes while the rest of S stays
// open. Only customers currently served by f can get worse.
func (r *reducer) removalDelta(f int) float64 {
	var (
		delta float64
		c     float64
	)
	for _, i := range r.served[f] {
		c = r.nearestWithout(i, f)
		delta += r.cm.Demand(i) * (c - r.mincost[i])
	}
	return delta
}

// nearestWithout is the cheapest cost for customer i over S \ {f}.
func (r *reducer) nearestWithout(i, f int) float64 {
	var (
		row   = r.cm.Row(i)
		best  float64
		found bool
	)
	for _, j := range r.selected {
		if j == f {
			continue
		}
		if !found || row[j] < best {
			best, found = row[j], true
		}
	}
	return best
}

// computeDeltas fills r.deltas. With several workers the positions are split
// into contiguous chunks; every worker reads shared state only and writes its
// own slots, and the join happens before any arg-min is taken.
func (r *reducer) computeDeltas() {
	var (
		size = len(r.selected)
		w    = r.workers
	)
	r.deltas = r.deltas[:size]
	if w > size {
		w = size
	}
	if w <= 1 {
		for k, f := range r.selected {
			r.deltas[k] = r.removalDelta(f)
		}
		return
	}

	var (
		wg    sync.WaitGroup
		chunk = (size + w - 1) / w
	)
	for lo := 0; lo < size; lo += chunk {
		hi := min(lo+chunk, size)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for k := lo; k < hi; k++ {
				r.deltas[k] = r.removalDelta(r.selected[k])
			}
		}(lo, hi)
	}
	wg.Wait()
}

// pickCheapest returns the position of the smallest delta; strict comparison
// keeps the first one on ties.
func (r *reducer) pickCheapest() int {
	best := 0
	for k := 1; k < len(r.deltas); k++ {
		if r.deltas[k] < r.deltas[best] {
			best = k
		}
	}
	return best
}

// remove closes selected[k] and moves its customers to their next cheapest
// open facility.
func (r *reducer) remove(k int) {
	var (
		f     = r.selected[k]
		delta = r.deltas[k]
		j     int
		c     float64
	)
	r.selected = append(r.selected[:k], r.selected[k+1:]...)
	r.objective += delta

	for _, i := range r.served[f] {
		j, c = r.cm.Nearest(i, r.selected)
		r.assign[i] = j
		r.mincost[i] = c
		r.served[j] = append(r.served[j], i)
	}
	r.served[f] = nil

	step := Step{
		Removed:   f,
		Delta:     delta,
		Objective: r.objective,
		Selected:  append([]int(nil), r.selected...),
	}
	r.trace = append(r.trace, step)

	if r.log != nil {
		r.log.Debug("facility removed",
			slog.String("facility", r.cm.FacilityName(f)),
			slog.Float64("delta", delta),
			slog.Float64("objective", r.objective),
			slog.Any("open", r.cm.FacilityNames(step.Selected)),
		)
	}
}

// pad appends unused facilities in index order until |S| == p. Padded
// facilities come last in S, so no customer changes facility.
func (r *reducer) pad(p int) {
	if len(r.selected) >= p {
		return
	}
	open := make([]bool, r.cm.Facilities())
	for _, j := range r.selected {
		open[j] = true
	}
	for j := 0; j < len(open) && len(r.selected) < p; j++ {
		if !open[j] {
			r.selected = append(r.selected, j)
		}
	}
}

func (r *reducer) logInitial() {
	if r.log == nil {
		return
	}
	r.log.Debug("greedy start",
		slog.Float64("objective", r.objective),
		slog.Any("open", r.cm.FacilityNames(r.selected)),
	)
}
