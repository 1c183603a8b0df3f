package costmodel

import (
	"fmt"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// CostModel is a read-only view of cost[i][j] (customer i served by facility j)
// and demand[i]. Dimensions are fixed for the lifetime of the value.
type CostModel struct {
	cost   *mat.Dense // customers × facilities, row-major
	demand []float64  // len == customers

	customerNames []string
	facilityNames []string
	facilityIndex map[string]int // name -> column
}

// New copies cost and demand into a fresh CostModel.
//
// Contract:
//   - len(cost) ≥ 1, every row has the same length ≥ 1.
//   - len(demand) == len(cost).
//
// Values themselves are not inspected. Errors wrap ErrInvalidParameter.
//
// Complexity: O(m·n) time and memory.
func New(cost [][]float64, demand []float64, opts ...Option) (*CostModel, error) {
	var (
		m = len(cost)
		n int
	)
	if m == 0 {
		return nil, fmt.Errorf("costmodel: empty cost matrix: %w", ErrInvalidParameter)
	}
	n = len(cost[0])
	if n == 0 {
		return nil, fmt.Errorf("costmodel: no facilities: %w", ErrInvalidParameter)
	}
	if len(demand) != m {
		return nil, fmt.Errorf("costmodel: %d demands for %d customers: %w", len(demand), m, ErrInvalidParameter)
	}

	// Flatten into a single backing slice; mat.NewDense takes ownership of it.
	data := make([]float64, 0, m*n)
	var i int
	for i = 0; i < m; i++ {
		if len(cost[i]) != n {
			return nil, fmt.Errorf("costmodel: row %d has %d costs, want %d: %w", i, len(cost[i]), n, ErrInvalidParameter)
		}
		data = append(data, cost[i]...)
	}

	cm := &CostModel{
		cost:   mat.NewDense(m, n, data),
		demand: append([]float64(nil), demand...),
	}

	var cfg options
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cm.applyNames(cfg); err != nil {
		return nil, err
	}

	return cm, nil
}

// applyNames installs the optional labels, defaulting to decimal indices.
func (cm *CostModel) applyNames(cfg options) error {
	var err error
	if cm.customerNames, err = resolveNames(cfg.customerNames, cm.Customers(), "customer"); err != nil {
		return err
	}
	if cm.facilityNames, err = resolveNames(cfg.facilityNames, cm.Facilities(), "facility"); err != nil {
		return err
	}
	cm.facilityIndex = make(map[string]int, len(cm.facilityNames))
	for j, name := range cm.facilityNames {
		cm.facilityIndex[name] = j
	}

	return nil
}

func resolveNames(names []string, n int, kind string) ([]string, error) {
	if names == nil {
		out := make([]string, n)
		for k := range out {
			out[k] = strconv.Itoa(k)
		}
		return out, nil
	}
	if len(names) != n {
		return nil, fmt.Errorf("costmodel: %d %s names for %d %ss: %w", len(names), kind, n, kind, ErrInvalidParameter)
	}
	seen := make(map[string]struct{}, n)
	for _, name := range names {
		if name == "" {
			return nil, fmt.Errorf("costmodel: empty %s name: %w", kind, ErrInvalidParameter)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("costmodel: duplicate %s name %q: %w", kind, name, ErrInvalidParameter)
		}
		seen[name] = struct{}{}
	}

	return append([]string(nil), names...), nil
}

// Customers returns the number of customers (matrix rows).
func (cm *CostModel) Customers() int {
	r, _ := cm.cost.Dims()
	return r
}

// Facilities returns the number of candidate facilities (matrix columns).
func (cm *CostModel) Facilities() int {
	_, c := cm.cost.Dims()
	return c
}

// Cost returns cost[i][j]. It panics on out-of-range indices, like mat.Dense.At.
func (cm *CostModel) Cost(i, j int) float64 { return cm.cost.At(i, j) }

// Demand returns the demand weight of customer i.
func (cm *CostModel) Demand(i int) float64 { return cm.demand[i] }

// Row returns the costs of customer i over all facilities.
// The slice aliases internal storage and must not be modified.
func (cm *CostModel) Row(i int) []float64 { return cm.cost.RawRowView(i) }

// CustomerName returns the label of customer i.
func (cm *CostModel) CustomerName(i int) string { return cm.customerNames[i] }

// FacilityName returns the label of facility j.
func (cm *CostModel) FacilityName(j int) string { return cm.facilityNames[j] }

// FacilityIndex resolves a facility label to its column.
func (cm *CostModel) FacilityIndex(name string) (int, bool) {
	j, ok := cm.facilityIndex[name]
	return j, ok
}

// FacilityNames maps facility indices to labels.
func (cm *CostModel) FacilityNames(ids []int) []string {
	out := make([]string, len(ids))
	for k, j := range ids {
		out[k] = cm.facilityNames[j]
	}
	return out
}

// ValidateP checks 1 ≤ p ≤ Facilities().
func (cm *CostModel) ValidateP(p int) error {
	if p < 1 || p > cm.Facilities() {
		return fmt.Errorf("costmodel: p=%d outside [1, %d]: %w", p, cm.Facilities(), ErrInvalidParameter)
	}
	return nil
}

// Objective returns Σ demand[i]·mincost[i].
//
// Complexity: O(m).
func (cm *CostModel) Objective(mincost []float64) float64 {
	return floats.Dot(cm.demand, mincost)
}
