package pmedian

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/katalvlaran/pmedian/costmodel"
)

// WriteReport prints objective, open facilities, the greedy trajectory (if
// any) and the per-customer assignment using the labels of cm.
func (r *Result) WriteReport(w io.Writer, cm *costmodel.CostModel) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "algorithm:\t%s\n", r.Algorithm)
	fmt.Fprintf(tw, "objective:\t%g\n", r.Objective)
	if r.Algorithm == Exact {
		fmt.Fprintf(tw, "solver objective:\t%g\n", r.SolverObjective)
	}
	fmt.Fprintf(tw, "selected:\t%s\n", strings.Join(cm.FacilityNames(r.Selected), ", "))

	if len(r.Trace) > 0 {
		fmt.Fprintln(tw, "trace:")
		for _, st := range r.Trace {
			fmt.Fprintf(tw, "  close %s\t+%g\t-> %g\n", cm.FacilityName(st.Removed), st.Delta, st.Objective)
		}
	}

	fmt.Fprintln(tw, "assignment:")
	for i, j := range r.Assignment {
		fmt.Fprintf(tw, "  %s\t-> %s\t%g\n", cm.CustomerName(i), cm.FacilityName(j), r.MinCost[i])
	}

	return tw.Flush()
}

// Report is WriteReport into a string.
func (r *Result) Report(cm *costmodel.CostModel) string {
	var sb strings.Builder
	_ = r.WriteReport(&sb, cm)
	return sb.String()
}
