package mip

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"
)

// lpLineWidth keeps rows well below the 510-character limit of the LP format.
const lpLineWidth = 200

// WriteLP writes m in CPLEX LP text format:
//
//	\Problem name: location
//	Minimize
//	 obj: 20 y_0_A + 50 y_0_B
//	Subject To
//	 Demand_0: y_0_A + y_0_B = 1
//	Binaries
//	 y_0_A y_0_B
//	End
//
// Zero coefficients are omitted. The model is validated first.
func (m *Model) WriteLP(w io.Writer) error {
	if err := m.Validate(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)

	if m.Name != "" {
		bw.WriteString("\\Problem name: " + m.Name + "\n\n")
	}

	bw.WriteString("Minimize\n")
	bw.WriteString(m.formatRow(" obj:", m.Objective))
	bw.WriteString("\n")

	bw.WriteString("Subject To\n")
	for k, c := range m.Constraints {
		name := c.Name
		if name == "" {
			name = "c" + strconv.Itoa(k+1)
		}
		bw.WriteString(m.formatRow(" "+name+":", c.Terms))
		bw.WriteString(" " + c.Sense.String() + " " + formatNumber(c.RHS) + "\n")
	}

	if len(m.Vars) > 0 {
		bw.WriteString("\nBinaries\n")
		line := ""
		for _, v := range m.Vars {
			if len(line)+len(v.Name)+1 > lpLineWidth {
				bw.WriteString(line + "\n")
				line = ""
			}
			line += " " + v.Name
		}
		bw.WriteString(line + "\n")
	}
	bw.WriteString("End\n")

	return bw.Flush()
}

// formatRow renders "label c1 v1 + c2 v2 - ..." wrapping long rows.
func (m *Model) formatRow(label string, terms []Term) string {
	var (
		sb      strings.Builder
		lineLen = len(label)
		first   = true
		part    string
		coef    float64
	)
	sb.WriteString(label)
	for _, t := range terms {
		if t.Coef == 0 {
			continue
		}
		coef = math.Abs(t.Coef)
		switch {
		case first && t.Coef < 0:
			part = " -"
		case first:
			part = ""
		case t.Coef < 0:
			part = " -"
		default:
			part = " +"
		}
		if coef != 1 {
			part += " " + formatNumber(coef)
		}
		part += " " + m.Vars[t.Var].Name
		if lineLen+len(part) > lpLineWidth {
			sb.WriteString("\n  ")
			lineLen = 2
		}
		sb.WriteString(part)
		lineLen += len(part)
		first = false
	}
	if first {
		sb.WriteString(" 0")
	}

	return sb.String()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
