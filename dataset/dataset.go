package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/katalvlaran/pmedian/costmodel"
)

// DemandColumn is the expected header of the last column.
const DemandColumn = "Demand"

// ErrMalformed is returned (wrapped with row and column context) for any
// input that cannot be turned into a CostModel.
var ErrMalformed = errors.New("dataset: malformed input")

// Load opens path and reads it with ReadCSV.
func Load(path string) (*costmodel.CostModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "dataset: open %s", path)
	}
	defer f.Close()

	cm, err := ReadCSV(f)
	if err != nil {
		return nil, errors.Wrapf(err, "dataset: %s", path)
	}
	return cm, nil
}

// ReadCSV parses a header row and one row per customer into a CostModel
// labelled with the customer and facility names found in the file.
//
// Complexity: O(m·n).
func ReadCSV(r io.Reader) (*costmodel.CostModel, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 0 // first record fixes the width
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.Wrap(ErrMalformed, "empty input")
	}
	if err != nil {
		return nil, errors.Wrapf(ErrMalformed, "header: %v", err)
	}
	header = lo.Map(header, func(s string, _ int) string { return strings.TrimSpace(s) })
	if len(header) < 3 {
		return nil, errors.Wrapf(ErrMalformed, "header has %d columns, need a label, at least one facility and %s", len(header), DemandColumn)
	}
	if !strings.EqualFold(header[len(header)-1], DemandColumn) {
		return nil, errors.Wrapf(ErrMalformed, "last column is %q, want %q", header[len(header)-1], DemandColumn)
	}
	facilities := header[1 : len(header)-1]
	if dup := lo.FindDuplicates(facilities); len(dup) > 0 {
		return nil, errors.Wrapf(ErrMalformed, "duplicate facility %q", dup[0])
	}

	var (
		n         = len(facilities)
		cost      [][]float64
		demand    []float64
		customers []string
		d         float64
		rec       []string
		line      int
	)
	for line = 2; ; line++ {
		rec, err = cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(ErrMalformed, "row %d: %v", line, err)
		}

		row := make([]float64, n)
		for j := 0; j < n; j++ {
			if row[j], err = parseValue(rec[j+1]); err != nil {
				return nil, errors.Wrapf(err, "row %d, facility %s", line, facilities[j])
			}
		}
		if d, err = parseValue(rec[n+1]); err != nil {
			return nil, errors.Wrapf(err, "row %d, %s", line, DemandColumn)
		}

		customers = append(customers, strings.TrimSpace(rec[0]))
		cost = append(cost, row)
		demand = append(demand, d)
	}
	if len(cost) == 0 {
		return nil, errors.Wrap(ErrMalformed, "no customer rows")
	}

	cm, err := costmodel.New(cost, demand,
		costmodel.WithCustomerNames(customers),
		costmodel.WithFacilityNames(facilities),
	)
	if err != nil {
		return nil, errors.Wrap(err, "dataset")
	}
	return cm, nil
}

// parseValue accepts finite, non-negative decimals.
func parseValue(cell string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformed, "%q is not a number", cell)
	}
	if err = costmodel.ValidateValue(v); err != nil {
		return 0, errors.Wrapf(ErrMalformed, "%q: %v", cell, err)
	}
	return v, nil
}
