package options

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/efyj-go/efyj/model"
)

// RowWarning records a skipped CSV row and why ("row-level
// CSV errors are logged and the row is dropped, preserving progress").
type RowWarning struct {
	Row int // 1-based data row number (header is row 0)
	Msg string
}

const (
	colSimulation = "simulation"
	colPlace      = "place"
	colDepartment = "department"
	colYear       = "year"
	colObserved   = "observed"
)

// ReadCSV parses a semicolon-delimited options CSV against m. Column
// order is arbitrary beyond the fixed names; place presence is detected
// from the header, not a fixed column count. Rows with an unknown scale
// value are skipped and reported as warnings, not errors.
func ReadCSV(r io.Reader, m *model.Model) (*Dataset, []RowWarning, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("options: read header: %w", err)
	}

	leaves := m.Leaves()
	leafCol := make([]int, len(leaves)) // leafCol[j] = CSV column index for leaves[j]
	for i := range leafCol {
		leafCol[i] = -1
	}
	fixed := map[string]int{colSimulation: -1, colPlace: -1, colDepartment: -1, colYear: -1, colObserved: -1}

	for col, name := range header {
		if _, ok := fixed[name]; ok {
			fixed[name] = col
			continue
		}
		matched := false
		for j, attrIdx := range leaves {
			if m.Attributes[attrIdx].Name == name {
				leafCol[j] = col
				matched = true
				break
			}
		}
		if !matched {
			return nil, nil, fmt.Errorf("options: %w: %q", ErrUnknownColumn, name)
		}
	}
	for j, col := range leafCol {
		if col == -1 {
			return nil, nil, fmt.Errorf("options: %w: %q", ErrMissingLeafColumn, m.Attributes[leaves[j]].Name)
		}
	}
	if fixed[colSimulation] == -1 || fixed[colDepartment] == -1 || fixed[colYear] == -1 || fixed[colObserved] == -1 {
		return nil, nil, fmt.Errorf("options: %w: missing a required fixed column", ErrColumnCount)
	}
	hasPlace := fixed[colPlace] != -1

	wantCols := len(leaves) + 4
	if hasPlace {
		wantCols++
	}
	if len(header) != wantCols {
		return nil, nil, ErrColumnCount
	}

	ds := &Dataset{L: len(leaves)}
	var warnings []RowWarning
	rowNum := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("options: read row %d: %w", rowNum+1, err)
		}
		rowNum++

		row, obs, dept, year, sim, place, warn := parseRow(rec, m, leaves, leafCol, fixed, hasPlace)
		if warn != "" {
			warnings = append(warnings, RowWarning{Row: rowNum, Msg: warn})
			continue
		}

		ds.Values = append(ds.Values, row...)
		ds.Observed = append(ds.Observed, obs)
		ds.Department = append(ds.Department, dept)
		ds.Year = append(ds.Year, year)
		ds.Simulation = append(ds.Simulation, sim)
		ds.Place = append(ds.Place, place)
		ds.N++
	}

	if ds.N == 0 {
		return nil, warnings, ErrEmptyDataset
	}

	ds.DeriveSubsets()

	return ds, warnings, nil
}

func parseRow(
	rec []string, m *model.Model, leaves []int, leafCol []int, fixed map[string]int, hasPlace bool,
) (row []int8, obs int8, dept, year int, sim string, place *string, warn string) {
	row = make([]int8, len(leaves))
	for j, attrIdx := range leaves {
		v := m.Attributes[attrIdx].Scale.IndexOf(rec[leafCol[j]])
		if v < 0 {
			return nil, 0, 0, 0, "", nil, fmt.Sprintf("unknown value %q for %s", rec[leafCol[j]], m.Attributes[attrIdx].Name)
		}
		row[j] = int8(v)
	}

	obsName := rec[fixed[colObserved]]
	ov := m.Root().Scale.IndexOf(obsName)
	if ov < 0 {
		return nil, 0, 0, 0, "", nil, fmt.Sprintf("unknown observed value %q", obsName)
	}
	obs = int8(ov)

	var err error
	dept, err = strconv.Atoi(rec[fixed[colDepartment]])
	if err != nil {
		return nil, 0, 0, 0, "", nil, fmt.Sprintf("bad department %q", rec[fixed[colDepartment]])
	}
	year, err = strconv.Atoi(rec[fixed[colYear]])
	if err != nil {
		return nil, 0, 0, 0, "", nil, fmt.Sprintf("bad year %q", rec[fixed[colYear]])
	}
	sim = rec[fixed[colSimulation]]

	if hasPlace {
		p := rec[fixed[colPlace]]
		if p != "" {
			place = &p
		}
	}

	return row, obs, dept, year, sim, place, ""
}

// WriteCSV serializes ds against m in the same schema ReadCSV accepts,
// including the place column only when any row carries one.
func WriteCSV(w io.Writer, m *model.Model, ds *Dataset) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	hasPlace := false
	for _, p := range ds.Place {
		if p != nil {
			hasPlace = true
			break
		}
	}

	leaves := m.Leaves()
	header := make([]string, 0, len(leaves)+5)
	header = append(header, colSimulation)
	if hasPlace {
		header = append(header, colPlace)
	}
	header = append(header, colDepartment, colYear)
	for _, attrIdx := range leaves {
		header = append(header, m.Attributes[attrIdx].Name)
	}
	header = append(header, colObserved)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("options: write header: %w", err)
	}

	for i := 0; i < ds.N; i++ {
		rec := make([]string, 0, len(header))
		rec = append(rec, ds.Simulation[i])
		if hasPlace {
			p := ""
			if ds.Place[i] != nil {
				p = *ds.Place[i]
			}
			rec = append(rec, p)
		}
		rec = append(rec, strconv.Itoa(ds.Department[i]), strconv.Itoa(ds.Year[i]))
		row := ds.Row(i)
		for j, attrIdx := range leaves {
			rec = append(rec, m.Attributes[attrIdx].Scale.Values[row[j]])
		}
		rec = append(rec, m.Root().Scale.Values[ds.Observed[i]])
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("options: write row %d: %w", i, err)
		}
	}
	cw.Flush()

	return cw.Error()
}
