package walker

import "github.com/efyj-go/efyj/model"

// Position names one cell of one inner attribute's aggregation table: the
// value the table currently holds at row Row of attribute AttrIdx's
// function, before any edit is applied. Allowed holds the replacement
// values the inner (value) enumeration will visit for this position:
// every scale value except Orig by default, since an edit must change
// the cell (adjustment excludes the original
// value from the replacement set). The unexported
// Walker.setAllowNoOpEdits switches this to the full scale range; it is
// reachable only from this package's tests.
type Position struct {
	AttrIdx int
	Row     int
	Orig    int8
	Allowed []int8
}

// Edit is one concrete (attribute, row) -> value replacement, the unit
// the search package reports back to its caller as a StepResult modifier.
type Edit struct {
	AttrIdx int  `json:"attribute"`
	Row     int  `json:"row"`
	Value   int8 `json:"value"`
}

// buildPositions enumerates every cell of every inner attribute's table,
// in attribute order and row-major order within each table, matching the
// order the original solver's own flatten of F into a single edit space
// uses.
func buildPositions(m *model.Model, allowNoOpEdits bool) []Position {
	var out []Position
	for ai := range m.Attributes {
		a := &m.Attributes[ai]
		if a.IsLeaf() {
			continue
		}
		size := a.Scale.Size()
		rows := a.Table.Rows()
		for r := 0; r < rows; r++ {
			orig := a.Table.MustAt(r, 0)
			allowed := make([]int8, 0, size)
			for v := 0; v < size; v++ {
				if int8(v) == orig && !allowNoOpEdits {
					continue
				}
				allowed = append(allowed, int8(v))
			}
			out = append(out, Position{AttrIdx: ai, Row: r, Orig: orig, Allowed: allowed})
		}
	}

	return out
}
