package options

import "github.com/efyj-go/efyj/model"

// Dataset is N options over L basic attributes, plus provenance and the
// derived learning-subset index. Values is row-major (N*L); row i's
// values are Values[i*L : (i+1)*L].
type Dataset struct {
	N, L int
	Values   []int8
	Observed []int8

	Simulation []string
	Department []int
	Year       []int
	Place      []*string // nil entry means place absent for that row

	// Subset[i] lists the rows j != i whose provenance is fully disjoint
	// from row i's (literal AND across every
	// present provenance field). ReducedID[i] canonicalizes Subset[i]:
	// rows with identical subsets share a ReducedID, for caching.
	Subset    [][]int
	ReducedID []int
}

// Row returns option i's basic-attribute values, a slice into Values (not
// a copy).
func (d *Dataset) Row(i int) []int8 { return d.Values[i*d.L : (i+1)*d.L] }

// Validate checks the invariants: |O| = N*L; every leaf value
// in range; every observed value in range for the root scale.
func (d *Dataset) Validate(m *model.Model) error {
	if d.N == 0 {
		return ErrEmptyDataset
	}
	if len(d.Values) != d.N*d.L || len(d.Observed) != d.N {
		return ErrLengthMismatch
	}
	if d.L != m.NumLeaves() {
		return ErrLengthMismatch
	}

	leaves := m.Leaves()
	for i := 0; i < d.N; i++ {
		row := d.Row(i)
		for j, attrIdx := range leaves {
			size := m.Attributes[attrIdx].Scale.Size()
			if int(row[j]) < 0 || int(row[j]) >= size {
				return ErrValueOutOfRange
			}
		}
		if int(d.Observed[i]) < 0 || int(d.Observed[i]) >= m.RootScaleSize() {
			return ErrValueOutOfRange
		}
	}

	return nil
}

// DeriveSubsets computes Subset and ReducedID from provenance, per the
// pinned semantics: row j belongs to subset[i] iff j != i and j's
// provenance disjoint from i's in every field present on both rows
// (department and year always; place only when both rows carry one).
// Subsets are derived once and frozen.
func (d *Dataset) DeriveSubsets() {
	d.Subset = make([][]int, d.N)
	for i := 0; i < d.N; i++ {
		var s []int
		for j := 0; j < d.N; j++ {
			if j == i {
				continue
			}
			if d.disjoint(i, j) {
				s = append(s, j)
			}
		}
		d.Subset[i] = s
	}

	d.ReducedID = make([]int, d.N)
	seen := make(map[string]int)
	next := 0
	for i := 0; i < d.N; i++ {
		key := subsetKey(d.Subset[i])
		id, ok := seen[key]
		if !ok {
			id = next
			seen[key] = id
			next++
		}
		d.ReducedID[i] = id
	}
}

// disjoint reports whether rows i and j are disjoint in every provenance
// field present on both: department and year unconditionally, place only
// when both rows have one.
func (d *Dataset) disjoint(i, j int) bool {
	if d.Department[i] == d.Department[j] {
		return false
	}
	if d.Year[i] == d.Year[j] {
		return false
	}
	if d.Place[i] != nil && d.Place[j] != nil && *d.Place[i] == *d.Place[j] {
		return false
	}

	return true
}

func subsetKey(s []int) string {
	// Subset rows are appended in increasing j order already, so the key
	// is stable without an extra sort.
	b := make([]byte, 0, len(s)*4)
	for _, v := range s {
		b = append(b, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	}

	return string(b)
}
