package search

import (
	"fmt"

	"github.com/efyj-go/efyj/eval"
	"github.com/efyj-go/efyj/matrix"
	"github.com/efyj-go/efyj/model"
	"github.com/efyj-go/efyj/options"
	"github.com/efyj-go/efyj/walker"
)

// errUnableToTrain reports option i's empty learning subset: prediction
// requires every subset[i] to be non-empty, else there is nothing to
// train that option's estimate on.
func errUnableToTrain(i int) error {
	return fmt.Errorf("unable_to_train: option %d has an empty learning subset", i)
}

// evalDataset runs prog against every option row in ds, using tables.
func evalDataset(prog *eval.Program, tables map[int]*matrix.Dense, ds *options.Dataset) []int8 {
	sim := make([]int8, ds.N)
	for i := 0; i < ds.N; i++ {
		sim[i] = prog.Run(tables, ds.Row(i))
	}

	return sim
}

// touchedPositions computes, for the model's original (unedited) tables,
// every (attribute, row) pair actually produced by evaluating ds's
// options: a row is touched if some option's child-values at that
// attribute produce it. This is computed once against the original
// (unedited) tables. Where an inner attribute has an inner child, the
// row it reads depends on that child's table output, so a row that only
// becomes reachable after an edit of a lower table is not counted.
func touchedPositions(m *model.Model, ds *options.Dataset) map[[2]int]bool {
	leafPos := make(map[int]int, m.NumLeaves())
	for i, idx := range m.Leaves() {
		leafPos[idx] = i
	}

	touched := make(map[[2]int]bool)
	var visit func(attrIdx int, row []int8) int8
	visit = func(attrIdx int, row []int8) int8 {
		a := &m.Attributes[attrIdx]
		if a.IsLeaf() {
			return row[leafPos[attrIdx]]
		}
		childVals := make([]int8, len(a.Children))
		for i, c := range a.Children {
			childVals[i] = visit(c, row)
		}
		r := m.RowIndex(attrIdx, childVals)
		touched[[2]int{attrIdx, r}] = true

		return a.Table.MustAt(r, 0)
	}

	for i := 0; i < ds.N; i++ {
		visit(0, ds.Row(i))
	}

	return touched
}

// appliedEdit remembers the cell a walker.Edit overwrote, so it can be
// restored without walker state (used by Prediction, which reapplies a
// cached edit set across several options independently of the walker's
// own enumeration position).
type appliedEdit struct {
	edit walker.Edit
	orig int8
}

func applyEdits(tables map[int]*matrix.Dense, edits []walker.Edit) []appliedEdit {
	out := make([]appliedEdit, len(edits))
	for i, e := range edits {
		t := tables[e.AttrIdx]
		out[i] = appliedEdit{edit: e, orig: t.MustAt(e.Row, 0)}
		t.MustSet(e.Row, 0, e.Value)
	}

	return out
}

func restoreEdits(tables map[int]*matrix.Dense, applied []appliedEdit) {
	for _, a := range applied {
		tables[a.edit.AttrIdx].MustSet(a.edit.Row, 0, a.orig)
	}
}
