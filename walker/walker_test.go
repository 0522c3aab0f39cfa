package walker

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/efyj-go/efyj/matrix"
	"github.com/efyj-go/efyj/model"
)

// cardinalityModel builds a toy model with exactly two inner attributes:
// the root (scale size 3, a 4-row table over children b and c) and b
// (scale size 2, a 2-row table over its single leaf child x). The
// cardinality property only depends on each inner attribute's own
// (scale size, row count), so P holds 4 + 2 = 6 positions.
func cardinalityModel(t *testing.T) *model.Model {
	t.Helper()

	// b: inner attribute, scale size 2, table rows 2 (its single child x
	// has scale size 2, so rows(F_b) = 2).
	bTbl, err := matrix.NewDense(2, 1)
	require.NoError(t, err)
	require.NoError(t, bTbl.Set(0, 0, 0))
	require.NoError(t, bTbl.Set(1, 0, 1))

	// root: inner attribute, scale size 3, table rows 4 (children b and
	// c each scale size 2, so rows(F_root) = 2*2 = 4).
	aTbl, err := matrix.NewDense(4, 1)
	require.NoError(t, err)
	for r := 0; r < 4; r++ {
		require.NoError(t, aTbl.Set(r, 0, int8(r%3)))
	}

	attrs := []model.Attribute{
		{Name: "root", Scale: model.Scale{Values: []string{"0", "1", "2"}}, Children: []int{1, 2}, Table: aTbl},
		{Name: "b", Scale: model.Scale{Values: []string{"0", "1"}}, Children: []int{3}, Table: bTbl},
		{Name: "c", Scale: model.Scale{Values: []string{"0", "1"}}},
		{Name: "x", Scale: model.Scale{Values: []string{"0", "1"}}},
	}
	m, err := model.NewModel(attrs)
	require.NoError(t, err)

	return m
}

func enumerateAll(t *testing.T, w *Walker, k int) [][]Edit {
	t.Helper()
	require.NoError(t, w.InitWalkers(k))
	var out [][]Edit
	for {
		w.InitNextValue()
		for {
			edits, err := w.Updaters()
			require.NoError(t, err)
			cp := append([]Edit(nil), edits...)
			out = append(out, cp)
			if !w.NextValue() {
				break
			}
		}
		if !w.NextLine() {
			break
		}
	}

	return out
}

func TestWalker_Cardinality_K1(t *testing.T) {
	m := cardinalityModel(t)
	w := New(m)
	require.Len(t, w.Positions(), 6) // 4 rows in root's table + 2 rows in b's table

	all := enumerateAll(t, w, 1)
	// 4 positions of scale-size 3 (2 allowed values each) + 2 positions
	// of scale-size 2 (1 allowed value each): 4*2 + 2*1 = 10, matching
	// the toy model above exactly.
	require.Len(t, all, 10)
}

// bruteForceCount computes the true configuration count for a given k by
// direct combinatorics over the heterogeneous position set, independent
// of the Walker implementation, to cross-check NextLine/NextValue. A
// naive C(n,k) times a single group's (size-1) factor undercounts once
// the position groups have different scale sizes; the true total
// (verified here by brute force) is what the walker is required to
// visit, each exactly once.
func bruteForceCount(positions []Position, k int) int {
	n := len(positions)
	total := 0
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		prod := 1
		for _, p := range idx {
			prod *= len(positions[p].Allowed)
		}
		total += prod

		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			break
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}

	return total
}

func TestWalker_Cardinality_K2_MatchesBruteForce(t *testing.T) {
	m := cardinalityModel(t)
	w := New(m)
	want := bruteForceCount(w.Positions(), 2)

	all := enumerateAll(t, w, 2)
	require.Len(t, all, want)
}

func TestWalker_VisitsEachConfigurationOnce(t *testing.T) {
	m := cardinalityModel(t)
	w := New(m)
	all := enumerateAll(t, w, 2)

	seen := make(map[string]bool, len(all))
	for _, edits := range all {
		key := ""
		for _, e := range edits {
			key += fmt.Sprintf("%d-%d-%d|", e.AttrIdx, e.Row, e.Value)
		}
		require.False(t, seen[key], "duplicate configuration: %+v", edits)
		seen[key] = true
	}
}

func TestWalker_ApplyRestore_TablesUnchanged(t *testing.T) {
	m := cardinalityModel(t)
	w := New(m)
	before := cloneTables(w.Working())

	require.NoError(t, w.InitWalkers(2))
	for {
		w.InitNextValue()
		for {
			require.NoError(t, w.Apply())
			require.NoError(t, w.Restore())
			if !w.NextValue() {
				break
			}
		}
		if !w.NextLine() {
			break
		}
	}

	after := w.Working()
	for attrIdx, tbl := range before {
		rows := tbl.Rows()
		for r := 0; r < rows; r++ {
			want, _ := tbl.At(r, 0)
			got, _ := after[attrIdx].At(r, 0)
			require.Equal(t, want, got, "attr %d row %d changed after apply/restore", attrIdx, r)
		}
	}
}

func cloneTables(in map[int]*matrix.Dense) map[int]*matrix.Dense {
	out := make(map[int]*matrix.Dense, len(in))
	for k, v := range in {
		out[k] = v.Clone()
	}

	return out
}

func TestWalker_Reduce_PrunesPositions(t *testing.T) {
	m := cardinalityModel(t)
	w := New(m)
	require.Len(t, w.Positions(), 6)

	w.Reduce(func(attrIdx, row int) bool { return attrIdx == 0 })
	require.Len(t, w.Positions(), 4)
	for _, p := range w.Positions() {
		require.Equal(t, 0, p.AttrIdx)
	}
}

func TestWalker_AllowNoOpEdits(t *testing.T) {
	m := cardinalityModel(t)
	w := New(m)
	before := w.Positions()
	require.Len(t, before[0].Allowed, 2) // root scale size 3, orig excluded

	w.setAllowNoOpEdits(true)
	after := w.Positions()
	require.Len(t, after[0].Allowed, 3) // full scale range now included
}

func TestWalker_BadK(t *testing.T) {
	m := cardinalityModel(t)
	w := New(m)
	require.ErrorIs(t, w.InitWalkers(0), ErrBadK)
	require.ErrorIs(t, w.InitWalkers(100), ErrBadK)
}
