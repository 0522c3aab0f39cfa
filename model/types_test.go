package model

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/efyj-go/efyj/matrix"
)

// twoAttr builds a toy model: two leaves feeding
// one inner (root) attribute, scale sizes (3, 2), table with 6 rows.
func twoAttr(t *testing.T) *Model {
	t.Helper()
	tbl, err := matrix.NewDense(6, 1)
	require.NoError(t, err)
	for r := 0; r < 6; r++ {
		require.NoError(t, tbl.Set(r, 0, int8(r%3)))
	}
	attrs := []Attribute{
		{Name: "root", Scale: Scale{Values: []string{"lo", "mid", "hi"}}, Children: []int{1, 2}, Table: tbl},
		{Name: "a", Scale: Scale{Values: []string{"x", "y", "z"}}},
		{Name: "b", Scale: Scale{Values: []string{"p", "q"}}},
	}

	m, err := NewModel(attrs)
	require.NoError(t, err)

	return m
}

func TestNewModel_Valid(t *testing.T) {
	m := twoAttr(t)
	require.Equal(t, 3, m.RootScaleSize())
	require.Equal(t, []int{1, 2}, m.Leaves())
	require.Equal(t, 2, m.NumLeaves())
}

func TestNewModel_EmptyRejected(t *testing.T) {
	_, err := NewModel(nil)
	require.ErrorIs(t, err, ErrEmptyModel)
}

func TestNewModel_ScaleTooLarge(t *testing.T) {
	vals := make([]string, 128)
	for i := range vals {
		vals[i] = "v"
	}
	_, err := NewModel([]Attribute{{Name: "root", Scale: Scale{Values: vals}}})
	require.ErrorIs(t, err, ErrScaleTooLarge)
}

func TestNewModel_UnknownChild(t *testing.T) {
	_, err := NewModel([]Attribute{
		{Name: "root", Scale: Scale{Values: []string{"a", "b"}}, Children: []int{5}},
	})
	require.ErrorIs(t, err, ErrUnknownChild)
}

func TestNewModel_Cycle(t *testing.T) {
	_, err := NewModel([]Attribute{
		{Name: "a", Scale: Scale{Values: []string{"0", "1"}}, Children: []int{1}},
		{Name: "b", Scale: Scale{Values: []string{"0", "1"}}, Children: []int{0}},
	})
	require.ErrorIs(t, err, ErrCycle)
}

func TestNewModel_LeafHasTable(t *testing.T) {
	tbl, _ := matrix.NewDense(1, 1)
	_, err := NewModel([]Attribute{
		{Name: "root", Scale: Scale{Values: []string{"0"}}, Table: tbl},
	})
	require.ErrorIs(t, err, ErrLeafHasTable)
}

func TestNewModel_InnerMissingTable(t *testing.T) {
	_, err := NewModel([]Attribute{
		{Name: "root", Scale: Scale{Values: []string{"0", "1"}}, Children: []int{1}},
		{Name: "leaf", Scale: Scale{Values: []string{"0", "1"}}},
	})
	require.ErrorIs(t, err, ErrInnerMissingTable)
}

func TestNewModel_TableRowCountMismatch(t *testing.T) {
	tbl, _ := matrix.NewDense(1, 1) // wrong: should be 2 rows
	_, err := NewModel([]Attribute{
		{Name: "root", Scale: Scale{Values: []string{"0", "1"}}, Children: []int{1}, Table: tbl},
		{Name: "leaf", Scale: Scale{Values: []string{"0", "1"}}},
	})
	require.ErrorIs(t, err, ErrTableRowCount)
}

func TestNewModel_TableCellOutOfRange(t *testing.T) {
	tbl, _ := matrix.NewDense(2, 1)
	_ = tbl.Set(0, 0, 5) // out of [0,2)
	_, err := NewModel([]Attribute{
		{Name: "root", Scale: Scale{Values: []string{"0", "1"}}, Children: []int{1}, Table: tbl},
		{Name: "leaf", Scale: Scale{Values: []string{"0", "1"}}},
	})
	require.ErrorIs(t, err, ErrTableCellRange)
}

func TestModel_RowIndex(t *testing.T) {
	m := twoAttr(t)
	// child a has scale size 3, child b has scale size 2; b is least
	// significant: idx = v_a*2 + v_b.
	require.Equal(t, 0, m.RowIndex(0, []int8{0, 0}))
	require.Equal(t, 1, m.RowIndex(0, []int8{0, 1}))
	require.Equal(t, 2, m.RowIndex(0, []int8{1, 0}))
	require.Equal(t, 5, m.RowIndex(0, []int8{2, 1}))
}

func TestModel_Tables_IsIndependentCopy(t *testing.T) {
	m := twoAttr(t)
	tabs := m.Tables()
	tabs[0].MustSet(0, 0, 2)
	v, _ := m.Attributes[0].Table.At(0, 0)
	require.EqualValues(t, 0, v, "Tables() must return a deep copy")
}
