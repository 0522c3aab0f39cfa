package model

import "github.com/efyj-go/efyj/matrix"

// MaxScaleSize is the largest cardinality a Scale may have (1..127).
const MaxScaleSize = 127

// Scale is an ordered list of named scale values. Cardinality must satisfy
// 1 <= len(Values) <= MaxScaleSize. Ordered is true for monotone scales
// (the default); non-ordered scales are accepted but play no special role
// in evaluation, kappa, or search.
type Scale struct {
	Values  []string
	Ordered bool
}

// Size returns the scale's cardinality.
func (s Scale) Size() int { return len(s.Values) }

// IndexOf returns the index of name within the scale, or -1 if absent.
func (s Scale) IndexOf(name string) int {
	for i, v := range s.Values {
		if v == name {
			return i
		}
	}

	return -1
}

// Attribute is one node of the tree: a name, an owning scale, a (possibly
// empty) ordered list of child attribute indices, and — for inner nodes —
// an aggregation Table. Table is nil for leaves.
type Attribute struct {
	Name     string
	Scale    Scale
	Children []int // indices into Model.Attributes, in fixed child order
	Table    *matrix.Dense
}

// IsLeaf reports whether this attribute has no children (a basic attribute).
func (a *Attribute) IsLeaf() bool { return len(a.Children) == 0 }

// tableRows returns the row count an inner attribute's table must have:
// the product of its children's scale sizes. For a leaf this is 0.
func tableRows(attrs []Attribute, a *Attribute) int {
	if a.IsLeaf() {
		return 0
	}
	rows := 1
	for _, c := range a.Children {
		rows *= attrs[c].Scale.Size()
	}

	return rows
}

// Model is an ordered tree of Attributes; Attributes[0] is the root.
// Construction order: scales are embedded in attributes, the
// tree shape and aggregation tables are validated once by NewModel, and
// the result is immutable — only Table cell values change, and only
// in a Tables() copy owned by a single walker/goroutine.
type Model struct {
	Attributes []Attribute

	// leaves caches the attribute indices with no children, in the fixed
	// order used for option rows (basic-value vectors): Attributes index
	// order restricted to leaves. Computed once by NewModel.
	leaves []int
}

// NewModel validates and wraps attrs into a Model. attrs[0] is the root.
//
// Validation:
//   - at least one attribute
//   - every scale has cardinality in [1, 127]
//   - every child index is in range
//   - the children relation forms a tree (no cycles, exactly one root with
//     no incoming edge, every non-root attribute reachable from the root)
//   - leaves carry no table; inner attributes carry a table with exactly
//     ∏|S_child| rows, each cell in [0, |S_self|)
func NewModel(attrs []Attribute) (*Model, error) {
	if len(attrs) == 0 {
		return nil, ErrEmptyModel
	}

	for i := range attrs {
		sz := attrs[i].Scale.Size()
		if sz == 0 {
			return nil, ErrScaleEmpty
		}
		if sz > MaxScaleSize {
			return nil, ErrScaleTooLarge
		}
		for _, c := range attrs[i].Children {
			if c < 0 || c >= len(attrs) {
				return nil, ErrUnknownChild
			}
		}
	}

	if err := checkTree(attrs); err != nil {
		return nil, err
	}

	leaves := make([]int, 0, len(attrs))
	for i := range attrs {
		a := &attrs[i]
		if a.IsLeaf() {
			if a.Table != nil {
				return nil, ErrLeafHasTable
			}
			leaves = append(leaves, i)
			continue
		}
		if a.Table == nil {
			return nil, ErrInnerMissingTable
		}
		wantRows := tableRows(attrs, a)
		if a.Table.Rows() != wantRows || a.Table.Cols() != 1 {
			return nil, ErrTableRowCount
		}
		for r := 0; r < wantRows; r++ {
			v, _ := a.Table.At(r, 0)
			if int(v) < 0 || int(v) >= a.Scale.Size() {
				return nil, ErrTableCellRange
			}
		}
	}

	return &Model{Attributes: attrs, leaves: leaves}, nil
}

// checkTree verifies the Children relation forms a single tree rooted at
// index 0: every attribute other than 0 has exactly one parent, and there
// are no cycles.
func checkTree(attrs []Attribute) error {
	parent := make([]int, len(attrs))
	for i := range parent {
		parent[i] = -1
	}
	for i := range attrs {
		for _, c := range attrs[i].Children {
			if parent[c] != -1 {
				return ErrCycle // two parents claim the same child
			}
			parent[c] = i
		}
	}
	for i := 1; i < len(attrs); i++ {
		if parent[i] == -1 {
			return ErrCycle // unreachable from root
		}
	}

	// Cycle detection via DFS from the root; also catches root-reachable
	// cycles that the parent-count check alone would miss.
	visited := make([]bool, len(attrs))
	onStack := make([]bool, len(attrs))
	var visit func(i int) error
	visit = func(i int) error {
		visited[i] = true
		onStack[i] = true
		for _, c := range attrs[i].Children {
			if onStack[c] {
				return ErrCycle
			}
			if !visited[c] {
				if err := visit(c); err != nil {
					return err
				}
			}
		}
		onStack[i] = false

		return nil
	}
	if err := visit(0); err != nil {
		return err
	}
	for i := range attrs {
		if !visited[i] {
			return ErrCycle
		}
	}

	return nil
}

// Root returns the root attribute (index 0).
func (m *Model) Root() *Attribute { return &m.Attributes[0] }

// RootScaleSize returns the class count used by kappa: the root's scale
// cardinality.
func (m *Model) RootScaleSize() int { return m.Attributes[0].Scale.Size() }

// Leaves returns the basic-attribute indices, in the fixed order used by
// option rows.
func (m *Model) Leaves() []int { return m.leaves }

// NumLeaves returns len(Leaves()).
func (m *Model) NumLeaves() int { return len(m.leaves) }

// Tables returns a snapshot of every inner attribute's table, keyed by
// attribute index (nil for leaves), suitable as a walker's working copy.
// Complexity: O(total table cells).
func (m *Model) Tables() map[int]*matrix.Dense {
	out := make(map[int]*matrix.Dense, len(m.Attributes))
	for i := range m.Attributes {
		if m.Attributes[i].Table != nil {
			out[i] = m.Attributes[i].Table.Clone()
		}
	}

	return out
}

// RowIndex computes the mixed-radix row index for attribute a's table from
// its children's values, in fixed child order with the last child as the
// least significant digit.
func (m *Model) RowIndex(attrIdx int, childValues []int8) int {
	a := &m.Attributes[attrIdx]
	idx := 0
	for k, c := range a.Children {
		idx = idx*m.Attributes[c].Scale.Size() + int(childValues[k])
	}

	return idx
}
