package matrix

import "fmt"

// Dense is a concrete row-major matrix of int8 scale values.
// rows, cols are dimensions; data holds rows*cols elements in row-major order.
type Dense struct {
	rows, cols int
	data       []int8
}

// NewDense creates a rows×cols Dense initialized to zero.
// Returns ErrBadShape when rows<=0 or cols<=0.
// Complexity: O(rows*cols).
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrBadShape
	}

	return &Dense{
		rows: rows,
		cols: cols,
		data: make([]int8, rows*cols),
	}, nil
}

// Rows returns the number of rows. Complexity: O(1).
func (m *Dense) Rows() int { return m.rows }

// Cols returns the number of columns. Complexity: O(1).
func (m *Dense) Cols() int { return m.cols }

// offset computes the flat index for (row,col), bounds-checked.
func (m *Dense) offset(row, col int) (int, error) {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return 0, fmt.Errorf("Dense(%d,%d): %w", row, col, ErrOutOfRange)
	}

	return row*m.cols + col, nil
}

// At retrieves the element at (row, col). Complexity: O(1).
func (m *Dense) At(row, col int) (int8, error) {
	off, err := m.offset(row, col)
	if err != nil {
		return 0, err
	}

	return m.data[off], nil
}

// MustAt is At without an error return, for hot-path callers that have
// already validated row/col (e.g. the stack evaluator, which derives col
// from the model's own table geometry). It does no bounds check of its
// own: an index whose flat offset falls outside the backing slice panics,
// while an out-of-range col whose offset still falls inside it reads a
// neighbouring cell. Callers pass only indices they have already validated.
func (m *Dense) MustAt(row, col int) int8 {
	return m.data[row*m.cols+col]
}

// Set writes value v at (row, col). Complexity: O(1).
func (m *Dense) Set(row, col int, v int8) error {
	off, err := m.offset(row, col)
	if err != nil {
		return err
	}
	m.data[off] = v

	return nil
}

// MustSet is the unchecked counterpart of MustAt, used by the walker when
// applying an edit whose (row,col) was already validated at enumeration time.
func (m *Dense) MustSet(row, col int, v int8) {
	m.data[row*m.cols+col] = v
}

// Row returns a copy of row r as a flat []int8 of length Cols().
// Complexity: O(cols).
func (m *Dense) Row(r int) ([]int8, error) {
	if r < 0 || r >= m.rows {
		return nil, fmt.Errorf("Dense.Row(%d): %w", r, ErrOutOfRange)
	}
	out := make([]int8, m.cols)
	copy(out, m.data[r*m.cols:(r+1)*m.cols])

	return out, nil
}

// Clone returns a deep copy of the matrix. Complexity: O(rows*cols).
func (m *Dense) Clone() *Dense {
	cp := make([]int8, len(m.data))
	copy(cp, m.data)

	return &Dense{rows: m.rows, cols: m.cols, data: cp}
}

// CopyFrom overwrites m's backing storage with src's, in place. Both
// matrices must have identical dimensions; returns ErrDimensionMismatch
// otherwise. Used by walker.Restore to revert a working copy without a
// fresh allocation.
func (m *Dense) CopyFrom(src *Dense) error {
	if m.rows != src.rows || m.cols != src.cols {
		return ErrDimensionMismatch
	}
	copy(m.data, src.data)

	return nil
}

// Fill sets every cell to v. Complexity: O(rows*cols).
func (m *Dense) Fill(v int8) {
	for i := range m.data {
		m.data[i] = v
	}
}

// Resize changes m's dimensions in place to rows×cols, returning
// ErrBadShape if either is <= 0. Cells within both the old and new
// bounds keep their value; cells only present in the new shape (a grow
// in either dimension) are zeroed. Cells only present in the old shape
// are dropped. Complexity: O(rows*cols).
func (m *Dense) Resize(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return ErrBadShape
	}

	data := make([]int8, rows*cols)
	keepRows, keepCols := rows, cols
	if m.rows < keepRows {
		keepRows = m.rows
	}
	if m.cols < keepCols {
		keepCols = m.cols
	}
	for r := 0; r < keepRows; r++ {
		copy(data[r*cols:r*cols+keepCols], m.data[r*m.cols:r*m.cols+keepCols])
	}

	m.rows = rows
	m.cols = cols
	m.data = data

	return nil
}
