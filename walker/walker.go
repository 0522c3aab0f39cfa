package walker

import (
	"github.com/efyj-go/efyj/matrix"
	"github.com/efyj-go/efyj/model"
)

// Walker enumerates edit tuples of a fixed size k over one model's
// aggregation tables and applies/restores them against a working copy it
// owns exclusively. A Walker is not safe for concurrent use; the parallel
// search coordinator gives each goroutine its own Walker over its own
// Tables() clone.
type Walker struct {
	m         *model.Model
	positions []Position
	working   map[int]*matrix.Dense

	k     int
	comb  []int // length k, ascending indices into positions
	valAt []int // length k, current index into positions[comb[i]].Allowed

	live bool // comb holds a valid combination (outer enumeration not exhausted)

	// allowNoOpEdits includes a position's original value in its own
	// Allowed set. Defaults to false (exclude); unexported because no
	// caller outside tests needs the alternative.
	allowNoOpEdits bool
}

// New builds a Walker over m's full position set (every cell of every
// inner attribute's table). Call Reduce before InitWalkers to restrict
// the search to positions actually exercised by a dataset.
func New(m *model.Model) *Walker {
	return &Walker{
		m:         m,
		positions: buildPositions(m, false),
		working:   m.Tables(),
	}
}

// Positions returns the current (possibly reduced) position set, read-only.
func (w *Walker) Positions() []Position { return w.positions }

// setAllowNoOpEdits rebuilds the position set with or without the
// original value excluded from each position's Allowed set. Unexported:
// this package defaults to exclusion, with the alternative reachable
// only from its own tests.
func (w *Walker) setAllowNoOpEdits(v bool) {
	w.allowNoOpEdits = v
	w.positions = buildPositions(w.m, v)
}

// Working returns the walker's mutable table copy, for Run to evaluate
// against.
func (w *Walker) Working() map[int]*matrix.Dense { return w.working }

// Reduce prunes the position set to those for which touched reports
// true: the driver computes, from an options dataset, which (attribute,
// row) cells any option actually exercises, and the walker narrows its
// search to just those. Must be called before InitWalkers.
func (w *Walker) Reduce(touched func(attrIdx, row int) bool) {
	out := w.positions[:0]
	for _, p := range w.positions {
		if touched(p.AttrIdx, p.Row) {
			out = append(out, p)
		}
	}
	w.positions = out
}

// InitWalkers starts (or restarts) the outer enumeration for edit-tuple
// size k: the first k-combination of positions, in ascending order.
func (w *Walker) InitWalkers(k int) error {
	if k <= 0 || k > len(w.positions) {
		return ErrBadK
	}
	w.k = k
	w.comb = make([]int, k)
	for i := range w.comb {
		w.comb[i] = i
	}
	w.valAt = make([]int, k)
	w.live = true

	return nil
}

// NextLine advances the outer enumeration to the next k-combination of
// positions, in lexicographic order (last index varies fastest). Returns
// false once every combination has been produced; InitWalkers must be
// called again before reuse.
func (w *Walker) NextLine() bool {
	if !w.live {
		return false
	}
	n := len(w.positions)
	k := w.k
	i := k - 1
	for i >= 0 && w.comb[i] == n-k+i {
		i--
	}
	if i < 0 {
		w.live = false

		return false
	}
	w.comb[i]++
	for j := i + 1; j < k; j++ {
		w.comb[j] = w.comb[j-1] + 1
	}
	for i := range w.valAt {
		w.valAt[i] = 0
	}

	return true
}

// InitNextValue resets the inner (value) enumeration to its first tuple
// for the current combination, without advancing NextLine.
func (w *Walker) InitNextValue() {
	for i := range w.valAt {
		w.valAt[i] = 0
	}
}

// NextValue advances the inner enumeration to the next replacement-value
// tuple for the current combination (odometer, last position fastest).
// Returns false once every tuple for this combination has been produced.
//
// Usage mirrors the original solver: the caller evaluates the tuple at
// valAt before calling NextValue, i.e. InitNextValue (or InitWalkers)
// followed by a do-while over NextValue.
func (w *Walker) NextValue() bool {
	for i := w.k - 1; i >= 0; i-- {
		pos := &w.positions[w.comb[i]]
		w.valAt[i]++
		if w.valAt[i] < len(pos.Allowed) {
			return true
		}
		w.valAt[i] = 0
	}

	return false
}

// Updaters reports the current edit tuple (current combination x current
// value indices) as concrete Edits, in position order.
func (w *Walker) Updaters() ([]Edit, error) {
	if !w.live {
		return nil, ErrNotInitialized
	}
	out := make([]Edit, w.k)
	for i := 0; i < w.k; i++ {
		pos := &w.positions[w.comb[i]]
		out[i] = Edit{AttrIdx: pos.AttrIdx, Row: pos.Row, Value: pos.Allowed[w.valAt[i]]}
	}

	return out, nil
}

// Apply writes the current edit tuple's replacement values into the
// working tables.
func (w *Walker) Apply() error {
	edits, err := w.Updaters()
	if err != nil {
		return err
	}
	for _, e := range edits {
		w.working[e.AttrIdx].MustSet(e.Row, 0, e.Value)
	}

	return nil
}

// Restore rewrites the current combination's cells back to their original
// values, undoing the most recent Apply.
func (w *Walker) Restore() error {
	if !w.live {
		return ErrNotInitialized
	}
	for i := 0; i < w.k; i++ {
		pos := &w.positions[w.comb[i]]
		w.working[pos.AttrIdx].MustSet(pos.Row, 0, pos.Orig)
	}

	return nil
}
