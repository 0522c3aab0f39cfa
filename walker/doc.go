// Package walker implements the combinatorial enumerator: for
// a fixed edit-tuple size k, it enumerates every k-combination of
// (attribute, table-row) positions ("lines") and, within each, the
// cartesian product of replacement values at those positions ("values"),
// excluding the table's original value at each position (edits must
// change something).
//
// The walker is a single-threaded, suspend-free state machine — NextLine
// and NextValue each advance one step and report whether the enumeration
// is exhausted — with no coroutines or iterator fusion, matching the
// original solver's own next()/init_walkers() shape. Apply/Restore
// materialize and revert the current edit tuple against a working copy
// of the model's aggregation tables that the walker owns exclusively
// (one walker per goroutine in the parallel coordinator).
package walker
