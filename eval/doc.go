// Package eval implements the stack-based model evaluator.
//
// Compile turns a *model.Model into a Program: a postorder linearization
// of the attribute tree as a sequence of opcodes (PushLeaf / Reduce).
// Program.Run executes that sequence against a row of basic-attribute
// values and a (possibly edited) set of aggregation tables, producing the
// root scale value.
//
// Run is a pure function of (tables, row): deterministic, safe to call
// concurrently from many goroutines against read-only tables, and
// allocation-free after warm-up — the evaluation stack is drawn from the
// Program's own sync.Pool of stacks sized to its maximum depth, keeping
// to "no dynamic allocation inside the hot loop".
package eval
