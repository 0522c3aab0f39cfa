// Package gen builds random model.Model trees for property-based tests
// random models of depth <= 4, for invariant checks. It is
// test support, not part of the façade's public surface.
package gen
