// Package matrix provides a small, dense, row-major int8 matrix used to
// store aggregation tables (one row per child-value tuple). Weighted
// kappa's confusion/expected matrices hold probabilities and are kept as
// plain []float64 inside package kappa, not as a Dense.
//
// What & Why:
//
//	The original solver relied on a templated linear-algebra library for its
//	dense matrices. Scale values never exceed 127 and aggregation tables are
//	flat lookup tables, not algebraic objects, so this package trades that
//	dependency for a tiny bounds-checked abstraction: row/column accessors,
//	Clone, and Resize with value preservation on shrinking.
//
// Complexity:
//
//	At/Set are O(1) with bounds checking. Clone is O(rows*cols).
package matrix
