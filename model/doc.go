// Package model defines the attribute tree at the heart of a DEXi-family
// qualitative multi-criteria decision model: Scale, Attribute, and Model.
//
// A Model is an immutable, indexed tree of Attributes. Attribute 0 is the
// root; every other attribute is reached from it by following Children
// indices. Inner attributes carry an aggregation Table: a dense, row-major
// lookup keyed by the mixed-radix encoding of their children's scale
// values. The tree is built once by NewModel, which validates shape
// (no cycles, every child index resolves, every table has the row count
// its children dictate) and is read-only afterward — concurrent readers
// need no locking, and Tables gives a worker its own mutable copy of the
// aggregation tables for search.
//
// Complexity: NewModel validation is O(number of attributes + table
// cells). Tables is O(total table cells).
package model
