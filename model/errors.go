// SPDX-License-Identifier: MIT
// Package model: sentinel error set for tree construction and validation.

package model

import "errors"

var (
	// ErrEmptyModel indicates a model with zero attributes.
	ErrEmptyModel = errors.New("model: no attributes")

	// ErrScaleTooLarge indicates a scale with more than 127 values.
	ErrScaleTooLarge = errors.New("model: scale cardinality exceeds 127")

	// ErrScaleEmpty indicates a scale with zero values.
	ErrScaleEmpty = errors.New("model: scale has no values")

	// ErrUnknownChild indicates an attribute references a child index that
	// does not exist in the tree.
	ErrUnknownChild = errors.New("model: child attribute index out of range")

	// ErrCycle indicates the child relation is not a tree (a cycle was found,
	// or more than one attribute has no parent).
	ErrCycle = errors.New("model: attribute graph is not a tree")

	// ErrTableRowCount indicates an inner attribute's table does not have
	// exactly ∏|S_child| rows.
	ErrTableRowCount = errors.New("model: aggregation table has wrong row count")

	// ErrTableCellRange indicates a table cell's value does not lie in
	// [0, |S_self|).
	ErrTableCellRange = errors.New("model: aggregation table cell out of scale range")

	// ErrLeafHasTable indicates a leaf (no children) was given an aggregation table.
	ErrLeafHasTable = errors.New("model: leaf attribute must not have a table")

	// ErrInnerMissingTable indicates an inner attribute (has children) has no table.
	ErrInnerMissingTable = errors.New("model: inner attribute is missing its table")

	// ErrBasicValueRange indicates a basic-value row entry does not lie in
	// the corresponding leaf's scale range.
	ErrBasicValueRange = errors.New("model: basic value out of scale range")
)
