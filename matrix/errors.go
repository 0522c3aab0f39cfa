// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All methods MUST return these sentinels and tests MUST check them via
// errors.Is. No method panics on a user-triggered error condition.

package matrix

import "errors"

var (
	// ErrBadShape is returned when requested dimensions are invalid (rows<=0 or cols<=0).
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")
)
