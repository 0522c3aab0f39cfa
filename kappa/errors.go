// SPDX-License-Identifier: MIT
package kappa

import "errors"

var (
	// ErrEmpty indicates Linear/Squared was called with zero-length vectors.
	ErrEmpty = errors.New("kappa: N=0")

	// ErrLengthMismatch indicates obs and sim have different lengths.
	ErrLengthMismatch = errors.New("kappa: observed/simulated length mismatch")

	// ErrBadClassCount indicates NewCalculator was given classes <= 0.
	ErrBadClassCount = errors.New("kappa: class count must be > 0")
)
