// SPDX-License-Identifier: MIT
package gen

import "errors"

var (
	// ErrNeedRandSource indicates RandomModel was called with a nil *rand.Rand.
	ErrNeedRandSource = errors.New("gen: a random source is required")

	// ErrBadDepth indicates RandomModel was asked for depth <= 0.
	ErrBadDepth = errors.New("gen: depth must be > 0")
)
