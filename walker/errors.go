// SPDX-License-Identifier: MIT
package walker

import "errors"

var (
	// ErrBadK indicates InitWalkers was asked for an edit-tuple
	// size outside [1, len(positions)].
	ErrBadK = errors.New("walker: k out of range")

	// ErrNotInitialized indicates Apply/Restore/Updaters was called before
	// InitWalkers, or after the outer enumeration was exhausted.
	ErrNotInitialized = errors.New("walker: no current combination")
)
