// SPDX-License-Identifier: MIT
package dexireader

import "errors"

var (
	// ErrNoRoot indicates the document has no top-level ATTRIBUTE element.
	ErrNoRoot = errors.New("dexireader: document has no root attribute")

	// ErrEmptyScale indicates an attribute's SCALE has no SCALEVALUE entries.
	ErrEmptyScale = errors.New("dexireader: scale has no values")

	// ErrBadFunctionLength indicates a FUNCTION's entry count doesn't match
	// the product of its children's scale sizes.
	ErrBadFunctionLength = errors.New("dexireader: function entry count mismatch")

	// ErrUnknownFunctionValue indicates a FUNCTION entry names a value not
	// present in the attribute's own scale.
	ErrUnknownFunctionValue = errors.New("dexireader: function entry not in scale")
)
