// SPDX-License-Identifier: MIT
package options

import "errors"

var (
	// ErrEmptyDataset indicates a CSV with a header but no data rows.
	ErrEmptyDataset = errors.New("options: dataset has zero rows")

	// ErrColumnCount indicates the header has neither leaves+4 nor leaves+5 columns.
	ErrColumnCount = errors.New("options: unexpected column count")

	// ErrMissingLeafColumn indicates a model leaf has no matching CSV header.
	ErrMissingLeafColumn = errors.New("options: missing column for a model attribute")

	// ErrUnknownColumn indicates a CSV header names no model leaf and isn't a known fixed column.
	ErrUnknownColumn = errors.New("options: unknown column")

	// ErrBadObserved indicates the observed column's value isn't a root scale-value name.
	ErrBadObserved = errors.New("options: observed value not in root scale")

	// ErrLengthMismatch indicates a post-load consistency check found mismatched slice lengths.
	ErrLengthMismatch = errors.New("options: inconsistent dataset dimensions")

	// ErrValueOutOfRange indicates a basic-attribute or observed value outside its scale.
	ErrValueOutOfRange = errors.New("options: value out of scale range")
)
