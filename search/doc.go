// Package search implements the two search drivers
// (adjustment and prediction) and their parallel coordinator: for
// each edit-tuple size k, a walker.Walker enumerates candidate table
// edits and the driver keeps the one maximizing weighted kappa on the
// options dataset.
package search
