// Package repository is the thin, deterministic public facade over
// model, options, and search: it owns I/O-adjacent
// validation, translates internal errors into status.Error at the
// boundary, and otherwise does no computation of its own.
package repository
