// Package options holds the options dataset: a dense matrix of
// basic-attribute scale values with per-row observed outcome and
// provenance, plus the derived learning-subset index used by prediction
// mode. ReadCSV/WriteCSV implement the semicolon-
// delimited CSV schema, with runtime detection of the
// optional `place` column.
package options
