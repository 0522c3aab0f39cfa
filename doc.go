// Package efyj evaluates, searches, and repairs hierarchical
// qualitative multi-criteria decision models (the DEXi family):
// attribute trees with ordinal scales, aggregation lookup tables, and
// an evaluator that folds a leaf-value vector up to a root class.
//
// The packages:
//
//	model/       — attribute tree, scales, aggregation tables
//	matrix/      — dense int8 table storage
//	eval/        — stack-based postorder evaluator
//	kappa/       — weighted Cohen's kappa scoring
//	walker/      — combinatorial enumerator over candidate table edits
//	options/     — options dataset, CSV I/O, learning subsets
//	search/      — adjustment and prediction search, parallel coordinator
//	status/      — typed error taxonomy
//	efyjlog/     — structured logging
//	dexireader/  — DEXi-like XML model I/O
//	repository/  — public façade (Information, Evaluate, Adjustment,
//	               Prediction, ExtractOptions, MergeOptions)
//	gen/         — random model generator for property tests
//	cmd/efyj/    — command-line entry point
package efyj
