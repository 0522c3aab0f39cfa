// Package kappa computes weighted Cohen's kappa between two equal-length
// ordinal class vectors.
//
// Calculator reuses its confusion/expected matrices and marginals across
// calls — sized once for a fixed class count — mirroring the original
// solver's weighted_kappa_calculator, which exists precisely to avoid
// reallocating those matrices on every candidate evaluated during search.
package kappa
