// Package status implements the error-kind taxonomy: a
// result-type error channel at the façade boundary. Internal packages
// (model, eval, kappa, walker, options) return plain sentinel errors;
// repository and cmd/efyj translate them into a status.Error tagged with
// a Kind, so callers can branch on the kind without type-switching on
// every sentinel the core ever introduces.
package status
