// Package dexireader reads and writes the DEXi-like XML model format
// consumed by the façade. It is a thin adapter around
// encoding/xml, not a general-purpose DEXi editor: it accepts and emits
// exactly the subset of the format needed to reconstruct scales,
// attribute nesting, and aggregation tables.
package dexireader
