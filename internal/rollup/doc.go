// Package rollup filters purchase records and aggregates them into rankings and trees.
//
// Every function in this package is a pure transformation over an already materialized
// slice of records. Inputs are never mutated, so callers may run several filters or
// rollups over the same slice concurrently without copying it. Results are rebuilt from
// scratch on every call; nothing is cached between calls.
package rollup
