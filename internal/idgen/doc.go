// Package idgen generates session and job identifiers. Tests may replace
// NewFunc to get deterministic ids.
package idgen
