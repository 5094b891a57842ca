// Package progress aggregates job counters (submitted, running, done, failed,
// canceled) from job state changes, overall and per infrastructure.
package progress
