// Package clock provides an overridable time source for session and job timestamps.
package clock

import "time"

// NowFunc returns current time. Override in tests for determinism.
var NowFunc = time.Now

// Now returns current time
func Now() time.Time { return NowFunc() }

// Since returns time elapsed since t
func Since(t time.Time) time.Duration { return Now().Sub(t) }
