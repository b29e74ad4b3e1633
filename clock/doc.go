// Package clock provides the time source consumed by the signeddata
// freshness check.
//
// A [Source] returns the current time and may be temporarily unavailable;
// [Source.Resync] makes one bounded best-effort attempt to restore it.
// [System] reads the local system clock and is always available. [SNTP]
// learns time from an NTP server over UDP and caches the measured offset,
// for nodes whose local clock is not trusted.
//
// # Deterministic Testing
//
// Tests inject their own Source implementation, so freshness decisions are
// reproducible without touching the real clock:
//
//	type fixed struct{ t time.Time }
//	func (f fixed) Now() (time.Time, error)        { return f.t, nil }
//	func (f fixed) Resync(time.Duration) error     { return nil }
package clock
