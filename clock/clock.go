package clock

import (
	"errors"
	"time"
)

// ErrUnavailable indicates the source cannot currently report the time.
var ErrUnavailable = errors.New("clock unavailable")

// Source abstracts the clock consumed by freshness checks.
// Implementations must be safe for concurrent use.
type Source interface {
	// Now returns the current time, or ErrUnavailable (possibly wrapped)
	// when the source has no usable time.
	Now() (time.Time, error)
	// Resync makes one best-effort attempt to restore the source,
	// bounded by the given timeout. It blocks for at most that long.
	Resync(timeout time.Duration) error
}

// System reads the local system clock. It is always available and Resync
// is a no-op.
type System struct{}

// Now returns the current local time.
func (System) Now() (time.Time, error) { return time.Now(), nil }

// Resync does nothing: the system clock needs no synchronization.
func (System) Resync(time.Duration) error { return nil }
