package signeddata

import (
	"errors"
	"testing"
	"time"

	"github.com/opd-ai/signeddata/clock"
)

// stubClock is a deterministic clock source for freshness tests. Now fails
// failures times before succeeding; Resync counts its invocations and can
// be made to repair the source.
type stubClock struct {
	now          time.Time
	failures     int
	resyncs      int
	resyncRepair bool
}

func (s *stubClock) Now() (time.Time, error) {
	if s.failures > 0 {
		s.failures--
		return time.Time{}, clock.ErrUnavailable
	}
	return s.now, nil
}

func (s *stubClock) Resync(time.Duration) error {
	s.resyncs++
	if s.resyncRepair {
		s.failures = 0
	}
	return nil
}

func TestIsCurrentNilExpiration(t *testing.T) {
	// A message without an expiration never goes stale; the clock is not
	// even consulted.
	failing := &stubClock{failures: 10}
	current, err := IsCurrent(nil, failing)
	if err != nil {
		t.Fatalf("IsCurrent(nil) error: %v", err)
	}
	if !current {
		t.Error("IsCurrent(nil) = false, want true")
	}
	if failing.resyncs != 0 {
		t.Error("IsCurrent(nil) touched the clock")
	}
}

func TestIsCurrentStrictComparison(t *testing.T) {
	now := time.Unix(1000, 0)
	src := &stubClock{now: now}

	cases := []struct {
		name       string
		expiration float64
		want       bool
	}{
		{name: "Future", expiration: 1001, want: true},
		{name: "Exactly now", expiration: 1000, want: false},
		{name: "Past", expiration: 999, want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			current, err := IsCurrent(&tc.expiration, src)
			if err != nil {
				t.Fatalf("IsCurrent() error: %v", err)
			}
			if current != tc.want {
				t.Errorf("IsCurrent(%v) = %v, want %v", tc.expiration, current, tc.want)
			}
		})
	}
}

func TestIsCurrentResyncRecovers(t *testing.T) {
	src := &stubClock{now: time.Unix(1000, 0), failures: 1, resyncRepair: true}

	exp := float64(2000)
	current, err := IsCurrent(&exp, src)
	if err != nil {
		t.Fatalf("IsCurrent() after recoverable failure error: %v", err)
	}
	if !current {
		t.Error("IsCurrent() = false after recovery, want true")
	}
	if src.resyncs != 1 {
		t.Errorf("Resync called %d times, want exactly 1", src.resyncs)
	}
}

func TestIsCurrentClockUnavailable(t *testing.T) {
	src := &stubClock{failures: 2}

	exp := float64(2000)
	_, err := IsCurrent(&exp, src)
	if !errors.Is(err, clock.ErrUnavailable) {
		t.Errorf("IsCurrent() error = %v, want ErrUnavailable", err)
	}
	if src.resyncs != 1 {
		t.Errorf("Resync called %d times, want exactly 1", src.resyncs)
	}
}
