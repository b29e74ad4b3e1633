package signeddata

import (
	"fmt"
	"time"

	"github.com/opd-ai/signeddata/clock"
)

// resyncBudget bounds the single clock resynchronization attempt made
// when a freshness check finds the clock unavailable.
const resyncBudget = 5 * time.Second

// IsCurrent reports whether a message with the given expiration bound is
// still fresh. A nil expiration never expires. Freshness is strict:
// expiration equal to the current time counts as already expired.
//
// If the clock is unavailable, IsCurrent resyncs it once and retries the
// read once; a second failure returns an error wrapping
// clock.ErrUnavailable. It never retries beyond that.
func IsCurrent(expiration *float64, src clock.Source) (bool, error) {
	if expiration == nil {
		return true, nil
	}

	now, err := src.Now()
	if err != nil {
		if rerr := src.Resync(resyncBudget); rerr != nil {
			return false, fmt.Errorf("%w: resync failed: %v", clock.ErrUnavailable, rerr)
		}
		now, err = src.Now()
		if err != nil {
			return false, fmt.Errorf("%w: still failing after resync: %v", clock.ErrUnavailable, err)
		}
	}

	nowSeconds := float64(now.UnixNano()) / float64(time.Second)
	return *expiration > nowSeconds, nil
}
