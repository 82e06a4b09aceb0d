package mods

import (
	"time"
)

// withRetry runs fn up to attempts times, sleeping between failures with
// exponential backoff starting at initialDelay (100ms, 200ms, 400ms, ...).
// It returns nil on the first success, or the last error once the budget is
// spent.
func withRetry(attempts int, initialDelay time.Duration, fn func() error) error {
	var lastErr error
	delay := initialDelay
	for attempt := 0; attempt < attempts; attempt++ {
		if lastErr = fn(); lastErr == nil {
			return nil
		}
		if attempt < attempts-1 {
			time.Sleep(delay)
			delay *= 2
		}
	}
	return lastErr
}
