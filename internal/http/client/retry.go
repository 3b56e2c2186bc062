package client

import (
	"context"
	"time"
)

// Retry re-attempts fn up to maxAttempts times with linearly increasing delay
// between attempts (delay, 2*delay, ...). It is opt-in helper behavior for
// idempotent reads; authentication and mutation calls must never be wrapped.
func Retry(ctx context.Context, maxAttempts int, delay time.Duration, fn func() error) error {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt == maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay * time.Duration(attempt+1)):
		}
	}
	return err
}
