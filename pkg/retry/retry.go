package retry

import (
	"context"
	"fmt"
	"time"
)

// WithBackoff retries fn up to maxAttempts times with quadratic backoff
// (0s, 1s, 4s, ...). Used to ride out transient permission-propagation
// delay in the store; not a general-purpose retry policy.
func WithBackoff(ctx context.Context, maxAttempts int, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt*attempt) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if err := fn(); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return fmt.Errorf("all %d attempts failed, last error: %w", maxAttempts, lastErr)
}
