package resilience

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Retry calls fn until it succeeds, returns an error retryable rejects, or
// attempts run out.
func Retry(ctx context.Context, attempts int, delay time.Duration, retryable func(error) bool, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			log.Printf("Retrying operation, attempt %d", i+1)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		err = fn()
		if err == nil || !retryable(err) {
			return err
		}
	}
	return fmt.Errorf("after %d attempts, last error: %w", attempts, err)
}
