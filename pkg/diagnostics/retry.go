package diagnostics

import (
	"context"
	"time"

	"github.com/pagesmedic/pagesmedic/pkg/logger"
)

// Retrier re-runs an operation a fixed number of times with a delay between
// attempts. It is the retry capability for testing-oriented components that
// probe external endpoints; the core execution wrapper itself never retries.
type Retrier struct {
	// Attempts is the total number of tries, including the first. Values
	// below one are treated as one.
	Attempts int

	// Delay is the pause between consecutive attempts.
	Delay time.Duration

	log *logger.Logger
}

// NewRetrier creates a Retrier with the given attempt count and delay.
func NewRetrier(attempts int, delay time.Duration) *Retrier {
	return &Retrier{Attempts: attempts, Delay: delay, log: logger.New("diagnostics:retry")}
}

// Do runs the operation until it succeeds, attempts are exhausted, or the
// context is cancelled. It returns the last error observed.
func (r *Retrier) Do(ctx context.Context, operation string, fn func(context.Context) error) error {
	attempts := r.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}

		if attempt < attempts {
			r.log.Printf("%s attempt %d/%d failed: %v, retrying in %s", operation, attempt, attempts, lastErr, r.Delay)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(r.Delay):
			}
		}
	}

	r.log.Printf("%s failed after %d attempts: %v", operation, attempts, lastErr)
	return lastErr
}
