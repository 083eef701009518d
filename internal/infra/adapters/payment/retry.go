// File: internal/infra/adapters/payment/retry.go
package payment

import (
	"context"
	"time"
)

// RetryPolicy bounds retries against the processor. Only transient failure
// classes are retried: connection errors and 429/500/502/503/504. A business
// rejection arriving as JSON over HTTP 200 is never retried.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	statuses    map[int]struct{}
}

// NewRetryPolicy builds a policy with the default transient status set.
func NewRetryPolicy(maxAttempts int, baseDelay time.Duration) RetryPolicy {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if baseDelay <= 0 {
		baseDelay = 800 * time.Millisecond
	}
	return RetryPolicy{
		MaxAttempts: maxAttempts,
		BaseDelay:   baseDelay,
		statuses: map[int]struct{}{
			429: {}, 500: {}, 502: {}, 503: {}, 504: {},
		},
	}
}

// RetryableStatus reports whether an HTTP status is worth another attempt.
func (p RetryPolicy) RetryableStatus(code int) bool {
	_, ok := p.statuses[code]
	return ok
}

// Delay returns the backoff before attempt n (0-based next attempt):
// base, 2*base, 4*base, ...
func (p RetryPolicy) Delay(attempt int) time.Duration {
	return p.BaseDelay << uint(attempt)
}

// Wait sleeps the backoff for attempt, aborting early on ctx cancellation.
func (p RetryPolicy) Wait(ctx context.Context, attempt int) error {
	t := time.NewTimer(p.Delay(attempt))
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
