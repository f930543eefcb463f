package persistence

import (
	"context"
	"time"
)

// RetryPolicy bounds the transient-error retry loop.
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
}

// DefaultRetryPolicy is used for reads: three tries, 200ms linear backoff.
var DefaultRetryPolicy = RetryPolicy{Attempts: 3, Delay: 200 * time.Millisecond}

func (p RetryPolicy) normalized() RetryPolicy {
	if p.Attempts < 1 {
		p.Attempts = 1
	}
	if p.Delay < 0 {
		p.Delay = 0
	}
	return p
}

// WithRetry runs fn until it succeeds, fails with a non-transient error, or
// the attempts run out. The n-th wait is n*Delay. The error it gives up with
// is translated to a domain error.
func WithRetry[T any](ctx context.Context, policy RetryPolicy, fn func(ctx context.Context) (T, error)) (T, error) {
	policy = policy.normalized()

	var (
		result T
		err    error
	)
	for attempt := 1; attempt <= policy.Attempts; attempt++ {
		result, err = fn(ctx)
		if err == nil || !IsTransient(err) || attempt == policy.Attempts {
			return result, translate(err)
		}

		timer := time.NewTimer(time.Duration(attempt) * policy.Delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return result, translate(err)
		case <-timer.C:
		}
	}
	return result, translate(err)
}

// Retry is WithRetry for operations without a result.
func Retry(ctx context.Context, policy RetryPolicy, fn func(ctx context.Context) error) error {
	_, err := WithRetry(ctx, policy, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}
