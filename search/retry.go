package search

import (
	"context"
	"time"
)

// RetryOptions bounds the retry loop around a single provider call.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	ShouldRetry  func(error) bool

	// sleep is swappable in tests to capture backoff delays.
	sleep func(ctx context.Context, d time.Duration) error
}

// DefaultRetryOptions returns the provider-call retry budget: three attempts
// with exponential backoff from one second, capped at ten.
func DefaultRetryOptions() RetryOptions {
	return RetryOptions{
		MaxAttempts:  3,
		InitialDelay: time.Second,
		MaxDelay:     10 * time.Second,
		ShouldRetry:  ShouldRetry,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RetryWithBackoff runs op under the given retry budget. Only errors the
// predicate accepts are retried; the delay doubles per attempt up to
// MaxDelay. Cancellation is checked before every attempt and during every
// backoff wait, and aborts immediately regardless of remaining budget.
func RetryWithBackoff[T any](ctx context.Context, opts RetryOptions, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	maxAttempts := opts.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	shouldRetry := opts.ShouldRetry
	if shouldRetry == nil {
		shouldRetry = ShouldRetry
	}
	sleep := opts.sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	delay := opts.InitialDelay
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt == maxAttempts || !shouldRetry(err) {
			break
		}

		if err := sleep(ctx, delay); err != nil {
			return zero, err
		}
		delay *= 2
		if opts.MaxDelay > 0 && delay > opts.MaxDelay {
			delay = opts.MaxDelay
		}
	}
	return zero, lastErr
}
