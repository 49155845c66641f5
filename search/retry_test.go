package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// testRetryOptions returns the default budget with backoff waits captured
// instead of slept.
func testRetryOptions(delays *[]time.Duration) RetryOptions {
	opts := DefaultRetryOptions()
	opts.sleep = func(_ context.Context, d time.Duration) error {
		*delays = append(*delays, d)
		return nil
	}
	return opts
}

func retryable() error {
	return &ProviderStatusError{StatusCode: 503, Status: "503 Service Unavailable"}
}

func TestRetry_FirstAttemptSucceeds(t *testing.T) {
	var delays []time.Duration
	attempts := 0

	got, err := RetryWithBackoff(context.Background(), testRetryOptions(&delays), func(context.Context) (int, error) {
		attempts++
		return 42, nil
	})

	require.NoError(t, err)
	require.Equal(t, 42, got)
	require.Equal(t, 1, attempts)
	require.Empty(t, delays)
}

func TestRetry_RecoversWithinBudget(t *testing.T) {
	var delays []time.Duration
	attempts := 0

	got, err := RetryWithBackoff(context.Background(), testRetryOptions(&delays), func(context.Context) (string, error) {
		attempts++
		if attempts < 3 {
			return "", retryable()
		}
		return "ok", nil
	})

	require.NoError(t, err)
	require.Equal(t, "ok", got)
	require.Equal(t, 3, attempts)
	require.Equal(t, []time.Duration{time.Second, 2 * time.Second}, delays)
}

func TestRetry_AttemptBound(t *testing.T) {
	var delays []time.Duration
	attempts := 0

	_, err := RetryWithBackoff(context.Background(), testRetryOptions(&delays), func(context.Context) (int, error) {
		attempts++
		return 0, retryable()
	})

	require.Error(t, err)
	require.Equal(t, KindRetryableNetwork, Classify(err))
	require.Equal(t, 3, attempts, "attempt count is capped at MaxAttempts")
	require.Len(t, delays, 2)
}

func TestRetry_BackoffNonDecreasingAndCapped(t *testing.T) {
	var delays []time.Duration
	opts := testRetryOptions(&delays)
	opts.MaxAttempts = 6
	opts.InitialDelay = 3 * time.Second

	_, _ = RetryWithBackoff(context.Background(), opts, func(context.Context) (int, error) {
		return 0, retryable()
	})

	require.Len(t, delays, 5)
	for i := 1; i < len(delays); i++ {
		require.GreaterOrEqual(t, delays[i], delays[i-1], "backoff must never shrink")
	}
	for _, d := range delays {
		require.LessOrEqual(t, d, opts.MaxDelay)
	}
	require.Equal(t, opts.MaxDelay, delays[len(delays)-1])
}

func TestRetry_TerminalErrorNotRetried(t *testing.T) {
	var delays []time.Duration
	attempts := 0
	terminal := &ProviderStatusError{StatusCode: 400, Status: "400 Bad Request"}

	_, err := RetryWithBackoff(context.Background(), testRetryOptions(&delays), func(context.Context) (int, error) {
		attempts++
		return 0, terminal
	})

	require.ErrorIs(t, err, terminal)
	require.Equal(t, 1, attempts)
	require.Empty(t, delays)
}

func TestRetry_CancellationNotRetried(t *testing.T) {
	var delays []time.Duration
	attempts := 0

	_, err := RetryWithBackoff(context.Background(), testRetryOptions(&delays), func(context.Context) (int, error) {
		attempts++
		return 0, context.Canceled
	})

	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, attempts, "a deliberate cancellation must abort the loop")
}

func TestRetry_CancelledBeforeFirstAttempt(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := 0
	var delays []time.Duration
	_, err := RetryWithBackoff(ctx, testRetryOptions(&delays), func(context.Context) (int, error) {
		attempts++
		return 0, nil
	})

	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, attempts)
}

func TestRetry_CancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	opts := DefaultRetryOptions()
	opts.sleep = func(ctx context.Context, _ time.Duration) error {
		cancel()
		return ctx.Err()
	}

	attempts := 0
	_, err := RetryWithBackoff(ctx, opts, func(context.Context) (int, error) {
		attempts++
		return 0, retryable()
	})

	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, attempts)
}

func TestRetry_CustomPredicate(t *testing.T) {
	special := errors.New("flaky but worth retrying")
	var delays []time.Duration
	opts := testRetryOptions(&delays)
	opts.ShouldRetry = func(err error) bool { return errors.Is(err, special) }

	attempts := 0
	_, err := RetryWithBackoff(context.Background(), opts, func(context.Context) (int, error) {
		attempts++
		return 0, special
	})

	require.ErrorIs(t, err, special)
	require.Equal(t, 3, attempts)
}
