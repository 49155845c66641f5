package search

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeNetError struct{ timeout bool }

func (e *fakeNetError) Error() string   { return "dial tcp: i/o timeout" }
func (e *fakeNetError) Timeout() bool   { return e.timeout }
func (e *fakeNetError) Temporary() bool { return true }

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Kind
	}{
		{"canceled", context.Canceled, KindCancelled},
		{"wrapped canceled", fmt.Errorf("search: %w", context.Canceled), KindCancelled},
		{"deadline", context.DeadlineExceeded, KindTimeout},
		{"http 500", &ProviderStatusError{StatusCode: 500, Status: "500 Internal Server Error"}, KindRetryableNetwork},
		{"http 503", &ProviderStatusError{StatusCode: 503, Status: "503 Service Unavailable"}, KindRetryableNetwork},
		{"http 400", &ProviderStatusError{StatusCode: 400, Status: "400 Bad Request"}, KindTerminalProvider},
		{"http 404", &ProviderStatusError{StatusCode: 404, Status: "404 Not Found"}, KindTerminalProvider},
		{"net timeout", &fakeNetError{timeout: true}, KindRetryableNetwork},
		{"conn refused text", errors.New("dial tcp 10.0.0.1:443: connect: connection refused"), KindRetryableNetwork},
		{"pre-classified", &Error{Kind: KindTerminalProvider, Err: errors.New("nope")}, KindTerminalProvider},
		{"unknown", errors.New("surprise"), KindUnknown},
		{"nil", nil, KindUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Classify(tc.err))
		})
	}
}

func TestShouldRetry(t *testing.T) {
	require.True(t, ShouldRetry(&ProviderStatusError{StatusCode: 502, Status: "502 Bad Gateway"}))
	require.True(t, ShouldRetry(&fakeNetError{timeout: true}))

	require.False(t, ShouldRetry(context.Canceled), "deliberate cancellation must never retry")
	require.False(t, ShouldRetry(context.DeadlineExceeded))
	require.False(t, ShouldRetry(&ProviderStatusError{StatusCode: 422, Status: "422 Unprocessable Entity"}))
	require.False(t, ShouldRetry(errors.New("surprise")))
}

func TestUserMessage(t *testing.T) {
	require.Empty(t, UserMessage(context.Canceled), "cancellation is silent")
	require.Contains(t, UserMessage(context.DeadlineExceeded), "too long")
	require.Contains(t, UserMessage(&fakeNetError{timeout: true}), "reach")
	require.Contains(t, UserMessage(&ProviderStatusError{StatusCode: 400, Status: "400 Bad Request"}), "adjust")
	require.NotEmpty(t, UserMessage(errors.New("surprise")))
}

func TestErrorWrapping(t *testing.T) {
	inner := &ProviderStatusError{StatusCode: 500, Status: "500 Internal Server Error"}
	err := &Error{Kind: KindRetryableNetwork, Err: inner}

	var unwrapped *ProviderStatusError
	require.ErrorAs(t, err, &unwrapped)
	require.Equal(t, 500, unwrapped.StatusCode)
	require.Contains(t, err.Error(), "retryable_network")
}
