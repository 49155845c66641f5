package search

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"syscall"
)

// Kind classifies a search failure. The classification decides whether the
// failure is retried, surfaced, or silently discarded.
type Kind int

const (
	// KindUnknown is the defensive catch-all; treated as terminal.
	KindUnknown Kind = iota
	// KindCancelled covers deliberate cancellation. Never retried and
	// never surfaced as a user-visible error.
	KindCancelled
	// KindRetryableNetwork covers transient network trouble and provider
	// 5xx responses. Retried transparently up to the attempt budget.
	KindRetryableNetwork
	// KindTerminalProvider covers provider 4xx responses and validation
	// rejections. Surfaced immediately, never retried.
	KindTerminalProvider
	// KindTimeout is an externally imposed deadline. Terminal, with its
	// own user-facing message.
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindCancelled:
		return "cancelled"
	case KindRetryableNetwork:
		return "retryable_network"
	case KindTerminalProvider:
		return "terminal_provider"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Error is a classified search failure.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// ProviderStatusError reports a non-2xx provider response.
type ProviderStatusError struct {
	StatusCode int
	Status     string
}

func (e *ProviderStatusError) Error() string {
	return fmt.Sprintf("provider returned %s", e.Status)
}

// Classify places an arbitrary error in the failure taxonomy.
func Classify(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind
	}

	if errors.Is(err, context.Canceled) {
		return KindCancelled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}

	var statusErr *ProviderStatusError
	if errors.As(err, &statusErr) {
		if statusErr.StatusCode >= 500 {
			return KindRetryableNetwork
		}
		return KindTerminalProvider
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindRetryableNetwork
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return KindRetryableNetwork
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return KindRetryableNetwork
	}
	// retryablehttp flattens exhausted transports into plain strings.
	msg := err.Error()
	if strings.Contains(msg, "connection refused") || strings.Contains(msg, "connection reset") || strings.Contains(msg, "no such host") {
		return KindRetryableNetwork
	}

	return KindUnknown
}

// ShouldRetry is the retry predicate used for provider calls: transient
// network failures retry, deliberate cancellation never does.
func ShouldRetry(err error) bool {
	return Classify(err) == KindRetryableNetwork
}

// UserMessage renders the caller-facing message for a terminal failure.
// Cancellation has no message at all; callers discard instead of surfacing.
func UserMessage(err error) string {
	switch Classify(err) {
	case KindCancelled:
		return ""
	case KindTimeout:
		return "The flight search took too long. Please try again."
	case KindRetryableNetwork:
		return "We couldn't reach the flight search service. Check your connection and try again."
	case KindTerminalProvider:
		return "The flight search service rejected this request. Please adjust your search and try again."
	default:
		return "Something went wrong while searching for flights. Please try again."
	}
}
