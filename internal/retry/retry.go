package retry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrExhausted is wrapped into the error returned once all attempts fail.
var ErrExhausted = errors.New("retries exhausted")

const (
	// DefaultMaxAttempts is the number of tries per HTTP call.
	DefaultMaxAttempts = 3
	// DefaultBaseDelay is the wait after the first failed attempt.
	DefaultBaseDelay = time.Second
)

// Policy controls how Do retries an operation.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration

	// RetryableStatus reports whether an HTTP status is transient.
	RetryableStatus func(code int) bool
	// Sleep waits for d or until ctx is done. Defaults to a timer.
	Sleep func(ctx context.Context, d time.Duration) error
	// OnRetry, if set, is called before each wait.
	OnRetry func(attempt int, wait time.Duration, err error)
}

// Default returns the 3-attempt exponential policy.
func Default() Policy {
	return Policy{
		MaxAttempts:     DefaultMaxAttempts,
		BaseDelay:       DefaultBaseDelay,
		RetryableStatus: TransientStatus,
		Sleep:           SleepContext,
	}
}

// TransientStatus is true for 429, 500, 502, 503 and 504.
func TransientStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// Backoff returns BaseDelay * 2^(attempt-1) for attempt >= 1.
func (p Policy) Backoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	base := p.BaseDelay
	if base <= 0 {
		base = DefaultBaseDelay
	}
	return base << uint(attempt-1)
}

// IsRetryableStatus applies the policy's predicate, falling back to
// TransientStatus.
func (p Policy) IsRetryableStatus(code int) bool {
	if p.RetryableStatus != nil {
		return p.RetryableStatus(code)
	}
	return TransientStatus(code)
}

// SleepContext waits for d unless ctx ends first.
func SleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

type retryableError struct{ err error }

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

// Retryable marks err as transient so Do will try again.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &retryableError{err: err}
}

// IsRetryable reports whether err was marked with Retryable.
func IsRetryable(err error) bool {
	var re *retryableError
	return errors.As(err, &re)
}

// Do runs op until it succeeds, fails with a non-retryable error, or the
// attempt budget is spent. attempt starts at 1.
func Do[T any](ctx context.Context, p Policy, op func(ctx context.Context, attempt int) (T, error)) (T, error) {
	var zero T
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = SleepContext
	}

	var last error
	for attempt := 1; attempt <= attempts; attempt++ {
		v, err := op(ctx, attempt)
		if err == nil {
			return v, nil
		}
		if !IsRetryable(err) {
			return zero, err
		}
		last = err
		if attempt == attempts {
			break
		}
		wait := p.Backoff(attempt)
		if p.OnRetry != nil {
			p.OnRetry(attempt, wait, err)
		}
		if err := sleep(ctx, wait); err != nil {
			return zero, err
		}
	}
	return zero, fmt.Errorf("%w (%d attempts): %w", ErrExhausted, attempts, last)
}
