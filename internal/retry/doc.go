// Package retry provides a small bounded-retry combinator.
//
// A Policy holds the attempt budget, the backoff schedule, the
// retryable-status predicate and the sleep function. Do runs an operation
// under a policy. Only errors marked with Retryable are retried; anything
// else is returned at once. When the budget runs out Do returns an error
// wrapping ErrExhausted and the last failure.
//
// Injecting Sleep lets tests drive the policy without real waits.
package retry
