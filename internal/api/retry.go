package api

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// Default retry parameters.
const (
	DefaultMaxRetries = 3
	DefaultBaseDelay  = 500 * time.Millisecond
	DefaultMaxDelay   = 30 * time.Second
)

// Outcome describes the result of one HTTP attempt for retry purposes.
// Exactly one of NetworkFailure or StatusCode is meaningful: a network
// failure means no response was received.
type Outcome struct {
	// StatusCode is the HTTP status of the response, 0 on network failure.
	StatusCode int
	// NetworkFailure is true when no response was received.
	NetworkFailure bool
	// RetryAfter is the server-provided delay hint (Retry-After header or
	// error body), zero if absent.
	RetryAfter time.Duration
}

// RetryConfig configures retry behavior for failed HTTP requests.
type RetryConfig struct {
	// MaxRetries is the maximum number of retries after the initial
	// attempt, so at most MaxRetries+1 attempts are made in total.
	MaxRetries int
	// BaseDelay is the delay before the first retry.
	BaseDelay time.Duration
	// MaxDelay caps the exponential growth of the delay.
	MaxDelay time.Duration
	// Multiplier is the factor by which the delay grows per attempt.
	Multiplier float64
}

// DefaultRetryConfig returns the default retry configuration.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries: DefaultMaxRetries,
		BaseDelay:  DefaultBaseDelay,
		MaxDelay:   DefaultMaxDelay,
		Multiplier: 2.0,
	}
}

// Retryable reports whether an attempt outcome may be retried at all.
// Network failures, 429 and the transient 5xx subset qualify; everything
// else is terminal regardless of attempts remaining.
func (r *RetryConfig) Retryable(o Outcome) bool {
	if o.NetworkFailure {
		return true
	}
	switch o.StatusCode {
	case 429, 500, 502, 503, 504:
		return true
	}
	return false
}

// Delay calculates the backoff delay for the given 0-indexed attempt:
// min(BaseDelay * Multiplier^attempt, MaxDelay) plus uniform jitter in
// [0, nominal/2), so every value lies in [nominal, 1.5*nominal).
func (r *RetryConfig) Delay(attempt int) time.Duration {
	nominal := float64(r.BaseDelay) * math.Pow(r.Multiplier, float64(attempt))
	if nominal > float64(r.MaxDelay) {
		nominal = float64(r.MaxDelay)
	}
	jitter := rand.Float64() * nominal / 2
	return time.Duration(nominal + jitter)
}

// Decide returns whether the call should be retried after the given
// attempt, and if so how long to wait first. A server-provided
// Retry-After never shortens the wait: the larger of the computed delay
// and the hint wins.
func (r *RetryConfig) Decide(attempt int, o Outcome) (time.Duration, bool) {
	if attempt >= r.MaxRetries || !r.Retryable(o) {
		return 0, false
	}
	delay := r.Delay(attempt)
	if o.RetryAfter > delay {
		delay = o.RetryAfter
	}
	return delay, true
}

// Wait blocks for the given delay or until the context is done,
// returning ctx.Err() in the latter case.
func (r *RetryConfig) Wait(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
