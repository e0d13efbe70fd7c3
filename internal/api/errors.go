package api

import (
	"errors"
	"fmt"
	"time"
)

// Common API errors that can be checked with errors.Is.
var (
	// ErrUnauthorized indicates the API key is invalid or expired.
	ErrUnauthorized = errors.New("invalid or expired API key")
	// ErrRateLimited indicates the rate limit has been exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")
)

// APIError represents an HTTP error response from the Sendly API.
type APIError struct {
	StatusCode int
	Code       string // machine-readable error code from the error body
	Message    string
	Attempts   int // total attempts made before the error became terminal
}

func (e *APIError) Error() string {
	if e.Code != "" {
		if e.Message != "" {
			return fmt.Sprintf("API error %d (%s): %s", e.StatusCode, e.Code, e.Message)
		}
		return fmt.Sprintf("API error %d (%s)", e.StatusCode, e.Code)
	}
	if e.Message != "" {
		return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error %d", e.StatusCode)
}

// Is implements errors.Is for sentinel error matching.
func (e *APIError) Is(target error) bool {
	switch e.StatusCode {
	case 401, 403:
		return target == ErrUnauthorized
	case 429:
		return target == ErrRateLimited
	}
	return false
}

// RateLimitError represents a 429 response that was still failing after
// the configured retries were exhausted.
type RateLimitError struct {
	Message    string
	RetryAfter time.Duration // server-provided hint, zero if absent
	Attempts   int
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "rate limit exceeded"
	}
	if e.RetryAfter > 0 {
		return fmt.Sprintf("%s (retry after %v)", msg, e.RetryAfter)
	}
	return msg
}

// Is implements errors.Is for sentinel error matching.
func (e *RateLimitError) Is(target error) bool {
	return target == ErrRateLimited
}

// NetworkError represents a network-level failure: no HTTP response was
// received at all (dial, DNS, TLS, timeout, or context cancellation).
type NetworkError struct {
	Err      error
	URL      string
	Attempts int
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}
