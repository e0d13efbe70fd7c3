package sendly

import (
	"errors"
	"fmt"
	"time"

	"github.com/sendly/sendly-go/internal/api"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingAPIKey is returned when no API key is provided and
	// SENDLY_API_KEY is unset.
	ErrMissingAPIKey = errors.New("API key is required")

	// ErrInvalidAPIKey is returned when the API key does not match the
	// sl_test_* / sl_live_* format.
	ErrInvalidAPIKey = errors.New("invalid API key format")

	// ErrClientClosed is returned when operations are attempted on a closed client.
	ErrClientClosed = errors.New("client has been closed")

	// ErrUnauthorized is returned when the API rejects the key.
	ErrUnauthorized = errors.New("invalid or expired API key")

	// ErrRateLimited is returned when the API rate limit is exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")
)

// SendlyError is implemented by all SDK errors.
type SendlyError interface {
	error
	SendlyError() // marker method
}

// ValidationError indicates a request parameter violated a client-side
// constraint. It is raised before any network attempt is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// SendlyError implements the SendlyError interface.
func (e *ValidationError) SendlyError() {}

// AuthenticationError indicates the API rejected the credentials
// (HTTP 401 or 403). It is never retried.
type AuthenticationError struct {
	StatusCode int
	Message    string
}

func (e *AuthenticationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("authentication failed: %s", e.Message)
	}
	return fmt.Sprintf("authentication failed (status %d)", e.StatusCode)
}

// SendlyError implements the SendlyError interface.
func (e *AuthenticationError) SendlyError() {}

// Is implements errors.Is for sentinel error matching.
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrUnauthorized
}

// RateLimitError indicates the rate limit was still exceeded after the
// configured retries. RetryAfter carries the server hint, if any.
type RateLimitError struct {
	Message    string
	RetryAfter time.Duration
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

// SendlyError implements the SendlyError interface.
func (e *RateLimitError) SendlyError() {}

// Is implements errors.Is for sentinel error matching.
func (e *RateLimitError) Is(target error) bool {
	return target == ErrRateLimited
}

// APIError represents any other HTTP error from the Sendly API.
// Attempts is the number of round trips made before giving up; it is
// greater than one only for the retryable 5xx subset.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Attempts   int
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

// SendlyError implements the SendlyError interface.
func (e *APIError) SendlyError() {}

// NetworkError indicates no HTTP response was received: connection
// failure, DNS failure, TLS failure, timeout, or cancellation. Unwrap
// exposes the cause, so errors.Is(err, context.Canceled) still works.
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

// SendlyError implements the SendlyError interface.
func (e *NetworkError) SendlyError() {}

// wrapError converts internal API errors to public errors so that
// errors.Is/As checks work against the public taxonomy. Exactly one
// public kind applies to any failure.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == 401 || apiErr.StatusCode == 403 {
			return &AuthenticationError{
				StatusCode: apiErr.StatusCode,
				Message:    apiErr.Message,
			}
		}
		return &APIError{
			StatusCode: apiErr.StatusCode,
			Code:       apiErr.Code,
			Message:    apiErr.Message,
			Attempts:   apiErr.Attempts,
		}
	}

	var rlErr *api.RateLimitError
	if errors.As(err, &rlErr) {
		return &RateLimitError{
			Message:    rlErr.Message,
			RetryAfter: rlErr.RetryAfter,
			Attempts:   rlErr.Attempts,
		}
	}

	var netErr *api.NetworkError
	if errors.As(err, &netErr) {
		return &NetworkError{
			Err:      netErr.Err,
			URL:      netErr.URL,
			Attempts: netErr.Attempts,
		}
	}

	return err
}
