package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout is the per-attempt request timeout.
const DefaultTimeout = 30 * time.Second

// maxBodySize bounds how much of a response body is read.
const maxBodySize = 64 * 1024

// Attempt records one HTTP round trip within a single logical call.
type Attempt struct {
	Start      time.Time
	Elapsed    time.Duration
	StatusCode int   // 0 if no response was received
	Err        error // network failure, nil if a response was received
}

// Client is the HTTP API client. It owns the connection pool and the
// retry policy; one instance is safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient *http.Client
	retry      *RetryConfig
}

// Option configures the API client.
type Option func(*Client)

// WithBaseURL sets the base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithTimeout sets the per-attempt request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithUserAgent sets the User-Agent header value.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithMaxRetries sets the maximum number of retries per call.
func WithMaxRetries(retries int) Option {
	return func(c *Client) {
		c.retry.MaxRetries = retries
	}
}

// WithRetryConfig replaces the whole retry policy.
func WithRetryConfig(cfg *RetryConfig) Option {
	return func(c *Client) {
		c.retry = cfg
	}
}

// New creates a new API client.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	c := &Client{
		baseURL: "https://sendly.live/api",
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		retry: DefaultRetryConfig(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// SetHTTPClient sets a custom HTTP client.
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// Close releases pooled connections held by the client.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// Do performs an HTTP request against the API with retries. The request
// is rebuilt fresh for every attempt so headers stay current; 4xx/5xx
// responses are classified here, network failures are retried per the
// policy, and on a 2xx the body is decoded into result when non-nil.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, result interface{}) error {
	var bodyBytes []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		bodyBytes = data
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	for attempt := 0; ; attempt++ {
		a := c.doOnce(ctx, method, reqURL, bodyBytes)
		attempts := attempt + 1

		if a.Err != nil {
			outcome := Outcome{NetworkFailure: true}
			if delay, retry := c.retry.Decide(attempt, outcome); retry {
				if err := c.retry.Wait(ctx, delay); err != nil {
					return &NetworkError{Err: err, URL: reqURL, Attempts: attempts}
				}
				continue
			}
			return &NetworkError{Err: a.Err, URL: reqURL, Attempts: attempts}
		}

		if a.StatusCode >= 200 && a.StatusCode < 300 {
			if result == nil {
				return nil
			}
			if err := json.Unmarshal(a.body, result); err != nil {
				// A malformed success body is a protocol mismatch,
				// not a transient failure.
				return &APIError{
					StatusCode: a.StatusCode,
					Message:    fmt.Sprintf("invalid JSON in response: %v", err),
					Attempts:   attempts,
				}
			}
			return nil
		}

		code, message, retryAfterSec := parseErrorBody(a.body)
		retryAfter := retryAfterDuration(a.header, retryAfterSec)

		outcome := Outcome{StatusCode: a.StatusCode, RetryAfter: retryAfter}
		if delay, retry := c.retry.Decide(attempt, outcome); retry {
			if err := c.retry.Wait(ctx, delay); err != nil {
				return &NetworkError{Err: err, URL: reqURL, Attempts: attempts}
			}
			continue
		}

		if a.StatusCode == 429 {
			return &RateLimitError{
				Message:    message,
				RetryAfter: retryAfter,
				Attempts:   attempts,
			}
		}
		return &APIError{
			StatusCode: a.StatusCode,
			Code:       code,
			Message:    message,
			Attempts:   attempts,
		}
	}
}

// attemptResult is the outcome of a single round trip.
type attemptResult struct {
	Attempt
	header http.Header
	body   []byte
}

// doOnce performs exactly one HTTP attempt. HTTP-level error statuses
// are returned as valid responses; only transport failures set Err.
func (c *Client) doOnce(ctx context.Context, method, reqURL string, body []byte) attemptResult {
	a := attemptResult{Attempt: Attempt{Start: time.Now()}}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		a.Err = err
		return a
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	a.Elapsed = time.Since(a.Start)
	if err != nil {
		a.Err = err
		return a
	}
	defer resp.Body.Close()

	a.StatusCode = resp.StatusCode
	a.header = resp.Header

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		a.StatusCode = 0
		a.Err = err
		return a
	}
	a.body = data
	return a
}

// retryAfterDuration resolves the server delay hint, preferring the
// Retry-After header (in seconds) over the error body field.
func retryAfterDuration(header http.Header, bodySeconds int) time.Duration {
	if v := header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	if bodySeconds > 0 {
		return time.Duration(bodySeconds) * time.Second
	}
	return 0
}
