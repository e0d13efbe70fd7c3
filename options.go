package sendly

import (
	"net/http"
	"time"
)

const (
	defaultBaseURL    = "https://sendly.live/api"
	defaultTimeout    = 30 * time.Second
	defaultMaxRetries = 3
	defaultUserAgent  = "sendly-go/" + Version
)

// Version is the SDK version reported in the User-Agent header.
const Version = "0.1.0"

// clientConfig holds configuration for the client.
type clientConfig struct {
	baseURL    string
	timeout    time.Duration
	maxRetries int
	userAgent  string
	httpClient *http.Client
}

// Option configures the client.
type Option func(*clientConfig)

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithTimeout sets the per-attempt request timeout.
// Default: 30 seconds
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithMaxRetries sets the maximum number of retries per call. A call
// makes at most maxRetries+1 attempts.
// Default: 3
func WithMaxRetries(retries int) Option {
	return func(c *clientConfig) {
		c.maxRetries = retries
	}
}

// WithUserAgent sets a custom User-Agent header value.
func WithUserAgent(ua string) Option {
	return func(c *clientConfig) {
		c.userAgent = ua
	}
}

// WithHTTPClient sets a custom HTTP client. The client's Timeout takes
// precedence over WithTimeout when both are set.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}
