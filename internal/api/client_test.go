package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

// fastRetry keeps retry tests quick without changing the policy shape.
func fastRetry() *RetryConfig {
	return &RetryConfig{
		MaxRetries: 3,
		BaseDelay:  time.Millisecond,
		MaxDelay:   10 * time.Millisecond,
		Multiplier: 2.0,
	}
}

func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	client, err := New("sl_test_abcdefghijklmnopqrstuvwx",
		WithBaseURL(serverURL),
		WithUserAgent("sendly-go/test"),
		WithRetryConfig(fastRetry()),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return client
}

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New("")
	if err == nil {
		t.Error("expected error for empty API key")
	}
}

func TestNew_Defaults(t *testing.T) {
	client, err := New("sl_test_abcdefghijklmnopqrstuvwx")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if client.baseURL != "https://sendly.live/api" {
		t.Errorf("baseURL = %s, want https://sendly.live/api", client.baseURL)
	}
	if client.httpClient.Timeout != DefaultTimeout {
		t.Errorf("timeout = %v, want %v", client.httpClient.Timeout, DefaultTimeout)
	}
	if client.retry.MaxRetries != DefaultMaxRetries {
		t.Errorf("MaxRetries = %d, want %d", client.retry.MaxRetries, DefaultMaxRetries)
	}
}

func TestNew_WithOptions(t *testing.T) {
	client, err := New("sl_test_abcdefghijklmnopqrstuvwx",
		WithBaseURL("https://example.com"),
		WithTimeout(60*time.Second),
		WithMaxRetries(5),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if client.baseURL != "https://example.com" {
		t.Errorf("baseURL = %s, want https://example.com", client.baseURL)
	}
	if client.httpClient.Timeout != 60*time.Second {
		t.Errorf("timeout = %v, want 60s", client.httpClient.Timeout)
	}
	if client.retry.MaxRetries != 5 {
		t.Errorf("MaxRetries = %d, want 5", client.retry.MaxRetries)
	}
}

func TestDo_Success_SetsHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer sl_test_abcdefghijklmnopqrstuvwx" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", got)
		}
		if got := r.Header.Get("User-Agent"); got != "sendly-go/test" {
			t.Errorf("User-Agent = %q, want sendly-go/test", got)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("X-Request-ID header not set")
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]bool{"ok": true})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	var result struct {
		OK bool `json:"ok"`
	}
	if err := client.Do(context.Background(), "POST", "/v1/send", nil, map[string]string{"to": "+15550001234"}, &result); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if !result.OK {
		t.Error("result.OK = false, want true")
	}
}

func TestDo_RequestIDRefreshedPerAttempt(t *testing.T) {
	var calls int32
	seen := make(map[string]struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen[r.Header.Get("X-Request-ID")] = struct{}{}
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	if err := client.Do(context.Background(), "GET", "/v1/stats", nil, nil, nil); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if len(seen) != 3 {
		t.Errorf("distinct X-Request-ID values = %d, want 3", len(seen))
	}
}

func TestDo_AuthFailure_SingleAttempt(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"code": "invalid_api_key", "message": "API key is invalid"}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	err := client.Do(context.Background(), "POST", "/v1/send", nil, map[string]string{}, nil)
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.StatusCode != 401 {
		t.Errorf("StatusCode = %d, want 401", apiErr.StatusCode)
	}
	if apiErr.Code != "invalid_api_key" {
		t.Errorf("Code = %q, want invalid_api_key", apiErr.Code)
	}
	if !errors.Is(err, ErrUnauthorized) {
		t.Error("errors.Is(err, ErrUnauthorized) = false")
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("attempts = %d, want exactly 1", got)
	}
}

func TestDo_ServerError_ExhaustsRetries(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error": {"code": "unavailable", "message": "try later"}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	err := client.Do(context.Background(), "POST", "/v1/send", nil, map[string]string{}, nil)
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.StatusCode != 503 {
		t.Errorf("StatusCode = %d, want 503", apiErr.StatusCode)
	}
	// maxRetries=3 means 1 initial + 3 retries.
	if got := atomic.LoadInt32(&calls); got != 4 {
		t.Errorf("attempts = %d, want 4", got)
	}
	if apiErr.Attempts != 4 {
		t.Errorf("Attempts = %d, want 4", apiErr.Attempts)
	}
}

func TestDo_RateLimit_RespectsRetryAfter(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error": {"code": "rate_limit_exceeded", "message": "slow down"}}`))
			return
		}
		w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	start := time.Now()
	if err := client.Do(context.Background(), "POST", "/v1/send", nil, map[string]string{}, nil); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed < time.Second {
		t.Errorf("elapsed = %v, want >= 1s (server Retry-After)", elapsed)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("attempts = %d, want 2", got)
	}
}

func TestDo_RateLimit_Exhausted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"code": "rate_limit_exceeded", "message": "slow down", "retry_after": 1}}`))
	}))
	defer server.Close()

	client, err := New("sl_test_abcdefghijklmnopqrstuvwx",
		WithBaseURL(server.URL),
		WithRetryConfig(&RetryConfig{
			MaxRetries: 0, // no retries so the hint is surfaced, not slept on
			BaseDelay:  time.Millisecond,
			MaxDelay:   10 * time.Millisecond,
			Multiplier: 2.0,
		}),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	doErr := client.Do(context.Background(), "POST", "/v1/send", nil, map[string]string{}, nil)
	var rlErr *RateLimitError
	if !errors.As(doErr, &rlErr) {
		t.Fatalf("error type = %T, want *RateLimitError", doErr)
	}
	if rlErr.RetryAfter != time.Second {
		t.Errorf("RetryAfter = %v, want 1s", rlErr.RetryAfter)
	}
	if !errors.Is(doErr, ErrRateLimited) {
		t.Error("errors.Is(err, ErrRateLimited) = false")
	}
}

func TestDo_MalformedSuccessBody_NotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	var result map[string]interface{}
	err := client.Do(context.Background(), "GET", "/v1/stats", nil, nil, &result)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("attempts = %d, want 1 (protocol mismatch is terminal)", got)
	}
}

func TestDo_NetworkFailure_ExhaustsRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	serverURL := server.URL
	server.Close() // nothing is listening anymore

	client := newTestClient(t, serverURL)

	err := client.Do(context.Background(), "POST", "/v1/send", nil, map[string]string{}, nil)
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("error type = %T, want *NetworkError", err)
	}
	if netErr.Attempts != 4 {
		t.Errorf("Attempts = %d, want 4", netErr.Attempts)
	}
	if netErr.Unwrap() == nil {
		t.Error("Unwrap() = nil, want the transport error")
	}
}

func TestDo_ContextCancelledDuringBackoff(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, err := New("sl_test_abcdefghijklmnopqrstuvwx",
		WithBaseURL(server.URL),
		WithRetryConfig(&RetryConfig{
			MaxRetries: 3,
			BaseDelay:  10 * time.Second, // long enough to be interrupted
			MaxDelay:   30 * time.Second,
			Multiplier: 2.0,
		}),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	doErr := client.Do(ctx, "POST", "/v1/send", nil, map[string]string{}, nil)
	var netErr *NetworkError
	if !errors.As(doErr, &netErr) {
		t.Fatalf("error type = %T, want *NetworkError", doErr)
	}
	if !errors.Is(doErr, context.Canceled) {
		t.Error("errors.Is(err, context.Canceled) = false")
	}
}

func TestDo_QueryParameters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("page"); got != "2" {
			t.Errorf("page = %q, want 2", got)
		}
		if got := r.URL.Query().Get("limit"); got != "50" {
			t.Errorf("limit = %q, want 50", got)
		}
		w.Write([]byte(`{"success": true, "data": [], "pagination": {}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.ListMessages(context.Background(), ListMessagesParams{Page: 2, Limit: 50})
	if err != nil {
		t.Fatalf("ListMessages() error = %v", err)
	}
}

func TestParseErrorBody(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		wantCode       string
		wantMessage    string
		wantRetryAfter int
	}{
		{
			name:        "nested envelope",
			body:        `{"error": {"code": "invalid_number", "message": "bad destination"}}`,
			wantCode:    "invalid_number",
			wantMessage: "bad destination",
		},
		{
			name:           "nested with retry_after",
			body:           `{"error": {"code": "rate_limit_exceeded", "message": "slow down", "retry_after": 5}}`,
			wantCode:       "rate_limit_exceeded",
			wantMessage:    "slow down",
			wantRetryAfter: 5,
		},
		{
			name:           "flat legacy shape",
			body:           `{"error": "rate_limit_exceeded", "message": "slow down", "retry_after": 7}`,
			wantCode:       "rate_limit_exceeded",
			wantMessage:    "slow down",
			wantRetryAfter: 7,
		},
		{
			name:        "plain text body",
			body:        "Service Unavailable",
			wantMessage: "Service Unavailable",
		},
		{
			name: "empty body",
			body: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, message, retryAfter := parseErrorBody([]byte(tt.body))
			if code != tt.wantCode {
				t.Errorf("code = %q, want %q", code, tt.wantCode)
			}
			if message != tt.wantMessage {
				t.Errorf("message = %q, want %q", message, tt.wantMessage)
			}
			if retryAfter != tt.wantRetryAfter {
				t.Errorf("retryAfter = %d, want %d", retryAfter, tt.wantRetryAfter)
			}
		})
	}
}

func TestRetryAfterDuration_HeaderWinsOverBody(t *testing.T) {
	header := http.Header{}
	header.Set("Retry-After", "9")

	if got := retryAfterDuration(header, 3); got != 9*time.Second {
		t.Errorf("retryAfterDuration = %v, want 9s", got)
	}
	if got := retryAfterDuration(http.Header{}, 3); got != 3*time.Second {
		t.Errorf("retryAfterDuration = %v, want 3s", got)
	}
	if got := retryAfterDuration(http.Header{}, 0); got != 0 {
		t.Errorf("retryAfterDuration = %v, want 0", got)
	}
}
