// Package api implements the low-level HTTP client for the Sendly API.
//
// It owns the request/retry core: building authenticated requests,
// performing attempts with exponential backoff and jitter, classifying
// HTTP and network failures, and decoding wire payloads. The public
// sendly package wraps these primitives with validation and typed
// resource methods; nothing here should be imported directly by users.
package api
