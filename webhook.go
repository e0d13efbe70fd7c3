package sendly

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// WebhookEvent is a delivery event POSTed by Sendly to the webhook URL
// configured on a message.
type WebhookEvent struct {
	// Type is the event kind, e.g. "message.delivered", "message.failed".
	Type string `json:"type"`
	// MessageID identifies the message the event belongs to.
	MessageID string `json:"message_id"`
	// Status is the delivery status after this event.
	Status string `json:"status"`
	// To is the destination number.
	To string `json:"to"`
	// ErrorCode is set on failure events.
	ErrorCode string `json:"error_code,omitempty"`
	// ErrorMessage is set on failure events.
	ErrorMessage string `json:"error_message,omitempty"`
	// Timestamp is when the event occurred, RFC 3339.
	Timestamp string `json:"timestamp"`
}

// SignatureHeader is the HTTP header carrying the webhook signature.
const SignatureHeader = "X-Sendly-Signature"

// VerifyWebhookSignature checks the hex-encoded HMAC-SHA256 signature of
// a webhook payload against the account's signing secret. The compare
// is constant-time.
func VerifyWebhookSignature(payload []byte, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// ParseWebhookEvent verifies the signature of a webhook request body and
// decodes it. A bad signature or payload surfaces as a *ValidationError
// naming the offending part, so callers branch on one taxonomy either way.
func ParseWebhookEvent(payload []byte, signature, secret string) (*WebhookEvent, error) {
	if !VerifyWebhookSignature(payload, signature, secret) {
		return nil, &ValidationError{Field: "signature", Message: "webhook signature verification failed"}
	}

	var event WebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, &ValidationError{Field: "payload", Message: "invalid webhook payload: " + err.Error()}
	}
	return &event, nil
}
