package sendly

import (
	"context"

	"github.com/sendly/sendly-go/internal/api"
)

// MessageType controls routing priority for a message.
type MessageType string

const (
	MessageTypeTransactional MessageType = "transactional"
	MessageTypeOTP           MessageType = "otp"
	MessageTypeMarketing     MessageType = "marketing"
	MessageTypeAlert         MessageType = "alert"
	MessageTypePromotional   MessageType = "promotional"
)

// SendParams are the parameters for sending an SMS/MMS message.
type SendParams struct {
	// To is the destination phone number in E.164 format. Required.
	To string
	// Text is the message body. Required, at most 1600 characters.
	Text string
	// From is the sender phone number. Optional; the API auto-selects a
	// number when omitted.
	From string
	// MessageType sets routing priority. Defaults to transactional.
	MessageType MessageType
	// MediaURLs are HTTPS URLs of MMS media, at most 10.
	MediaURLs []string
	// Subject is the MMS subject line.
	Subject string
	// WebhookURL receives delivery events for this message. HTTPS only.
	WebhookURL string
	// WebhookFailoverURL is the backup webhook URL. HTTPS only.
	WebhookFailoverURL string
	// Tags label the message for analytics: at most 20, each at most 50
	// characters.
	Tags []string
}

// CostInfo is the price charged for a message.
type CostInfo struct {
	Amount   float64
	Currency string
}

// RoutingInfo describes how the API routed a message.
type RoutingInfo struct {
	NumberType  string
	RateLimit   int
	Coverage    string
	Reason      string
	CountryCode string
}

// SMSResponse is the result of a successful send. It is constructed
// only from a parsed 2xx response body and is immutable afterwards.
type SMSResponse struct {
	ID                 string
	Status             string
	From               string
	To                 string
	Text               string
	CreatedAt          string // RFC 3339 timestamp as reported by the API
	Segments           int
	Cost               *CostInfo
	Direction          string
	Routing            *RoutingInfo
	MessageType        string
	MediaType          string
	MediaURLs          []string
	Subject            string
	WebhookURL         string
	WebhookFailoverURL string
	Tags               []string
	Carrier            string
	LineType           string
	Parts              int
	Encoding           string
}

// SMSService sends SMS/MMS messages.
type SMSService struct {
	client *Client
}

// Send sends an SMS/MMS message. Parameters are validated locally
// first: any constraint violation returns a *ValidationError naming the
// offending field before any network attempt is made. Transient
// failures (network errors, 429, 500/502/503/504) are retried with
// exponential backoff up to the configured limit; the terminal outcome
// is exactly one typed error or a parsed response.
func (s *SMSService) Send(ctx context.Context, params SendParams) (*SMSResponse, error) {
	if err := s.client.checkClosed(); err != nil {
		return nil, err
	}

	if err := validateSendParams(&params); err != nil {
		return nil, err
	}

	req := buildSendRequest(&params)

	resp, err := s.client.apiClient.SendSMS(ctx, req)
	if err != nil {
		return nil, wrapError(err)
	}

	return newSMSResponse(resp), nil
}

// buildSendRequest serializes validated params into the wire shape.
func buildSendRequest(p *SendParams) *api.SendSMSRequest {
	messageType := p.MessageType
	if messageType == "" {
		messageType = MessageTypeTransactional
	}

	return &api.SendSMSRequest{
		To:                 p.To,
		Text:               p.Text,
		From:               p.From,
		MessageType:        string(messageType),
		MediaURLs:          p.MediaURLs,
		Subject:            p.Subject,
		WebhookURL:         p.WebhookURL,
		WebhookFailoverURL: p.WebhookFailoverURL,
		Tags:               p.Tags,
	}
}

// newSMSResponse maps the wire response onto the public type, absorbing
// the legacy messageId/timestamp field names.
func newSMSResponse(r *api.SendSMSResponse) *SMSResponse {
	id := r.ID
	if id == "" {
		id = r.MessageID
	}
	createdAt := r.CreatedAt
	if createdAt == "" {
		createdAt = r.Timestamp
	}
	segments := r.Segments
	if segments == 0 {
		segments = 1
	}
	direction := r.Direction
	if direction == "" {
		direction = "outbound"
	}

	resp := &SMSResponse{
		ID:                 id,
		Status:             r.Status,
		From:               r.From,
		To:                 r.To,
		Text:               r.Text,
		CreatedAt:          createdAt,
		Segments:           segments,
		Direction:          direction,
		MessageType:        r.MessageType,
		MediaType:          r.MediaType,
		MediaURLs:          r.MediaURLs,
		Subject:            r.Subject,
		WebhookURL:         r.WebhookURL,
		WebhookFailoverURL: r.WebhookFailoverURL,
		Tags:               r.Tags,
		Carrier:            r.Carrier,
		LineType:           r.LineType,
		Parts:              r.Parts,
		Encoding:           r.Encoding,
	}

	if r.Cost != nil {
		resp.Cost = &CostInfo{Amount: r.Cost.Amount, Currency: r.Cost.Currency}
	}
	if r.Routing != nil {
		resp.Routing = &RoutingInfo{
			NumberType:  r.Routing.NumberType,
			RateLimit:   r.Routing.RateLimit,
			Coverage:    r.Routing.Coverage,
			Reason:      r.Routing.Reason,
			CountryCode: r.Routing.CountryCode,
		}
	}
	return resp
}
