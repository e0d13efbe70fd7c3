package api

import (
	"encoding/json"
	"strconv"
	"strings"
)

// SendSMSRequest represents the POST /v1/send request body.
type SendSMSRequest struct {
	To                 string   `json:"to"`
	Text               string   `json:"text,omitempty"`
	From               string   `json:"from,omitempty"`
	MessageType        string   `json:"messageType,omitempty"`
	MediaURLs          []string `json:"media_urls,omitempty"`
	Subject            string   `json:"subject,omitempty"`
	WebhookURL         string   `json:"webhook_url,omitempty"`
	WebhookFailoverURL string   `json:"webhook_failover_url,omitempty"`
	Tags               []string `json:"tags,omitempty"`
}

// Cost represents the price of a message. The API has returned it as a
// string ("$0.01"), a bare number, and an {amount, currency} object over
// time, so decoding accepts all three.
type Cost struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// UnmarshalJSON implements tolerant decoding for the cost field.
func (c *Cost) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		return nil
	}

	if strings.HasPrefix(trimmed, "{") {
		type costObject Cost
		var obj costObject
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*c = Cost(obj)
		if c.Currency == "" {
			c.Currency = "USD"
		}
		return nil
	}

	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.ReplaceAll(strings.TrimPrefix(strings.TrimSpace(s), "$"), ",", "")
		amount, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		c.Amount = amount
		c.Currency = "USD"
		return nil
	}

	var amount float64
	if err := json.Unmarshal(data, &amount); err != nil {
		return err
	}
	c.Amount = amount
	c.Currency = "USD"
	return nil
}

// Routing represents the smart-routing block of a send response.
type Routing struct {
	NumberType  string `json:"numberType"`
	RateLimit   int    `json:"rateLimit"`
	Coverage    string `json:"coverage"`
	Reason      string `json:"reason"`
	CountryCode string `json:"countryCode"`
}

// SendSMSResponse represents the POST /v1/send response body.
// Older API versions used messageId/timestamp instead of id/created_at;
// both are accepted.
type SendSMSResponse struct {
	ID                 string   `json:"id"`
	MessageID          string   `json:"messageId"`
	Status             string   `json:"status"`
	From               string   `json:"from"`
	To                 string   `json:"to"`
	Text               string   `json:"text"`
	CreatedAt          string   `json:"created_at"`
	Timestamp          string   `json:"timestamp"`
	Segments           int      `json:"segments"`
	Cost               *Cost    `json:"cost"`
	Direction          string   `json:"direction"`
	Routing            *Routing `json:"routing"`
	MessageType        string   `json:"messageType"`
	MediaType          string   `json:"mediaType"`
	MediaURLs          []string `json:"media_urls"`
	Subject            string   `json:"subject"`
	WebhookURL         string   `json:"webhook_url"`
	WebhookFailoverURL string   `json:"webhook_failover_url"`
	Tags               []string `json:"tags"`
	Carrier            string   `json:"carrier"`
	LineType           string   `json:"lineType"`
	Parts              int      `json:"parts"`
	Encoding           string   `json:"encoding"`
}

// MessageSummary is one entry of the GET /v1/messages response.
type MessageSummary struct {
	ID           string `json:"id"`
	To           string `json:"to"`
	From         string `json:"from"`
	Text         string `json:"text"`
	Status       string `json:"status"`
	ProviderID   string `json:"provider_id"`
	ErrorCode    string `json:"error_code"`
	ErrorMessage string `json:"error_message"`
	APIKeyName   string `json:"api_key_name"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// Pagination describes the paging block of list responses.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// ListMessagesResponse represents the GET /v1/messages response body.
type ListMessagesResponse struct {
	Success    bool             `json:"success"`
	Data       []MessageSummary `json:"data"`
	Pagination Pagination       `json:"pagination"`
}

// StatsResponse represents the GET /v1/stats response body. The stats
// payload is schemaless on the server side, so it stays a map.
type StatsResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data"`
}

// errorEnvelope decodes non-2xx bodies. The current API nests the
// details under "error"; the original flat shape is still accepted.
type errorEnvelope struct {
	Error      json.RawMessage `json:"error"`
	Message    string          `json:"message"`
	RetryAfter int             `json:"retry_after"`
}

type errorDetail struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	RetryAfter int    `json:"retry_after"`
}

// parseErrorBody extracts (code, message, retryAfterSeconds) from an
// error response body, tolerating both envelope shapes and plain text.
func parseErrorBody(body []byte) (code, message string, retryAfter int) {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return "", strings.TrimSpace(string(body)), 0
	}

	message = env.Message
	retryAfter = env.RetryAfter

	if len(env.Error) > 0 {
		var detail errorDetail
		if err := json.Unmarshal(env.Error, &detail); err == nil && (detail.Code != "" || detail.Message != "") {
			code = detail.Code
			if detail.Message != "" {
				message = detail.Message
			}
			if detail.RetryAfter > 0 {
				retryAfter = detail.RetryAfter
			}
			return code, message, retryAfter
		}
		// Flat shape: "error" is the code string.
		var flat string
		if err := json.Unmarshal(env.Error, &flat); err == nil {
			code = flat
		}
	}
	return code, message, retryAfter
}
