package api

import (
	"context"
	"net/url"
	"strconv"
)

// SendSMS sends an SMS/MMS message.
func (c *Client) SendSMS(ctx context.Context, req *SendSMSRequest) (*SendSMSResponse, error) {
	var result SendSMSResponse
	if err := c.Do(ctx, "POST", "/v1/send", nil, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListMessagesParams are the query parameters for ListMessages.
type ListMessagesParams struct {
	Page   int
	Limit  int
	Status string
	To     string
}

// ListMessages lists previously sent messages.
func (c *Client) ListMessages(ctx context.Context, params ListMessagesParams) (*ListMessagesResponse, error) {
	query := url.Values{}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Status != "" {
		query.Set("status", params.Status)
	}
	if params.To != "" {
		query.Set("to", params.To)
	}

	var result ListMessagesResponse
	if err := c.Do(ctx, "GET", "/v1/messages", query, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetStats retrieves usage statistics for the API key.
func (c *Client) GetStats(ctx context.Context) (*StatsResponse, error) {
	var result StatsResponse
	if err := c.Do(ctx, "GET", "/v1/stats", nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
