package sendly

import (
	"context"

	"github.com/sendly/sendly-go/internal/api"
)

// MessageSummary is a single message as returned by Messages.List.
type MessageSummary struct {
	ID           string
	To           string
	From         string
	Text         string
	Status       string
	ProviderID   string
	ErrorCode    string
	ErrorMessage string
	APIKeyName   string
	CreatedAt    string
	UpdatedAt    string
}

// Pagination describes the paging state of a list result.
type Pagination struct {
	Page       int
	Limit      int
	Total      int
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

// MessageList is the result of Messages.List.
type MessageList struct {
	Messages   []MessageSummary
	Pagination Pagination
}

// ListParams filter and page the Messages.List result. Zero values are
// omitted and the API defaults apply.
type ListParams struct {
	Page   int
	Limit  int
	Status string
	To     string
}

// Stats holds usage statistics for the API key. The server-side schema
// is unversioned, so the payload stays a generic map.
type Stats struct {
	Data map[string]interface{}
}

// MessagesService reads previously sent messages and usage statistics.
type MessagesService struct {
	client *Client
}

// List returns a page of previously sent messages.
func (s *MessagesService) List(ctx context.Context, params ListParams) (*MessageList, error) {
	if err := s.client.checkClosed(); err != nil {
		return nil, err
	}

	resp, err := s.client.apiClient.ListMessages(ctx, api.ListMessagesParams{
		Page:   params.Page,
		Limit:  params.Limit,
		Status: params.Status,
		To:     params.To,
	})
	if err != nil {
		return nil, wrapError(err)
	}

	list := &MessageList{
		Messages: make([]MessageSummary, 0, len(resp.Data)),
		Pagination: Pagination{
			Page:       resp.Pagination.Page,
			Limit:      resp.Pagination.Limit,
			Total:      resp.Pagination.Total,
			TotalPages: resp.Pagination.TotalPages,
			HasNext:    resp.Pagination.HasNext,
			HasPrev:    resp.Pagination.HasPrev,
		},
	}
	for _, m := range resp.Data {
		list.Messages = append(list.Messages, MessageSummary{
			ID:           m.ID,
			To:           m.To,
			From:         m.From,
			Text:         m.Text,
			Status:       m.Status,
			ProviderID:   m.ProviderID,
			ErrorCode:    m.ErrorCode,
			ErrorMessage: m.ErrorMessage,
			APIKeyName:   m.APIKeyName,
			CreatedAt:    m.CreatedAt,
			UpdatedAt:    m.UpdatedAt,
		})
	}
	return list, nil
}

// Stats returns usage statistics for the API key.
func (s *MessagesService) Stats(ctx context.Context) (*Stats, error) {
	if err := s.client.checkClosed(); err != nil {
		return nil, err
	}

	resp, err := s.client.apiClient.GetStats(ctx)
	if err != nil {
		return nil, wrapError(err)
	}
	return &Stats{Data: resp.Data}, nil
}
