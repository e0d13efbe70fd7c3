package sendly

import (
	"os"
	"sync"

	"github.com/sendly/sendly-go/internal/api"
)

// EnvAPIKey is the environment variable consulted when New is called
// with an empty API key.
const EnvAPIKey = "SENDLY_API_KEY"

// Client is the main Sendly client for sending SMS/MMS messages.
type Client struct {
	apiClient *api.Client

	// SMS sends messages.
	SMS *SMSService
	// Messages reads previously sent messages and usage stats.
	Messages *MessagesService

	mu     sync.RWMutex
	closed bool
}

// New creates a new Sendly client with the given API key. If apiKey is
// empty, the SENDLY_API_KEY environment variable is used; this is
// resolved once here, never during calls.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		apiKey = os.Getenv(EnvAPIKey)
	}
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if !isValidAPIKey(apiKey) {
		return nil, ErrInvalidAPIKey
	}

	cfg := &clientConfig{
		baseURL:    defaultBaseURL,
		timeout:    defaultTimeout,
		maxRetries: defaultMaxRetries,
		userAgent:  defaultUserAgent,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	apiClient, err := buildAPIClient(apiKey, cfg)
	if err != nil {
		return nil, err
	}

	c := &Client{apiClient: apiClient}
	c.SMS = &SMSService{client: c}
	c.Messages = &MessagesService{client: c}
	return c, nil
}

// buildAPIClient creates and configures an API client from the given config.
func buildAPIClient(apiKey string, cfg *clientConfig) (*api.Client, error) {
	apiOpts := []api.Option{
		api.WithBaseURL(cfg.baseURL),
		api.WithUserAgent(cfg.userAgent),
	}
	if cfg.timeout > 0 {
		apiOpts = append(apiOpts, api.WithTimeout(cfg.timeout))
	}
	if cfg.maxRetries >= 0 {
		apiOpts = append(apiOpts, api.WithMaxRetries(cfg.maxRetries))
	}

	apiClient, err := api.New(apiKey, apiOpts...)
	if err != nil {
		return nil, err
	}

	if cfg.httpClient != nil {
		apiClient.SetHTTPClient(cfg.httpClient)
	}

	return apiClient, nil
}

// checkClosed returns ErrClientClosed if the client has been closed.
func (c *Client) checkClosed() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClientClosed
	}
	return nil
}

// Close releases pooled connections held by the client. Calls issued
// after Close return ErrClientClosed.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.apiClient.Close()
	return nil
}
