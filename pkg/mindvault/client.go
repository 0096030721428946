package mindvault

import (
	"context"
	"fmt"
	"net/http"
)

// DefaultClientID is sent when WithClientID is not used.
const DefaultClientID = "mindvault-go"

// Client is an HTTP client for the MindVault server API.
type Client struct {
	baseURL  string
	clientID string
	http     *http.Client
}

// NewClient creates a new MindVault API client.
//
// Options:
//   - WithHost: sets the server host (default: localhost)
//   - WithPort: sets the server port (default: 7432)
//   - WithClientID: sets the X-MindVault-Client header (default: mindvault-go)
//   - WithTimeout: sets the HTTP client timeout (default: 30s)
//
// Example:
//
//	client, err := mindvault.NewClient(mindvault.WithPort(8080))
func NewClient(opts ...ClientOption) (*Client, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.host == "" {
		return nil, fmt.Errorf("host is required")
	}
	if cfg.port < 1 || cfg.port > 65535 {
		return nil, fmt.Errorf("port %d out of range 1-65535", cfg.port)
	}

	return &Client{
		baseURL:  fmt.Sprintf("http://%s:%d", cfg.host, cfg.port),
		clientID: cfg.clientID,
		http: &http.Client{
			Timeout: cfg.timeout,
		},
	}, nil
}

// Health checks if the server and its database are healthy.
func (c *Client) Health(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/v1/health", nil)
	if err != nil {
		return err
	}

	err = c.do(req, "health check", http.StatusOK, nil)
	if err == nil || IsServerNotRunning(err) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrServerUnhealthy, err)
}
