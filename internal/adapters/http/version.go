// Package http implements the DevTools discovery handshake over HTTP.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/bft-labs/xhspost/internal/domain"
	"github.com/bft-labs/xhspost/internal/ports"
)

// BrowserVersion is the subset of /json/version the connector uses.
type BrowserVersion struct {
	Browser              string `json:"Browser"`
	ProtocolVersion      string `json:"Protocol-Version"`
	UserAgent            string `json:"User-Agent"`
	WebSocketDebuggerURL string `json:"webSocketDebuggerUrl"`
}

// VersionClient fetches handshake metadata from a debugging endpoint.
type VersionClient struct {
	client ports.HTTPClient
	logger ports.Logger
}

// NewVersionClient creates a new handshake client.
func NewVersionClient(client ports.HTTPClient, logger ports.Logger) *VersionClient {
	return &VersionClient{
		client: client,
		logger: logger,
	}
}

// Version fetches and decodes the /json/version document.
func (c *VersionClient) Version(ctx context.Context, endpoint domain.DebugEndpoint) (BrowserVersion, error) {
	var v BrowserVersion

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.VersionURL(), nil)
	if err != nil {
		return v, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return v, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return v, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		return v, fmt.Errorf("decode version: %w", err)
	}

	c.logger.Debug("devtools handshake",
		ports.String("browser", v.Browser),
		ports.String("protocol", v.ProtocolVersion),
	)
	return v, nil
}

// ControlEndpoint returns the browser-level WebSocket URL.
func (c *VersionClient) ControlEndpoint(ctx context.Context, endpoint domain.DebugEndpoint) (string, error) {
	v, err := c.Version(ctx, endpoint)
	if err != nil {
		return "", err
	}
	if v.WebSocketDebuggerURL == "" {
		return "", domain.ErrNoEndpoint
	}
	return v.WebSocketDebuggerURL, nil
}
