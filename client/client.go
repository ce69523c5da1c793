// Package client provides a typed Go SDK for the good-neighbor REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// sessionHeader carries the session id on every request and echoes the
// server-assigned id back on responses.
const sessionHeader = "X-Session-ID"

// Client is the top-level good-neighbor API client. All interaction
// state lives server-side under the session id, which the client either
// supplies up front or adopts from the first response.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu        sync.Mutex
	sessionID string

	Items   *ItemService
	Session *SessionService
	Graph   *GraphService
	Layout  *LayoutService
	Dataset *DatasetService
}

// Option configures a Client.
type Option func(*Client)

// WithSessionID resumes an existing session instead of starting fresh.
func WithSessionID(id string) Option {
	return func(c *Client) { c.sessionID = id }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// New creates a good-neighbor client for the given base URL
// (e.g. "http://localhost:3040").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	c.Items = &ItemService{c: c}
	c.Session = &SessionService{c: c}
	c.Graph = &GraphService{c: c}
	c.Layout = &LayoutService{c: c}
	c.Dataset = &DatasetService{c: c}
	return c
}

// SessionID returns the current session id, which may be empty until the
// first request completes.
func (c *Client) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// Health returns the liveness check response.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.get(ctx, "/api/v1/health", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Ready returns the readiness check response.
func (c *Client) Ready(ctx context.Context) (*ReadyResponse, error) {
	var resp ReadyResponse
	if err := c.get(ctx, "/api/v1/ready", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Stats returns aggregate service statistics.
func (c *Client) Stats(ctx context.Context) (*StatsResponse, error) {
	var resp StatsResponse
	if err := c.get(ctx, "/api/v1/stats", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// do executes an HTTP request and decodes the JSON response.
func (c *Client) do(ctx context.Context, method, path string, body any, result any) error {
	u := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sid := c.SessionID(); sid != "" {
		req.Header.Set(sessionHeader, sid)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	// Adopt the server-assigned session id so follow-up requests stay in
	// the same session.
	if sid := resp.Header.Get(sessionHeader); sid != "" {
		c.mu.Lock()
		c.sessionID = sid
		c.mu.Unlock()
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return parseAPIError(resp.StatusCode, respBody)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// get is a convenience wrapper for GET requests with query parameters.
func (c *Client) get(ctx context.Context, path string, params url.Values, result any) error {
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	return c.do(ctx, http.MethodGet, path, nil, result)
}

// post is a convenience wrapper for POST requests.
func (c *Client) post(ctx context.Context, path string, body any, result any) error {
	return c.do(ctx, http.MethodPost, path, body, result)
}

// del is a convenience wrapper for DELETE requests.
func (c *Client) del(ctx context.Context, path string, result any) error {
	return c.do(ctx, http.MethodDelete, path, nil, result)
}
