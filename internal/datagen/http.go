package datagen

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// roleHeader selects the admin view on every smoke request.
const roleHeader = "X-Harmony-Role"

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// get performs an admin GET request and returns the status and body.
func (c *HTTPClient) get(ctx context.Context, path string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(roleHeader, "admin")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read %s: %w", path, err)
	}
	return resp.StatusCode, body, nil
}

// getJSON performs a GET and decodes a 200 response into v.
func (c *HTTPClient) getJSON(ctx context.Context, path string, v any) (int, error) {
	status, body, err := c.get(ctx, path)
	if err != nil {
		return status, err
	}
	if status != http.StatusOK {
		return status, nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return status, fmt.Errorf("decode %s: %w", path, err)
	}
	return status, nil
}
