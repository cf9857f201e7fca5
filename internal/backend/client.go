// Package backend is the typed HTTP client for the remote content-generation
// service. It owns every request the console sends: resource fetchers that
// unwrap the backend's JSON envelopes, and mutation calls whose outcomes the
// views map onto local state. All calls take a context so a view teardown
// cancels its in-flight requests.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// bypassHeader is required by the tunneling layer in front of the
	// backend; without it the tunnel serves an interstitial HTML page.
	bypassHeader = "ngrok-skip-browser-warning"

	// DefaultBypassToken is the token the tunnel expects. Any non-empty
	// value works; this one matches the deployed configuration.
	DefaultBypassToken = "69420"

	// requestTimeout bounds every backend call. Generation requests wait on
	// the backend's image pipeline, so this is generous.
	requestTimeout = 120 * time.Second
)

// Client issues requests against the backend's REST surface. All endpoint
// paths are resolved against a single configured base URL; no caller builds
// its own URL.
type Client struct {
	baseURL     string
	bypassToken string
	httpClient  *http.Client
}

// New creates a backend client for the given base URL. An empty bypass
// token falls back to the default.
func New(baseURL, bypassToken string) *Client {
	if bypassToken == "" {
		bypassToken = DefaultBypassToken
	}
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		bypassToken: bypassToken,
		httpClient:  &http.Client{Timeout: requestTimeout},
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// APIError is a non-2xx response from the backend. The body is kept for
// logging; callers must never treat it as success.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend: status %d: %s", e.Status, e.Body)
}

// newRequest builds a request against the base URL with the fixed headers:
// the tunnel bypass token, Accept: application/json, and — only when a body
// is present and no explicit type was set — Content-Type: application/json.
func (c *Client) newRequest(ctx context.Context, method, endpoint string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("backend request %s %s: %w", method, endpoint, err)
	}

	req.Header.Set(bypassHeader, c.bypassToken)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	} else if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// doJSON performs a request with an optional JSON body and decodes the
// response into out (when non-nil). Every call passes through here, so the
// status check is uniform: a non-2xx response is always an *APIError.
func (c *Client) doJSON(ctx context.Context, method, endpoint string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("backend marshal %s: %w", endpoint, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := c.newRequest(ctx, method, endpoint, body, "")
	if err != nil {
		return err
	}

	return c.do(req, endpoint, out)
}

// do sends a prepared request, enforces the status check, and decodes the
// response body into out when requested.
func (c *Client) do(req *http.Request, endpoint string, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend http %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("backend read body %s: %w", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("backend unmarshal %s: %w", endpoint, err)
		}
	}

	return nil
}
