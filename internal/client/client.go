// Package client provides a minimal client for the REST tool endpoints.
package client

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

// Client is a minimal HTTP client for the REST surface.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New returns a new client. If httpClient is nil, a default with 15s timeout is used.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: httpClient}
}

// APIError is a non-2xx response carrying the server's error message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Status, e.Message)
}

// Info is the response of GET /.
type Info struct {
	Name        string            `json:"name"`
	Version     string            `json:"version"`
	Description string            `json:"description"`
	Endpoints   map[string]string `json:"endpoints"`
}

// Health is the response of GET /health.
type Health struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Tool is one entry of GET /tools.
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
	Endpoint    string         `json:"endpoint"`
	Method      string         `json:"method"`
}

// TimeResult is the response of GET /tools/time.
type TimeResult struct {
	Tool     string `json:"tool"`
	Result   string `json:"result"`
	Timezone string `json:"timezone"`
}

// CalculateResult is the response of POST /tools/calculate.
type CalculateResult struct {
	Tool      string  `json:"tool"`
	Operation string  `json:"operation"`
	A         float64 `json:"a"`
	B         float64 `json:"b"`
	Result    float64 `json:"result"`
}

// ReverseResult is the response of POST /tools/reverse.
type ReverseResult struct {
	Tool     string `json:"tool"`
	Original string `json:"original"`
	Result   string `json:"result"`
}

// Info fetches server information.
func (c *Client) Info(ctx context.Context) (*Info, error) {
	var out Info
	if err := c.do(ctx, http.MethodGet, "/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health fetches the health status.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var out Health
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Tools lists the available tools.
func (c *Client) Tools(ctx context.Context) ([]Tool, error) {
	var out struct {
		Tools []Tool `json:"tools"`
	}
	if err := c.do(ctx, http.MethodGet, "/tools", nil, &out); err != nil {
		return nil, err
	}
	return out.Tools, nil
}

// Echo calls the echo tool.
func (c *Client) Echo(ctx context.Context, text string) (string, error) {
	var out struct {
		Result string `json:"result"`
	}
	if err := c.do(ctx, http.MethodPost, "/tools/echo", map[string]any{"text": text}, &out); err != nil {
		return "", err
	}
	return out.Result, nil
}

// Time calls the current time tool.
func (c *Client) Time(ctx context.Context) (*TimeResult, error) {
	var out TimeResult
	if err := c.do(ctx, http.MethodGet, "/tools/time", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Calculate calls the calculator tool.
func (c *Client) Calculate(ctx context.Context, op string, a, b float64) (*CalculateResult, error) {
	var out CalculateResult
	body := map[string]any{"operation": op, "a": a, "b": b}
	if err := c.do(ctx, http.MethodPost, "/tools/calculate", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Reverse calls the text reversal tool.
func (c *Client) Reverse(ctx context.Context, text string) (*ReverseResult, error) {
	var out ReverseResult
	if err := c.do(ctx, http.MethodPost, "/tools/reverse", map[string]any{"text": text}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&e); err != nil || e.Error == "" {
			e.Error = resp.Status
		}
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
