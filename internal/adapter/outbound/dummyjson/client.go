// Package dummyjson is the HTTP client for the demo catalog backend.
// It exposes the four endpoints the application consumes: product listing,
// product detail, product search, and the mock login endpoint.
package dummyjson

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the public demo backend.
const DefaultBaseURL = "https://dummyjson.com"

// DefaultTimeout bounds each request. There is no retry: one request, one
// outcome.
const DefaultTimeout = 10 * time.Second

// Client talks to the catalog backend. It is the single suspension point for
// every network-dependent operation in the application.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *Metrics
}

// NewClient creates a backend client. Options override the defaults.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{
			Timeout: c.timeout,
		}
	}

	return c
}

// ListProducts fetches one page of catalog records.
func (c *Client) ListProducts(ctx context.Context, limit, skip int) (*ProductsResponse, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("skip", strconv.Itoa(skip))

	var out ProductsResponse
	if err := c.do(ctx, "list", http.MethodGet, "/products", query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProduct fetches a single record by id.
func (c *Client) GetProduct(ctx context.Context, id int) (*Product, error) {
	var out Product
	path := fmt.Sprintf("/products/%d", id)
	if err := c.do(ctx, "detail", http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchProducts fetches records matching a free-text query.
func (c *Client) SearchProducts(ctx context.Context, q string) (*ProductsResponse, error) {
	query := url.Values{}
	query.Set("q", q)

	var out ProductsResponse
	if err := c.do(ctx, "search", http.MethodGet, "/products/search", query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login posts credentials to the mock auth endpoint.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	body := LoginRequest{Username: username, Password: password}

	var out LoginResponse
	if err := c.do(ctx, "login", http.MethodPost, "/auth/login", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do performs one HTTP request against the backend.
// Failures are *TransportError (no response) or *StatusError (non-2xx).
func (c *Client) do(ctx context.Context, operation, method, path string, query url.Values, body, result any) error {
	reqURL := strings.TrimRight(c.baseURL, "/") + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.metrics.observe(operation, "unreachable", time.Since(start).Seconds())
		c.logger.Debug("backend request failed",
			"operation", operation,
			"url", reqURL,
			"error", err,
		)
		return &TransportError{Cause: err}
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		c.metrics.observe(operation, "unreachable", time.Since(start).Seconds())
		return &TransportError{Cause: fmt.Errorf("read response body: %w", err)}
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		c.metrics.observe(operation, "http_error", time.Since(start).Seconds())
		c.logger.Debug("backend returned error status",
			"operation", operation,
			"url", reqURL,
			"status", httpResp.StatusCode,
		)
		return &StatusError{
			StatusCode: httpResp.StatusCode,
			Body:       strings.TrimSpace(string(respBody)),
		}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			c.metrics.observe(operation, "http_error", time.Since(start).Seconds())
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}

	c.metrics.observe(operation, "ok", time.Since(start).Seconds())
	return nil
}
