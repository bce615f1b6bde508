// Package curseforge is a client for the CurseForge v1 REST API.
//
// Every request carries the caller's API key in the x-api-key header. The
// client holds no credential of its own; callers pass the key per call.
package curseforge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/steviee/cfbrowse/internal/paging"
)

const (
	// DefaultBaseURL is the default CurseForge API base URL.
	DefaultBaseURL = "https://api.curseforge.com/v1"

	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRateLimit is the default number of requests per minute.
	DefaultRateLimit = 120

	// UserAgent is the user agent string sent with API requests.
	UserAgent = "cfbrowse/dev (https://github.com/steviee/cfbrowse)"

	// APIKeyHeader carries the credential.
	APIKeyHeader = "x-api-key"
)

// Client is a CurseForge API client.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	userAgent   string
	defaults    paging.Defaults
	rateLimiter *RateLimiter
}

// Config holds client configuration.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	RateLimit int
	Paging    paging.Defaults
}

// NewClient creates a new CurseForge API client.
func NewClient(config *Config) *Client {
	if config == nil {
		config = &Config{}
	}

	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}

	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}

	if config.UserAgent == "" {
		config.UserAgent = UserAgent
	}

	if config.RateLimit == 0 {
		config.RateLimit = DefaultRateLimit
	}

	if config.Paging.PageSize == 0 {
		config.Paging = paging.DefaultDefaults()
	}

	slog.Debug("creating CurseForge API client",
		"base_url", config.BaseURL,
		"timeout", config.Timeout,
		"rate_limit", config.RateLimit)

	return &Client{
		baseURL:     config.BaseURL,
		httpClient:  &http.Client{Timeout: config.Timeout},
		userAgent:   config.UserAgent,
		defaults:    config.Paging,
		rateLimiter: NewRateLimiter(config.RateLimit, time.Minute),
	}
}

// Defaults returns the pagination defaults the client applies.
func (c *Client) Defaults() paging.Defaults {
	return c.defaults
}

// doRequest performs an HTTP request with rate limiting.
func (c *Client) doRequest(ctx context.Context, apiKey, method, path string, params url.Values, body io.Reader) (*http.Response, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set(APIKeyHeader, apiKey)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	slog.Debug("curseforge API request",
		"method", method,
		"url", u)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}

	c.rateLimiter.Observe(resp.Header)

	return resp, nil
}

// getJSON performs a GET and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, apiKey, path string, params url.Values, out any) error {
	return c.sendJSON(ctx, apiKey, http.MethodGet, path, params, nil, out)
}

// sendJSON performs a request with an optional JSON body and decodes the
// response into out.
func (c *Client) sendJSON(ctx context.Context, apiKey, method, path string, params url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	resp, err := c.doRequest(ctx, apiKey, method, path, params, body)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if err := checkResponse(resp); err != nil {
		return err
	}

	if raw, ok := out.(*json.RawMessage); ok {
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}
		*raw = data
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}

// parseErrorResponse parses an error response from the API.
func parseErrorResponse(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		return ErrRateLimitExceeded
	case http.StatusNotFound:
		return ErrNotFound
	}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var apiErr APIError
	if err := json.Unmarshal(data, &apiErr); err != nil || apiErr.ErrorMessage == "" {
		message := resp.Status
		if text := string(bytes.TrimSpace(data)); text != "" && len(text) < 512 {
			message = text
		}
		return NewAPIError(resp.StatusCode, message)
	}

	apiErr.StatusCode = resp.StatusCode
	return &apiErr
}

// checkResponse checks if the response is successful.
func checkResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return parseErrorResponse(resp)
}
