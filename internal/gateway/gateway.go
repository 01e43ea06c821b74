// Package gateway is the thin request layer between the client and the
// recommendation backend. It attaches session correlation to outbound calls,
// rewrites API-prefixed paths onto the configured backend origin, and
// normalizes error reporting. One attempt per call; the forms already give
// the user retry by re-submitting.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"eventually/internal/logging"
)

// Client issues JSON requests against the backend.
type Client struct {
	baseURL    string
	apiPrefix  string
	httpClient *http.Client
}

// Config configures a gateway client.
type Config struct {
	BaseURL   string
	APIPrefix string
	Timeout   time.Duration
}

// NewClient creates a gateway client.
func NewClient(cfg Config) *Client {
	prefix := cfg.APIPrefix
	if prefix == "" {
		prefix = "/api"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		apiPrefix: prefix,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Send issues a single JSON request and returns the raw response body.
// The body must be a plain structured value; pre-serialized strings and
// binary payloads are programmer errors and fail before any I/O.
// A Content-Type header supplied by the caller is overridden, not merged.
func (c *Client) Send(ctx context.Context, method, path string, body any, headers map[string]string) (json.RawMessage, error) {
	var reqBody io.Reader
	if body != nil {
		if err := checkBody(body); err != nil {
			return nil, err
		}
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &ProgrammerError{Reason: fmt.Sprintf("body not JSON-encodable: %v", err)}
		}
		reqBody = bytes.NewReader(data)
	}

	fullURL := c.resolve(path)
	logging.GatewayDebug("%s %s", method, fullURL)

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return nil, &ProgrammerError{Reason: fmt.Sprintf("bad request: %v", err)}
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.GatewayError("%s %s: %v", method, fullURL, err)
		return nil, &NetworkError{cause: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Status: resp.StatusCode, cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logging.GatewayError("%s %s: status %d", method, fullURL, resp.StatusCode)
		return nil, statusError(resp.StatusCode, respBody)
	}

	return respBody, nil
}

// checkBody rejects pre-serialized and binary bodies before any I/O.
func checkBody(body any) error {
	switch body.(type) {
	case string:
		return &ProgrammerError{Reason: "body is a pre-serialized string; pass the structured value instead"}
	case []byte, json.RawMessage:
		return &ProgrammerError{Reason: "body is a raw byte payload; pass the structured value instead"}
	case io.Reader:
		return &ProgrammerError{Reason: "body is a stream; pass the structured value instead"}
	case url.Values:
		return &ProgrammerError{Reason: "body is a form payload; the gateway only speaks JSON"}
	}
	return nil
}

// resolve rewrites API-prefixed paths to the backend origin; everything else
// is used as-is so the same call sites work against a local proxy.
func (c *Client) resolve(path string) string {
	if strings.HasPrefix(path, c.apiPrefix) {
		return c.baseURL + path
	}
	return path
}

// statusError maps a non-success response to a NetworkError, preferring the
// body's message field over the generic status line. The raw body is not
// otherwise exposed.
func statusError(status int, body []byte) *NetworkError {
	msg := fmt.Sprintf("API request failed: %d", status)
	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		msg = parsed.Message
	}
	return &NetworkError{Status: status, Message: msg}
}
