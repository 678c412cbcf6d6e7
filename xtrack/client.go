package xtrack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://xtrack-be.vercel.app/api"

// NetworkErrorMessage is the display string used when a call never produced
// a well-formed service response. The UI treats it exactly like an
// application-level failure.
const NetworkErrorMessage = "Network error occurred"

// APIError is an application-level failure reported by the service. Its
// message is passed through to the caller unmodified.
type APIError struct {
	Message    string
	StatusCode int
}

func (e *APIError) Error() string {
	return e.Message
}

// ErrorMessage normalizes any error from a client call into the string the
// UI should display. Service-reported failures keep their message; anything
// else (DNS, timeouts, malformed bodies) collapses to NetworkErrorMessage.
func ErrorMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return NetworkErrorMessage
}

// Client is a minimal X-Track API client. The zero value is not usable;
// construct with New.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a client using the default X-Track base URL. The token is the
// bearer credential from a prior login and may be empty for the login call
// itself.
func New(token string) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// NewWithBaseURL creates a client with a custom base URL.
// Intended for tests and local stubs.
func NewWithBaseURL(token, baseURL string) *Client {
	c := New(token)
	c.baseURL = baseURL
	return c
}

// SetTransport replaces the underlying HTTP transport, preserving the
// client timeout. Used to install the logging round tripper.
func (c *Client) SetTransport(rt http.RoundTripper) {
	c.httpClient.Transport = rt
}

// envelope is the uniform response wrapper every endpoint returns.
type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message,omitempty"`
	Error      string          `json:"error,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
	Pagination *Pagination     `json:"pagination,omitempty"`
}

func (e *envelope) errorMessage() string {
	if e.Error != "" {
		return e.Error
	}
	if e.Message != "" {
		return e.Message
	}
	return "request failed"
}

// do performs a request and decodes the envelope. A non-success envelope
// becomes an *APIError; transport and decode failures are returned as-is so
// ErrorMessage can collapse them.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) (*Pagination, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response from %s: %w", path, err)
	}

	if !env.Success {
		return nil, &APIError{Message: env.errorMessage(), StatusCode: resp.StatusCode}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("decode data from %s: %w", path, err)
		}
	}

	return env.Pagination, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) (*Pagination, error) {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	_, err := c.do(ctx, http.MethodPost, path, nil, body, out)
	return err
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	_, err := c.do(ctx, http.MethodPut, path, nil, body, out)
	return err
}

func (c *Client) delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil, nil)
	return err
}
