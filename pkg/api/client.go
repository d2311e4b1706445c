// Package api is the Go client for the AIVEILIX knowledge-bucket service.
//
// A Client wraps the REST surface (auth, buckets, files, conversations, API
// keys, team, notifications) and the streaming chat endpoint. All methods take
// a context; cancelling it aborts the in-flight request, including a chat
// stream mid-decode.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jutt313/aiveilix-go/pkg/logger"
)

const defaultTimeout = 60 * time.Second

// Client talks to one AIVEILIX deployment on behalf of one account.
// It is safe for concurrent use; independent chat streams never share state.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
	logger  *slog.Logger
}

// Option configures a Client created with New.
type Option func(*Client)

// WithToken sets the bearer credential (session access token or API key).
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient overrides the underlying *http.Client. The default client
// has a 60s timeout; pass one without a timeout for long chat streams driven
// purely by context cancellation.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a Client for the API rooted at baseURL (scheme + host).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: defaultTimeout},
		logger:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the bearer credential. Used after login.
func (c *Client) SetToken(token string) {
	c.token = token
}

// newRequest builds a request with auth and tracing headers applied.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	return req, nil
}

// doJSON performs a request with an optional JSON body and decodes a JSON
// response into out (when out is non-nil). Non-2xx responses become
// *TransportError with the server's detail message.
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("api request", "method", method, "path", path)

	resp, err := c.httpc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Status: resp.StatusCode, Err: fmt.Errorf("decoding response: %w", err)}
	}

	return nil
}

// decodeBody decodes a 2xx JSON response body into out.
func decodeBody(resp *http.Response, out any) error {
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Status: resp.StatusCode, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}

// decodeError turns a non-2xx response into a *TransportError, extracting the
// backend's {"detail": "..."} body when present.
func decodeError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	var payload struct {
		Detail string `json:"detail"`
	}
	detail := ""
	if err := json.Unmarshal(data, &payload); err == nil {
		detail = payload.Detail
	}

	return &TransportError{Status: resp.StatusCode, Detail: detail}
}
