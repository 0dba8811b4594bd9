// Package api is the gateway to the booking backend: the only place in the
// client that issues HTTP calls to it. One method per backend capability,
// bearer auth, JSON bodies, and a single envelope-normalization rule.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// DefaultBaseURL points at the production backend.
const DefaultBaseURL = "http://abooking.geeksewa.com/api"

// Error is a failed backend call: non-2xx status plus whatever message the
// backend put in its body.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

// TokenFunc yields the bearer token to attach to a request, or "" for none.
// A missing token is not a client-side error; the backend answers with a
// status instead.
type TokenFunc func() string

// Client talks to the booking backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      TokenFunc
	authLimit  *rate.Limiter
	log        zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTokenFunc sets where the bearer token comes from, normally the
// session store.
func WithTokenFunc(fn TokenFunc) Option {
	return func(c *Client) { c.token = fn }
}

// WithLogger sets the client logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithAuthLimiter throttles login and register calls client-side. The
// backend rate-limits the same two endpoints, so waiting here beats eating
// its rejections.
func WithAuthLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.authLimit = l }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		token: func() string { return "" },
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do runs one backend call and returns the normalized body.
//
// Normalization rule, reproduced exactly from the backend's two response
// styles: a body carrying both "token" and "role" is returned verbatim
// (auth responses), otherwise a "data" field is unwrapped when present,
// otherwise the body passes through as-is. Both branches are load-bearing.
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("api: encode request: %w", err)
		}
		rd = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	c.log.Debug().Str("method", method).Str("path", path).Msg("api call")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("api: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode, Message: "request failed"}
		var msg struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(raw, &msg) == nil && msg.Message != "" {
			apiErr.Message = msg.Message
		}
		c.log.Error().Int("status", resp.StatusCode).Str("path", path).Msg(apiErr.Message)
		return nil, apiErr
	}

	return normalizeEnvelope(raw), nil
}

// waitAuth applies the optional auth-call limiter.
func (c *Client) waitAuth(ctx context.Context) error {
	if c.authLimit == nil {
		return nil
	}
	return c.authLimit.Wait(ctx)
}

func normalizeEnvelope(body []byte) []byte {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		// arrays and scalars pass through untouched
		return body
	}
	if _, hasToken := obj["token"]; hasToken {
		if _, hasRole := obj["role"]; hasRole {
			return body
		}
	}
	if data, ok := obj["data"]; ok {
		return data
	}
	return body
}
