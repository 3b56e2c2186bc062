package client

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

	"go.uber.org/zap"
)

// DefaultTimeout bounds every request; exceeding it classifies as a network
// failure.
const DefaultTimeout = 15 * time.Second

// TokenSource yields the bearer token to attach to a request, or "" when the
// caller is logged out. The token is read at call time so the gateway carries
// no mutable header state of its own.
type TokenSource func() string

// Gateway centralizes outgoing request authentication and incoming error
// normalization for the dashboard shell.
type Gateway struct {
	baseURL     string
	httpClient  *http.Client
	logger      *zap.Logger
	tokens      TokenSource
	invalidated func()
}

// Option customizes a Gateway.
type Option func(*Gateway)

// WithTimeout overrides the request timeout bound.
func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) { g.httpClient.Timeout = d }
}

// WithTokenSource wires the session token provider.
func WithTokenSource(ts TokenSource) Option {
	return func(g *Gateway) { g.tokens = ts }
}

// New creates a Gateway rooted at baseURL.
func New(baseURL string, logger *zap.Logger, opts ...Option) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}

	g := &Gateway{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// SetTokenSource replaces the session token provider.
func (g *Gateway) SetTokenSource(ts TokenSource) { g.tokens = ts }

// OnSessionInvalidated registers the hook fired when any response comes back
// 401. The shell subscribes here to clear the session and steer the user to
// the login view; the gateway itself never touches navigation.
func (g *Gateway) OnSessionInvalidated(fn func()) { g.invalidated = fn }

// Get issues a GET request and decodes the response body into out.
func (g *Gateway) Get(ctx context.Context, path string, query url.Values, out any) error {
	return g.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST request with a JSON body and decodes the response into out.
func (g *Gateway) Post(ctx context.Context, path string, body, out any) error {
	return g.do(ctx, http.MethodPost, path, nil, body, out)
}

// Delete issues a DELETE request.
func (g *Gateway) Delete(ctx context.Context, path string) error {
	return g.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (g *Gateway) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := g.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return &APIError{Class: ClassClientError, UserMessage: msgGeneric, Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return &APIError{Class: ClassClientError, UserMessage: msgGeneric, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if g.tokens != nil {
		if token := g.tokens(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.logger.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return &APIError{Class: ClassNetworkError, UserMessage: msgNetwork, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Class: ClassNetworkError, UserMessage: msgNetwork, Err: err}
	}

	g.logger.Debug("request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || len(raw) == 0 {
			return nil
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return &APIError{Class: ClassClientError, StatusCode: resp.StatusCode, UserMessage: msgGeneric, Err: fmt.Errorf("decode response: %w", err)}
		}
		return nil
	}

	return g.classify(resp.StatusCode, raw)
}

func (g *Gateway) classify(status int, raw []byte) *APIError {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	_ = json.Unmarshal(raw, &payload)
	serverMsg := firstNonEmpty(payload.Message, payload.Error)

	class := ClassClientError
	if status >= 500 {
		class = ClassServerError
	}

	apiErr := &APIError{
		Class:       class,
		StatusCode:  status,
		UserMessage: userMessage(status, serverMsg),
	}

	if status == http.StatusUnauthorized && g.invalidated != nil {
		g.invalidated()
	}

	return apiErr
}
