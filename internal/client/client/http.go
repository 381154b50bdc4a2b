package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/cycleshop/internal/client/credentials"
	"github.com/dmitrijs2005/cycleshop/internal/common"
	"github.com/dmitrijs2005/cycleshop/internal/logging"
	"github.com/google/uuid"
)

const (
	DefaultBackendURL     = "http://127.0.0.1:5000"
	DefaultRequestTimeout = 10 * time.Second

	defaultUserAgent = "cycleshop/0.1"
	maxErrorBody     = 64 << 10
)

// HTTPClient is the Requester used against the real backend.
type HTTPClient struct {
	baseURL   *url.URL
	http      *http.Client
	tokens    credentials.TokenSource
	userAgent string
	log       logging.Logger
}

var _ Requester = (*HTTPClient)(nil)

// Option customises an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// NewHTTPClient builds a client for the backend at baseURL. A non-positive
// timeout selects DefaultRequestTimeout.
func NewHTTPClient(baseURL string, tokens credentials.TokenSource, timeout time.Duration, opts ...Option) (*HTTPClient, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	c := &HTTPClient{
		baseURL:   base,
		http:      &http.Client{Timeout: timeout},
		tokens:    tokens,
		userAgent: defaultUserAgent,
		log:       logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalised backend address.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL.String()
}

func (c *HTTPClient) Do(ctx context.Context, r Request, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}

	var token string
	if r.Scope != credentials.ScopeNone {
		if c.tokens != nil {
			t, err := c.tokens.Token(ctx, r.Scope)
			if err != nil {
				return localError("read credential", err)
			}
			token = t
		}
		if token == "" {
			return &Error{
				Message: fmt.Sprintf("not signed in as %s", r.Scope),
				Origin:  OriginApplication,
				kind:    ErrUnauthorized,
			}
		}
	}

	req, err := c.newRequest(ctx, r, token)
	if err != nil {
		return err
	}
	requestID := req.Header.Get(common.RequestIDHeader)
	started := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug(ctx, "request failed", "request_id", requestID, "method", r.Method, "path", r.Path, "error", err)
		return transportError(fmt.Sprintf("%s %s: %v", r.Method, r.Path, unwrapURLError(err)), err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug(ctx, "request done",
		"request_id", requestID,
		"method", r.Method,
		"path", r.Path,
		"status", resp.StatusCode,
		"elapsed", time.Since(started),
	)

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return applicationError(resp.StatusCode, errorMessage(resp.StatusCode, body))
	}

	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return decodeError(resp.StatusCode, err)
	}
	if v, ok := dest.(validator); ok {
		if err := v.Validate(); err != nil {
			return decodeError(resp.StatusCode, err)
		}
	}
	return nil
}

func (c *HTTPClient) newRequest(ctx context.Context, r Request, token string) (*http.Request, error) {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	u := *c.baseURL
	u.Path = strings.TrimRight(c.baseURL.Path, "/") + "/" + strings.TrimLeft(r.Path, "/")
	if len(r.Query) > 0 {
		u.RawQuery = r.Query.Encode()
	}

	var body io.Reader
	if r.Body != nil {
		b, err := json.Marshal(r.Body)
		if err != nil {
			return nil, &Error{Message: fmt.Sprintf("encode request: %v", err), Origin: OriginApplication, Err: err}
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("create request: %v", err), Origin: OriginTransport, Err: err}
	}
	req.Header.Set("Accept", common.ContentTypeJSON)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(common.RequestIDHeader, uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", common.ContentTypeJSON)
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
	}
	return req, nil
}

// errorMessage extracts the server's explanation from an error body.
func errorMessage(status int, body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if m := strings.TrimSpace(payload.Message); m != "" {
			return m
		}
		if m := strings.TrimSpace(payload.Error); m != "" {
			return m
		}
	}
	trimmed := strings.TrimSpace(string(body))
	if trimmed != "" && !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "<") {
		return trimmed
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("status %d", status)
}

func unwrapURLError(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Err
	}
	return err
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBackendURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse backend url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse backend url %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
