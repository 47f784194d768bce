// Package remote is the typed HTTP client for the catalog/order service that
// owns every business rule. Responses are decoded into strict schemas at this
// boundary; callers get either a typed payload or an error.
package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lapak-storefront/internal/domain"
	"lapak-storefront/pkg/logger"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 10 << 20

type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// New creates a client for the remote service at cfg.BaseURL.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("remote base URL is required")
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("invalid remote base URL %q", cfg.BaseURL)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = "lapak-storefront"
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		userAgent:  ua,
	}, nil
}

// APIError is a non-2xx answer, or a 2xx answer with success=false.
type APIError struct {
	StatusCode int
	Message    string
	Method     string
	Path       string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("remote %s %s: %d %s", e.Method, e.Path, e.StatusCode, msg)
}

// Is maps status codes onto the domain sentinels so callers can use
// errors.Is(err, domain.ErrNotFound) and friends.
func (e *APIError) Is(target error) bool {
	switch target {
	case domain.ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case domain.ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	case domain.ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case domain.ErrInvalidInput:
		return e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusUnprocessableEntity
	}
	return false
}

type envelope[T any] struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type empty struct{}

// call sends a JSON request and decodes the data field of the envelope.
func call[T any](ctx context.Context, c *Client, method, path string, body interface{}) (T, error) {
	req, err := jsonRequest(ctx, c, method, path, body)
	if err != nil {
		var zero T
		return zero, err
	}
	return do[T](ctx, c, req)
}

func jsonRequest(ctx context.Context, c *Client, method, path string, body interface{}) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrapf(err, "encode %s %s", method, path)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := c.newRequest(ctx, method, path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, errors.Wrapf(err, "build %s %s", method, path)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if token := domain.TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func do[T any](ctx context.Context, c *Client, req *http.Request) (T, error) {
	var zero T
	start := time.Now()
	method, path := req.Method, req.URL.Path

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.RemoteCall(ctx, method, path, 0, time.Since(start), err)
		return zero, errors.Wrapf(err, "remote %s %s", method, path)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		logger.RemoteCall(ctx, method, path, resp.StatusCode, time.Since(start), err)
		return zero, errors.Wrapf(err, "read %s %s", method, path)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Method: method, Path: path}
		var env envelope[json.RawMessage]
		if json.Unmarshal(raw, &env) == nil {
			apiErr.Message = env.Message
		}
		logger.RemoteCall(ctx, method, path, resp.StatusCode, time.Since(start), apiErr)
		return zero, apiErr
	}

	var env envelope[T]
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			logger.RemoteCall(ctx, method, path, resp.StatusCode, time.Since(start), err)
			return zero, errors.Wrapf(err, "decode %s %s", method, path)
		}
	}
	if env.Success != nil && !*env.Success {
		apiErr := &APIError{StatusCode: http.StatusUnprocessableEntity, Message: env.Message, Method: method, Path: path}
		logger.RemoteCall(ctx, method, path, resp.StatusCode, time.Since(start), apiErr)
		return zero, apiErr
	}

	logger.RemoteCall(ctx, method, path, resp.StatusCode, time.Since(start), nil)
	return env.Data, nil
}

func pathID(format string, ids ...string) string {
	escaped := make([]interface{}, len(ids))
	for i, id := range ids {
		escaped[i] = url.PathEscape(id)
	}
	return fmt.Sprintf(format, escaped...)
}

func withQuery(path string, q url.Values) string {
	if enc := q.Encode(); enc != "" {
		return path + "?" + enc
	}
	return path
}
