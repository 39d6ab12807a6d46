// Package backend is the HTTP client for the skills REST backend. Every call
// goes through a transport that attaches the session's bearer token and tears
// the session down when the backend answers 401.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/skillhub/skills-dashboard/internal/observability/metrics"
	"github.com/skillhub/skills-dashboard/internal/observability/statsd"
	"github.com/skillhub/skills-dashboard/internal/ports"
)

const (
	defaultTimeout  = 30 * time.Second
	maxResponseSize = 4 << 20
)

// Config holds configuration for the backend client.
type Config struct {
	BaseURL        string
	Timeout        time.Duration
	Transport      http.RoundTripper // Optional, defaults to http.DefaultTransport
	Headers        map[string]string
	LoginTokenPath string
	LoginUserPath  string
	Metrics        statsd.Sink
	Logger         *slog.Logger
}

// Client calls the skills backend. The zero session client sends no bearer
// token; use WithSession for calls made on behalf of a signed-in browser.
type Client struct {
	baseURL string
	timeout time.Duration
	base    http.RoundTripper
	headers map[string]string
	login   loginExtractor
	metrics statsd.Sink
	logger  *slog.Logger
	http    *http.Client
}

var _ ports.BackendAPI = (*Client)(nil)

// New builds a shared backend client. Callers should pass a sanitized config.
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("backend base url is required")
	}
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("backend base url %q must be absolute", base)
	}

	login, err := newLoginExtractor(cfg.LoginTokenPath, cfg.LoginUserPath)
	if err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	rt := cfg.Transport
	if rt == nil {
		rt = http.DefaultTransport
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	headers := make(map[string]string, len(cfg.Headers))
	for k, v := range cfg.Headers {
		headers[k] = v
	}

	c := &Client{
		baseURL: base,
		timeout: timeout,
		base:    rt,
		headers: headers,
		login:   login,
		metrics: cfg.Metrics,
		logger:  logger.With("component", "backend"),
	}
	c.http = c.httpClient(nil, nil)
	return c, nil
}

// WithSession returns a client bound to one browser session. The token source
// is read on every request and onUnauthorized runs for every non-anonymous 401.
func (c *Client) WithSession(tokens ports.TokenSource, onUnauthorized ports.UnauthorizedHandler) *Client {
	clone := *c
	clone.http = c.httpClient(tokens, onUnauthorized)
	return &clone
}

func (c *Client) httpClient(tokens ports.TokenSource, onUnauthorized ports.UnauthorizedHandler) *http.Client {
	return &http.Client{
		Timeout: c.timeout,
		Transport: &authTransport{
			base:           c.base,
			headers:        c.headers,
			tokens:         tokens,
			onUnauthorized: onUnauthorized,
			logger:         c.logger,
		},
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// call describes one backend request. endpoint is the route template used for
// metrics and errors; path is the concrete path.
type call struct {
	method   string
	endpoint string
	path     string
	query    url.Values
	body     any
	out      any
}

func (c *Client) do(ctx context.Context, cl call) (err error) {
	start := time.Now()
	status := 0
	defer func() {
		metrics.EmitBackendRequest(c.metrics, metrics.BackendMetric{
			Method:   cl.method,
			Endpoint: cl.endpoint,
			Status:   status,
			Duration: time.Since(start),
			Err:      err,
		})
	}()

	req, err := c.newRequest(ctx, cl)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", cl.method, cl.endpoint, err)
	}
	status = resp.StatusCode

	body, err := readBody(resp)
	if err != nil {
		return fmt.Errorf("%s %s: %w", cl.method, cl.endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Method:     cl.method,
			Path:       cl.path,
			Message:    parseMessage(body),
			Body:       body,
		}
	}

	if cl.out == nil {
		return nil
	}
	if raw, ok := cl.out.(*[]byte); ok {
		*raw = body
		return nil
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return &DecodeError{Endpoint: cl.endpoint, Err: errors.New("empty response body")}
	}
	if err := json.Unmarshal(body, cl.out); err != nil {
		return &DecodeError{Endpoint: cl.endpoint, Err: err}
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, cl call) (*http.Request, error) {
	target := c.baseURL + cl.path
	if len(cl.query) > 0 {
		target += "?" + cl.query.Encode()
	}

	var body io.Reader
	if cl.body != nil {
		payload, err := json.Marshal(cl.body)
		if err != nil {
			return nil, fmt.Errorf("encode %s request: %w", cl.endpoint, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", cl.endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func readBody(resp *http.Response) ([]byte, error) {
	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	closeErr := resp.Body.Close()
	if readErr != nil {
		return nil, errors.Join(fmt.Errorf("read response body: %w", readErr), closeErr)
	}
	if closeErr != nil {
		return nil, fmt.Errorf("close response body: %w", closeErr)
	}
	return body, nil
}

type validator interface {
	Validate() error
}

// validate runs Validate on v and on every element when v is a slice pointer.
func validate(endpoint string, v any) error {
	if val, ok := v.(validator); ok {
		if err := val.Validate(); err != nil {
			return &DecodeError{Endpoint: endpoint, Err: err}
		}
	}
	return nil
}

func validateEach[T any](endpoint string, items []T) error {
	for i := range items {
		if err := validate(endpoint, &items[i]); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}

func pathID(s fmt.Stringer) string { return url.PathEscape(s.String()) }
