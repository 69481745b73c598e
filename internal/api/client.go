// Package api implements the JSON client for the marketplace REST API
// (/api/v1). It injects bearer tokens, enforces a request timeout, retries
// transient failures with backoff, and maps failures to a typed *Error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultTimeout    = 15 * time.Second
	defaultMaxRetries = 2
	defaultBackoff    = 500 * time.Millisecond
)

// TokenSource supplies the current bearer token. An empty string means the
// caller is unauthenticated and no Authorization header is sent.
type TokenSource interface {
	Token() string
}

// TokenSourceFunc adapts a func to a TokenSource.
type TokenSourceFunc func() string

// Token returns f().
func (f TokenSourceFunc) Token() string { return f() }

// Client issues JSON requests against the marketplace API. The zero value is
// not usable; create one with New.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	maxRetries int
	backoff    time.Duration

	// onAuthExpired is invoked when an authenticated request (one that
	// carried a bearer token) receives 401. Registered by the session
	// manager; replaces the browser-style global auth-expired event.
	onAuthExpired func()

	tracer   trace.Tracer
	duration metric.Float64Histogram
	retries  metric.Int64Counter
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying *http.Client (e.g. in tests).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithTokenSource sets the bearer token source for authenticated requests.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithRetry sets the max retry count for transient failures and the initial
// backoff between attempts (doubled each retry).
func WithRetry(maxRetries int, backoff time.Duration) Option {
	return func(c *Client) {
		if maxRetries >= 0 {
			c.maxRetries = maxRetries
		}
		if backoff > 0 {
			c.backoff = backoff
		}
	}
}

// WithAuthExpiredHandler registers fn to run when an authenticated request
// receives 401. fn must be safe for concurrent use; the client may invoke it
// from multiple in-flight requests.
func WithAuthExpiredHandler(fn func()) Option {
	return func(c *Client) { c.onAuthExpired = fn }
}

// WithTelemetry sets the tracer and meter providers used to instrument
// requests. Defaults to the otel globals (no-op unless configured).
func WithTelemetry(tp trace.TracerProvider, mp metric.MeterProvider) Option {
	return func(c *Client) {
		if tp != nil {
			c.tracer = tp.Tracer("moda.client.api")
		}
		if mp != nil {
			c.instruments(mp.Meter("moda.client.api"))
		}
	}
}

// New returns a Client for the API at baseURL (e.g. https://api.moda.example).
// A trailing slash on baseURL is ignored.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		maxRetries: defaultMaxRetries,
		backoff:    defaultBackoff,
	}
	c.tracer = otel.GetTracerProvider().Tracer("moda.client.api")
	c.instruments(otel.GetMeterProvider().Meter("moda.client.api"))
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) instruments(m metric.Meter) {
	c.duration, _ = m.Float64Histogram("api.request.duration",
		metric.WithUnit("s"),
		metric.WithDescription("Duration of API requests including retries."))
	c.retries, _ = m.Int64Counter("api.request.retries",
		metric.WithDescription("Number of retried API request attempts."))
}

// Get issues GET path and decodes the JSON response into out (ignored if nil).
func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// Post issues POST path with body (JSON-encoded, may be nil) and decodes into out.
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

// Put issues PUT path with body and decodes into out.
func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

// Delete issues DELETE path and decodes into out.
func (c *Client) Delete(ctx context.Context, path string, out interface{}) error {
	return c.Do(ctx, http.MethodDelete, path, nil, out)
}

// Do issues a request and decodes the JSON response body into out. A bearer
// token is attached when the token source has one; a 401 on such a request
// triggers the registered auth-expired handler. Transient failures (network
// errors, and 5xx on GET) are retried up to the configured limit with doubling
// backoff; other non-2xx statuses return *Error immediately.
func (c *Client) Do(ctx context.Context, method, path string, body, out interface{}) error {
	var payload []byte
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode request: %w", err)
		}
		payload = raw
	}

	ctx, span := c.tracer.Start(ctx, method+" "+path)
	defer span.End()
	start := time.Now()
	err := c.doWithRetry(ctx, method, path, payload, out)
	if c.duration != nil {
		c.duration.Record(ctx, time.Since(start).Seconds(),
			metric.WithAttributes(
				attribute.String("http.method", method),
				attribute.Bool("error", err != nil),
			))
	}
	if err != nil {
		span.RecordError(err)
	}
	return err
}

func (c *Client) doWithRetry(ctx context.Context, method, path string, payload []byte, out interface{}) error {
	var lastErr error
	backoff := c.backoff
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if c.retries != nil {
				c.retries.Add(ctx, 1, metric.WithAttributes(attribute.String("http.method", method)))
			}
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return &Error{Status: 0, Message: ctx.Err().Error()}
			}
			backoff *= 2
		}
		retryable, err := c.doOnce(ctx, method, path, payload, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable {
			return err
		}
	}
	return lastErr
}

// doOnce performs a single attempt. The bool result reports whether the
// failure is retryable.
func (c *Client) doOnce(ctx context.Context, method, path string, payload []byte, out interface{}) (bool, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return false, &Error{Status: 0, Message: err.Error()}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	authed := false
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
			authed = true
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Timeouts, resets, refused connections: no response was produced.
		return isTransient(err), &Error{Status: 0, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			return false, nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return false, &Error{Status: resp.StatusCode, Message: "malformed response body"}
		}
		return false, nil
	}

	apiErr := &Error{Status: resp.StatusCode, Message: errorMessage(resp)}
	if resp.StatusCode == http.StatusUnauthorized && authed && c.onAuthExpired != nil {
		c.onAuthExpired()
	}
	// 5xx is retryable only for GET; 4xx never is.
	return resp.StatusCode >= 500 && method == http.MethodGet, apiErr
}

// errorMessage extracts the server's error message. The API reports errors as
// {"detail": "..."}; fall back to a generic message per status class.
func errorMessage(resp *http.Response) string {
	var body struct {
		Detail string `json:"detail"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(raw, &body); err == nil && body.Detail != "" {
		return body.Detail
	}
	if resp.StatusCode >= 500 {
		return "server error, please try again"
	}
	return http.StatusText(resp.StatusCode)
}

// isTransient reports whether a transport-level error is worth retrying.
func isTransient(err error) bool {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return false
	}
	if urlErr.Timeout() {
		return true
	}
	var netErr net.Error
	if errors.As(urlErr.Err, &netErr) && netErr.Timeout() {
		return true
	}
	var opErr *net.OpError
	if errors.As(urlErr.Err, &opErr) {
		// Connection refused/reset; the service may come back.
		return true
	}
	return false
}
