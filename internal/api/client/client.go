// Package client provides a thin HTTP client for the card marketplace API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/donaldgifford/card-market/internal/metrics"
	"github.com/donaldgifford/card-market/pkg/logger"
)

// User-facing messages produced by the transport itself.
const (
	DefaultErrorMessage    = "Nao foi possivel concluir a requisicao."
	ConnectionErrorMessage = "Falha de conexao com o servidor."
)

// ErrConnection is wrapped by every APIError caused by a failure to reach the
// server. Such errors carry status 0.
var ErrConnection = errors.New("connection failure")

// APIError is the uniform failure returned by the transport. Status is 0 for
// connection failures and the HTTP status code otherwise.
type APIError struct {
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("API error (HTTP %d): %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// AsAPIError reports whether err is (or wraps) an *APIError and returns it.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// Client is a thin HTTP client for the marketplace API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *slog.Logger
	nowFunc    func() time.Time
}

// New creates a new API client targeting the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		log:        logger.Discard(),
		nowFunc:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRateLimit throttles outgoing requests with a token bucket. A
// non-positive perSecond leaves the client unthrottled.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.log = logger.Component(l, "api")
	}
}

// BaseURL returns the API base URL the client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Request describes a single API call.
type Request struct {
	Method string
	Path   string
	// Body is JSON-encoded when non-nil.
	Body any
	// Token is sent as a bearer token when non-empty.
	Token string
	// Operation names the call in metrics and logs.
	Operation string
}

// Do executes r and decodes the response payload into dst.
//
// Response bodies that are not valid JSON are kept as raw text: a *string dst
// receives that text, any other dst is left untouched. Non-2xx responses fail
// with an *APIError; network failures fail with an *APIError of status 0 that
// wraps ErrConnection.
func (c *Client) Do(ctx context.Context, r Request, dst any) error {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}
	op := r.Operation
	if op == "" {
		op = strings.ToLower(method)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter wait: %w", err)
		}
	}

	var bodyReader io.Reader
	if r.Body != nil {
		data, err := json.Marshal(r.Body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+r.Path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if r.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.Token != "" {
		req.Header.Set("Authorization", "Bearer "+r.Token)
	}

	start := c.nowFunc()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(op, "connection_error", start)
		c.log.Debug("request failed", "operation", op, "method", method, "path", r.Path, "error", err)
		return connectionError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observe(op, "connection_error", start)
		return connectionError(fmt.Errorf("reading response body: %w", err))
	}

	c.observe(op, strconv.Itoa(resp.StatusCode), start)
	c.log.Debug("request",
		"operation", op,
		"method", method,
		"path", r.Path,
		"status", resp.StatusCode,
		"bytes", len(raw),
	)

	payload, isJSON := parsePayload(raw)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(payload)}
	}

	if dst == nil || payload == nil {
		return nil
	}

	if !isJSON {
		if s, ok := dst.(*string); ok {
			*s = payload.(string)
			return nil
		}
		c.log.Debug("ignoring non-JSON response body", "operation", op)
		return nil
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *Client) observe(op, status string, start time.Time) {
	metrics.APIRequestDuration.WithLabelValues(op).Observe(c.nowFunc().Sub(start).Seconds())
	metrics.APIRequestsTotal.WithLabelValues(op, status).Inc()
}

func connectionError(err error) *APIError {
	return &APIError{
		Status:  0,
		Message: ConnectionErrorMessage,
		Err:     errors.Join(ErrConnection, err),
	}
}

// parsePayload returns the decoded JSON value of raw, or raw as a string when
// it is not valid JSON. An empty body yields nil.
func parsePayload(raw []byte) (any, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return string(raw), false
	}
	return parsed, true
}

func errorMessage(payload any) string {
	switch v := payload.(type) {
	case map[string]any:
		for _, key := range []string{"message", "error"} {
			if s, ok := v[key].(string); ok && strings.TrimSpace(s) != "" {
				return s
			}
		}
	case string:
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return DefaultErrorMessage
}
