package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/photomarket/gateway/internal/api/metrics"
	"github.com/photomarket/gateway/internal/core/domain"
)

const (
	defaultTimeout = 10 * time.Second

	// fallbackMessage is shown when the backend returns an error without a
	// usable message body.
	fallbackMessage = "upstream request failed"
)

// Error is a non-2xx backend response that maps to no domain sentinel.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("upstream: %d %s", e.Status, e.Message)
}

// Client is the single wrapper around the PhotoMarket backend. Every call
// goes through do(), which applies one consistent timeout, attaches the
// bearer token, decodes the error envelope, and maps 401 responses to
// domain.ErrUpstreamUnauthorized so callers can trigger session teardown.
//
// Retry policy: idempotent GETs are retried at most once on transport errors
// and 5xx responses. Mutating calls (cart, purchase, payout, refund) are
// never retried — a duplicate POST moves money twice.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates a backend client. A non-positive timeout falls back to
// defaultTimeout.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// getJSON performs a GET with the one-retry policy and returns the raw body.
func (c *Client) getJSON(ctx context.Context, path, token string, query url.Values) (json.RawMessage, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var lastErr error
	for attempt := 0; attempt <= 1; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		setHeaders(req, token, "")

		body, err := c.roundTrip(req)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retryable(err) || ctx.Err() != nil {
			return nil, err
		}
		c.log.Debug().Err(err).Str("path", path).Msg("retrying upstream GET")
	}
	return nil, lastErr
}

// postJSON performs a mutating call with a JSON body. Never retried.
func (c *Client) postJSON(ctx context.Context, method, path, token string, payload any) (json.RawMessage, error) {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode payload: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	setHeaders(req, token, "application/json")

	return c.roundTrip(req)
}

// postStream forwards an opaque body (multipart uploads) without buffering
// it. Never retried: the body can only be read once.
func (c *Client) postStream(ctx context.Context, path, token, contentType string, body io.Reader) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	setHeaders(req, token, contentType)

	return c.roundTrip(req)
}

// roundTrip executes one attempt and maps the response.
func (c *Client) roundTrip(req *http.Request) (json.RawMessage, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(req.Method, "error").Inc()
		return nil, &transportError{err: err}
	}
	defer resp.Body.Close()

	metrics.UpstreamRequestsTotal.WithLabelValues(req.Method, strconv.Itoa(resp.StatusCode)).Inc()
	metrics.UpstreamRequestDuration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, &transportError{err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}

	// Sentinel mapping applies only to token-authenticated calls. A 401 on
	// the login endpoint itself is a credential failure, not a dead session,
	// and its message must survive for the user.
	if req.Header.Get("Authorization") != "" {
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return nil, domain.ErrUpstreamUnauthorized
		case http.StatusForbidden:
			return nil, domain.ErrForbidden
		case http.StatusNotFound:
			return nil, domain.ErrNotFound
		}
	}

	return nil, &Error{Status: resp.StatusCode, Message: errorMessage(body)}
}

func setHeaders(req *http.Request, token, contentType string) {
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
}

// transportError marks network-level failures (DNS, refused, timeout). These
// must not be confused with authentication failures: a network blip never
// logs the user out.
type transportError struct {
	err error
}

func (e *transportError) Error() string { return "upstream transport: " + e.err.Error() }
func (e *transportError) Unwrap() error { return e.err }

// IsTransport reports whether err is a network-level backend failure rather
// than an HTTP response.
func IsTransport(err error) bool {
	var te *transportError
	return errors.As(err, &te)
}

// retryable reports whether a GET may be attempted once more.
func retryable(err error) bool {
	var te *transportError
	if errors.As(err, &te) {
		return true
	}
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Status >= 500
	}
	return false
}

// errorMessage extracts the backend's error envelope, tolerating both the
// {"message": …} and {"error": …} shapes seen across endpoints.
func errorMessage(body []byte) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}
	return fallbackMessage
}
