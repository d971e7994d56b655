// Package campapi is a client for the camp availability endpoints.
package campapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	dayPath   = "/api/camp-data/"
	rangePath = "/api/camp-data-range"

	// RequestIDHeader carries a per-request identifier for backend logs.
	RequestIDHeader = "X-Request-Id"

	DefaultTimeout   = 15 * time.Second
	DefaultUserAgent = "campcal"

	maxBody = 4 << 20
)

// Client fetches availability counts. Counts are keyed by category label.
type Client struct {
	base      *url.URL
	http      *http.Client
	userAgent string
	log       *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http = &http.Client{Timeout: d}
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a client rooted at baseURL, e.g. "http://localhost:8000".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q must be http or https", baseURL)
	}
	c := &Client{
		base:      u,
		http:      &http.Client{Timeout: DefaultTimeout},
		userAgent: DefaultUserAgent,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type dayEnvelope struct {
	Success bool           `json:"success"`
	Data    map[string]int `json:"data"`
	Error   string         `json:"error,omitempty"`
}

type rangeEnvelope struct {
	Success bool                      `json:"success"`
	Data    map[string]map[string]int `json:"data"`
	Error   string                    `json:"error,omitempty"`
}

// Day fetches the counts for one ISO date.
func (c *Client) Day(ctx context.Context, date string) (map[string]int, error) {
	u := *c.base
	u.Path = c.base.Path + dayPath + url.PathEscape(date)

	var env dayEnvelope
	if err := c.get(ctx, "day", &u, &env, func() (bool, string) { return env.Success, env.Error }); err != nil {
		return nil, err
	}
	if env.Data == nil {
		env.Data = map[string]int{}
	}
	return env.Data, nil
}

// Range fetches the counts for every date between start and end inclusive,
// keyed by ISO date.
func (c *Client) Range(ctx context.Context, start, end string) (map[string]map[string]int, error) {
	u := *c.base
	u.Path = c.base.Path + rangePath
	q := url.Values{}
	q.Set("start_date", start)
	q.Set("end_date", end)
	u.RawQuery = q.Encode()

	var env rangeEnvelope
	if err := c.get(ctx, "range", &u, &env, func() (bool, string) { return env.Success, env.Error }); err != nil {
		return nil, err
	}
	if env.Data == nil {
		env.Data = map[string]map[string]int{}
	}
	return env.Data, nil
}

func (c *Client) get(ctx context.Context, op string, u *url.URL, into any, result func() (bool, string)) error {
	target := u.String()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return &TransportError{Op: op, URL: target, Err: err}
	}
	id := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(RequestIDHeader, id)

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: op, URL: target, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return &TransportError{Op: op, URL: target, Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	c.log.Debug("camp api response", "op", op, "url", target, "status", resp.StatusCode,
		"request_id", id, "elapsed", time.Since(started))

	decodeErr := json.Unmarshal(body, into)
	ok, message := result()
	switch {
	case decodeErr == nil && !ok:
		return &AppError{Op: op, Status: resp.StatusCode, Message: message}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &TransportError{Op: op, URL: target, Status: resp.StatusCode, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	case decodeErr != nil:
		return &TransportError{Op: op, URL: target, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", decodeErr)}
	}
	return nil
}
