// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/citation-composer/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	DefaultUserAgent = "citation-composer/0.1"
)

// Client wraps an *http.Client with a token-bucket rate limiter, a default
// User-Agent and DoWithRetry. It is safe for concurrent use.
type Client struct {
	HTTP       *http.Client
	Limiter    *rate.Limiter
	MaxRetries int
	UserAgent  string
}

// NewClient builds a Client from shared HTTP settings. A ratePerSecond of
// zero or less disables rate limiting.
func NewClient(cfg types.HTTPConfig, ratePerSecond float64) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	c := &Client{
		HTTP:       &http.Client{Timeout: timeout},
		MaxRetries: cfg.MaxRetries,
		UserAgent:  ua,
	}
	if ratePerSecond > 0 {
		burst := int(ratePerSecond)
		if burst < 1 {
			burst = 1
		}
		c.Limiter = rate.NewLimiter(rate.Limit(ratePerSecond), burst)
	}
	return c
}

// Wrap returns a Client around an existing *http.Client with no rate limit.
// Tests use it with httptest servers.
func Wrap(hc *http.Client) *Client {
	return &Client{HTTP: hc, UserAgent: DefaultUserAgent}
}

// Do waits for the rate limiter, sets the User-Agent header when the
// request has none, and sends the request through DoWithRetry.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait: %w", err)
		}
	}
	if req.Header.Get("User-Agent") == "" && c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	return DoWithRetry(ctx, c.HTTP, req, c.MaxRetries)
}
