// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP plumbing shared by the search backends
// and the prose providers: bounded backoff on transient failures and
// client-side rate limiting.
package httputil

import (
	"context"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"
)

// RetryBaseDelay controls the base duration for exponential backoff.
// Tests override this to avoid real sleeps.
var RetryBaseDelay = time.Second

// MaxRetryDelay caps a single backoff wait, including Retry-After hints.
var MaxRetryDelay = 30 * time.Second

const defaultMaxRetries = 3

// DoWithRetry executes an HTTP request and retries transient failures with
// exponential backoff: HTTP 429, HTTP 5xx and transport errors. The delay
// starts at RetryBaseDelay and doubles each attempt; a Retry-After header
// overrides it. Waits never exceed MaxRetryDelay.
//
// When maxRetries is 0 the default (3) is used. Retried response bodies are
// drained and closed. Request bodies are replayed through req.GetBody. If the
// context is cancelled during a wait the function returns ctx.Err(). After
// exhausting retries the last response is returned so the caller can
// inspect its status.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	if client == nil {
		client = http.DefaultClient
	}

	for attempt := 0; ; attempt++ {
		attemptReq, err := cloneRequest(ctx, req)
		if err != nil {
			return nil, err
		}

		resp, err := client.Do(attemptReq)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			if attempt >= maxRetries {
				return nil, err
			}
			if werr := wait(ctx, backoff(attempt)); werr != nil {
				return nil, werr
			}
			continue
		}

		if !IsTransientStatus(resp.StatusCode) || attempt >= maxRetries {
			return resp, nil
		}

		delay := backoff(attempt)
		if hint, ok := retryAfter(resp); ok {
			delay = hint
		}
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		if werr := wait(ctx, delay); werr != nil {
			return nil, werr
		}
	}
}

// IsTransientStatus reports whether an HTTP status is worth retrying.
func IsTransientStatus(code int) bool {
	return code == http.StatusTooManyRequests || (code >= 500 && code <= 599)
}

func cloneRequest(ctx context.Context, req *http.Request) (*http.Request, error) {
	r := req.Clone(ctx)
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		r.Body = body
	}
	return r, nil
}

func backoff(attempt int) time.Duration {
	d := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
	if d > MaxRetryDelay {
		return MaxRetryDelay
	}
	return d
}

// retryAfter parses a Retry-After header given in seconds or as an HTTP date.
func retryAfter(resp *http.Response) (time.Duration, bool) {
	v := resp.Header.Get("Retry-After")
	if v == "" {
		return 0, false
	}
	var d time.Duration
	if secs, err := strconv.Atoi(v); err == nil {
		d = time.Duration(secs) * time.Second
	} else if t, err := http.ParseTime(v); err == nil {
		d = time.Until(t)
	} else {
		return 0, false
	}
	if d < 0 {
		d = 0
	}
	if d > MaxRetryDelay {
		d = MaxRetryDelay
	}
	return d, true
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
