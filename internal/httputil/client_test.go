// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/citation-composer/pkg/types"
)

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(types.HTTPConfig{}, 0)
	assert.Equal(t, 30*time.Second, c.HTTP.Timeout)
	assert.Equal(t, DefaultUserAgent, c.UserAgent)
	assert.Nil(t, c.Limiter)

	c = NewClient(types.HTTPConfig{Timeout: time.Second, UserAgent: "x/1"}, 0.5)
	assert.Equal(t, time.Second, c.HTTP.Timeout)
	assert.Equal(t, "x/1", c.UserAgent)
	require.NotNil(t, c.Limiter)
	assert.Equal(t, 1, c.Limiter.Burst())
}

func TestClientDoSetsUserAgent(t *testing.T) {
	var ua string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	c := NewClient(types.HTTPConfig{UserAgent: "composer-test/1"}, 100)
	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)

	resp, err := c.Do(context.Background(), req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "composer-test/1", ua)
}

func TestClientDoLimiterRespectsContext(t *testing.T) {
	c := NewClient(types.HTTPConfig{}, 0.001)
	// Drain the single token.
	require.True(t, c.Limiter.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	req, err := http.NewRequest(http.MethodGet, "http://127.0.0.1:0", nil)
	require.NoError(t, err)

	_, err = c.Do(ctx, req)
	assert.Error(t, err)
}
