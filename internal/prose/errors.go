// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prose

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/citation-composer/internal/httputil"
)

var (
	// ErrMissingCredential means the provider is misconfigured: no API key.
	ErrMissingCredential = errors.New("missing API credential")

	// ErrMalformedResponse means the provider answered 200 with a body that
	// does not contain generated text.
	ErrMalformedResponse = errors.New("malformed model output")
)

// APIError is a non-200 answer from a provider.
type APIError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s API returned HTTP %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s API returned HTTP %d: %s", e.Provider, e.StatusCode, e.Body)
}

// IsTransient reports whether retrying later may succeed (429 or 5xx).
func (e *APIError) IsTransient() bool {
	return httputil.IsTransientStatus(e.StatusCode)
}

const maxErrorBody = 512

func newAPIError(provider string, resp *http.Response) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &APIError{
		Provider:   provider,
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}

// Reason returns a short, user-facing description of a generation failure,
// suitable for an inline placeholder.
func Reason(err error) string {
	var apiErr *APIError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingCredential):
		return ErrMissingCredential.Error()
	case errors.Is(err, ErrMalformedResponse):
		return ErrMalformedResponse.Error()
	case errors.As(err, &apiErr):
		return fmt.Sprintf("%s API returned HTTP %d", apiErr.Provider, apiErr.StatusCode)
	default:
		return err.Error()
	}
}
