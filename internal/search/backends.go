// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"strings"

	"github.com/pdiddy/citation-composer/internal/httputil"
	"github.com/pdiddy/citation-composer/pkg/types"
)

// Backend names accepted in configuration.
const (
	BackendSemanticScholar = "semantic_scholar"
	BackendOpenAlex        = "openalex"
	BackendArxiv           = "arxiv"
)

// NewBackend builds the configured backend. A single name yields that
// backend; several names yield a Chain in the given order.
func NewBackend(cfg types.SearchConfig) (Backend, error) {
	names := cfg.Backends
	if len(names) == 0 {
		names = []string{BackendSemanticScholar}
	}

	var chain Chain
	for _, name := range names {
		client := httputil.NewClient(cfg.HTTPConfig, cfg.RateLimit)
		switch strings.ToLower(strings.TrimSpace(name)) {
		case BackendSemanticScholar, "semanticscholar", "s2":
			chain = append(chain, &SemanticScholarBackend{Client: client, APIKey: cfg.SemanticScholarAPIKey})
		case BackendOpenAlex:
			chain = append(chain, &OpenAlexBackend{Client: client, Email: cfg.OpenAlexEmail})
		case BackendArxiv:
			chain = append(chain, &ArxivBackend{Client: client})
		default:
			return nil, fmt.Errorf("unknown search backend %q: use semantic_scholar, openalex or arxiv", name)
		}
	}

	if len(chain) == 1 {
		return chain[0], nil
	}
	return chain, nil
}
