// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search fetches paper records from academic search APIs.
//
// Fetch is the single entry point used by the composer: it short-circuits
// empty queries, clamps the limit, and degrades every transport or status
// failure to an empty result.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/citation-composer/internal/observability"
	"github.com/pdiddy/citation-composer/pkg/types"
)

// Limit bounds for a single fetch.
const (
	MinLimit     = 1
	MaxLimit     = 50
	DefaultLimit = 4
)

// ErrStatus is wrapped by backends when the API answers with a non-200 status.
var ErrStatus = errors.New("unexpected HTTP status")

// Backend searches a single academic API. Each backend (Semantic Scholar,
// OpenAlex, arXiv) implements this interface.
type Backend interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]types.PaperRecord, error)
}

// Fetch returns up to limit papers matching query. An empty query returns
// nil without touching the network. Backend errors are logged and reported
// as an empty result: callers see "no results", never a failure.
func Fetch(ctx context.Context, backend Backend, query string, limit int, logger zerolog.Logger, metrics *observability.Metrics) []types.PaperRecord {
	query = strings.TrimSpace(query)
	if query == "" || backend == nil {
		return nil
	}
	limit = ClampLimit(limit)

	papers, err := backend.Search(ctx, query, limit)
	if err != nil {
		logger.Warn().Err(err).Str("backend", backend.Name()).Str("query", query).Msg("search failed, treating as no results")
		metrics.ObserveFetch(backend.Name(), observability.OutcomeError, 0)
		return []types.PaperRecord{}
	}
	if len(papers) > limit {
		papers = papers[:limit]
	}
	if papers == nil {
		papers = []types.PaperRecord{}
	}

	outcome := observability.OutcomeOK
	if len(papers) == 0 {
		outcome = observability.OutcomeEmpty
	}
	metrics.ObserveFetch(backend.Name(), outcome, len(papers))
	logger.Debug().Str("backend", backend.Name()).Str("query", query).Int("papers", len(papers)).Msg("search complete")
	return papers
}

// ClampLimit bounds limit to [MinLimit, MaxLimit].
func ClampLimit(limit int) int {
	switch {
	case limit < MinLimit:
		return MinLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}

// Chain tries each backend in order and returns the first non-empty result.
// Errors are only reported when every backend failed.
type Chain []Backend

// Name joins the member backend names.
func (c Chain) Name() string {
	names := make([]string, len(c))
	for i, b := range c {
		names[i] = b.Name()
	}
	return strings.Join(names, ",")
}

// Search queries backends in order until one returns papers.
func (c Chain) Search(ctx context.Context, query string, limit int) ([]types.PaperRecord, error) {
	var errs []error
	for _, b := range c {
		papers, err := b.Search(ctx, query, limit)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", b.Name(), err))
			continue
		}
		if len(papers) > 0 {
			return papers, nil
		}
	}
	if len(errs) == len(c) && len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return []types.PaperRecord{}, nil
}

// FormatTable writes papers as a human-readable table to w.
func FormatTable(papers []types.PaperRecord, w io.Writer) {
	if len(papers) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-20s  %-4s  %s\n", "#", "Title", "Authors", "Year", "Venue")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for i, p := range papers {
		fmt.Fprintf(w, "%-4d  %-60s  %-20s  %-4s  %s\n",
			i+1, truncate(p.Title, 60), formatAuthors(p.Authors), p.YearLabel(), truncate(p.Venue, 20))
	}
	fmt.Fprintf(w, "\n%d results\n", len(papers))
}

// FormatJSON writes papers as indented JSON to w.
func FormatJSON(papers []types.PaperRecord, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(papers)
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 20)
	default:
		return truncate(authors[0], 14) + " et al."
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
