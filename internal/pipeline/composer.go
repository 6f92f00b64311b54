// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one compose action end to end: fetch papers,
// format citations, generate section prose and interleave markers.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/citation-composer/internal/cite"
	"github.com/pdiddy/citation-composer/internal/compose"
	"github.com/pdiddy/citation-composer/internal/observability"
	"github.com/pdiddy/citation-composer/internal/prose"
	"github.com/pdiddy/citation-composer/internal/search"
	"github.com/pdiddy/citation-composer/pkg/types"
)

// Composer wires a search backend and a prose provider into the compose
// pipeline. A Composer holds no per-request state and is safe for
// concurrent use when its Backend and Provider are.
type Composer struct {
	Backend  search.Backend
	Provider prose.Provider

	// Assigner picks markers per sentence; nil means round-robin.
	Assigner compose.Assigner

	// Defaults fill unset request fields.
	Defaults types.ComposeConfig

	Logger  zerolog.Logger
	Metrics *observability.Metrics
}

// Compose builds a document for req. It only fails on invalid input
// (ErrNoInput or a validation error). Search failures yield a document
// with NoResults set; generation failures yield an inline placeholder in
// the affected section.
func (c *Composer) Compose(ctx context.Context, req types.ComposeRequest) (*types.ComposedDocument, error) {
	req = Normalize(req, c.Defaults)
	if err := Validate(req); err != nil {
		return nil, err
	}

	if c.Defaults.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Defaults.Timeout)
		defer cancel()
	}

	start := time.Now()
	defer c.Metrics.ObserveCompose(start)

	logger := observability.Component(c.Logger, "pipeline")
	provider := c.Provider
	if provider == nil {
		provider = prose.Mock{}
	}

	doc := &types.ComposedDocument{
		Title:      req.DocumentTitle(),
		Style:      req.Style,
		Sections:   []types.ComposedSection{},
		References: []string{},
	}

	papers := search.Fetch(ctx, c.Backend, req.Topic, req.Limit, logger, c.Metrics)
	doc.Papers = papers
	if len(papers) == 0 {
		doc.NoResults = true
		for range req.Sections {
			c.Metrics.ObserveGeneration(provider.Name(), observability.OutcomeSkipped)
		}
		logger.Info().Str("topic", req.Topic).Msg("no papers found")
		return doc, nil
	}

	markers := cite.Markers(papers, req.Style)
	doc.References = cite.References(papers, req.Style)

	for _, name := range req.Sections {
		doc.Sections = append(doc.Sections, c.composeSection(ctx, logger, provider, req.Topic, name, markers))
	}

	logger.Info().
		Str("topic", req.Topic).
		Int("papers", len(papers)).
		Int("sections", len(doc.Sections)).
		Dur("elapsed", time.Since(start)).
		Msg("compose complete")
	return doc, nil
}

func (c *Composer) composeSection(ctx context.Context, logger zerolog.Logger, provider prose.Provider, topic, name string, markers []string) types.ComposedSection {
	text, err := provider.Generate(ctx, topic, name)
	if err != nil {
		reason := prose.Reason(err)
		logger.Warn().Err(err).Str("provider", provider.Name()).Str("section", name).Msg("generation failed")
		c.Metrics.ObserveGeneration(provider.Name(), observability.OutcomeError)
		return types.ComposedSection{
			Name: name,
			Text: Placeholder(name, reason),
			Err:  reason,
		}
	}

	c.Metrics.ObserveGeneration(provider.Name(), observability.OutcomeOK)
	return types.ComposedSection{
		Name: name,
		Text: compose.Compose(text, markers, c.Assigner),
	}
}

// Placeholder is the inline text shown in place of a section whose
// generation failed.
func Placeholder(section, reason string) string {
	return fmt.Sprintf("[Error generating %s: %s]", section, reason)
}
