// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prose generates section prose for a research topic through a
// pluggable text-generation provider.
package prose

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/citation-composer/internal/httputil"
	"github.com/pdiddy/citation-composer/pkg/types"
)

// Sampling defaults.
const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 300
)

// Default model identifiers per provider.
const (
	DefaultClaudeModel      = "claude-sonnet-4-20250514"
	DefaultHuggingFaceModel = "mistralai/Mistral-7B-Instruct-v0.1"
	DefaultGeminiModel      = "gemini-2.0-flash"
)

// Provider produces prose for one section of a paper about topic. The prose
// carries no citations; markers are added later by the composer.
type Provider interface {
	Name() string
	Generate(ctx context.Context, topic, section string) (string, error)
}

// New builds the provider selected by cfg.Provider. Remote providers with
// no API key are still returned; their Generate fails with
// ErrMissingCredential so the failure surfaces per section.
func New(ctx context.Context, cfg types.ProseConfig) (Provider, error) {
	temperature := cfg.Temperature
	if temperature <= 0 {
		temperature = DefaultTemperature
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	switch types.ProviderKind(strings.ToLower(string(cfg.Provider))) {
	case "", types.ProviderMock:
		return Mock{}, nil
	case types.ProviderClaude:
		return &ClaudeProvider{
			APIKey:    cfg.APIKey,
			Model:     orDefault(cfg.Model, DefaultClaudeModel),
			MaxTokens: maxTokens,
			Client:    httputil.NewClient(cfg.HTTPConfig, 0),
		}, nil
	case types.ProviderHuggingFace:
		return &HuggingFaceProvider{
			Token:       cfg.APIKey,
			Model:       orDefault(cfg.Model, DefaultHuggingFaceModel),
			Temperature: temperature,
			MaxTokens:   maxTokens,
			Client:      httputil.NewClient(cfg.HTTPConfig, 0),
		}, nil
	case types.ProviderGemini:
		return NewGemini(ctx, cfg.APIKey, orDefault(cfg.Model, DefaultGeminiModel), temperature, maxTokens)
	default:
		return nil, fmt.Errorf("unknown prose provider %q: use mock, claude, huggingface or gemini", cfg.Provider)
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
