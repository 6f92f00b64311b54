// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prose

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiProvider generates prose with the Gemini API.
type GeminiProvider struct {
	client      *genai.Client
	model       string
	temperature float32
	maxTokens   int32
}

// NewGemini creates a Gemini provider. An empty API key yields a provider
// whose Generate fails with ErrMissingCredential.
func NewGemini(ctx context.Context, apiKey, model string, temperature float64, maxTokens int) (*GeminiProvider, error) {
	return newGemini(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}, model, temperature, maxTokens)
}

func newGemini(ctx context.Context, cc *genai.ClientConfig, model string, temperature float64, maxTokens int) (*GeminiProvider, error) {
	g := &GeminiProvider{
		model:       model,
		temperature: float32(temperature),
		maxTokens:   int32(maxTokens),
	}
	if cc.APIKey == "" {
		return g, nil
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	g.client = client
	return g, nil
}

// Name returns the provider identifier.
func (g *GeminiProvider) Name() string { return "gemini" }

// Generate implements Provider.
func (g *GeminiProvider) Generate(ctx context.Context, topic, section string) (string, error) {
	if g.client == nil {
		return "", fmt.Errorf("gemini: %w", ErrMissingCredential)
	}
	prompt, err := Prompt(topic, section)
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(g.temperature),
		MaxOutputTokens: g.maxTokens,
	})
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", &APIError{Provider: "Gemini", StatusCode: apiErr.Code, Body: apiErr.Message}
		}
		return "", fmt.Errorf("calling Gemini API: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("no text in Gemini response: %w", ErrMalformedResponse)
	}
	return text, nil
}
