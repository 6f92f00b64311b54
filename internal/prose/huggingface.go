// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prose

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/pdiddy/citation-composer/internal/httputil"
)

// huggingFaceAPIBase is the Inference API root; the model id is appended.
// Package-level var for test substitution.
var huggingFaceAPIBase = "https://api-inference.huggingface.co/models/"

// HuggingFaceProvider calls the Hugging Face Inference API for a
// text-generation model.
type HuggingFaceProvider struct {
	Token       string
	Model       string
	Temperature float64
	MaxTokens   int
	Client      *httputil.Client
}

// Name returns the provider identifier.
func (h *HuggingFaceProvider) Name() string { return "huggingface" }

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	Temperature  float64 `json:"temperature"`
	MaxNewTokens int     `json:"max_new_tokens"`
}

type hfGeneration struct {
	GeneratedText string `json:"generated_text"`
}

// Generate implements Provider. The model echoes the prompt before its
// continuation, so only the last non-empty line of generated_text is kept.
func (h *HuggingFaceProvider) Generate(ctx context.Context, topic, section string) (string, error) {
	if h.Token == "" {
		return "", fmt.Errorf("huggingface: %w", ErrMissingCredential)
	}
	prompt, err := Prompt(topic, section)
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}

	bodyBytes, err := json.Marshal(hfRequest{
		Inputs: prompt,
		Parameters: hfParameters{
			Temperature:  h.Temperature,
			MaxNewTokens: h.MaxTokens,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, huggingFaceAPIBase+h.Model, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+h.Token)

	client := h.Client
	if client == nil {
		client = httputil.Wrap(http.DefaultClient)
	}
	resp, err := client.Do(ctx, req)
	if err != nil {
		return "", fmt.Errorf("calling HuggingFace API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", newAPIError("HuggingFace", resp)
	}

	var gens []hfGeneration
	if err := json.NewDecoder(resp.Body).Decode(&gens); err != nil {
		return "", fmt.Errorf("decoding HuggingFace response: %w: %v", ErrMalformedResponse, err)
	}
	if len(gens) == 0 {
		return "", fmt.Errorf("empty HuggingFace response: %w", ErrMalformedResponse)
	}

	text := lastLine(gens[0].GeneratedText)
	if text == "" {
		return "", fmt.Errorf("no generated_text in HuggingFace response: %w", ErrMalformedResponse)
	}
	return text, nil
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return ""
}
