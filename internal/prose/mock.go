// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prose

import (
	"context"
	"fmt"
	"strings"
)

// Mock returns deterministic template prose of five sentences. It needs no
// credentials and no network.
type Mock struct{}

// Name returns the provider identifier.
func (Mock) Name() string { return "mock" }

var mockTemplates = []string{
	"This %s examines %s in the context of current research.",
	"Prior work has approached %[2]s from several complementary directions.",
	"The %[1]s outlines the central questions that motivate this study.",
	"Evidence from recent literature suggests that %[2]s remains an open and active area.",
	"Taken together, these observations frame the %[1]s and the contribution of this paper.",
}

// Generate implements Provider.
func (Mock) Generate(ctx context.Context, topic, section string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	sec := strings.ToLower(strings.TrimSpace(section))
	if sec == "" {
		sec = "section"
	}
	sentences := make([]string, len(mockTemplates))
	for i, tmpl := range mockTemplates {
		sentences[i] = fmt.Sprintf(tmpl, sec, strings.TrimSpace(topic))
	}
	return strings.Join(sentences, " "), nil
}
