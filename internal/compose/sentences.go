// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package compose interleaves citation markers into generated prose.
package compose

import (
	"strings"
	"unicode"
)

// SplitSentences splits prose into sentences. A boundary is a '.', '!' or
// '?' followed by whitespace. The final unit is kept even when it has no
// terminal punctuation. Units are trimmed and empty units are dropped.
func SplitSentences(prose string) []string {
	var (
		out   []string
		start int
	)
	runes := []rune(prose)
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '.', '!', '?':
			if i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
				out = appendUnit(out, string(runes[start:i+1]))
				start = i + 1
			}
		}
	}
	return appendUnit(out, string(runes[start:]))
}

func appendUnit(out []string, unit string) []string {
	if unit = strings.TrimSpace(unit); unit != "" {
		out = append(out, unit)
	}
	return out
}
