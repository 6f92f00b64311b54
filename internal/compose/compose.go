// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compose

import "strings"

// Compose attaches one citation marker to every sentence of prose and joins
// the result with single spaces. With no markers the sentences are rejoined
// unchanged. A nil assigner means RoundRobin.
func Compose(prose string, markers []string, assigner Assigner) string {
	sentences := SplitSentences(prose)
	if len(sentences) == 0 {
		return ""
	}
	if len(markers) == 0 {
		return strings.Join(sentences, " ")
	}
	if assigner == nil {
		assigner = RoundRobin{}
	}

	idx := assigner.Assign(len(sentences), len(markers))
	parts := make([]string, 0, 2*len(sentences))
	for i, s := range sentences {
		parts = append(parts, s, markers[idx[i]])
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
