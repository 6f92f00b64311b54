// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cite renders in-text citation markers and reference-list entries
// for paper records in APA or MLA style. Both styles select the same
// fields; they differ only in delimiters and quoting.
package cite

import (
	"strings"

	"github.com/pdiddy/citation-composer/pkg/types"
)

// MaxReferenceAuthors is the number of full author names printed in a
// reference entry before "et al." is appended.
const MaxReferenceAuthors = 3

// Placeholders substituted for missing fields.
const (
	UnknownAuthor = "Unknown"
	NoTitle       = "No Title"
)

// InTextMarker returns the parenthetical marker for p, e.g.
// "(Smith & Doe, 2020)" in APA or "(Smith and Doe 2020)" in MLA.
func InTextMarker(p types.PaperRecord, style types.Style) string {
	names := surnames(p.Authors)
	year := p.YearLabel()

	if style == types.StyleMLA {
		return "(" + markerAuthors(names, " and ") + " " + year + ")"
	}
	return "(" + markerAuthors(names, " & ") + ", " + year + ")"
}

// Reference returns the reference-list entry for p.
//
//	APA: Authors (Year). Title. Venue. Available at: URL
//	MLA: Authors. "Title." Venue, Year, URL.
//
// Venue and URL segments are omitted when empty.
func Reference(p types.PaperRecord, style types.Style) string {
	authors := referenceAuthors(p.Authors)
	title := strings.TrimSpace(p.Title)
	if title == "" {
		title = NoTitle
	}
	venue := strings.TrimSpace(p.Venue)
	url := strings.TrimSpace(p.URL)

	var b strings.Builder
	if style == types.StyleMLA {
		b.WriteString(terminate(authors))
		b.WriteString(` "`)
		b.WriteString(terminate(title))
		b.WriteString(`"`)
		tail := []string{p.YearLabel()}
		if venue != "" {
			tail = append([]string{venue}, tail...)
		}
		if url != "" {
			tail = append(tail, url)
		}
		b.WriteString(" " + terminate(strings.Join(tail, ", ")))
		return b.String()
	}

	b.WriteString(authors)
	b.WriteString(" (" + p.YearLabel() + "). ")
	b.WriteString(terminate(title))
	if venue != "" {
		b.WriteString(" " + terminate(venue))
	}
	if url != "" {
		b.WriteString(" Available at: " + url)
	}
	return b.String()
}

// Markers returns the in-text marker of every paper, in order.
func Markers(papers []types.PaperRecord, style types.Style) []string {
	out := make([]string, len(papers))
	for i, p := range papers {
		out[i] = InTextMarker(p, style)
	}
	return out
}

// References returns the reference entry of every paper, in order.
func References(papers []types.PaperRecord, style types.Style) []string {
	out := make([]string, len(papers))
	for i, p := range papers {
		out[i] = Reference(p, style)
	}
	return out
}

func markerAuthors(names []string, pair string) string {
	switch len(names) {
	case 0:
		return UnknownAuthor
	case 1:
		return names[0]
	case 2:
		return names[0] + pair + names[1]
	default:
		return names[0] + " et al."
	}
}

func referenceAuthors(authors []string) string {
	names := nonEmpty(authors)
	if len(names) == 0 {
		return UnknownAuthor
	}
	if len(names) > MaxReferenceAuthors {
		return strings.Join(names[:MaxReferenceAuthors], ", ") + ", et al."
	}
	return strings.Join(names, ", ")
}

func surnames(authors []string) []string {
	names := nonEmpty(authors)
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = Surname(n)
	}
	return out
}

// Surname returns the family name of a display name. "Family, Given" forms
// yield the part before the comma; otherwise the last word is used.
func Surname(name string) string {
	name = strings.TrimSpace(name)
	if family, _, ok := strings.Cut(name, ","); ok && strings.TrimSpace(family) != "" {
		return strings.TrimSpace(family)
	}
	if idx := strings.LastIndex(name, " "); idx >= 0 {
		return name[idx+1:]
	}
	return name
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// terminate appends a period unless s already ends with sentence punctuation.
func terminate(s string) string {
	if s == "" {
		return s
	}
	switch s[len(s)-1] {
	case '.', '?', '!':
		return s
	}
	return s + "."
}
