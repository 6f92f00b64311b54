// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the citation-composer
// pipeline: fetched paper records, compose requests, composed documents and
// configuration.
package types

import "strconv"

// NoDate is the year placeholder used for every record without a
// publication year. It is the same across a whole run.
const NoDate = "n.d."

// PaperRecord is one academic work returned by a search backend. Records are
// built fresh on every fetch and never mutated afterwards.
type PaperRecord struct {
	// Title is the paper title. It doubles as fallback summary text.
	Title string `json:"title" yaml:"title"`

	// Authors lists author display names in source order. May be empty.
	Authors []string `json:"authors" yaml:"authors"`

	// Year is the publication year; zero means unknown.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	// Venue is the journal or conference name.
	Venue string `json:"venue,omitempty" yaml:"venue,omitempty"`

	// URL links to the paper's landing page.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// Abstract is the paper abstract, when the source returns one.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// Identifier is the canonical ID from the source (DOI, arXiv ID or source paper ID).
	Identifier string `json:"identifier,omitempty" yaml:"identifier,omitempty"`

	// Source names the backend that produced the record (e.g. "semantic_scholar").
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
}

// YearLabel returns the year as a string, or NoDate when absent.
func (p PaperRecord) YearLabel() string {
	if p.Year <= 0 {
		return NoDate
	}
	return strconv.Itoa(p.Year)
}

// HasAuthors reports whether at least one non-empty author name is present.
func (p PaperRecord) HasAuthors() bool {
	for _, a := range p.Authors {
		if a != "" {
			return true
		}
	}
	return false
}
