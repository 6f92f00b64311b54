// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"strings"
	"unicode"
)

// DefaultSections is the section list used when a request names none.
var DefaultSections = []string{"Introduction"}

// KnownSections lists the section names offered to users. Any non-empty
// name is accepted; this list only drives help text and defaults.
var KnownSections = []string{"Abstract", "Introduction", "Problem Statement", "Methodology", "Conclusion"}

// ComposeRequest is the immutable input of one compose action. It replaces
// the ambient form state (topic, slider values, multiselect) with an
// explicit value passed through the pipeline.
type ComposeRequest struct {
	// Topic is the research topic or question. Required.
	Topic string `json:"topic" yaml:"topic" validate:"required"`

	// Limit is the number of papers to fetch and cite.
	Limit int `json:"limit" yaml:"limit" validate:"min=1,max=50"`

	// Style selects the citation convention.
	Style Style `json:"style" yaml:"style" validate:"oneof=APA MLA"`

	// Sections lists the section names to generate, in order.
	Sections []string `json:"sections" yaml:"sections" validate:"min=1,dive,required"`

	// Title is the document title. Defaults to the title-cased topic.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
}

// DocumentTitle returns Title, or the topic with each word capitalized.
func (r ComposeRequest) DocumentTitle() string {
	if t := strings.TrimSpace(r.Title); t != "" {
		return t
	}
	words := strings.Fields(r.Topic)
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// ComposedSection is one generated section with citation markers applied.
type ComposedSection struct {
	// Name is the section heading (e.g. "Introduction").
	Name string `json:"name" yaml:"name"`

	// Text is the composed paragraph, or an inline placeholder when
	// generation failed.
	Text string `json:"text" yaml:"text"`

	// Err records the generation failure, empty on success.
	Err string `json:"error,omitempty" yaml:"error,omitempty"`
}

// ComposedDocument is the ephemeral result of one compose action.
type ComposedDocument struct {
	// Title is the document title used by exporters.
	Title string `json:"title" yaml:"title"`

	// Style is the citation style the markers and references use.
	Style Style `json:"style" yaml:"style"`

	// Sections holds composed sections in request order.
	Sections []ComposedSection `json:"sections" yaml:"sections"`

	// References holds one formatted reference per fetched paper.
	References []string `json:"references" yaml:"references"`

	// Papers holds the records the references were built from.
	Papers []PaperRecord `json:"papers" yaml:"papers"`

	// NoResults is set when the search succeeded but found nothing.
	NoResults bool `json:"no_results" yaml:"no_results"`
}

// Section returns the composed section with the given name.
func (d *ComposedDocument) Section(name string) (ComposedSection, bool) {
	for _, s := range d.Sections {
		if s.Name == name {
			return s, true
		}
	}
	return ComposedSection{}, false
}
