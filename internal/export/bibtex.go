// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/pdiddy/citation-composer/internal/cite"
	"github.com/pdiddy/citation-composer/pkg/types"
)

// WriteBibTeX writes one @article entry per paper.
func WriteBibTeX(w io.Writer, papers []types.PaperRecord) error {
	var b strings.Builder
	keys := make(map[string]int)
	for _, p := range papers {
		key := CitationKey(p)
		keys[key]++
		if n := keys[key]; n > 1 {
			key += string(rune('a' + n - 1))
		}

		title := p.Title
		if strings.TrimSpace(title) == "" {
			title = cite.NoTitle
		}
		fmt.Fprintf(&b, "@article{%s,\n", key)
		fmt.Fprintf(&b, "  title = {%s},\n", title)
		if len(p.Authors) > 0 {
			fmt.Fprintf(&b, "  author = {%s},\n", strings.Join(p.Authors, " and "))
		}
		if p.Year > 0 {
			fmt.Fprintf(&b, "  year = {%d},\n", p.Year)
		}
		if p.Venue != "" {
			fmt.Fprintf(&b, "  journal = {%s},\n", p.Venue)
		}
		if strings.HasPrefix(p.Identifier, "10.") {
			fmt.Fprintf(&b, "  doi = {%s},\n", p.Identifier)
		}
		if p.URL != "" {
			fmt.Fprintf(&b, "  url = {%s},\n", p.URL)
		}
		b.WriteString("}\n\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// CitationKey builds a key from the first author's surname and the year,
// e.g. "smith2020". Papers with neither yield "unknown".
func CitationKey(p types.PaperRecord) string {
	var key strings.Builder
	for _, a := range p.Authors {
		if s := cite.Surname(a); s != "" {
			for _, r := range strings.ToLower(s) {
				if unicode.IsLetter(r) || unicode.IsDigit(r) {
					key.WriteRune(r)
				}
			}
			break
		}
	}
	if key.Len() == 0 {
		key.WriteString("unknown")
	}
	if p.Year > 0 {
		key.WriteString(strconv.Itoa(p.Year))
	}
	return key.String()
}
