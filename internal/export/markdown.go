// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pdiddy/citation-composer/pkg/types"
)

const noResultsText = "No results found."

// WriteMarkdown renders doc the way it is shown on screen: the title, one
// heading per section and a references list.
func WriteMarkdown(w io.Writer, doc *types.ComposedDocument) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %s\n\n", doc.Title)

	if doc.NoResults {
		fmt.Fprintf(bw, "%s\n", noResultsText)
		return bw.Flush()
	}

	for _, s := range doc.Sections {
		fmt.Fprintf(bw, "## %s\n\n%s\n\n", s.Name, s.Text)
	}

	if len(doc.References) > 0 {
		fmt.Fprintf(bw, "## %s\n\n", referencesHeading)
		for _, ref := range doc.References {
			fmt.Fprintf(bw, "- %s\n", ref)
		}
	}
	return bw.Flush()
}
