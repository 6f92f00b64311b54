// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citation-composer/internal/export"
	"github.com/pdiddy/citation-composer/internal/pipeline"
	"github.com/pdiddy/citation-composer/pkg/types"
)

var composeCmd = &cobra.Command{
	Use:   "compose [topic]",
	Short: "Compose cited prose for a research topic",
	Long: `Compose fetches papers matching the topic, generates prose for each
section and interleaves one in-text citation per sentence. The document is
printed as Markdown (or JSON with --json) followed by the reference list.

The request can come from flags, positional arguments or a YAML request
file (--request). Use --save to write the request and its result back to
a file; --reuse with --request re-exports a saved result without querying
any API.`,
	RunE: runCompose,
}

func init() {
	composeCmd.Flags().String("topic", "", "research topic or question")
	composeCmd.Flags().Int("limit", 0, "number of papers to cite, 1-50 (default from config: 4)")
	composeCmd.Flags().String("style", "", "citation style: APA or MLA (default from config: APA)")
	composeCmd.Flags().StringSlice("section", nil, "section to generate, repeatable (default from config: Introduction)")
	composeCmd.Flags().String("title", "", "document title (default: title-cased topic)")
	composeCmd.Flags().Int64("seed", 0, "shuffle citation order with this seed (0 keeps round-robin order)")
	composeCmd.Flags().String("request", "", "read the request from a YAML file")
	composeCmd.Flags().Bool("reuse", false, "with --request, re-export the saved document instead of composing")
	composeCmd.Flags().String("save", "", "write the request and result to a YAML file")
	composeCmd.Flags().Bool("json", false, "print the document as JSON")
	composeCmd.Flags().String("docx", "", "write a DOCX document to this path")
	composeCmd.Flags().Lookup("docx").NoOptDefVal = export.DefaultDOCXName
	composeCmd.Flags().String("markdown", "", "write the document as Markdown to this path")
	composeCmd.Flags().String("bibtex", "", "write the cited papers as BibTeX to this path")
	composeCmd.Flags().String("csl", "", "write the cited papers as CSL-YAML to this path")

	rootCmd.AddCommand(composeCmd)
}

func runCompose(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	req, saved, err := composeRequestFromFlags(cmd, args)
	if err != nil {
		return err
	}

	var doc *types.ComposedDocument
	if reuse, _ := flags.GetBool("reuse"); reuse && saved != nil {
		doc = saved
		logger.Info().Str("title", doc.Title).Msg("re-exporting saved document")
	} else {
		if flags.Changed("seed") {
			cfg.Compose.Seed, _ = flags.GetInt64("seed")
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		composer, err := newComposer(ctx, nil)
		if err != nil {
			return err
		}

		doc, err = composer.Compose(ctx, req)
		if errors.Is(err, pipeline.ErrNoInput) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Please enter your research topic.")
			return err
		}
		if err != nil {
			return err
		}
	}

	if path, _ := flags.GetString("save"); path != "" {
		if err := pipeline.WriteRequestFile(path, req, doc); err != nil {
			return err
		}
		logger.Info().Str("path", path).Msg("saved request file")
	}

	out := cmd.OutOrStdout()
	if asJSON, _ := flags.GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return err
		}
	} else if err := export.WriteMarkdown(out, doc); err != nil {
		return err
	}

	if doc.NoResults {
		return nil
	}
	return writeExports(cmd, doc)
}

// composeRequestFromFlags builds the request from --request, positional
// arguments and flags. Flags override file values. The saved document of a
// request file, if any, is returned alongside.
func composeRequestFromFlags(cmd *cobra.Command, args []string) (types.ComposeRequest, *types.ComposedDocument, error) {
	flags := cmd.Flags()
	var (
		req   types.ComposeRequest
		saved *types.ComposedDocument
	)

	if path, _ := flags.GetString("request"); path != "" {
		rf, err := pipeline.ReadRequestFile(path)
		if err != nil {
			return req, nil, err
		}
		req = rf.Request
		saved = rf.Document
	}

	if len(args) > 0 {
		req.Topic = strings.Join(args, " ")
	}
	if flags.Changed("topic") {
		req.Topic, _ = flags.GetString("topic")
	}
	if flags.Changed("limit") {
		req.Limit, _ = flags.GetInt("limit")
	}
	if flags.Changed("style") {
		raw, _ := flags.GetString("style")
		style, err := types.ParseStyle(raw)
		if err != nil {
			return req, nil, err
		}
		req.Style = style
	}
	if flags.Changed("section") {
		req.Sections, _ = flags.GetStringSlice("section")
	}
	if flags.Changed("title") {
		req.Title, _ = flags.GetString("title")
	}
	return req, saved, nil
}

// writeExports writes each requested export file.
func writeExports(cmd *cobra.Command, doc *types.ComposedDocument) error {
	flags := cmd.Flags()
	exports := []struct {
		flag  string
		write func(w io.Writer) error
	}{
		{"docx", func(w io.Writer) error { return export.WriteDOCX(w, doc) }},
		{"markdown", func(w io.Writer) error { return export.WriteMarkdown(w, doc) }},
		{"bibtex", func(w io.Writer) error { return export.WriteBibTeX(w, doc.Papers) }},
		{"csl", func(w io.Writer) error { return export.WriteCSL(w, doc.Papers) }},
	}
	for _, e := range exports {
		path, _ := flags.GetString(e.flag)
		if path == "" {
			continue
		}
		if err := writeFile(path, e.write); err != nil {
			return fmt.Errorf("writing %s: %w", e.flag, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", path)
	}
	return nil
}

func writeFile(path string, write func(w io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}
