package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/citation-composer/internal/export"
	"github.com/pdiddy/citation-composer/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search academic APIs for papers",
	Long: `Search queries the configured academic API (Semantic Scholar by default)
and prints the matching papers. Failures and empty results both print
"No results found."; details go to the log.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		if q, _ := cmd.Flags().GetString("query"); q != "" {
			query = q
		}
		if strings.TrimSpace(query) == "" {
			fmt.Fprintln(cmd.ErrOrStderr(), "Please enter your research topic.")
			return fmt.Errorf("no query given")
		}

		limit := cfg.Compose.Limit
		if cmd.Flags().Changed("limit") {
			limit, _ = cmd.Flags().GetInt("limit")
		}

		backend, err := search.NewBackend(cfg.Search)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		papers := search.Fetch(ctx, backend, query, limit, logger, nil)

		out := cmd.OutOrStdout()
		format, _ := cmd.Flags().GetString("format")
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			format = "json"
		}
		switch format {
		case "", "table":
			search.FormatTable(papers, out)
			return nil
		case "json":
			return search.FormatJSON(papers, out)
		case "bibtex":
			return export.WriteBibTeX(out, papers)
		case "csl":
			return export.WriteCSL(out, papers)
		default:
			return fmt.Errorf("unsupported format %q: use table, json, bibtex or csl", format)
		}
	},
}

func init() {
	searchCmd.Flags().String("query", "", "free-text research question")
	searchCmd.Flags().Int("limit", search.DefaultLimit, "maximum number of results to return (1-50)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().String("format", "table", "output format: table, json, bibtex, csl")

	rootCmd.AddCommand(searchCmd)
}
