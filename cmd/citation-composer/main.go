// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the citation-composer CLI.
package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/citation-composer/internal/compose"
	"github.com/pdiddy/citation-composer/internal/config"
	"github.com/pdiddy/citation-composer/internal/observability"
	"github.com/pdiddy/citation-composer/internal/pipeline"
	"github.com/pdiddy/citation-composer/internal/prose"
	"github.com/pdiddy/citation-composer/internal/search"
	"github.com/pdiddy/citation-composer/internal/secrets"
	"github.com/pdiddy/citation-composer/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// cfg is the resolved configuration, loaded before every command.
	cfg types.Config

	// logger writes structured logs to stderr.
	logger = zerolog.Nop()
)

// rootCmd is the base command for the citation-composer CLI.
var rootCmd = &cobra.Command{
	Use:   "citation-composer",
	Short: "Compose cited research prose from academic search results",
	Long: `citation-composer takes a research topic, fetches matching papers from an
academic search API, generates prose for each requested section and
interleaves in-text citations (APA or MLA) with a reference list.

The result can be printed, saved as a request file, or exported as DOCX,
Markdown, BibTeX or CSL-YAML. The serve command exposes the same pipeline
as a JSON HTTP API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := secrets.LoadDotenv(); err != nil {
			return err
		}

		cfgFile, _ := cmd.Flags().GetString("config")
		config.Configure(viper.GetViper(), cfgFile)
		used, err := config.ReadInConfig(viper.GetViper())
		if err != nil {
			return err
		}

		loaded, err := config.Load(viper.GetViper())
		if err != nil {
			return err
		}
		cfg = loaded
		logger = observability.NewLogger(cfg.Logging)
		if used != "" {
			logger.Debug().Str("file", used).Msg("using config file")
		}

		files, err := secrets.Load(secrets.DefaultDir, logger)
		if err != nil {
			return err
		}
		store := secrets.NewStore(files)
		if keys := store.Keys(); len(keys) > 0 {
			logger.Debug().Strs("keys", keys).Msg("loaded secrets")
		}
		config.ApplySecrets(&cfg, store)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./citation-composer.yaml or ~/.config/citation-composer/citation-composer.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "console", "log format: console or json")
	rootCmd.PersistentFlags().String("provider", "mock", "prose provider: mock, claude, huggingface, gemini")
	rootCmd.PersistentFlags().String("model", "", "prose model identifier (provider default when empty)")
	rootCmd.PersistentFlags().StringSlice("backend", []string{search.BackendSemanticScholar}, "search backends in fallback order: semantic_scholar, openalex, arxiv")

	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("prose.provider", rootCmd.PersistentFlags().Lookup("provider"))
	_ = viper.BindPFlag("prose.model", rootCmd.PersistentFlags().Lookup("model"))
	_ = viper.BindPFlag("search.backends", rootCmd.PersistentFlags().Lookup("backend"))
}

// newComposer wires the configured backend and provider into a pipeline.
func newComposer(ctx context.Context, metrics *observability.Metrics) (*pipeline.Composer, error) {
	backend, err := search.NewBackend(cfg.Search)
	if err != nil {
		return nil, err
	}
	provider, err := prose.New(ctx, cfg.Prose)
	if err != nil {
		return nil, err
	}

	var assigner compose.Assigner = compose.RoundRobin{}
	if cfg.Compose.Seed != 0 {
		assigner = compose.NewShuffled(cfg.Compose.Seed)
	}

	logger.Debug().
		Str("backend", backend.Name()).
		Str("provider", provider.Name()).
		Msg("pipeline configured")

	return &pipeline.Composer{
		Backend:  backend,
		Provider: provider,
		Assigner: assigner,
		Defaults: cfg.Compose,
		Logger:   logger,
		Metrics:  metrics,
	}, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
