// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/citation-composer/internal/observability"
	"github.com/pdiddy/citation-composer/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the compose pipeline as a JSON HTTP API",
	Long: `Serve starts an HTTP server with these routes:

  POST /api/v1/compose           compose and return the document as JSON
  POST /api/v1/compose/docx      compose and download research_paper.docx
  POST /api/v1/compose/markdown  compose and return Markdown
  GET  /api/v1/papers?q=         search only (format=json|bibtex|csl)
  GET  /healthz                  liveness
  GET  /metrics                  Prometheus metrics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
		composer, err := newComposer(ctx, metrics)
		if err != nil {
			return err
		}

		srv := server.New(cfg.Server, composer, prometheus.DefaultGatherer, logger)
		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start() }()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		logger.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	_ = viper.BindPFlag("server.address", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}
