// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/pdiddy/citation-composer/internal/export"
	"github.com/pdiddy/citation-composer/internal/pipeline"
	"github.com/pdiddy/citation-composer/internal/search"
	"github.com/pdiddy/citation-composer/pkg/types"
)

// Message shown when a request carries no topic.
const noInputMessage = "Please enter your research topic."

// compose decodes the request body and runs the pipeline. On failure it
// writes the error response and returns nil.
func (s *Server) compose(w http.ResponseWriter, r *http.Request) *types.ComposedDocument {
	var req types.ComposeRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return nil
	}

	doc, err := s.composer.Compose(r.Context(), req)
	switch {
	case errors.Is(err, pipeline.ErrNoInput):
		writeError(w, http.StatusBadRequest, noInputMessage)
		return nil
	case err != nil:
		writeError(w, http.StatusBadRequest, err.Error())
		return nil
	}
	return doc
}

func (s *Server) composeJSON(w http.ResponseWriter, r *http.Request) {
	doc := s.compose(w, r)
	if doc == nil {
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) composeDOCX(w http.ResponseWriter, r *http.Request) {
	doc := s.compose(w, r)
	if doc == nil {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteDOCX(&buf, doc); err != nil {
		s.logger.Error().Err(err).Msg("rendering docx")
		writeError(w, http.StatusInternalServerError, "failed to render document")
		return
	}
	w.Header().Set("Content-Type", export.DOCXContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.DefaultDOCXName))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) composeMarkdown(w http.ResponseWriter, r *http.Request) {
	doc := s.compose(w, r)
	if doc == nil {
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = export.WriteMarkdown(w, doc)
}

// searchPapers runs a bare fetch. Query parameters: q (required), limit,
// and format (json, bibtex or csl).
func (s *Server) searchPapers(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, http.StatusBadRequest, noInputMessage)
		return
	}

	limit := search.DefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid limit %q", raw))
			return
		}
		limit = n
	}

	papers := search.Fetch(r.Context(), s.composer.Backend, q, limit, s.logger, s.composer.Metrics)

	switch format := r.URL.Query().Get("format"); format {
	case "", "json":
		writeJSON(w, http.StatusOK, map[string]any{
			"papers":     papers,
			"no_results": len(papers) == 0,
		})
	case "bibtex":
		w.Header().Set("Content-Type", "application/x-bibtex; charset=utf-8")
		_ = export.WriteBibTeX(w, papers)
	case "csl":
		w.Header().Set("Content-Type", "application/x-yaml; charset=utf-8")
		_ = export.WriteCSL(w, papers)
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported format %q: use json, bibtex or csl", format))
	}
}
