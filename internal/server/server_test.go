// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/citation-composer/internal/export"
	"github.com/pdiddy/citation-composer/internal/observability"
	"github.com/pdiddy/citation-composer/internal/pipeline"
	"github.com/pdiddy/citation-composer/internal/prose"
	"github.com/pdiddy/citation-composer/pkg/types"
)

type stubBackend struct {
	papers []types.PaperRecord
	calls  int
}

func (b *stubBackend) Name() string { return "stub" }

func (b *stubBackend) Search(_ context.Context, _ string, limit int) ([]types.PaperRecord, error) {
	b.calls++
	if limit < len(b.papers) {
		return b.papers[:limit], nil
	}
	return b.papers, nil
}

var papers = []types.PaperRecord{
	{Title: "Graphene anodes", Authors: []string{"Ana Smith", "Bo Doe"}, Year: 2020, Venue: "Nature Energy", Identifier: "10.1/a"},
	{Title: "Layered carbon", Authors: []string{"Chen Li"}, Year: 2018},
}

func newTestServer(t *testing.T, backend *stubBackend) (*httptest.Server, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	c := &pipeline.Composer{
		Backend:  backend,
		Provider: prose.Mock{},
		Logger:   zerolog.Nop(),
		Metrics:  observability.NewMetrics(reg),
	}
	srv := New(types.ServerConfig{}, c, reg, zerolog.Nop())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, reg
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealthz(t *testing.T) {
	ts, _ := newTestServer(t, &stubBackend{})
	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestComposeEndpoint(t *testing.T) {
	backend := &stubBackend{papers: papers}
	ts, _ := newTestServer(t, backend)

	resp := post(t, ts.URL+"/api/v1/compose", `{"topic":"graphene batteries","limit":4,"style":"APA","sections":["Introduction","Conclusion"]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var doc types.ComposedDocument
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Equal(t, "Graphene Batteries", doc.Title)
	assert.False(t, doc.NoResults)
	require.Len(t, doc.Sections, 2)
	assert.Contains(t, doc.Sections[0].Text, "(Smith & Doe, 2020)")
	assert.Contains(t, doc.Sections[0].Text, "(Li, 2018)")
	assert.Len(t, doc.References, 2)
	assert.Equal(t, 1, backend.calls)
}

func TestComposeEndpointNoInput(t *testing.T) {
	backend := &stubBackend{papers: papers}
	ts, _ := newTestServer(t, backend)

	resp := post(t, ts.URL+"/api/v1/compose", `{"topic":"   "}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Please enter your research topic.", body["error"])
	assert.Zero(t, backend.calls)
}

func TestComposeEndpointBadRequests(t *testing.T) {
	ts, _ := newTestServer(t, &stubBackend{papers: papers})
	for _, body := range []string{
		`not json`,
		`{"topic":"x","style":"Chicago"}`,
		`{"topic":"x","limit":99}`,
	} {
		resp := post(t, ts.URL+"/api/v1/compose", body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
	}
}

func TestComposeEndpointNoResults(t *testing.T) {
	ts, _ := newTestServer(t, &stubBackend{})
	resp := post(t, ts.URL+"/api/v1/compose", `{"topic":"zzzz_no_such_topic"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var raw map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	assert.Equal(t, true, raw["no_results"])
	assert.Empty(t, raw["sections"])
}

func TestComposeDOCXEndpoint(t *testing.T) {
	ts, _ := newTestServer(t, &stubBackend{papers: papers})
	resp := post(t, ts.URL+"/api/v1/compose/docx", `{"topic":"graphene batteries"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, export.DOCXContentType, resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="research_paper.docx"`, resp.Header.Get("Content-Disposition"))

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	var found bool
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			found = true
			rc, err := f.Open()
			require.NoError(t, err)
			body, err := io.ReadAll(rc)
			rc.Close()
			require.NoError(t, err)
			assert.Contains(t, string(body), "Graphene Batteries")
			assert.Contains(t, string(body), ">References<")
		}
	}
	assert.True(t, found)
}

func TestComposeMarkdownEndpoint(t *testing.T) {
	ts, _ := newTestServer(t, &stubBackend{papers: papers})
	resp := post(t, ts.URL+"/api/v1/compose/markdown", `{"topic":"graphene","style":"MLA"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "# Graphene\n"))
	assert.Contains(t, string(body), "(Smith and Doe 2020)")
	assert.Contains(t, string(body), "## References")
}

func TestPapersEndpoint(t *testing.T) {
	ts, _ := newTestServer(t, &stubBackend{papers: papers})

	resp, err := http.Get(ts.URL + "/api/v1/papers?q=graphene&limit=1")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Papers    []types.PaperRecord `json:"papers"`
		NoResults bool                `json:"no_results"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Papers, 1)
	assert.False(t, body.NoResults)
}

func TestPapersEndpointFormats(t *testing.T) {
	ts, _ := newTestServer(t, &stubBackend{papers: papers})

	tests := []struct {
		query  string
		status int
		want   string
	}{
		{"?q=graphene&format=bibtex", http.StatusOK, "@article{smith2020,"},
		{"?q=graphene&format=csl", http.StatusOK, "family: Smith"},
		{"?q=graphene&format=xml", http.StatusBadRequest, "unsupported format"},
		{"?q=graphene&limit=abc", http.StatusBadRequest, "invalid limit"},
		{"?q=", http.StatusBadRequest, "Please enter your research topic."},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp, err := http.Get(ts.URL + "/api/v1/papers" + tt.query)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(body), tt.want)
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	ts, _ := newTestServer(t, &stubBackend{papers: papers})
	post(t, ts.URL+"/api/v1/compose", `{"topic":"graphene"}`)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "citation_composer_search_fetches_total")
	assert.Contains(t, string(body), "citation_composer_prose_generations_total")
	assert.Contains(t, string(body), "citation_composer_compose_duration_seconds")
}
