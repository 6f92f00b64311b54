// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/citation-composer/internal/httputil"
)

func init() {
	httputil.RetryBaseDelay = time.Millisecond
}

func withSemanticServer(t *testing.T, h http.HandlerFunc) *SemanticScholarBackend {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	old := semanticAPIBase
	semanticAPIBase = ts.URL
	t.Cleanup(func() { semanticAPIBase = old })

	return &SemanticScholarBackend{Client: httputil.Wrap(ts.Client())}
}

const grapheneResponse = `{"total":4,"offset":0,"data":[
 {"paperId":"p1","title":"Graphene anodes for lithium batteries","year":2020,"venue":"Nature Energy","url":"https://s2.example/p1",
  "authors":[{"authorId":"1","name":"Ana Smith"},{"authorId":"2","name":"Bo Doe"}],"externalIds":{"DOI":"10.1/p1"}},
 {"paperId":"p2","title":"Graphene supercapacitors","year":null,"venue":"","url":"https://s2.example/p2",
  "authors":[],"externalIds":{"ArXiv":"2101.00001"}},
 {"paperId":"p3","title":"Layered carbon electrodes","year":2018,"venue":"JACS","url":"https://s2.example/p3",
  "authors":[{"authorId":"3","name":"Chen Li"}],"externalIds":{}},
 {"paperId":"p4","title":"Battery degradation","year":2022,"abstract":"We study fade.","venue":"Joule","url":"https://s2.example/p4",
  "authors":[{"authorId":"4","name":"Dee Roe"},{"authorId":"5","name":"Eve Poe"},{"authorId":"6","name":"Fay Low"}]}
]}`

func TestSemanticSearchRequestParams(t *testing.T) {
	var captured *http.Request
	b := withSemanticServer(t, func(w http.ResponseWriter, r *http.Request) {
		captured = r
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"total":0,"offset":0,"data":[]}`)
	})
	b.APIKey = "secret-key"

	_, err := b.Search(context.Background(), "graphene batteries", 4)
	require.NoError(t, err)
	require.NotNil(t, captured)

	q := captured.URL.Query()
	assert.Equal(t, "graphene batteries", q.Get("query"))
	assert.Equal(t, "4", q.Get("limit"))
	assert.Equal(t, semanticFields, q.Get("fields"))
	assert.Equal(t, "secret-key", captured.Header.Get("x-api-key"))
	assert.Equal(t, httputil.DefaultUserAgent, captured.Header.Get("User-Agent"))
}

func TestSemanticSearchNoAPIKeyHeader(t *testing.T) {
	var header string
	b := withSemanticServer(t, func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Get("x-api-key")
		fmt.Fprint(w, `{"data":[]}`)
	})

	_, err := b.Search(context.Background(), "q", 1)
	require.NoError(t, err)
	assert.Empty(t, header)
}

func TestSemanticSearchMapsRecords(t *testing.T) {
	b := withSemanticServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, grapheneResponse)
	})

	got, err := b.Search(context.Background(), "graphene batteries", 4)
	require.NoError(t, err)
	require.Len(t, got, 4)

	assert.Equal(t, "Graphene anodes for lithium batteries", got[0].Title)
	assert.Equal(t, []string{"Ana Smith", "Bo Doe"}, got[0].Authors)
	assert.Equal(t, 2020, got[0].Year)
	assert.Equal(t, "Nature Energy", got[0].Venue)
	assert.Equal(t, "https://s2.example/p1", got[0].URL)
	assert.Equal(t, "10.1/p1", got[0].Identifier)
	assert.Equal(t, "semantic_scholar", got[0].Source)

	assert.Empty(t, got[1].Authors)
	assert.Zero(t, got[1].Year)
	assert.Equal(t, "n.d.", got[1].YearLabel())
	assert.Equal(t, "2101.00001", got[1].Identifier)

	assert.Equal(t, "p3", got[2].Identifier)
	assert.Equal(t, "We study fade.", got[3].Abstract)
}

func TestSemanticSearchNon200(t *testing.T) {
	for _, code := range []int{http.StatusBadRequest, http.StatusForbidden, http.StatusNotFound} {
		b := withSemanticServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		})
		_, err := b.Search(context.Background(), "q", 4)
		require.Error(t, err, "status %d", code)
		assert.ErrorIs(t, err, ErrStatus)
	}
}

func TestSemanticSearchRetriesServerErrors(t *testing.T) {
	calls := 0
	b := withSemanticServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, grapheneResponse)
	})

	got, err := b.Search(context.Background(), "graphene", 4)
	require.NoError(t, err)
	assert.Len(t, got, 4)
	assert.Equal(t, 2, calls)
}

func TestSemanticSearchMalformedJSON(t *testing.T) {
	b := withSemanticServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": [`)
	})
	_, err := b.Search(context.Background(), "q", 4)
	assert.ErrorContains(t, err, "parsing Semantic Scholar response")
}

// Fetch over a live backend: four matching papers come back in order.
func TestFetchGrapheneBatteries(t *testing.T) {
	b := withSemanticServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, grapheneResponse)
	})

	got := Fetch(context.Background(), b, "graphene batteries", 4, zerolog.Nop(), nil)
	require.Len(t, got, 4)
	assert.Equal(t, "Graphene anodes for lithium batteries", got[0].Title)
	assert.Equal(t, "Battery degradation", got[3].Title)
}

func TestFetchNoSuchTopic(t *testing.T) {
	b := withSemanticServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"total":0,"offset":0,"data":[]}`)
	})

	got := Fetch(context.Background(), b, "zzzz_no_such_topic", 4, zerolog.Nop(), nil)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFetchMissingDataField(t *testing.T) {
	b := withSemanticServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"total":0}`)
	})

	got := Fetch(context.Background(), b, "zzzz_no_such_topic", 4, zerolog.Nop(), nil)
	assert.Empty(t, got)
}

func TestFetchUnreachableDegrades(t *testing.T) {
	b := withSemanticServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	got := Fetch(context.Background(), b, "graphene", 4, zerolog.Nop(), nil)
	require.NotNil(t, got)
	assert.Empty(t, got)
}
