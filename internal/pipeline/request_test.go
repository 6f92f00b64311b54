// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/citation-composer/internal/search"
	"github.com/pdiddy/citation-composer/pkg/types"
)

func TestNormalize(t *testing.T) {
	got := Normalize(types.ComposeRequest{Topic: "  graphene  ", Style: "mla", Sections: []string{" ", " Methodology "}}, types.ComposeConfig{})
	assert.Equal(t, "graphene", got.Topic)
	assert.Equal(t, search.DefaultLimit, got.Limit)
	assert.Equal(t, types.StyleMLA, got.Style)
	assert.Equal(t, []string{"Methodology"}, got.Sections)

	got = Normalize(types.ComposeRequest{Topic: "x"}, types.ComposeConfig{})
	assert.Equal(t, types.StyleAPA, got.Style)
	assert.Equal(t, types.DefaultSections, got.Sections)
}

func TestValidate(t *testing.T) {
	valid := types.ComposeRequest{Topic: "graphene", Limit: 4, Style: types.StyleAPA, Sections: []string{"Introduction"}}
	require.NoError(t, Validate(valid))

	tests := []struct {
		name   string
		mutate func(r *types.ComposeRequest)
		want   string
	}{
		{"blank topic", func(r *types.ComposeRequest) { r.Topic = " " }, ErrNoInput.Error()},
		{"limit too low", func(r *types.ComposeRequest) { r.Limit = -1 }, "limit must be between 1 and 50"},
		{"limit too high", func(r *types.ComposeRequest) { r.Limit = 51 }, "limit must be between 1 and 50"},
		{"bad style", func(r *types.ComposeRequest) { r.Style = "Chicago" }, "style must be one of APA MLA"},
		{"no sections", func(r *types.ComposeRequest) { r.Sections = nil }, "sections needs at least 1 entries"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			r.Sections = append([]string(nil), valid.Sections...)
			tt.mutate(&r)
			err := Validate(r)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRequestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "request.yaml")
	req := types.ComposeRequest{Topic: "graphene", Limit: 3, Style: types.StyleMLA, Sections: []string{"Abstract"}}
	doc := &types.ComposedDocument{Title: "Graphene", Style: types.StyleMLA, References: []string{"ref"}}

	require.NoError(t, WriteRequestFile(path, req, doc))

	rf, err := ReadRequestFile(path)
	require.NoError(t, err)
	assert.Equal(t, req, rf.Request)
	require.NotNil(t, rf.Document)
	assert.Equal(t, []string{"ref"}, rf.Document.References)
	assert.False(t, rf.Timestamp.IsZero())
}

func TestReadBareRequestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bare.yaml")
	require.NoError(t, os.WriteFile(path, []byte("topic: graphene batteries\nlimit: 4\nstyle: apa\nsections: [Introduction, Conclusion]\n"), 0o644))

	rf, err := ReadRequestFile(path)
	require.NoError(t, err)
	assert.Equal(t, "graphene batteries", rf.Request.Topic)
	assert.Equal(t, 4, rf.Request.Limit)
	assert.Equal(t, types.StyleAPA, rf.Request.Style)
	assert.Equal(t, []string{"Introduction", "Conclusion"}, rf.Request.Sections)
	assert.Nil(t, rf.Document)
}

func TestReadRequestFileErrors(t *testing.T) {
	_, err := ReadRequestFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "reading request file")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("request: [unclosed"), 0o644))
	_, err = ReadRequestFile(path)
	assert.ErrorContains(t, err, "parsing request file")
}
