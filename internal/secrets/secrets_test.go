// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		want  map[string]string
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, KeyHuggingFace, "  hf_abc123  \n")
				writeFile(t, dir, KeySemanticScholar, "sk_xyz789")
				writeFile(t, dir, KeyOpenAlexEmail, "user@example.com\n")
				return dir
			},
			want: map[string]string{
				KeyHuggingFace:     "hf_abc123",
				KeySemanticScholar: "sk_xyz789",
				KeyOpenAlexEmail:   "user@example.com",
			},
		},
		{
			name: "returns empty map for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: map[string]string{},
		},
		{
			name: "skips empty files",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, KeyAnthropic, "valid-key")
				writeFile(t, dir, "empty-key", "")
				writeFile(t, dir, "whitespace-only", "   \n\t  ")
				return dir
			},
			want: map[string]string{KeyAnthropic: "valid-key"},
		},
		{
			name: "skips dotfiles and directories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, ".gitkeep", "")
				writeFile(t, dir, ".hidden-key", "secret")
				writeFile(t, dir, KeyGemini, "gm_real")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
				return dir
			},
			want: map[string]string{KeyGemini: "gm_real"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.setup(t), zerolog.Nop())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolvePrecedence(t *testing.T) {
	env := map[string]string{}
	s := NewStore(map[string]string{KeyAnthropic: "from-file", KeyHuggingFace: "hf-file"})
	s.lookupEnv = func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	assert.Equal(t, "from-file", s.Resolve(KeyAnthropic, ""))

	env["ANTHROPIC_API_KEY"] = "from-env"
	assert.Equal(t, "from-env", s.Resolve(KeyAnthropic, ""))

	assert.Equal(t, "explicit", s.Resolve(KeyAnthropic, " explicit "))

	env["HF_TOKEN"] = "hf-env-alias"
	assert.Equal(t, "hf-env-alias", s.Resolve(KeyHuggingFace, ""))
	env["HUGGINGFACE_API_TOKEN"] = "hf-env"
	assert.Equal(t, "hf-env", s.Resolve(KeyHuggingFace, ""))

	env["GEMINI_API_KEY"] = "  "
	assert.Equal(t, "", s.Resolve(KeyGemini, ""))
	assert.Equal(t, "", s.Resolve("unknown-key", ""))
}

func TestStoreKeys(t *testing.T) {
	s := NewStore(map[string]string{KeyGemini: "a", KeyAnthropic: "b"})
	assert.Equal(t, []string{KeyAnthropic, KeyGemini}, s.Keys())
	assert.Empty(t, NewStore(nil).Keys())
}

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	writeFile(t, dir, ".env", "CITATION_COMPOSER_TEST_DOTENV=loaded\nCITATION_COMPOSER_TEST_PRESET=from-file\n")

	t.Setenv("CITATION_COMPOSER_TEST_PRESET", "from-env")
	t.Cleanup(func() { os.Unsetenv("CITATION_COMPOSER_TEST_DOTENV") })

	require.NoError(t, LoadDotenv(path, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "loaded", os.Getenv("CITATION_COMPOSER_TEST_DOTENV"))
	assert.Equal(t, "from-env", os.Getenv("CITATION_COMPOSER_TEST_PRESET"))
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}
