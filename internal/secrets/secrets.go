// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys and credentials from a directory of
// plain-text files and from .env files, and resolves each credential with a
// fixed precedence: explicit configuration, then environment, then the
// secrets directory.
//
// Supported key files: semantic-scholar-api-key, anthropic-api-key,
// huggingface-api-token, gemini-api-key, openalex-email.
package secrets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// DefaultDir is the secrets directory read at startup.
const DefaultDir = ".secrets/"

// Secret file names.
const (
	KeySemanticScholar = "semantic-scholar-api-key"
	KeyAnthropic       = "anthropic-api-key"
	KeyHuggingFace     = "huggingface-api-token"
	KeyGemini          = "gemini-api-key"
	KeyOpenAlexEmail   = "openalex-email"
)

// envVars lists the conventional environment variables checked for each key.
var envVars = map[string][]string{
	KeySemanticScholar: {"SEMANTIC_SCHOLAR_API_KEY"},
	KeyAnthropic:       {"ANTHROPIC_API_KEY"},
	KeyHuggingFace:     {"HUGGINGFACE_API_TOKEN", "HF_TOKEN"},
	KeyGemini:          {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
	KeyOpenAlexEmail:   {"OPENALEX_EMAIL"},
}

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files are logged and skipped.
func Load(dir string, logger zerolog.Logger) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Warn().Err(err).Str("secret", name).Msg("could not read secret")
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// LoadDotenv loads variables from the given .env files into the process
// environment without overriding variables already set. Missing files are
// skipped. With no paths, ".env" is used.
func LoadDotenv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// Store resolves credentials from the secrets directory and the environment.
type Store struct {
	files     map[string]string
	lookupEnv func(string) (string, bool)
}

// NewStore wraps the result of Load.
func NewStore(files map[string]string) *Store {
	if files == nil {
		files = map[string]string{}
	}
	return &Store{files: files, lookupEnv: os.LookupEnv}
}

// Resolve returns explicit when set, else the first non-empty conventional
// environment variable for key, else the secrets file value.
func (s *Store) Resolve(key, explicit string) string {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		return explicit
	}
	for _, name := range envVars[key] {
		if v, ok := s.lookupEnv(name); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return s.files[key]
}

// Keys returns the names of the loaded secret files, sorted.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.files))
	for k := range s.files {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
