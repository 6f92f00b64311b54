// Package config loads citation-composer settings with viper: defaults,
// an optional YAML config file, CITATION_COMPOSER_* environment variables
// and bound command-line flags, followed by credential resolution from the
// environment and the secrets directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/citation-composer/internal/prose"
	"github.com/pdiddy/citation-composer/internal/search"
	"github.com/pdiddy/citation-composer/internal/secrets"
	"github.com/pdiddy/citation-composer/pkg/types"
)

// Name is the config file base name and the ~/.config subdirectory.
const Name = "citation-composer"

// EnvPrefix prefixes environment overrides, e.g. CITATION_COMPOSER_PROSE_PROVIDER.
const EnvPrefix = "CITATION_COMPOSER"

// Configure sets the config file search path, environment binding and
// defaults on v. An explicit cfgFile replaces the search path.
func Configure(v *viper.Viper, cfgFile string) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(Name)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", Name))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)
}

// SetDefaults registers every key with its default value. Keys must be
// known to viper for AutomaticEnv to reach them during Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("search.backends", []string{search.BackendSemanticScholar})
	v.SetDefault("search.timeout", 30*time.Second)
	v.SetDefault("search.user_agent", "")
	v.SetDefault("search.max_retries", 3)
	v.SetDefault("search.rate_limit", 1.0)
	v.SetDefault("search.semantic_scholar_api_key", "")
	v.SetDefault("search.openalex_email", "")

	v.SetDefault("prose.provider", string(types.ProviderMock))
	v.SetDefault("prose.model", "")
	v.SetDefault("prose.api_key", "")
	v.SetDefault("prose.temperature", prose.DefaultTemperature)
	v.SetDefault("prose.max_tokens", prose.DefaultMaxTokens)
	v.SetDefault("prose.timeout", 60*time.Second)
	v.SetDefault("prose.user_agent", "")
	v.SetDefault("prose.max_retries", 2)

	v.SetDefault("compose.limit", search.DefaultLimit)
	v.SetDefault("compose.style", string(types.StyleAPA))
	v.SetDefault("compose.sections", types.DefaultSections)
	v.SetDefault("compose.seed", 0)
	v.SetDefault("compose.timeout", 2*time.Minute)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 3*time.Minute)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
}

// ReadInConfig reads the config file if one exists and returns its path.
// A missing file is not an error.
func ReadInConfig(v *viper.Viper) (string, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("reading config: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// Load decodes v into a Config, normalizes enumerations and validates it.
func Load(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}

	style, err := types.ParseStyle(string(cfg.Compose.Style))
	if err != nil {
		return cfg, fmt.Errorf("compose.style: %w", err)
	}
	cfg.Compose.Style = style
	cfg.Prose.Provider = types.ProviderKind(strings.ToLower(strings.TrimSpace(string(cfg.Prose.Provider))))

	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func Validate(cfg types.Config) error {
	var errs []error

	if cfg.Compose.Limit < search.MinLimit || cfg.Compose.Limit > search.MaxLimit {
		errs = append(errs, fmt.Errorf("compose.limit must be between %d and %d, got %d", search.MinLimit, search.MaxLimit, cfg.Compose.Limit))
	}
	for _, s := range cfg.Compose.Sections {
		if strings.TrimSpace(s) == "" {
			errs = append(errs, errors.New("compose.sections must not contain blank names"))
			break
		}
	}

	switch cfg.Prose.Provider {
	case types.ProviderMock, types.ProviderClaude, types.ProviderHuggingFace, types.ProviderGemini:
	default:
		errs = append(errs, fmt.Errorf("prose.provider %q: use mock, claude, huggingface or gemini", cfg.Prose.Provider))
	}
	if cfg.Prose.Temperature < 0 || cfg.Prose.Temperature > 2 {
		errs = append(errs, fmt.Errorf("prose.temperature must be between 0 and 2, got %g", cfg.Prose.Temperature))
	}
	if cfg.Prose.MaxTokens <= 0 {
		errs = append(errs, fmt.Errorf("prose.max_tokens must be positive, got %d", cfg.Prose.MaxTokens))
	}

	if cfg.Search.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("search.rate_limit must not be negative, got %g", cfg.Search.RateLimit))
	}
	for _, b := range cfg.Search.Backends {
		switch strings.ToLower(strings.TrimSpace(b)) {
		case search.BackendSemanticScholar, search.BackendOpenAlex, search.BackendArxiv:
		default:
			errs = append(errs, fmt.Errorf("search.backends: unknown backend %q", b))
		}
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Logging.Level)) {
	case "", "trace", "debug", "info", "warn", "warning", "error", "disabled", "off":
	default:
		errs = append(errs, fmt.Errorf("logging.level %q: use debug, info, warn or error", cfg.Logging.Level))
	}

	return errors.Join(errs...)
}

// ApplySecrets fills empty credentials from the environment and the
// secrets directory. Values already set by config, flag or
// CITATION_COMPOSER_* variables win.
func ApplySecrets(cfg *types.Config, store *secrets.Store) {
	cfg.Search.SemanticScholarAPIKey = store.Resolve(secrets.KeySemanticScholar, cfg.Search.SemanticScholarAPIKey)
	cfg.Search.OpenAlexEmail = store.Resolve(secrets.KeyOpenAlexEmail, cfg.Search.OpenAlexEmail)

	if key := ProviderSecret(cfg.Prose.Provider); key != "" {
		cfg.Prose.APIKey = store.Resolve(key, cfg.Prose.APIKey)
	}
}

// ProviderSecret returns the secret key name holding the credential for a
// prose provider, or "" when the provider needs none.
func ProviderSecret(kind types.ProviderKind) string {
	switch kind {
	case types.ProviderClaude:
		return secrets.KeyAnthropic
	case types.ProviderHuggingFace:
		return secrets.KeyHuggingFace
	case types.ProviderGemini:
		return secrets.KeyGemini
	default:
		return ""
	}
}
