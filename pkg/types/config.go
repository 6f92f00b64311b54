package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "citation-composer/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// MaxRetries bounds retries on HTTP 429 and 5xx responses.
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// SearchConfig holds settings for the paper fetcher.
type SearchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Backends lists search backends in fallback order
	// (semantic_scholar, openalex, arxiv).
	Backends []string `json:"backends" yaml:"backends" mapstructure:"backends"`

	// SemanticScholarAPIKey is an optional API key for higher rate limits.
	SemanticScholarAPIKey string `json:"semantic_scholar_api_key,omitempty" yaml:"semantic_scholar_api_key,omitempty" mapstructure:"semantic_scholar_api_key"`

	// OpenAlexEmail is sent as the mailto parameter for the polite pool.
	OpenAlexEmail string `json:"openalex_email,omitempty" yaml:"openalex_email,omitempty" mapstructure:"openalex_email"`

	// RateLimit is the sustained request rate per backend, in requests per second.
	RateLimit float64 `json:"rate_limit" yaml:"rate_limit" mapstructure:"rate_limit"`
}

// ProviderKind identifies a prose generation backend.
type ProviderKind string

const (
	ProviderMock        ProviderKind = "mock"
	ProviderClaude      ProviderKind = "claude"
	ProviderHuggingFace ProviderKind = "huggingface"
	ProviderGemini      ProviderKind = "gemini"
)

// ProseConfig holds settings for the generative prose provider.
type ProseConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Provider selects the backend: mock, claude, huggingface or gemini.
	Provider ProviderKind `json:"provider" yaml:"provider" mapstructure:"provider"`

	// Model is the provider model identifier.
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// APIKey is the credential for the selected provider.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// Temperature is the sampling temperature (default 0.7).
	Temperature float64 `json:"temperature" yaml:"temperature" mapstructure:"temperature"`

	// MaxTokens bounds the generated output length (default 300).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens" mapstructure:"max_tokens"`
}

// ComposeConfig holds defaults for compose requests.
type ComposeConfig struct {
	// Limit is the default number of citations per request (default 4).
	Limit int `json:"limit" yaml:"limit" mapstructure:"limit"`

	// Style is the default citation style.
	Style Style `json:"style" yaml:"style" mapstructure:"style"`

	// Sections is the default section list.
	Sections []string `json:"sections" yaml:"sections" mapstructure:"sections"`

	// Seed enables shuffled marker assignment when non-zero. Zero keeps the
	// deterministic round-robin assignment.
	Seed int64 `json:"seed" yaml:"seed" mapstructure:"seed"`

	// Timeout bounds one whole compose action.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is json or console.
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	// Address is the listen address (default ":8080").
	Address string `json:"address" yaml:"address" mapstructure:"address"`

	ReadTimeout     time.Duration `json:"read_timeout" yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout" yaml:"write_timeout" mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// Config groups all component configurations.
type Config struct {
	Search  SearchConfig  `json:"search" yaml:"search" mapstructure:"search"`
	Prose   ProseConfig   `json:"prose" yaml:"prose" mapstructure:"prose"`
	Compose ComposeConfig `json:"compose" yaml:"compose" mapstructure:"compose"`
	Logging LoggingConfig `json:"logging" yaml:"logging" mapstructure:"logging"`
	Server  ServerConfig  `json:"server" yaml:"server" mapstructure:"server"`
}
