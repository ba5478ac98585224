// Package config handles YAML configuration loading, environment
// variable expansion, and structural validation for lenox.
package config

import "gopkg.in/yaml.v3"

// Config is the top-level configuration structure.
type Config struct {
	// Version is the config format version. Currently only "1" is supported.
	Version string `yaml:"version"`

	Logging   LoggingConfig   `yaml:"logging,omitempty"`
	History   HistoryConfig   `yaml:"history,omitempty"`
	Composer  ComposerConfig  `yaml:"composer,omitempty"`
	Dispatch  DispatchConfig  `yaml:"dispatch,omitempty"`
	Retention RetentionConfig `yaml:"retention,omitempty"`
	Documents DocumentsConfig `yaml:"documents,omitempty"`
	Search    SearchConfig    `yaml:"search,omitempty"`
	Telemetry TelemetryConfig `yaml:"telemetry,omitempty"`

	// Provider holds the raw YAML config for the LLM backend.
	// Decoded by the provider module at startup.
	Provider yaml.Node `yaml:"provider"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string `yaml:"level,omitempty"`

	// Format is "text" or "json". Empty means text.
	Format string `yaml:"format,omitempty"`
}

// HistoryConfig controls the conversation turn store.
type HistoryConfig struct {
	// Backend selects the store: "memory" or "sqlite". Empty means memory.
	Backend string `yaml:"backend,omitempty"`

	// Path is the SQLite database file. Required for the sqlite backend.
	Path string `yaml:"path,omitempty"`

	// MaxTurns caps stored turns per session. 0 means the default of 200.
	MaxTurns int `yaml:"max_turns,omitempty"`

	// RecentWindow is how many turns feed each prompt. 0 means 10.
	RecentWindow int `yaml:"recent_window,omitempty"`
}

// ComposerConfig controls prompt assembly.
type ComposerConfig struct {
	// MaxPromptTokens is the whole-prompt token budget. 0 means 1024.
	MaxPromptTokens int `yaml:"max_prompt_tokens,omitempty"`

	// CharsPerToken tunes the character-based token estimator. 0 means 4.
	CharsPerToken float64 `yaml:"chars_per_token,omitempty"`
}

// DispatchConfig controls request routing.
type DispatchConfig struct {
	// CallTimeout bounds each collaborator call (Go duration). Empty means 30s.
	CallTimeout string `yaml:"call_timeout,omitempty"`

	// SearchTool names the registry entry handling search intents.
	// Empty means "search".
	SearchTool string `yaml:"search_tool,omitempty"`
}

// RetentionConfig controls the idle-session sweeper.
type RetentionConfig struct {
	// MaxIdle is how long a session may sit untouched before it is
	// pruned (Go duration). Empty means 24h.
	MaxIdle string `yaml:"max_idle,omitempty"`

	// Schedule is a 5-field cron expression. Empty means "*/30 * * * *".
	Schedule string `yaml:"schedule,omitempty"`
}

// DocumentsConfig controls the full-text document index.
type DocumentsConfig struct {
	// Path is the SQLite database file. Empty disables the index.
	Path string `yaml:"path,omitempty"`
}

// SearchConfig controls the web search tool.
type SearchConfig struct {
	// BaseURL overrides the instant-answer API endpoint.
	BaseURL string `yaml:"base_url,omitempty"`

	// Timeout bounds each search request (Go duration). Empty means 10s.
	Timeout string `yaml:"timeout,omitempty"`
}

// TelemetryConfig controls metrics and tracing exports.
type TelemetryConfig struct {
	// MetricsListen is the address for the Prometheus /metrics endpoint.
	// Empty disables the listener.
	MetricsListen string `yaml:"metrics_listen,omitempty"`

	// OTLPEndpoint is the OTLP/HTTP trace collector endpoint.
	// Empty disables trace export.
	OTLPEndpoint string `yaml:"otlp_endpoint,omitempty"`
}
