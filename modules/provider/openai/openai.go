// Package openai implements provider.Provider against any
// OpenAI-compatible chat-completions endpoint.
package openai

import (
	"net/http"

	"github.com/lenoxlabs/lenox/internal/provider"
)

// Provider talks to an OpenAI-compatible chat-completions API.
type Provider struct {
	config Config
	client *http.Client
}

// Compile-time interface check.
var _ provider.Provider = (*Provider)(nil)

// New creates a Provider from the given config.
func New(cfg Config) (*Provider, error) {
	cfg.defaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &Provider{
		config: cfg,
		client: &http.Client{Timeout: cfg.parsedTimeout()},
	}, nil
}

// ContextWindowSize returns the configured or model-known context
// window, falling back to a conservative default.
func (p *Provider) ContextWindowSize() int {
	if p.config.ContextWindow > 0 {
		return p.config.ContextWindow
	}
	if size, ok := knownContextWindows[p.config.Model]; ok {
		return size
	}
	return 8192
}

// ModelName returns the configured model identifier.
func (p *Provider) ModelName() string {
	return p.config.Model
}
