// Package provider defines the LLM oracle contract consumed by the
// dispatcher. Concrete implementations live under modules/provider.
package provider

import "context"

// Provider is the interface for communicating with an LLM backend.
type Provider interface {
	// Complete sends a completion request and returns the full response.
	// Transport failures, rate limits, and context-length overruns are
	// reported through the sentinel errors in this package.
	Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error)

	// ContextWindowSize returns the maximum context window in tokens.
	ContextWindowSize() int

	// ModelName returns the identifier of the underlying model.
	ModelName() string
}
