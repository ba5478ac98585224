// Package providertest provides test helpers for the provider package.
package providertest

import (
	"context"
	"sync"

	"github.com/lenoxlabs/lenox/internal/provider"
)

// MockProvider is a configurable test double for provider.Provider.
// Set CompleteFunc to control behavior; an unset func panics on call.
// Safe for concurrent use.
type MockProvider struct {
	CompleteFunc func(ctx context.Context, req provider.CompletionRequest) (provider.CompletionResponse, error)
	WindowSize   int
	Model        string

	mu            sync.Mutex
	CompleteCalls int
	LastRequest   provider.CompletionRequest
}

// Complete delegates to CompleteFunc and records the call.
func (m *MockProvider) Complete(ctx context.Context, req provider.CompletionRequest) (provider.CompletionResponse, error) {
	m.mu.Lock()
	m.CompleteCalls++
	m.LastRequest = req
	m.mu.Unlock()
	return m.CompleteFunc(ctx, req)
}

// ContextWindowSize returns WindowSize, defaulting to 8192.
func (m *MockProvider) ContextWindowSize() int {
	if m.WindowSize == 0 {
		return 8192
	}
	return m.WindowSize
}

// ModelName returns Model, defaulting to "mock-model".
func (m *MockProvider) ModelName() string {
	if m.Model == "" {
		return "mock-model"
	}
	return m.Model
}
