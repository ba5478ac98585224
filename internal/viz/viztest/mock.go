// Package viztest provides test helpers for the viz package.
package viztest

import (
	"context"
	"sync"

	"github.com/lenoxlabs/lenox/internal/viz"
)

// MockBuilder is a configurable test double for viz.Builder.
type MockBuilder struct {
	Output string
	Err    error

	mu         sync.Mutex
	BuildCalls int
	LastSeries viz.Series
	LastKind   viz.Kind
}

// Compile-time interface check.
var _ viz.Builder = (*MockBuilder)(nil)

// Build records the call and returns the configured output or error.
func (m *MockBuilder) Build(_ context.Context, series viz.Series, kind viz.Kind) (string, error) {
	m.mu.Lock()
	m.BuildCalls++
	m.LastSeries = series
	m.LastKind = kind
	m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	return m.Output, nil
}
