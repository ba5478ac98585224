// Package tooltest provides test helpers for the tool package.
package tooltest

import (
	"context"
	"sync"
)

// MockTool is a configurable tool func for tests. Static reply unless
// Err is set; calls are counted.
type MockTool struct {
	Reply string
	Err   error

	mu    sync.Mutex
	Calls int
	// LastQuery records the most recent query the tool received.
	LastQuery string
}

// Func returns the tool function bound to this mock.
func (m *MockTool) Func() func(ctx context.Context, query string) (string, error) {
	return func(_ context.Context, query string) (string, error) {
		m.mu.Lock()
		m.Calls++
		m.LastQuery = query
		m.mu.Unlock()
		if m.Err != nil {
			return "", m.Err
		}
		return m.Reply, nil
	}
}
