package tool

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
)

// Registry holds named tools. It is instance-based (not global) so
// tests and callers can substitute fakes freely.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Func
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Func)}
}

// Register adds a tool under the given name.
// It returns ErrEmptyToolName, ErrNilTool, or ErrDuplicateTool on
// invalid registrations.
func (r *Registry) Register(name string, fn Func) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyToolName
	}
	if fn == nil {
		return fmt.Errorf("%w: %s", ErrNilTool, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTool, name)
	}
	r.tools[name] = fn
	return nil
}

// Get returns the tool registered under name, or ErrToolNotFound.
func (r *Registry) Get(name string) (Func, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}
	return fn, nil
}

// Names returns all registered tool names sorted alphabetically.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Invoke looks up and runs a tool with a bounded wait. A timeout of
// zero means no bound beyond the caller's ctx.
func (r *Registry) Invoke(ctx context.Context, name, query string, timeout time.Duration) (string, error) {
	fn, err := r.Get(name)
	if err != nil {
		return "", err
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	out, err := fn(ctx, query)
	if err != nil {
		return "", fmt.Errorf("tool %s: %w", name, err)
	}
	return out, nil
}
