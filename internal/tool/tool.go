// Package tool provides the capability registry consumed by the
// dispatcher. A tool is any function from a query to text; registration
// is plain function passing, no annotation or reflection machinery.
package tool

import "context"

// Func is the shape of every registered capability: it receives a
// (possibly normalized) query and returns text, or an error on failure.
// Implementations should honor ctx cancellation for anything that
// blocks on I/O.
type Func func(ctx context.Context, query string) (string, error)
