package memory

import "time"

// Store manages per-session conversation history.
// Implementations must be safe for concurrent use. Turn ordering within
// a session is strictly insertion order; it defines recency.
type Store interface {
	// Append adds a turn to the session's history, creating the session
	// on first use. It fails only on a storage-backend fault.
	Append(sessionID string, turn Turn) error

	// Recent returns up to limit most recent turns in chronological
	// (oldest-first) order. If fewer exist, all are returned.
	// limit <= 0 returns an empty sequence.
	Recent(sessionID string, limit int) ([]Turn, error)

	// Clear removes all history for a session. Clearing a session that
	// does not exist is not an error.
	Clear(sessionID string) error

	// Len returns the number of turns stored for a session.
	Len(sessionID string) (int, error)
}

// Pruner is an optional interface stores may implement to support
// idle-session retention sweeps.
type Pruner interface {
	// Prune removes sessions idle longer than maxIdle and returns the
	// number of sessions removed.
	Prune(maxIdle time.Duration) int
}
