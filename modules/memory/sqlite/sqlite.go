// Package sqlite provides a SQLite-backed memory.Store so conversation
// history survives process restarts. One writer connection, WAL mode,
// idempotent schema migration.
package sqlite

// defaultBusyTimeout is the SQLite busy timeout in milliseconds.
const defaultBusyTimeout = 5000

// timeLayout is how turn timestamps are stored: UTC, fixed-width
// nanosecond fraction. Fixed width matters because Prune compares
// created_at strings; RFC3339Nano trims trailing zeros and would break
// lexicographic ordering inside a one-second window.
const timeLayout = "2006-01-02T15:04:05.000000000Z"
