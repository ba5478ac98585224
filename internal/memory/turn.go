// Package memory provides the conversation context store: bounded,
// ordered per-session histories of user/assistant turns, with an
// in-memory implementation. A SQLite-backed implementation lives in
// modules/memory/sqlite.
package memory

import "time"

// Role identifies the author of a turn.
type Role string

// Role constants for conversation turns.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in a conversation. Turns are immutable once
// created: stores copy them in and out and never hand back shared
// slices of live state.
type Turn struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
