package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"time"

	"github.com/lenoxlabs/lenox/internal/memory"
)

// turnStore implements memory.Store on a SQLite database.
type turnStore struct {
	db       *sql.DB
	maxTurns int
}

// Compile-time interface checks.
var (
	_ memory.Store  = (*turnStore)(nil)
	_ memory.Pruner = (*turnStore)(nil)
)

// Append adds a turn to the session's history. When maxTurns is set,
// rows beyond the cap are deleted oldest-first in the same statement
// batch.
func (s *turnStore) Append(sessionID string, turn memory.Turn) error {
	ctx := context.TODO()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO turns (session_id, seq, role, content, created_at)
		VALUES (?, COALESCE((SELECT MAX(seq) FROM turns WHERE session_id = ?), 0) + 1,
		        ?, ?, ?)`,
		sessionID, sessionID,
		string(turn.Role), turn.Content, turn.Timestamp.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("sqlite: append turn: %w", err)
	}

	if s.maxTurns > 0 {
		_, err = s.db.ExecContext(ctx, `
			DELETE FROM turns
			WHERE session_id = ?
			  AND seq <= (SELECT MAX(seq) FROM turns WHERE session_id = ?) - ?`,
			sessionID, sessionID, s.maxTurns,
		)
		if err != nil {
			return fmt.Errorf("sqlite: evict old turns: %w", err)
		}
	}

	return nil
}

// Recent returns up to limit most recent turns in chronological order.
func (s *turnStore) Recent(sessionID string, limit int) ([]memory.Turn, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(context.TODO(), `
		SELECT role, content, created_at
		FROM turns
		WHERE session_id = ?
		ORDER BY seq DESC
		LIMIT ?`,
		sessionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: get recent: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var turns []memory.Turn
	for rows.Next() {
		turn, err := scanTurn(rows)
		if err != nil {
			return nil, err
		}
		turns = append(turns, turn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: get recent rows: %w", err)
	}

	// Reverse to chronological order.
	slices.Reverse(turns)
	return turns, nil
}

// Clear removes all history for a session. Idempotent.
func (s *turnStore) Clear(sessionID string) error {
	if _, err := s.db.ExecContext(context.TODO(),
		"DELETE FROM turns WHERE session_id = ?", sessionID); err != nil {
		return fmt.Errorf("sqlite: clear session: %w", err)
	}
	return nil
}

// Len returns the number of turns stored for a session.
func (s *turnStore) Len(sessionID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(context.TODO(),
		"SELECT COUNT(*) FROM turns WHERE session_id = ?", sessionID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("sqlite: count turns: %w", err)
	}
	return n, nil
}

// Prune removes sessions whose most recent turn is older than maxIdle
// and returns the number of sessions removed. Failures report zero;
// the retention job only logs the count.
func (s *turnStore) Prune(maxIdle time.Duration) int {
	ctx := context.TODO()
	cutoff := time.Now().UTC().Add(-maxIdle).Format(timeLayout)

	// Count first: rows affected by the delete counts turns, not sessions.
	var stale int
	if err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM (
			SELECT session_id FROM turns
			GROUP BY session_id
			HAVING MAX(created_at) < ?
		)`, cutoff).Scan(&stale); err != nil || stale == 0 {
		return 0
	}

	if _, err := s.db.ExecContext(ctx, `
		DELETE FROM turns WHERE session_id IN (
			SELECT session_id FROM turns
			GROUP BY session_id
			HAVING MAX(created_at) < ?
		)`, cutoff); err != nil {
		return 0
	}
	return stale
}

// scanTurn reads one turn row.
func scanTurn(rows *sql.Rows) (memory.Turn, error) {
	var role, content, createdAt string
	if err := rows.Scan(&role, &content, &createdAt); err != nil {
		return memory.Turn{}, fmt.Errorf("sqlite: scan turn: %w", err)
	}

	ts, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return memory.Turn{}, fmt.Errorf("sqlite: parse timestamp: %w", err)
	}

	return memory.Turn{Role: memory.Role(role), Content: content, Timestamp: ts}, nil
}
