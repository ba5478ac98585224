// Package sqlite implements the dispatcher's document index on SQLite
// FTS5: ingested documents are full-text searchable and queries come
// back as snippet digests.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	_ "modernc.org/sqlite" // SQLite driver registration
)

// noMatchReply is returned for queries with no matching documents.
// It is an answer, not a failure: the index did its job.
const noMatchReply = "No ingested documents match the query."

// maxResults caps how many snippets a single query folds together.
const maxResults = 3

// Index is a SQLite FTS5 document index.
type Index struct {
	db *sql.DB
}

// Open creates or opens an index database at path. The caller closes
// the returned *sql.DB when done.
func Open(path string) (*Index, *sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, nil, fmt.Errorf("docindex: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	ctx := context.TODO()
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			id         TEXT PRIMARY KEY,
			title      TEXT NOT NULL DEFAULT '',
			content    TEXT NOT NULL,
			created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
		)`,
		`CREATE VIRTUAL TABLE IF NOT EXISTS documents_fts USING fts5(
			content,
			content=documents,
			content_rowid=rowid
		)`,
		`CREATE TRIGGER IF NOT EXISTS documents_ai AFTER INSERT ON documents BEGIN
			INSERT INTO documents_fts(rowid, content) VALUES (new.rowid, new.content);
		END`,
		`CREATE TRIGGER IF NOT EXISTS documents_ad AFTER DELETE ON documents BEGIN
			INSERT INTO documents_fts(documents_fts, rowid, content) VALUES ('delete', old.rowid, old.content);
		END`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("docindex: migrate: %w", err)
		}
	}

	return &Index{db: db}, db, nil
}

// Ingest stores a document and returns its generated ID.
func (ix *Index) Ingest(ctx context.Context, title, content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("docindex: empty document content")
	}

	id := uuid.NewString()
	_, err := ix.db.ExecContext(ctx,
		"INSERT INTO documents (id, title, content) VALUES (?, ?, ?)",
		id, title, content,
	)
	if err != nil {
		return "", fmt.Errorf("docindex: ingest: %w", err)
	}
	return id, nil
}

// Query answers a free-text question with a digest of the best-matching
// document snippets. A query matching nothing returns a friendly
// no-match reply, not an error.
func (ix *Index) Query(ctx context.Context, query string) (string, error) {
	match := ftsQuery(query)
	if match == "" {
		return noMatchReply, nil
	}

	rows, err := ix.db.QueryContext(ctx, `
		SELECT d.title, snippet(documents_fts, 0, '', '', '…', 24)
		FROM documents_fts
		JOIN documents d ON d.rowid = documents_fts.rowid
		WHERE documents_fts MATCH ?
		ORDER BY rank
		LIMIT ?`,
		match, maxResults,
	)
	if err != nil {
		return "", fmt.Errorf("docindex: query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var b strings.Builder
	found := 0
	for rows.Next() {
		var title, snippet string
		if err := rows.Scan(&title, &snippet); err != nil {
			return "", fmt.Errorf("docindex: scan: %w", err)
		}
		if found > 0 {
			b.WriteString("\n\n")
		}
		if title != "" {
			fmt.Fprintf(&b, "%s: ", title)
		}
		b.WriteString(snippet)
		found++
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("docindex: query rows: %w", err)
	}

	if found == 0 {
		return noMatchReply, nil
	}
	return b.String(), nil
}

// ftsQuery turns free text into an FTS5 OR-query of quoted terms, which
// neutralizes FTS operator characters in user input.
func ftsQuery(query string) string {
	fields := strings.Fields(query)
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.ReplaceAll(f, `"`, "")
		if f != "" {
			terms = append(terms, `"`+f+`"`)
		}
	}
	return strings.Join(terms, " OR ")
}
