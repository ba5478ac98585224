package sqlite

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func openTestIndex(t *testing.T) *Index {
	t.Helper()

	ix, db, err := Open(filepath.Join(t.TempDir(), "docs.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return ix
}

func TestIndex_IngestAndQuery(t *testing.T) {
	t.Parallel()

	ix := openTestIndex(t)
	ctx := context.Background()

	id, err := ix.Ingest(ctx, "Q3 report", "The report projects strong staking yields for ethereum validators.")
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if id == "" {
		t.Fatal("Ingest() returned empty id")
	}

	got, err := ix.Query(ctx, "staking ethereum")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if !strings.Contains(got, "Q3 report") {
		t.Errorf("Query() = %q, want title in digest", got)
	}
	if !strings.Contains(got, "staking") {
		t.Errorf("Query() = %q, want matching snippet", got)
	}
}

func TestIndex_QueryNoMatch(t *testing.T) {
	t.Parallel()

	ix := openTestIndex(t)
	ctx := context.Background()

	if _, err := ix.Ingest(ctx, "", "nothing relevant here"); err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	got, err := ix.Query(ctx, "quantum blockchain sharding")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if got != "No ingested documents match the query." {
		t.Errorf("Query() = %q, want no-match reply", got)
	}
}

func TestIndex_QueryOperatorCharactersAreNeutralized(t *testing.T) {
	t.Parallel()

	ix := openTestIndex(t)
	ctx := context.Background()

	if _, err := ix.Ingest(ctx, "", "bitcoin supply is capped"); err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	// FTS operator syntax in user input must not produce a query error.
	for _, q := range []string{`bitcoin AND`, `"unbalanced`, `NEAR(x`, `*`} {
		if _, err := ix.Query(ctx, q); err != nil {
			t.Errorf("Query(%q) error = %v, want graceful handling", q, err)
		}
	}
}

func TestIndex_IngestEmptyContent(t *testing.T) {
	t.Parallel()

	ix := openTestIndex(t)
	if _, err := ix.Ingest(context.Background(), "t", "   "); err == nil {
		t.Error("Ingest() with blank content: want error, got nil")
	}
}
