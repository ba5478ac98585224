package memory

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func turn(role Role, content string) Turn {
	return Turn{Role: role, Content: content, Timestamp: time.Now()}
}

// ---------------------------------------------------------------------------
// Append / Recent
// ---------------------------------------------------------------------------

func TestInMemoryStore_AppendAndRecent(t *testing.T) {
	t.Parallel()

	s := NewInMemoryStore(0)
	for i := 1; i <= 5; i++ {
		if err := s.Append("s1", turn(RoleUser, fmt.Sprintf("msg-%d", i))); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	got, err := s.Recent("s1", 3)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	want := []string{"msg-3", "msg-4", "msg-5"}
	if len(got) != len(want) {
		t.Fatalf("Recent() returned %d turns, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Content != w {
			t.Errorf("Recent()[%d].Content = %q, want %q (chronological order)", i, got[i].Content, w)
		}
	}
}

func TestInMemoryStore_Recent_LimitEdgeCases(t *testing.T) {
	t.Parallel()

	s := NewInMemoryStore(0)
	_ = s.Append("s1", turn(RoleUser, "only"))

	tests := []struct {
		name    string
		session string
		limit   int
		wantLen int
	}{
		{name: "zero_limit", session: "s1", limit: 0, wantLen: 0},
		{name: "negative_limit", session: "s1", limit: -1, wantLen: 0},
		{name: "limit_exceeds_size", session: "s1", limit: 10, wantLen: 1},
		{name: "unknown_session", session: "nope", limit: 5, wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := s.Recent(tt.session, tt.limit)
			if err != nil {
				t.Fatalf("Recent() error = %v", err)
			}
			if len(got) != tt.wantLen {
				t.Errorf("Recent(%q, %d) returned %d turns, want %d", tt.session, tt.limit, len(got), tt.wantLen)
			}
		})
	}
}

// Recent must hand back a copy, not a view into live session state.
func TestInMemoryStore_Recent_ReturnsCopy(t *testing.T) {
	t.Parallel()

	s := NewInMemoryStore(0)
	_ = s.Append("s1", turn(RoleUser, "original"))

	got, _ := s.Recent("s1", 1)
	got[0].Content = "mutated"

	again, _ := s.Recent("s1", 1)
	if again[0].Content != "original" {
		t.Errorf("stored turn mutated through Recent() result: %q", again[0].Content)
	}
}

// ---------------------------------------------------------------------------
// Capacity eviction
// ---------------------------------------------------------------------------

func TestInMemoryStore_CapacityEvictsOldest(t *testing.T) {
	t.Parallel()

	s := NewInMemoryStore(3)
	for i := 1; i <= 5; i++ {
		_ = s.Append("s1", turn(RoleUser, fmt.Sprintf("msg-%d", i)))
	}

	n, _ := s.Len("s1")
	if n != 3 {
		t.Fatalf("Len() = %d, want 3 after eviction", n)
	}

	got, _ := s.Recent("s1", 10)
	if got[0].Content != "msg-3" || got[2].Content != "msg-5" {
		t.Errorf("eviction kept wrong turns: first=%q last=%q, want msg-3..msg-5",
			got[0].Content, got[2].Content)
	}
}

// ---------------------------------------------------------------------------
// Clear / Len
// ---------------------------------------------------------------------------

func TestInMemoryStore_ClearIdempotent(t *testing.T) {
	t.Parallel()

	s := NewInMemoryStore(0)
	_ = s.Append("s1", turn(RoleUser, "x"))

	if err := s.Clear("s1"); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if err := s.Clear("s1"); err != nil {
		t.Fatalf("second Clear() error = %v", err)
	}
	if err := s.Clear("never-existed"); err != nil {
		t.Fatalf("Clear() on unknown session error = %v", err)
	}

	got, err := s.Recent("s1", 5)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Recent() after Clear() returned %d turns, want 0", len(got))
	}
}

// ---------------------------------------------------------------------------
// Prune
// ---------------------------------------------------------------------------

func TestInMemoryStore_Prune(t *testing.T) {
	t.Parallel()

	current := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewInMemoryStore(0)
	s.now = func() time.Time { return current }

	_ = s.Append("old", turn(RoleUser, "x"))
	current = current.Add(2 * time.Hour)
	_ = s.Append("fresh", turn(RoleUser, "y"))
	current = current.Add(30 * time.Minute)

	pruned := s.Prune(time.Hour)
	if pruned != 1 {
		t.Fatalf("Prune() = %d, want 1", pruned)
	}

	if n, _ := s.Len("old"); n != 0 {
		t.Errorf("idle session survived prune: Len(old) = %d", n)
	}
	if n, _ := s.Len("fresh"); n != 1 {
		t.Errorf("active session pruned: Len(fresh) = %d", n)
	}
}

// ---------------------------------------------------------------------------
// Concurrency
// ---------------------------------------------------------------------------

func TestInMemoryStore_ConcurrentSessions(t *testing.T) {
	t.Parallel()

	s := NewInMemoryStore(0)
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := fmt.Sprintf("session-%d", i)
			for j := range 50 {
				_ = s.Append(id, turn(RoleUser, fmt.Sprintf("m-%d", j)))
				_, _ = s.Recent(id, 10)
			}
		}()
	}
	wg.Wait()

	for i := range 8 {
		id := fmt.Sprintf("session-%d", i)
		if n, _ := s.Len(id); n != 50 {
			t.Errorf("Len(%s) = %d, want 50", id, n)
		}
	}
}
