package dispatch

import "sync"

// laneLock serializes dispatches per session: queries within the same
// session are processed one at a time, while different sessions proceed
// concurrently. A global mutex protects the lane map and is held only
// briefly; each lane carries its own mutex for intra-session ordering.
type laneLock struct {
	mu    sync.Mutex
	lanes map[string]*lane
}

// lane stores per-session synchronization metadata. refs counts
// goroutines holding or waiting on the lane so idle lanes can be freed.
type lane struct {
	mu   sync.Mutex
	refs int
}

func newLaneLock() *laneLock {
	return &laneLock{lanes: make(map[string]*lane)}
}

// acquire gets or creates the per-session mutex and locks it.
// The caller must call release with the same ID when done.
func (l *laneLock) acquire(sessionID string) {
	l.mu.Lock()
	ln, ok := l.lanes[sessionID]
	if !ok {
		ln = &lane{}
		l.lanes[sessionID] = ln
	}
	ln.refs++
	l.mu.Unlock()

	// Lock outside the global mutex so other sessions are not blocked.
	ln.mu.Lock()
}

// release unlocks the per-session mutex and frees the lane once no
// goroutine holds or waits on it.
func (l *laneLock) release(sessionID string) {
	l.mu.Lock()
	ln, ok := l.lanes[sessionID]
	if !ok {
		l.mu.Unlock()
		return
	}
	ln.refs--
	if ln.refs == 0 {
		delete(l.lanes, sessionID)
	}
	l.mu.Unlock()

	ln.mu.Unlock()
}
