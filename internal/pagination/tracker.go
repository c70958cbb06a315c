package pagination

import "sync"

// RunTracker lets callers drop stale results when pagination runs for the same
// document overlap. The engine itself has no cancellation; the latest snapshot wins.
type RunTracker struct {
	mu        sync.Mutex
	issued    map[string]uint64
	committed map[string]uint64
}

// NewRunTracker creates an empty RunTracker
func NewRunTracker() *RunTracker {
	return &RunTracker{
		issued:    make(map[string]uint64),
		committed: make(map[string]uint64),
	}
}

// Begin returns the sequence number of a new run for key
func (t *RunTracker) Begin(key string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.issued[key]++
	return t.issued[key]
}

// Commit records a finished run. It returns false when a newer run for key
// has already been committed, in which case the caller must discard its result.
func (t *RunTracker) Commit(key string, seq uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if seq <= t.committed[key] {
		return false
	}
	t.committed[key] = seq
	return true
}
