package index

import "sync/atomic"

// Handle publishes the current snapshot to concurrent readers. Rebuilds
// construct a complete new snapshot and Swap it in; readers always observe
// a whole snapshot, never a partially built one.
type Handle struct {
	current atomic.Pointer[Snapshot]
}

// NewHandle creates a handle pointing at the given snapshot.
func NewHandle(s *Snapshot) *Handle {
	h := &Handle{}
	h.current.Store(s)
	return h
}

// Current returns the snapshot visible to readers right now.
func (h *Handle) Current() *Snapshot {
	return h.current.Load()
}

// Swap atomically replaces the published snapshot.
func (h *Handle) Swap(s *Snapshot) {
	h.current.Store(s)
}
