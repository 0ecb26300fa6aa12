package index

import "sync/atomic"

// Handle is the swappable reference to the currently loaded index.
// Readers load an immutable snapshot; a background rebuild publishes a new
// snapshot with a single atomic swap, so a reader never sees a partially
// built index.
type Handle struct {
	current atomic.Pointer[SourceIndex]
}

// NewHandle creates a handle, optionally seeded with an initial snapshot.
func NewHandle(initial *SourceIndex) *Handle {
	h := &Handle{}
	if initial != nil {
		h.current.Store(initial)
	}
	return h
}

// Load returns the current snapshot, or nil when no index has been
// published yet.
func (h *Handle) Load() *SourceIndex {
	return h.current.Load()
}

// Swap publishes a new snapshot.
func (h *Handle) Swap(idx *SourceIndex) {
	h.current.Store(idx)
}
