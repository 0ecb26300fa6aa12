package indexer

import (
	"context"
	"log"
	"sync"

	"github.com/srcjump/srcjump/internal/index"
)

// Refresher runs one change-detection-plus-rebuild cycle. Implemented by
// Builder; abstracted so the coalescing policy can be tested in isolation.
type Refresher interface {
	Refresh(ctx context.Context) (*index.SourceIndex, bool, error)
}

// Rebuilder serializes index rebuilds: at most one runs at a time, and a
// trigger arriving while one is in flight is coalesced into a single
// pending flag that re-runs exactly one additional rebuild afterwards.
// A rebuild in progress cannot be cancelled, only superseded.
type Rebuilder struct {
	refresher Refresher
	handle    *index.Handle

	mu      sync.Mutex
	running bool
	pending bool
}

// NewRebuilder creates a rebuild coordinator that publishes fresh snapshots
// to the given handle.
func NewRebuilder(refresher Refresher, handle *index.Handle) *Rebuilder {
	return &Rebuilder{
		refresher: refresher,
		handle:    handle,
	}
}

// Trigger requests a rebuild. Returns immediately; the rebuild runs on a
// background goroutine. Concurrent triggers collapse per the
// one-in-flight-plus-one-pending policy.
func (r *Rebuilder) Trigger(ctx context.Context) {
	r.mu.Lock()
	if r.running {
		r.pending = true
		r.mu.Unlock()
		return
	}
	r.running = true
	r.mu.Unlock()

	go r.loop(ctx)
}

// loop runs rebuilds until no trigger arrived during the last one.
func (r *Rebuilder) loop(ctx context.Context) {
	for {
		r.rebuildOnce(ctx)

		r.mu.Lock()
		if r.pending && ctx.Err() == nil {
			r.pending = false
			r.mu.Unlock()
			continue
		}
		r.running = false
		r.mu.Unlock()
		return
	}
}

// rebuildOnce runs one refresh cycle and publishes the result. A failed
// cycle leaves the previous good snapshot in place.
func (r *Rebuilder) rebuildOnce(ctx context.Context) {
	idx, rebuilt, err := r.refresher.Refresh(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		log.Printf("Rebuild failed, keeping previous index: %v", err)
		return
	}

	if idx != nil {
		r.handle.Swap(idx)
	}
	if rebuilt {
		log.Printf("Index rebuilt: %d files", len(idx.DetailByFilePath))
	}
}

// Idle reports whether no rebuild is running or pending. Intended for tests.
func (r *Rebuilder) Idle() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return !r.running && !r.pending
}
