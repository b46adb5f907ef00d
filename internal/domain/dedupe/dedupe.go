// Package dedupe tracks already-applied match ids. Rating updates are not
// idempotent: replaying the same outcome would double-apply every delta, so
// the service refuses a match id it has seen before.
package dedupe

import (
	"context"
	"sync"
)

// Deduper records seen match ids to ensure at-most-once application.
type Deduper interface {
	// SeenAndRecord atomically checks if id was seen and records it if not.
	// Returns true if id was already seen, false if it was newly recorded.
	SeenAndRecord(ctx context.Context, id string) bool

	// Unrecord removes an id from the seen set, allowing a retry. Use it
	// when a match was marked as seen but failed to apply.
	Unrecord(ctx context.Context, id string)

	// Size returns the number of ids currently tracked.
	Size() int
}

// inMemoryDeduper implements Deduper with a map plus a FIFO eviction ring.
// With maxSize <= 0 it is unbounded.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	ring    []string
	next    int
	maxSize int
}

// NewInMemoryDeduper creates a deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		maxSize: 50_000,
	}

	for _, opt := range opts {
		opt(d)
	}

	d.seen = make(map[string]struct{})
	if d.maxSize > 0 {
		d.ring = make([]string, d.maxSize)
	}

	return d
}

// SeenAndRecord atomically checks and records one id.
func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; ok {
		return true
	}
	if d.maxSize > 0 {
		if evicted := d.ring[d.next]; evicted != "" {
			delete(d.seen, evicted)
		}
		d.ring[d.next] = id
		d.next = (d.next + 1) % d.maxSize
	}
	d.seen[id] = struct{}{}
	return false
}

// Unrecord removes an id so the match may be resubmitted.
func (d *inMemoryDeduper) Unrecord(_ context.Context, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.seen, id)
	// The ring slot is left in place; eviction of a stale slot is a no-op
	// because the map entry is already gone.
}

// Size returns the number of tracked ids.
func (d *inMemoryDeduper) Size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.seen)
}
