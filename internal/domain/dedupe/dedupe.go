// Package dedupe provides idempotency tracking for record ingest.
package dedupe

import (
	"context"
	"sync"
)

// Tracker records seen record IDs so re-posted records ack as duplicates
// instead of inserting twice.
type Tracker interface {
	// SeenAndRecord atomically checks if id was seen and records it if
	// not. Returns true if id was already seen.
	SeenAndRecord(ctx context.Context, id string) bool

	// Forget removes an ID from the seen set. Used to roll back the
	// seen mark when the insert behind it failed.
	Forget(ctx context.Context, id string)

	Size() int
}

// tracker is a bounded in-memory Tracker. When full, the oldest recorded
// ID is evicted (FIFO) via a ring of insertion order.
type tracker struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	order   []string
	head    int
	maxSize int
}

// NewTracker creates a bounded in-memory tracker.
func NewTracker(opts ...Option) Tracker {
	t := &tracker{maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(t)
	}
	t.seen = make(map[string]struct{}, t.maxSize)
	t.order = make([]string, 0, t.maxSize)
	return t
}

func (t *tracker) SeenAndRecord(_ context.Context, id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.seen[id]; ok {
		return true
	}
	if len(t.seen) >= t.maxSize {
		t.evictOldest()
	}
	t.seen[id] = struct{}{}
	t.order = append(t.order, id)
	return false
}

func (t *tracker) Forget(_ context.Context, id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.seen, id)
	// The stale ring slot is skipped at eviction time.
}

// evictOldest drops ring entries until one still present in the seen set
// is removed. Must hold t.mu.
func (t *tracker) evictOldest() {
	for t.head < len(t.order) {
		id := t.order[t.head]
		t.head++
		if _, ok := t.seen[id]; ok {
			delete(t.seen, id)
			break
		}
	}
	// Compact once the consumed prefix dominates the ring.
	if t.head > 0 && t.head >= len(t.order)/2 {
		t.order = append(t.order[:0:0], t.order[t.head:]...)
		t.head = 0
	}
}

func (t *tracker) Size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.seen)
}
