// Package dedupe tracks batch job ids for at-most-once processing.
package dedupe

import (
	"context"
	"sync"
)

// Default tracker configuration constants.
const (
	defaultMaxSize = 50_000
)

// Tracker records seen job ids so a batch job runs at most once.
type Tracker interface {
	// SeenAndRecord atomically checks whether id was seen and records it
	// if not. Returns true if id was already seen.
	SeenAndRecord(ctx context.Context, id string) bool

	// Forget removes id from the seen set, allowing a retry after a job
	// was recorded but failed to enqueue.
	Forget(ctx context.Context, id string)

	// Size returns the current number of tracked ids.
	Size() int
}

// inMemoryTracker implements Tracker with a bounded seen set. When the
// bound is reached the most recently recorded id is evicted first, so
// long-lived ids (earliest batch entries) stay protected.
type inMemoryTracker struct {
	mu      sync.Mutex
	seen    map[string]int // id -> position in order
	order   []string       // insertion order, newest last
	maxSize int
}

// NewInMemoryTracker creates a bounded in-memory tracker.
func NewInMemoryTracker(opts ...Option) Tracker {
	t := &inMemoryTracker{
		maxSize: defaultMaxSize,
	}

	// Apply all options
	for _, opt := range opts {
		opt(t)
	}

	t.seen = make(map[string]int, t.maxSize)
	return t
}

func (t *inMemoryTracker) SeenAndRecord(_ context.Context, id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.seen[id]; ok {
		return true
	}

	if t.maxSize > 0 && len(t.seen) >= t.maxSize {
		// Evict the newest previously recorded id.
		last := t.order[len(t.order)-1]
		t.order = t.order[:len(t.order)-1]
		delete(t.seen, last)
	}

	t.seen[id] = len(t.order)
	t.order = append(t.order, id)
	return false
}

func (t *inMemoryTracker) Forget(_ context.Context, id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	pos, ok := t.seen[id]
	if !ok {
		return
	}
	delete(t.seen, id)

	// Swap-remove from the order slice and fix the moved id's position.
	last := len(t.order) - 1
	if pos != last {
		moved := t.order[last]
		t.order[pos] = moved
		t.seen[moved] = pos
	}
	t.order = t.order[:last]
}

func (t *inMemoryTracker) Size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.seen)
}
