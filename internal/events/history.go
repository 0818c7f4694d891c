package events

import (
	"context"
	"sync"
)

// History is an EventHandler that keeps the most recent events in a fixed
// size ring. A capacity of zero keeps nothing.
type History struct {
	mu    sync.Mutex
	ring  []*QueueEvent
	next  int
	count int
}

var _ EventHandler = (*History)(nil)

// NewHistory creates a History holding up to capacity events. Negative
// capacities are treated as zero.
func NewHistory(capacity int) *History {
	if capacity < 0 {
		capacity = 0
	}
	return &History{ring: make([]*QueueEvent, capacity)}
}

// HandleEvent records event, evicting the oldest once the ring is full.
func (h *History) HandleEvent(_ context.Context, event *QueueEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.ring) == 0 {
		return nil
	}
	h.ring[h.next] = event
	h.next = (h.next + 1) % len(h.ring)
	if h.count < len(h.ring) {
		h.count++
	}
	return nil
}

// Recent returns up to limit events, oldest first. A limit <= 0 returns every
// retained event.
func (h *History) Recent(limit int) []*QueueEvent {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := h.count
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]*QueueEvent, 0, n)
	// Start n entries back from the write position.
	start := (h.next - n + len(h.ring)) % max(len(h.ring), 1)
	for i := 0; i < n; i++ {
		out = append(out, h.ring[(start+i)%len(h.ring)])
	}
	return out
}

// Len returns the number of retained events.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.count
}
