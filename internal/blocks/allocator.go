package blocks

import "sync"

// Allocator hands out instance IDs, one monotonic counter per kind.
// IDs are never reused: discarding a block does not decrement its
// counter, so every unique name stays unique for the allocator's
// lifetime. Zero value is ready to use.
type Allocator struct {
	mu       sync.Mutex
	counters map[string]int
}

// NewAllocator returns an empty allocator.
func NewAllocator() *Allocator {
	return &Allocator{counters: make(map[string]int)}
}

// Next returns the next ID for kind and advances the counter.
func (a *Allocator) Next(kind Kind) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.counters == nil {
		a.counters = make(map[string]int)
	}
	id := a.counters[string(kind)]
	a.counters[string(kind)] = id + 1
	return id
}

// Reserve bumps the counter for kind to at least id+1 and returns id.
// Used when reloading serialized systems so restored blocks keep their
// names without colliding with blocks allocated afterwards.
func (a *Allocator) Reserve(kind Kind, id int) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.counters == nil {
		a.counters = make(map[string]int)
	}
	if next := a.counters[string(kind)]; id >= next {
		a.counters[string(kind)] = id + 1
	}
	return id
}

// Peek reports the next ID that would be handed out for kind without
// advancing the counter.
func (a *Allocator) Peek(kind Kind) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.counters[string(kind)]
}
