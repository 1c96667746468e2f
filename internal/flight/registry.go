package flight

import (
	"sort"
	"sync"
)

// Registry tracks which user ids currently have a fetch in flight. At most
// one caller wins the claim for an id; the claim is held until the worker
// releases it, regardless of what happens to the caller.
type Registry struct {
	mu       sync.Mutex
	inFlight map[int64]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{inFlight: make(map[int64]struct{})}
}

// Claim marks id as in flight. It reports true when the caller won the claim
// and false when a fetch for id is already in flight. Check and set are
// atomic.
func (r *Registry) Claim(id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.inFlight[id]; ok {
		return false
	}
	r.inFlight[id] = struct{}{}
	return true
}

// Release drops the claim for id. Releasing an unclaimed id is a no-op.
func (r *Registry) Release(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.inFlight, id)
}

// Contains reports whether id is currently in flight.
func (r *Registry) Contains(id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.inFlight[id]
	return ok
}

// Len returns the number of in-flight ids.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.inFlight)
}

// Snapshot returns the in-flight ids in ascending order.
func (r *Registry) Snapshot() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int64, 0, len(r.inFlight))
	for id := range r.inFlight {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
