// Package pedigree implements the REC-GEN data model: genes, individuals,
// couples and the generation-layered pedigree graph that connects them.
package pedigree

import "sync"

// Registry is a mapping from stable integer ID to a live object of type T,
// plus a monotonic maximum-ID counter; each Pedigree owns one for its
// individuals and one for its couples. Parent/mate/child relations are
// held as direct pointers; the registry is what mints fresh IDs and
// resolves the IDs a dump refers to back to live objects during restore.
//
// A Registry is safe for concurrent reads; mutation (Set/Clear) is expected
// to happen only during construction and restore, never interleaved with
// algorithm execution (see spec §5, "Process-wide state").
type Registry[T any] struct {
	mu     sync.RWMutex
	byID   map[int64]T
	maxID  int64
}

// NewRegistry returns an empty registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{byID: make(map[int64]T)}
}

// Set records id -> obj, bumping the max-ID counter if necessary.
func (r *Registry[T]) Set(id int64, obj T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[id] = obj
	if id > r.maxID {
		r.maxID = id
	}
}

// Next allocates and returns the next unused ID (max seen so far, plus one),
// without recording it; the caller is expected to Set it once the object
// exists.
func (r *Registry[T]) Next() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.maxID++
	return r.maxID
}

// Get returns the object for id and whether it was present.
func (r *Registry[T]) Get(id int64) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	obj, ok := r.byID[id]
	return obj, ok
}

// Clear empties the registry and resets the max-ID counter. Called at the
// start of every full-dump restore (spec §4.1, §5): "dump/restore produces
// nodes in dependency-violating orders, so references by ID must resolve
// after the fact," and a fresh restore must not see stale entries from a
// previous one.
func (r *Registry[T]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID = make(map[int64]T)
	r.maxID = 0
}

// Len reports how many objects are currently registered.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// All returns every registered object, in unspecified order.
func (r *Registry[T]) All() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]T, 0, len(r.byID))
	for _, obj := range r.byID {
		out = append(out, obj)
	}
	return out
}
