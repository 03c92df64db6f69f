package sample

import (
	"fmt"
	"sort"
	"sync"
)

// ID selects an integrand. The built-in ids are 1 through 4.
type ID int

const (
	IDLinear    ID = 1
	IDQuadratic ID = 2
	IDSine      ID = 3
	IDExpCos    ID = 4
)

// Registry maps function ids to integrands. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	funcs map[ID]Func
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[ID]Func)}
}

// Default returns a fresh registry holding F1..F4 under ids 1..4.
func Default() *Registry {
	r := NewRegistry()
	_ = r.Register(IDLinear, F1)
	_ = r.Register(IDQuadratic, F2)
	_ = r.Register(IDSine, F3)
	_ = r.Register(IDExpCos, F4)
	return r
}

// Register binds fn to id, replacing any previous binding.
func (r *Registry) Register(id ID, fn Func) error {
	if fn == nil {
		return fmt.Errorf("sample: nil function for id %d", id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[id] = fn
	return nil
}

// Lookup returns the integrand registered under id.
func (r *Registry) Lookup(id ID) (Func, error) {
	r.mu.RLock()
	fn, ok := r.funcs[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("sample: unknown function id %d", id)
	}
	return fn, nil
}

// IDs returns the registered ids in ascending order.
func (r *Registry) IDs() []ID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]ID, 0, len(r.funcs))
	for id := range r.funcs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
