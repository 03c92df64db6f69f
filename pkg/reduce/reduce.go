// Package reduce combines the sample values produced by workers into a single
// sum, at one of three synchronization granularities.
package reduce

import (
	"fmt"
	"strings"
	"sync"
)

// Reducer receives the values a worker produces. Record is called once per
// evaluated sample and RecordChunk once per claimed range with that range's
// local sum. Finalize is called once, after every worker has terminated, with
// each worker's lifetime partial sum indexed by worker id.
type Reducer interface {
	Record(worker int, value float64)
	RecordChunk(worker int, sum float64)
	Finalize(partials []float64) float64
}

// Kind names a reduction granularity.
type Kind int

const (
	KindIteration Kind = iota
	KindChunk
	KindThread
)

func (k Kind) String() string {
	switch k {
	case KindIteration:
		return "iteration"
	case KindChunk:
		return "chunk"
	case KindThread:
		return "thread"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind accepts "iteration", "chunk" or "thread", case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "iteration":
		return KindIteration, nil
	case "chunk":
		return KindChunk, nil
	case "thread":
		return KindThread, nil
	}
	return 0, fmt.Errorf("reduce: unknown sync %q", s)
}

// New returns a fresh reducer of the given kind. Reducers hold the state of a
// single run and must not be reused.
func New(kind Kind) (Reducer, error) {
	switch kind {
	case KindIteration:
		return &Iteration{}, nil
	case KindChunk:
		return &Chunk{}, nil
	case KindThread:
		return Thread{}, nil
	}
	return nil, fmt.Errorf("reduce: unknown sync %v", kind)
}

// accumulator is a mutex-guarded running sum shared by every worker.
type accumulator struct {
	mu    sync.Mutex
	total float64
}

func (a *accumulator) add(v float64) {
	a.mu.Lock()
	a.total += v
	a.mu.Unlock()
}

func (a *accumulator) sum() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.total
}

// Iteration adds every single sample to the shared sum under the lock.
type Iteration struct {
	acc accumulator
}

// Record adds one sample to the shared sum.
func (r *Iteration) Record(_ int, value float64) { r.acc.add(value) }

// RecordChunk is a no-op; every sample was already recorded.
func (r *Iteration) RecordChunk(int, float64) {}

// Finalize returns the shared sum and ignores the partials.
func (r *Iteration) Finalize([]float64) float64 { return r.acc.sum() }

// Chunk adds one locally summed range at a time to the shared sum.
type Chunk struct {
	acc accumulator
}

// Record is a no-op; samples reach the sum through RecordChunk.
func (r *Chunk) Record(int, float64) {}

// RecordChunk adds the sum of one range to the shared sum.
func (r *Chunk) RecordChunk(_ int, sum float64) { r.acc.add(sum) }

// Finalize returns the shared sum and ignores the partials.
func (r *Chunk) Finalize([]float64) float64 { return r.acc.sum() }

// Thread touches no shared state while workers run. Finalize merges the
// private partial sums in worker order.
type Thread struct{}

// Record is a no-op.
func (Thread) Record(int, float64) {}

// RecordChunk is a no-op.
func (Thread) RecordChunk(int, float64) {}

// Finalize returns the sum of the per-worker partials.
func (Thread) Finalize(partials []float64) float64 {
	total := 0.0
	for _, p := range partials {
		total += p
	}
	return total
}
