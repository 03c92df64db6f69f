package partition

import (
	"fmt"
	"sync/atomic"
)

// Static splits [0, n) into one contiguous block per worker of n/workers
// indices each. The n%workers trailing indices belong to no block and are
// never issued; Dropped reports how many.
type Static struct {
	n       int
	perWork int
	served  []atomic.Bool
}

// NewStatic precomputes the blocks for n indices and workers workers.
func NewStatic(n, workers int) (*Static, error) {
	if n < 0 {
		return nil, fmt.Errorf("partition: negative sample count %d", n)
	}
	if workers <= 0 {
		return nil, fmt.Errorf("partition: worker count must be > 0, got %d", workers)
	}
	return &Static{
		n:       n,
		perWork: n / workers,
		served:  make([]atomic.Bool, workers),
	}, nil
}

// Block returns the block bound to worker, which may be empty.
func (s *Static) Block(worker int) Range {
	begin := worker * s.perWork
	return Range{Begin: begin, End: begin + s.perWork}
}

// Next returns the worker's block on the first call and false afterwards.
// Workers with an empty block get false straight away.
func (s *Static) Next(worker int) (Range, bool) {
	if worker < 0 || worker >= len(s.served) {
		return Range{}, false
	}
	if s.served[worker].Swap(true) {
		return Range{}, false
	}
	r := s.Block(worker)
	if r.Len() == 0 {
		return Range{}, false
	}
	return r, true
}

// Exhausted reports whether every worker has asked for its block.
func (s *Static) Exhausted() bool {
	for i := range s.served {
		if !s.served[i].Load() {
			return false
		}
	}
	return true
}

// Dropped is the number of trailing indices no worker will ever receive.
func (s *Static) Dropped() int {
	return s.n - s.perWork*len(s.served)
}
