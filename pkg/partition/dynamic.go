package partition

import (
	"fmt"
	"sync"
)

// Dynamic hands out chunks of granularity indices from a shared cursor.
// The last chunk is truncated at n.
type Dynamic struct {
	n           int
	granularity int

	mu     sync.Mutex
	cursor int
}

// NewDynamic returns a partitioner over [0, n). granularity must be > 0.
func NewDynamic(n, granularity int) (*Dynamic, error) {
	if n < 0 {
		return nil, fmt.Errorf("partition: negative sample count %d", n)
	}
	if granularity <= 0 {
		return nil, fmt.Errorf("partition: granularity must be > 0, got %d", granularity)
	}
	return &Dynamic{n: n, granularity: granularity}, nil
}

// Next claims the next chunk. The worker id is not used; any worker may take
// any chunk.
func (d *Dynamic) Next(int) (Range, bool) {
	d.mu.Lock()
	begin := d.cursor
	if begin >= d.n {
		d.mu.Unlock()
		return Range{}, false
	}
	end := min(begin+d.granularity, d.n)
	d.cursor = end
	d.mu.Unlock()
	return Range{Begin: begin, End: end}, true
}

// Exhausted reports whether every index has been handed out.
func (d *Dynamic) Exhausted() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cursor >= d.n
}

// Granularity returns the chunk size.
func (d *Dynamic) Granularity() int { return d.granularity }
