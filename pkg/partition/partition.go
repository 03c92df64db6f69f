// Package partition hands out ranges of sample indices to workers.
//
// Two policies are provided. Static binds one precomputed contiguous block to
// every worker and needs no coordination at run time. Dynamic keeps a shared
// cursor and lets workers claim fixed-size chunks until the index space is
// exhausted.
package partition

import (
	"fmt"
	"strings"
)

// Range is the half-open interval [Begin, End) of sample indices.
type Range struct {
	Begin int
	End   int
}

// Len returns the number of indices in r.
func (r Range) Len() int { return r.End - r.Begin }

func (r Range) String() string { return fmt.Sprintf("[%d, %d)", r.Begin, r.End) }

// Partitioner issues non-overlapping ranges for a single run.
type Partitioner interface {
	// Next returns the next range for worker, or false once nothing is left
	// for it.
	Next(worker int) (Range, bool)
	// Exhausted reports whether every range has been issued.
	Exhausted() bool
}

// Kind names a partitioning policy.
type Kind int

const (
	KindStatic Kind = iota
	KindDynamic
)

func (k Kind) String() string {
	switch k {
	case KindStatic:
		return "static"
	case KindDynamic:
		return "dynamic"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind accepts "static" or "dynamic", case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "static":
		return KindStatic, nil
	case "dynamic":
		return KindDynamic, nil
	}
	return 0, fmt.Errorf("partition: unknown schedule %q", s)
}

// New builds the partitioner for kind over n indices and the given number of
// workers. granularity is only consulted for KindDynamic.
func New(kind Kind, n, workers, granularity int) (Partitioner, error) {
	switch kind {
	case KindStatic:
		return NewStatic(n, workers)
	case KindDynamic:
		return NewDynamic(n, granularity)
	}
	return nil, fmt.Errorf("partition: unknown schedule %v", kind)
}
