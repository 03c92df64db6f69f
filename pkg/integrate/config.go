package integrate

import (
	"github.com/qcserestipy/gointegral/pkg/partition"
	"github.com/qcserestipy/gointegral/pkg/reduce"
	"github.com/qcserestipy/gointegral/pkg/sample"
)

// Config describes one integration run over [A, B] with N midpoint samples.
type Config struct {
	Function  sample.ID
	A         float64
	B         float64
	N         int
	Intensity int

	Workers     int
	Schedule    partition.Kind
	Sync        reduce.Kind
	Granularity int // chunk size, required for partition.KindDynamic
}

// Validate checks the numeric parameters and the policy kinds. The function
// id is resolved against the engine's registry at run time.
func (c Config) Validate() error {
	switch {
	case c.Workers <= 0:
		return &ConfigError{Field: "workers", Value: c.Workers, Reason: "must be > 0"}
	case c.N <= 0:
		return &ConfigError{Field: "n", Value: c.N, Reason: "must be > 0"}
	case c.Intensity < 0:
		return &ConfigError{Field: "intensity", Value: c.Intensity, Reason: "must be >= 0"}
	}
	switch c.Schedule {
	case partition.KindStatic:
	case partition.KindDynamic:
		if c.Granularity <= 0 {
			return &ConfigError{Field: "granularity", Value: c.Granularity, Reason: "must be > 0 for the dynamic schedule"}
		}
	default:
		return &ConfigError{Field: "schedule", Value: c.Schedule, Reason: "unknown schedule"}
	}
	switch c.Sync {
	case reduce.KindIteration, reduce.KindChunk, reduce.KindThread:
	default:
		return &ConfigError{Field: "sync", Value: c.Sync, Reason: "unknown sync"}
	}
	return nil
}
