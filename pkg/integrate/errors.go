package integrate

import (
	"errors"
	"fmt"

	"github.com/qcserestipy/gointegral/pkg/workerpool"
)

var (
	// ErrConfig matches every *ConfigError.
	ErrConfig = errors.New("invalid configuration")

	ErrWorkerSpawn = workerpool.ErrSpawn
	ErrWorkerJoin  = workerpool.ErrJoin
)

// ConfigError is returned before any worker starts when a run is
// misconfigured.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("integrate: %s=%v: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Is(target error) bool { return target == ErrConfig }
