package workerpool

import (
	"errors"
	"fmt"
)

var (
	// ErrSpawn matches every *SpawnError.
	ErrSpawn = errors.New("worker spawn failed")
	// ErrJoin matches every *JoinError.
	ErrJoin = errors.New("worker terminated abnormally")
)

// SpawnError reports that a worker could not be started.
type SpawnError struct {
	Worker int
	Err    error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("workerpool: spawning worker %d: %v", e.Worker, e.Err)
}

func (e *SpawnError) Is(target error) bool { return target == ErrSpawn }

func (e *SpawnError) Unwrap() error { return e.Err }

// JoinError reports that a worker did not finish normally, either because it
// returned an error or because it panicked.
type JoinError struct {
	Worker int
	Panic  any
	Err    error
}

func (e *JoinError) Error() string {
	if e.Panic != nil {
		return fmt.Sprintf("workerpool: worker %d panicked: %v", e.Worker, e.Panic)
	}
	return fmt.Sprintf("workerpool: worker %d failed: %v", e.Worker, e.Err)
}

func (e *JoinError) Is(target error) bool { return target == ErrJoin }

func (e *JoinError) Unwrap() error { return e.Err }
