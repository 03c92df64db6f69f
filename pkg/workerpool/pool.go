// Package workerpool provides a generic WorkerPoolExecutor that spawns a fresh
// set of goroutines for every run and joins all of them before returning.
package workerpool

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

var errLimitReached = errors.New("spawn limit reached")

type PoolOptions struct {
	SpawnLimit int
}

type PoolOptionFunc func(*PoolOptions)

func defaultOpts() PoolOptions {
	return PoolOptions{}
}

// WithSpawnLimit caps the number of concurrently running workers; a run that
// needs more fails with a *SpawnError. The default, and any value <= 0, means
// no cap.
func WithSpawnLimit(num int) PoolOptionFunc {
	return func(opts *PoolOptions) {
		opts.SpawnLimit = num
	}
}

// WorkerPoolExecutor runs a fixed number of workers to completion.
// R is the type each worker returns.
type WorkerPoolExecutor[R any] struct {
	PoolOptions
}

// New creates a new WorkerPoolExecutor with optional configuration.
func New[R any](opts ...PoolOptionFunc) *WorkerPoolExecutor[R] {
	o := defaultOpts()
	for _, fn := range opts {
		fn(&o)
	}
	return &WorkerPoolExecutor[R]{PoolOptions: o}
}

// Run starts numWorkers goroutines, each calling fn with its worker id, and
// waits for every one of them. Results are returned indexed by worker id.
//
// The run is all or nothing. If worker i cannot be started, the workers
// already running see their context cancelled, are joined, and a *SpawnError
// is returned. If any worker panics or returns an error the others are
// cancelled and a *JoinError is returned once all of them have stopped.
func (w *WorkerPoolExecutor[R]) Run(ctx context.Context, numWorkers int, fn func(ctx context.Context, id int) (R, error)) ([]R, error) {
	if numWorkers <= 0 {
		return nil, fmt.Errorf("workerpool: worker count must be > 0, got %d", numWorkers)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	if w.SpawnLimit > 0 {
		g.SetLimit(w.SpawnLimit)
	}

	// Each worker writes only its own slot; the slice is read after Wait.
	outputs := make([]R, numWorkers)

	abort := func(id int, cause error) ([]R, error) {
		cancel()
		_ = g.Wait()
		return nil, &SpawnError{Worker: id, Err: cause}
	}

	for i := 0; i < numWorkers; i++ {
		if err := ctx.Err(); err != nil {
			return abort(i, err)
		}
		if gctx.Err() != nil {
			// A running worker already failed; Wait reports it.
			break
		}
		id := i
		started := g.TryGo(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = &JoinError{Worker: id, Panic: r}
				}
			}()
			out, err := fn(gctx, id)
			if err != nil {
				return &JoinError{Worker: id, Err: err}
			}
			outputs[id] = out
			return nil
		})
		if !started {
			return abort(i, errLimitReached)
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outputs, nil
}
