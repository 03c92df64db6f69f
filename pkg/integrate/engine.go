// Copyright Project GoHPC Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package integrate estimates definite integrals with the midpoint rule on a
// pool of workers. Work is split by a partition policy and the sample values
// are combined by a reduction policy; every combination yields the same
// estimate up to floating-point summation order.
package integrate

import (
	"context"
	"fmt"
	"time"

	"github.com/qcserestipy/gointegral/pkg/partition"
	"github.com/qcserestipy/gointegral/pkg/reduce"
	"github.com/qcserestipy/gointegral/pkg/sample"
	"github.com/qcserestipy/gointegral/pkg/workerpool"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Result is the outcome of a successful run.
type Result struct {
	Value     float64
	Evaluated int // samples evaluated across all workers
	Ranges    int // ranges claimed across all workers
	Dropped   int // trailing samples the static schedule never assigns
	Elapsed   time.Duration
}

type Option func(*Engine)

// WithLogger sets the logger used for run and worker events.
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// WithRegistry sets the table function ids are resolved against.
func WithRegistry(r *sample.Registry) Option {
	return func(e *Engine) {
		e.registry = r
	}
}

// WithSpawnLimit caps the number of workers a single run may have running at
// once. Runs are uncapped unless this is set.
func WithSpawnLimit(n int) Option {
	return func(e *Engine) {
		e.poolOpts = append(e.poolOpts, workerpool.WithSpawnLimit(n))
	}
}

// Engine runs integrations. It keeps no state between runs and may be used
// from several goroutines at once.
type Engine struct {
	log      logrus.FieldLogger
	registry *sample.Registry
	poolOpts []workerpool.PoolOptionFunc
}

// New creates an Engine. Without options it logs through the standard logrus
// logger and resolves ids 1..4 to the built-in sample functions.
func New(opts ...Option) *Engine {
	e := &Engine{
		log:      logrus.StandardLogger(),
		registry: sample.Default(),
	}
	for _, fn := range opts {
		fn(e)
	}
	return e
}

// Integrate runs cfg on a default Engine and returns the estimate.
func Integrate(ctx context.Context, cfg Config) (float64, error) {
	res, err := New().Run(ctx, cfg)
	if err != nil {
		return 0, err
	}
	return res.Value, nil
}

// workerStats is what a worker hands back at the join barrier.
type workerStats struct {
	Partial   float64
	Ranges    int
	Evaluated int
}

// worker is the per-goroutine context. It is built by value for every worker
// and shares only the partitioner and reducer of its run.
type worker struct {
	id        int
	fn        sample.Func
	a, b      float64
	n         int
	intensity int
	parts     partition.Partitioner
	red       reduce.Reducer
	log       logrus.FieldLogger
}

func (w worker) run(ctx context.Context) (workerStats, error) {
	start := time.Now()
	var st workerStats
	for {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		r, ok := w.parts.Next(w.id)
		if !ok {
			break
		}
		local := 0.0
		for i := r.Begin; i < r.End; i++ {
			v := w.fn(abscissa(w.a, w.b, w.n, i), w.intensity)
			w.red.Record(w.id, v)
			local += v
		}
		w.red.RecordChunk(w.id, local)
		st.Partial += local
		st.Ranges++
		st.Evaluated += r.Len()
	}

	w.log.WithFields(logrus.Fields{
		"worker":   w.id,
		"ranges":   st.Ranges,
		"samples":  st.Evaluated,
		"partial":  st.Partial,
		"duration": time.Since(start),
	}).Debug("Worker completed")
	return st, nil
}

// Run validates cfg, spawns cfg.Workers workers, waits for all of them and
// returns the scaled sum. Configuration problems are reported before any
// worker starts. A worker that cannot be started or does not finish normally
// fails the whole run.
func (e *Engine) Run(ctx context.Context, cfg Config) (res Result, err error) {
	ctx, span := otel.Tracer("gointegral/integrate").Start(ctx, "Engine.Run")
	defer span.End()
	span.SetAttributes(
		attribute.Int("function", int(cfg.Function)),
		attribute.Int("n", cfg.N),
		attribute.Int("workers", cfg.Workers),
		attribute.Int("granularity", cfg.Granularity),
	)

	// Kinds are only used as labels once Validate has accepted them.
	schedLabel, syncLabel := invalidLabel, invalidLabel
	start := time.Now()
	defer func() {
		status := "success"
		if err != nil {
			status = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			runDuration.WithLabelValues(schedLabel, syncLabel).Observe(res.Elapsed.Seconds())
		}
		runsTotal.WithLabelValues(schedLabel, syncLabel, status).Inc()
	}()

	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	schedLabel, syncLabel = cfg.Schedule.String(), cfg.Sync.String()
	span.SetAttributes(
		attribute.String("schedule", schedLabel),
		attribute.String("sync", syncLabel),
	)
	fn, err := e.registry.Lookup(cfg.Function)
	if err != nil {
		return Result{}, &ConfigError{Field: "function", Value: cfg.Function, Reason: err.Error()}
	}
	parts, err := partition.New(cfg.Schedule, cfg.N, cfg.Workers, cfg.Granularity)
	if err != nil {
		return Result{}, &ConfigError{Field: "schedule", Value: cfg.Schedule, Reason: err.Error()}
	}
	red, err := reduce.New(cfg.Sync)
	if err != nil {
		return Result{}, &ConfigError{Field: "sync", Value: cfg.Sync, Reason: err.Error()}
	}

	log := e.log.WithFields(logrus.Fields{
		"schedule": cfg.Schedule.String(),
		"sync":     cfg.Sync.String(),
		"workers":  cfg.Workers,
		"n":        cfg.N,
	})
	if cfg.Schedule == partition.KindDynamic {
		log = log.WithField("granularity", cfg.Granularity)
	}

	if s, ok := parts.(*partition.Static); ok && s.Dropped() > 0 {
		res.Dropped = s.Dropped()
		log.WithField("dropped", res.Dropped).Warn("Static schedule leaves trailing samples unassigned")
	}
	log.Debug("Starting integration run")

	pool := workerpool.New[workerStats](e.poolOpts...)
	stats, err := pool.Run(ctx, cfg.Workers, func(ctx context.Context, id int) (workerStats, error) {
		w := worker{
			id:        id,
			fn:        fn,
			a:         cfg.A,
			b:         cfg.B,
			n:         cfg.N,
			intensity: cfg.Intensity,
			parts:     parts,
			red:       red,
			log:       log,
		}
		return w.run(ctx)
	})
	if err != nil {
		log.WithError(err).Error("Integration run failed")
		return Result{}, fmt.Errorf("integrate: %w", err)
	}

	partials := make([]float64, len(stats))
	for i, st := range stats {
		partials[i] = st.Partial
		res.Ranges += st.Ranges
		res.Evaluated += st.Evaluated
	}
	rangesClaimed.WithLabelValues(cfg.Schedule.String()).Add(float64(res.Ranges))

	res.Value = scale(red.Finalize(partials), cfg.A, cfg.B, cfg.N)
	res.Elapsed = time.Since(start)

	log.WithFields(logrus.Fields{
		"result":   res.Value,
		"samples":  res.Evaluated,
		"ranges":   res.Ranges,
		"duration": res.Elapsed,
	}).Info("Integration run completed")
	return res, nil
}
