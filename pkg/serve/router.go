// Package serve exposes the integration engine over HTTP.
package serve

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	logger "github.com/chi-middleware/logrus-logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/qcserestipy/gointegral/pkg/integrate"
	"github.com/qcserestipy/gointegral/pkg/partition"
	"github.com/qcserestipy/gointegral/pkg/reduce"
	"github.com/qcserestipy/gointegral/pkg/sample"
)

// IntegrateRequest is the body of POST /integrate.
type IntegrateRequest struct {
	Function    int     `json:"function"`
	A           float64 `json:"a"`
	B           float64 `json:"b"`
	N           int     `json:"n"`
	Intensity   int     `json:"intensity"`
	Workers     int     `json:"workers"`
	Schedule    string  `json:"schedule"`
	Sync        string  `json:"sync"`
	Granularity int     `json:"granularity,omitempty"`
}

// Config converts the request into an engine configuration. Unknown policy
// names are reported as configuration errors.
func (r IntegrateRequest) Config() (integrate.Config, error) {
	sched, err := partition.ParseKind(r.Schedule)
	if err != nil {
		return integrate.Config{}, &integrate.ConfigError{Field: "schedule", Value: r.Schedule, Reason: err.Error()}
	}
	syn, err := reduce.ParseKind(r.Sync)
	if err != nil {
		return integrate.Config{}, &integrate.ConfigError{Field: "sync", Value: r.Sync, Reason: err.Error()}
	}
	return integrate.Config{
		Function:    sample.ID(r.Function),
		A:           r.A,
		B:           r.B,
		N:           r.N,
		Intensity:   r.Intensity,
		Workers:     r.Workers,
		Schedule:    sched,
		Sync:        syn,
		Granularity: r.Granularity,
	}, nil
}

type ComputeResponse struct {
	RunID          int     `json:"run_id"`
	Result         float64 `json:"result"`
	Samples        int     `json:"samples"`
	Ranges         int     `json:"ranges"`
	Dropped        int     `json:"dropped,omitempty"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
}

type ComputeServer struct {
	Engine *integrate.Engine
	Runs   *RunRegistry
	Router *chi.Mux
}

// New builds a server around engine with every route registered. Access logs
// go to l.
func New(engine *integrate.Engine, l log.FieldLogger) *ComputeServer {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.Logger("router", l))
	r.Use(middleware.Recoverer)

	s := &ComputeServer{Engine: engine, Runs: NewRunRegistry(), Router: r}

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	CreateRoutes(r, "/integrate", s.integrate)
	createRunRoutes(r, s.Runs)
	return s
}

func (s *ComputeServer) integrate(ctx context.Context, req IntegrateRequest) (ComputeResponse, error) {
	id := s.Runs.Add(req)
	cfg, err := req.Config()
	if err != nil {
		s.Runs.Fail(id, err)
		return ComputeResponse{}, err
	}
	s.Runs.Start(id)
	res, err := s.Engine.Run(ctx, cfg)
	if err != nil {
		s.Runs.Fail(id, err)
		return ComputeResponse{}, err
	}
	out := ComputeResponse{
		RunID:          id,
		Result:         res.Value,
		Samples:        res.Evaluated,
		Ranges:         res.Ranges,
		Dropped:        res.Dropped,
		ElapsedSeconds: res.Elapsed.Seconds(),
	}
	s.Runs.Complete(id, out)
	return out, nil
}

// Launch serves s on targetPort until the listener fails.
func Launch(s *ComputeServer, targetPort int) error {
	addr := fmt.Sprintf(":%d", targetPort)
	log.Infof("▶️  Starting server on %s", addr)
	// ListenAndServe blocks until an error occurs (e.g. port already in use).
	return http.ListenAndServe(addr, s.Router)
}

// statusFor maps engine errors to HTTP status codes.
func statusFor(err error) int {
	if errors.Is(err, integrate.ErrConfig) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// CreateRoutes registers a JSON POST handler on path that decodes T, calls fn
// with the request context and encodes R.
func CreateRoutes[T any, R any](
	r chi.Router,
	path string,
	fn func(context.Context, T) (R, error),
) {
	r.Post(path, func(w http.ResponseWriter, r *http.Request) {
		var req T
		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&req); err != nil {
			http.Error(w, "invalid JSON or schema mismatch: "+err.Error(), http.StatusBadRequest)
			return
		}

		res, err := fn(r.Context(), req)
		if err != nil {
			http.Error(w, "processing error: "+err.Error(), statusFor(err))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(res); err != nil {
			http.Error(w, "encode error: "+err.Error(), http.StatusInternalServerError)
			return
		}
	})
}
