package serve

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
)

// MaxRuns bounds the run history kept in memory; the oldest runs are
// forgotten first.
const MaxRuns = 1024

// RunStatus is the lifecycle state of a recorded run.
type RunStatus string

const (
	StatusPending   RunStatus = "pending"
	StatusRunning   RunStatus = "running"
	StatusCompleted RunStatus = "completed"
	StatusFailed    RunStatus = "failed"
)

// Run is one recorded /integrate request.
type Run struct {
	ID       int              `json:"id"`
	Status   RunStatus        `json:"status"`
	Request  IntegrateRequest `json:"request"`
	Result   *ComputeResponse `json:"result,omitempty"`
	Error    string           `json:"error,omitempty"`
	Created  time.Time        `json:"created"`
	Finished time.Time        `json:"finished"`
}

// RunRegistry keeps the most recent runs. It is safe for concurrent use.
type RunRegistry struct {
	mu     sync.RWMutex
	runs   []Run
	nextID int
}

// NewRunRegistry returns an empty registry whose first run gets id 1.
func NewRunRegistry() *RunRegistry {
	return &RunRegistry{nextID: 1}
}

// Add records a pending run and returns its id.
func (r *RunRegistry) Add(req IntegrateRequest) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	r.runs = append(r.runs, Run{
		ID:      id,
		Status:  StatusPending,
		Request: req,
		Created: time.Now(),
	})
	if len(r.runs) > MaxRuns {
		r.runs = append([]Run(nil), r.runs[len(r.runs)-MaxRuns:]...)
	}
	return id
}

func (r *RunRegistry) update(id int, fn func(*Run)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.runs {
		if r.runs[i].ID == id {
			fn(&r.runs[i])
			return
		}
	}
}

// Start marks run id as running.
func (r *RunRegistry) Start(id int) {
	r.update(id, func(run *Run) { run.Status = StatusRunning })
}

// Complete marks run id as completed with result res.
func (r *RunRegistry) Complete(id int, res ComputeResponse) {
	r.update(id, func(run *Run) {
		run.Status = StatusCompleted
		run.Result = &res
		run.Finished = time.Now()
	})
}

// Fail marks run id as failed with err.
func (r *RunRegistry) Fail(id int, err error) {
	r.update(id, func(run *Run) {
		run.Status = StatusFailed
		run.Error = err.Error()
		run.Finished = time.Now()
	})
}

// List returns a copy of the history, oldest first.
func (r *RunRegistry) List() []Run {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Run{}, r.runs...)
}

// Get returns the run with the given id, if it is still in the history.
func (r *RunRegistry) Get(id int) (Run, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, run := range r.runs {
		if run.ID == id {
			return run, true
		}
	}
	return Run{}, false
}

// ----------------------------------------------------------------
// HTTP routes
// ----------------------------------------------------------------

// createRunRoutes wires up GET /runs and GET /runs/{id}.
func createRunRoutes(r chi.Router, runs *RunRegistry) {
	r.Get("/runs", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(runs.List()); err != nil {
			http.Error(w, "encode error: "+err.Error(), http.StatusInternalServerError)
		}
	})

	r.Get("/runs/{id}", func(w http.ResponseWriter, req *http.Request) {
		idParam := chi.URLParam(req, "id")
		id, err := strconv.Atoi(idParam)
		if err != nil {
			http.Error(w,
				fmt.Sprintf("invalid run ID '%s': %v", idParam, err),
				http.StatusBadRequest,
			)
			return
		}

		run, ok := runs.Get(id)
		if !ok {
			http.Error(w,
				fmt.Sprintf("run not found with ID %d", id),
				http.StatusNotFound,
			)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(run); err != nil {
			http.Error(w, "encode error: "+err.Error(), http.StatusInternalServerError)
		}
	})
}
