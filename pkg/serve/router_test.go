package serve

import (
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/qcserestipy/gointegral/pkg/integrate"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	l := logrus.New()
	l.SetOutput(io.Discard)
	srv := New(integrate.New(integrate.WithLogger(l)), l)
	ts := httptest.NewServer(srv.Router)
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, ts *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+"/integrate", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestIntegrateRoute(t *testing.T) {
	ts := newTestServer(t)
	resp := post(t, ts, `{"function":1,"a":0,"b":1,"n":4,"workers":2,"schedule":"dynamic","sync":"chunk","granularity":1}`)
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("status %d: %s", resp.StatusCode, body)
	}
	var out ComputeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if math.Abs(out.Result-0.5) > 1e-12 || out.Samples != 4 || out.Ranges != 4 || out.RunID != 1 {
		t.Errorf("unexpected response %+v", out)
	}

	run := getRun(t, ts, "1", http.StatusOK)
	if run.Status != StatusCompleted || run.Result == nil || run.Result.Result != out.Result {
		t.Errorf("unexpected run record %+v", run)
	}
}

func TestIntegrateRouteRejectsBadInput(t *testing.T) {
	ts := newTestServer(t)
	cases := map[string]string{
		"zero workers":     `{"function":1,"a":0,"b":1,"n":4,"workers":0,"schedule":"static","sync":"thread"}`,
		"zero granularity": `{"function":1,"a":0,"b":1,"n":4,"workers":2,"schedule":"dynamic","sync":"thread"}`,
		"unknown schedule": `{"function":1,"a":0,"b":1,"n":4,"workers":2,"schedule":"guided","sync":"thread"}`,
		"unknown function": `{"function":8,"a":0,"b":1,"n":4,"workers":2,"schedule":"static","sync":"thread"}`,
		"unknown field":    `{"function":1,"threads":4}`,
		"malformed":        `{"function":`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if resp := post(t, ts, body); resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status %d, want 400", resp.StatusCode)
			}
		})
	}

	resp, err := http.Get(ts.URL + "/runs")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var runs []Run
	if err := json.NewDecoder(resp.Body).Decode(&runs); err != nil {
		t.Fatal(err)
	}
	// Bodies that fail to decode never reach the registry.
	if len(runs) != 4 {
		t.Fatalf("recorded %d runs, want 4", len(runs))
	}
	for _, run := range runs {
		if run.Status != StatusFailed || run.Error == "" {
			t.Errorf("run %d: status %s, error %q", run.ID, run.Status, run.Error)
		}
	}
}

func getRun(t *testing.T, ts *httptest.Server, id string, wantStatus int) Run {
	t.Helper()
	resp, err := http.Get(ts.URL + "/runs/" + id)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		t.Fatalf("GET /runs/%s: status %d, want %d", id, resp.StatusCode, wantStatus)
	}
	var run Run
	if wantStatus == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(&run); err != nil {
			t.Fatal(err)
		}
	}
	return run
}

func TestRunLookupErrors(t *testing.T) {
	ts := newTestServer(t)
	getRun(t, ts, "abc", http.StatusBadRequest)
	getRun(t, ts, "99", http.StatusNotFound)
}

func TestHealthAndMetrics(t *testing.T) {
	ts := newTestServer(t)
	post(t, ts, `{"function":2,"a":0,"b":1,"n":16,"workers":2,"schedule":"static","sync":"iteration"}`)

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health status %d", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "integrate_runs_total") {
		t.Error("metrics do not expose integrate_runs_total")
	}
}

func TestRunRegistryIsBounded(t *testing.T) {
	reg := NewRunRegistry()
	for i := 0; i < MaxRuns+10; i++ {
		reg.Add(IntegrateRequest{N: i})
	}
	runs := reg.List()
	if len(runs) != MaxRuns {
		t.Fatalf("kept %d runs, want %d", len(runs), MaxRuns)
	}
	if runs[0].ID != 11 {
		t.Errorf("oldest kept run has id %d, want 11", runs[0].ID)
	}
	if _, ok := reg.Get(1); ok {
		t.Error("evicted run still retrievable")
	}
}
