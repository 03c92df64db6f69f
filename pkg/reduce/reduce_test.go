package reduce

import (
	"sync"
	"testing"
)

func TestParseKind(t *testing.T) {
	cases := map[string]Kind{"iteration": KindIteration, "CHUNK": KindChunk, "thread": KindThread}
	for in, want := range cases {
		got, err := ParseKind(in)
		if err != nil || got != want {
			t.Errorf("ParseKind(%q) = %v, %v", in, got, err)
		}
		if got.String() != want.String() {
			t.Errorf("String mismatch for %q", in)
		}
	}
	if _, err := ParseKind("barrier"); err == nil {
		t.Error("expected error for unknown sync")
	}
	if _, err := New(Kind(9)); err == nil {
		t.Error("expected error for unknown kind")
	}
}

// feed drives r the way the engine does: each worker records chunks ranges of
// chunk samples valued 1 and keeps its own private sum.
func feed(r Reducer, workers, chunks, chunk int) []float64 {
	partials := make([]float64, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			private := 0.0
			for c := 0; c < chunks; c++ {
				local := 0.0
				for i := 0; i < chunk; i++ {
					r.Record(w, 1)
					local++
				}
				r.RecordChunk(w, local)
				private += local
			}
			partials[w] = private
		}(w)
	}
	wg.Wait()
	return partials
}

func TestReducersAgree(t *testing.T) {
	const workers, chunks, chunk = 8, 50, 40
	want := float64(workers * chunks * chunk)
	for _, kind := range []Kind{KindIteration, KindChunk, KindThread} {
		t.Run(kind.String(), func(t *testing.T) {
			r, err := New(kind)
			if err != nil {
				t.Fatal(err)
			}
			if got := r.Finalize(feed(r, workers, chunks, chunk)); got != want {
				t.Errorf("got %v, want %v", got, want)
			}
		})
	}
}

func TestSharedPoliciesIgnorePartials(t *testing.T) {
	it, _ := New(KindIteration)
	it.Record(0, 2)
	it.RecordChunk(0, 100)
	if got := it.Finalize([]float64{5, 5}); got != 2 {
		t.Errorf("iteration: got %v, want 2", got)
	}

	ch, _ := New(KindChunk)
	ch.Record(0, 100)
	ch.RecordChunk(0, 3)
	if got := ch.Finalize([]float64{5, 5}); got != 3 {
		t.Errorf("chunk: got %v, want 3", got)
	}

	th, _ := New(KindThread)
	th.Record(0, 100)
	th.RecordChunk(0, 100)
	if got := th.Finalize([]float64{1.5, 2.5}); got != 4 {
		t.Errorf("thread: got %v, want 4", got)
	}
}
