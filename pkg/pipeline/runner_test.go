package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stacklattice/pkg/cache"
	"github.com/matzehuels/stacklattice/pkg/errors"
	"github.com/matzehuels/stacklattice/pkg/graph"
	"github.com/matzehuels/stacklattice/pkg/lattice"
	"github.com/matzehuels/stacklattice/pkg/observability"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func samplePaths() []lattice.EdgePath {
	return []lattice.EdgePath{
		{
			SrcTgtIDs: [2]int{0, 1},
			PathNodes: []lattice.PathNode{
				{Coord: lattice.C(0, 0, 0), Kind: lattice.MustKind("zzx")},
				{Coord: lattice.C(1, 0, 0), Kind: lattice.MustKind("ozx")},
				{Coord: lattice.C(3, 0, 0), Kind: lattice.MustKind("zzx")},
			},
		},
		{
			SrcTgtIDs: [2]int{1, 2},
			PathNodes: []lattice.PathNode{
				{Coord: lattice.C(3, 0, 0), Kind: lattice.MustKind("zzx")},
				{Coord: lattice.C(3, 1, 0), Kind: lattice.MustKind("zox")},
				{Coord: lattice.C(3, 3, 0), Kind: lattice.MustKind("zzx")},
			},
		},
	}
}

func newFileRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, quietLogger())
	t.Cleanup(func() { r.Close() })
	return r
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if r.Cache == nil || r.Keyer == nil || r.Logger == nil {
		t.Errorf("NewRunner(nil, nil, nil) left nil fields: %+v", r)
	}
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	r := newFileRunner(t)

	res, err := r.Execute(ctx, samplePaths(), Options{Formats: []string{"json", "dot"}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if res.RunID == "" {
		t.Error("RunID should be set")
	}
	if res.Stats.PathCount != 2 || res.Stats.NodeCount != 3 || res.Stats.EdgeCount != 2 {
		t.Errorf("Stats = %+v", res.Stats)
	}
	if res.CacheInfo.AssembleHit || res.CacheInfo.RenderHit {
		t.Errorf("first run should miss the cache: %+v", res.CacheInfo)
	}
	if len(res.LatticeHash) != 64 {
		t.Errorf("LatticeHash = %q", res.LatticeHash)
	}

	l, err := graph.ReadLattice(strings.NewReader(string(res.Artifacts["json"])))
	if err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if len(l.Nodes) != 3 {
		t.Errorf("json artifact has %d nodes", len(l.Nodes))
	}
	if !strings.HasPrefix(string(res.Artifacts["dot"]), "graph L {") {
		t.Errorf("dot artifact = %q", res.Artifacts["dot"])
	}

	again, err := r.Execute(ctx, samplePaths(), Options{Formats: []string{"json", "dot"}})
	if err != nil {
		t.Fatal(err)
	}
	if !again.CacheInfo.AssembleHit || !again.CacheInfo.RenderHit {
		t.Errorf("second run should hit the cache: %+v", again.CacheInfo)
	}
	if again.RunID == res.RunID {
		t.Error("each run should get its own RunID")
	}
	if again.LatticeHash != res.LatticeHash {
		t.Error("cached lattice should hash identically")
	}
}

func TestExecuteRefresh(t *testing.T) {
	ctx := context.Background()
	r := newFileRunner(t)

	if _, err := r.Execute(ctx, samplePaths(), Options{}); err != nil {
		t.Fatal(err)
	}
	res, err := r.Execute(ctx, samplePaths(), Options{Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.AssembleHit {
		t.Error("Refresh should bypass cached lattices")
	}
}

func TestExecuteInvalid(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, quietLogger())

	bad := []lattice.EdgePath{{
		SrcTgtIDs: [2]int{0, 1},
		PathNodes: []lattice.PathNode{
			{Coord: lattice.C(0, 0, 0), Kind: lattice.MustKind("ozx")},
		},
	}}
	if _, err := r.Execute(ctx, bad, Options{}); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("error = %v, want INVALID_PATH", err)
	}

	if _, err := r.Execute(ctx, samplePaths(), Options{Formats: []string{"gif"}}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	r := newFileRunner(t)

	req := SearchRequest{From: lattice.C(0, 0, 0), Step: 3, Occupied: []lattice.Coord{lattice.C(3, 0, 0)}}
	res, err := r.Search(ctx, req, Options{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(res.Candidates) != 5 {
		t.Errorf("got %d candidates, want 5", len(res.Candidates))
	}
	if slices.Contains(res.Candidates, lattice.C(3, 0, 0)) {
		t.Error("occupied cell returned as candidate")
	}
	if res.CacheHit {
		t.Error("first search should miss the cache")
	}

	again, err := r.Search(ctx, req, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !again.CacheHit || !slices.Equal(again.Candidates, res.Candidates) {
		t.Errorf("second search: hit %v, candidates %v", again.CacheHit, again.Candidates)
	}
}

func TestSearchLongMoveReproducible(t *testing.T) {
	ctx := context.Background()
	req := SearchRequest{From: lattice.C(3, -3, 6), Step: 15}

	a, err := NewRunner(nil, nil, quietLogger()).Search(ctx, req, Options{Seed: 11})
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewRunner(nil, nil, quietLogger()).Search(ctx, req, Options{Seed: 11})
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(a.Candidates, b.Candidates) || a.Attempts != b.Attempts {
		t.Error("same seed should give the same search")
	}
	if len(a.Candidates) > DefaultTargetCount {
		t.Errorf("got %d candidates, cap is %d", len(a.Candidates), DefaultTargetCount)
	}
	for _, c := range a.Candidates {
		if req.From.Manhattan(c) != req.Step {
			t.Errorf("candidate %v is %d away, want %d", c, req.From.Manhattan(c), req.Step)
		}
	}
}

func TestSearchExhausted(t *testing.T) {
	var ring []lattice.Coord
	for x := -12; x <= 12; x += 3 {
		for y := -12; y <= 12; y += 3 {
			for z := -12; z <= 12; z += 3 {
				if c := lattice.C(x, y, z); lattice.C(0, 0, 0).Manhattan(c) == 12 {
					ring = append(ring, c)
				}
			}
		}
	}

	r := NewRunner(nil, nil, quietLogger())
	res, err := r.Search(context.Background(), SearchRequest{Step: 12, Occupied: ring}, Options{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Attempts != DefaultMaxAttempts {
		t.Errorf("Attempts = %d, want %d", res.Attempts, DefaultMaxAttempts)
	}
	// Unlike the generator, the runner reports an empty list rather than nil
	// so the JSON result carries "candidates": [].
	if res.Candidates == nil || len(res.Candidates) != 0 {
		t.Errorf("Candidates = %#v, want empty non-nil slice", res.Candidates)
	}
	data, _ := json.Marshal(res)
	if !strings.Contains(string(data), `"candidates":[]`) {
		t.Errorf("JSON = %s, want empty candidates array", data)
	}
}

func TestSearchInvalidStep(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	_, err := r.Search(context.Background(), SearchRequest{Step: 4}, Options{})
	if !errors.Is(err, errors.ErrCodeInvalidStep) {
		t.Errorf("error = %v, want INVALID_STEP", err)
	}
}

func TestExits(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())

	res, err := r.Exits(ExitsRequest{At: lattice.C(0, 0, 0), Kind: lattice.MustKind("zzx")}, Options{})
	if err != nil {
		t.Fatalf("Exits: %v", err)
	}
	if res.Count != 4 || len(res.Beams) != 4 {
		t.Errorf("block exits = %d (%d beams), want 4", res.Count, len(res.Beams))
	}

	res, err = r.Exits(ExitsRequest{
		At:       lattice.C(0, 0, 0),
		Kind:     lattice.MustKind("zzx"),
		Occupied: []lattice.Coord{lattice.C(5, 0, 0)},
	}, Options{BeamLength: 9})
	if err != nil {
		t.Fatal(err)
	}
	if res.Count != 3 {
		t.Errorf("obstructed exits = %d, want 3", res.Count)
	}

	if _, err := r.Exits(ExitsRequest{At: lattice.C(0, 0, 0)}, Options{}); !errors.Is(err, errors.ErrCodeInvalidKind) {
		t.Errorf("missing kind: error = %v", err)
	}

	bad := ExitsRequest{At: lattice.C(0, 0, 0), Kind: lattice.MustKind("zzx"), Beams: lattice.Beams{{{}}}}
	if _, err := r.Exits(bad, Options{}); !errors.Is(err, errors.ErrCodeInvalidBeam) {
		t.Errorf("malformed beam: error = %v", err)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) record(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnAssembleStart(context.Context, int) { h.record("assemble_start") }
func (h *recordingHooks) OnAssembleComplete(context.Context, int, int, time.Duration, error) {
	h.record("assemble_complete")
}
func (h *recordingHooks) OnSearchComplete(context.Context, int, int, int, time.Duration, error) {
	h.record("search_complete")
}

type countingCacheHooks struct {
	observability.NoopCacheHooks
	mu                sync.Mutex
	hits, misses, set int
}

func (h *countingCacheHooks) OnCacheHit(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hits++
}

func (h *countingCacheHooks) OnCacheMiss(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.misses++
}

func (h *countingCacheHooks) OnCacheSet(context.Context, string, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.set++
}

func TestRunnerHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()

	ph := &recordingHooks{}
	ch := &countingCacheHooks{}
	observability.SetPipelineHooks(ph)
	observability.SetCacheHooks(ch)

	ctx := context.Background()
	r := newFileRunner(t)
	if _, err := r.Execute(ctx, samplePaths(), Options{}); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Search(ctx, SearchRequest{Step: 6}, Options{}); err != nil {
		t.Fatal(err)
	}

	want := []string{"assemble_start", "assemble_complete", "search_complete"}
	if !slices.Equal(ph.events, want) {
		t.Errorf("pipeline events = %v, want %v", ph.events, want)
	}
	// lattice, json artifact and candidates all miss then get stored.
	if ch.misses != 3 || ch.set != 3 || ch.hits != 0 {
		t.Errorf("cache events: hits %d, misses %d, sets %d", ch.hits, ch.misses, ch.set)
	}
}
