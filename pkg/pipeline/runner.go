package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/stacklattice/pkg/cache"
	"github.com/matzehuels/stacklattice/pkg/errors"
	"github.com/matzehuels/stacklattice/pkg/graph"
	"github.com/matzehuels/stacklattice/pkg/lattice"
	"github.com/matzehuels/stacklattice/pkg/lattice/placement"
	"github.com/matzehuels/stacklattice/pkg/observability"
)

// Cache key types reported to observability hooks.
const (
	keyTypeLattice    = "lattice"
	keyTypeArtifact   = "artifact"
	keyTypeCandidates = "candidates"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner holds no per-run state, so multiple goroutines can share one
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, nothing is cached.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute assembles paths into a lattice and renders every requested format.
func (r *Runner) Execute(ctx context.Context, paths []lattice.EdgePath, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{RunID: uuid.NewString()}
	logger := r.Logger.With("run_id", result.RunID)

	// Stage 1: Assemble
	start := time.Now()
	l, hit, err := r.AssembleWithCacheInfo(ctx, paths, opts)
	if err != nil {
		return nil, fmt.Errorf("assemble: %w", err)
	}
	result.Lattice = l
	result.Stats.PathCount = len(paths)
	result.Stats.NodeCount = len(l.Nodes)
	result.Stats.EdgeCount = len(l.Edges)
	result.Stats.AssembleTime = time.Since(start)
	result.CacheInfo.AssembleHit = hit

	logger.Info("assembled lattice",
		"paths", len(paths),
		"nodes", len(l.Nodes),
		"edges", len(l.Edges),
		"cached", hit,
		"duration", result.Stats.AssembleTime)

	// Stage 2: Render
	start = time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(start)
	result.CacheInfo.RenderHit = hit

	if data, err := graph.MarshalLattice(l); err == nil {
		result.LatticeHash = cache.Hash(data)
	}

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// AssembleWithCacheInfo assembles paths, consulting the cache first, and
// reports whether the lattice came from the cache.
func (r *Runner) AssembleWithCacheInfo(ctx context.Context, paths []lattice.EdgePath, opts Options) (l *lattice.Lattice, hit bool, err error) {
	hooks := observability.Pipeline()
	hooks.OnAssembleStart(ctx, len(paths))
	start := time.Now()
	defer func() {
		nodes, edges := 0, 0
		if l != nil {
			nodes, edges = len(l.Nodes), len(l.Edges)
		}
		hooks.OnAssembleComplete(ctx, nodes, edges, time.Since(start), err)
	}()

	pathData, err := graph.MarshalEdgePaths(paths)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize edge paths")
	}
	cacheKey := r.Keyer.LatticeKey(cache.Hash(pathData))

	if data, ok := r.lookup(ctx, cacheKey, keyTypeLattice, opts.Refresh); ok {
		if cached, err := graph.ReadLattice(bytes.NewReader(data)); err == nil {
			return cached, true, nil
		}
		r.Logger.Debug("discarding unreadable cached lattice", "key", cacheKey)
	}

	l, err = lattice.Assemble(paths)
	if err != nil {
		return nil, false, err
	}

	if data, err := graph.MarshalLattice(l); err == nil {
		r.store(ctx, cacheKey, keyTypeLattice, data, cache.TTLLattice)
	}
	return l, false, nil
}

// Assemble is a convenience wrapper that discards the cache hit info.
func (r *Runner) Assemble(ctx context.Context, paths []lattice.EdgePath, opts Options) (*lattice.Lattice, error) {
	l, _, err := r.AssembleWithCacheInfo(ctx, paths, opts)
	return l, err
}

// RenderWithCacheInfo renders l in every requested format and reports
// whether all artifacts came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l *lattice.Lattice, opts Options) (artifacts map[string][]byte, hit bool, err error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	defer func() { hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err) }()

	latticeData, err := graph.MarshalLattice(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize lattice for cache key: %w", err)
	}
	latticeHash := cache.Hash(latticeData)

	artifacts = make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(latticeHash, cache.ArtifactKeyOpts{Format: format, Detailed: opts.Detailed})
		data, ok := r.lookup(ctx, key, keyTypeArtifact, opts.Refresh)
		if !ok {
			break
		}
		artifacts[format] = data
	}
	if len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	rendered, err := Render(ctx, l, opts)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(latticeHash, cache.ArtifactKeyOpts{Format: format, Detailed: opts.Detailed})
		r.store(ctx, key, keyTypeArtifact, data, cache.TTLArtifact)
	}
	return rendered, false, nil
}

// Search proposes block positions reachable from req.From in req.Step
// grid units, using a generator seeded with opts.Seed.
func (r *Runner) Search(ctx context.Context, req SearchRequest, opts Options) (res *SearchResult, err error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnSearchStart(ctx, req.Step)
	start := time.Now()
	defer func() {
		found, attempts := 0, 0
		if res != nil {
			found, attempts = len(res.Candidates), res.Attempts
		}
		hooks.OnSearchComplete(ctx, req.Step, found, attempts, time.Since(start), err)
	}()

	res = &SearchResult{RunID: uuid.NewString()}

	key := r.Keyer.CandidatesKey(cache.CandidatesKeyOpts{
		From:         [3]int{req.From.X, req.From.Y, req.From.Z},
		Step:         req.Step,
		OccupiedHash: cache.HashCells(req.Occupied),
		Seed:         opts.Seed,
		MaxAttempts:  opts.MaxAttempts,
		TargetCount:  opts.TargetCount,
	})

	if data, ok := r.lookup(ctx, key, keyTypeCandidates, opts.Refresh); ok {
		var cached SearchResult
		if err := json.Unmarshal(data, &cached); err == nil {
			res.Candidates, res.Attempts, res.CacheHit = cached.Candidates, cached.Attempts, true
			return res, nil
		}
	}

	gen := placement.NewGenerator(opts.Seed, opts.GeneratorOptions())
	found, err := gen.Search(req.From, req.Step, lattice.NewOccupiedSet(req.Occupied...))
	if err != nil {
		return nil, err
	}
	res.Candidates = found.Candidates
	if res.Candidates == nil {
		res.Candidates = []lattice.Coord{}
	}
	res.Attempts = found.Attempts

	r.Logger.Debug("searched candidates",
		"run_id", res.RunID,
		"from", req.From,
		"step", req.Step,
		"found", len(res.Candidates),
		"attempts", res.Attempts)

	if data, err := json.Marshal(res); err == nil {
		r.store(ctx, key, keyTypeCandidates, data, cache.TTLCandidates)
	}
	return res, nil
}

// Exits counts the unobstructed exits of a node. The beam length comes
// from opts; occupied cells and existing beams come from the request.
func (r *Runner) Exits(req ExitsRequest, opts Options) (*ExitsResult, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if req.Kind.IsZero() {
		return nil, errors.New(errors.ErrCodeInvalidKind, "kind is required")
	}
	for _, nb := range req.Beams {
		for _, b := range nb {
			if err := b.Validate(); err != nil {
				return nil, err
			}
		}
	}

	n, beams := placement.CheckForExits(req.At, req.Kind, lattice.NewOccupiedSet(req.Occupied...), req.Beams, opts.BeamLength)
	if beams == nil {
		beams = lattice.NodeBeams{}
	}
	return &ExitsResult{Count: n, Beams: beams}, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// lookup reads key unless refresh is set, reporting hits and misses.
// Backend errors count as misses.
func (r *Runner) lookup(ctx context.Context, key, keyType string, refresh bool) ([]byte, bool) {
	if refresh {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "type", keyType, "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

func (r *Runner) store(ctx context.Context, key, keyType string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}
