// Package cache stores assembled lattices, rendered artifacts and candidate
// search results behind a small key/value interface.
//
// Three backends are provided: [FileCache] for the CLI, [RedisCache] for the
// HTTP server when several instances share results, and [NewNullCache] when
// caching is disabled. Keys are produced by a [Keyer] so the same inputs map
// to the same entry regardless of backend.
package cache

import (
	"context"
	"time"
)

// Default lifetimes for cache entries.
const (
	TTLLattice    = 7 * 24 * time.Hour
	TTLArtifact   = 7 * 24 * time.Hour
	TTLCandidates = 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
//
// Get reports a miss with ok == false and a nil error. Backends treat a
// corrupt or expired entry as a miss.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer derives cache keys for each kind of cached result.
type Keyer interface {
	// LatticeKey keys an assembled lattice by the hash of its edge paths.
	LatticeKey(pathsHash string) string

	// ArtifactKey keys a rendered output of an assembled lattice.
	ArtifactKey(latticeHash string, opts ArtifactKeyOpts) string

	// CandidatesKey keys the result of a candidate search.
	CandidatesKey(opts CandidatesKeyOpts) string
}

// ArtifactKeyOpts holds the inputs that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Detailed bool   `json:"detailed"`
}

// CandidatesKeyOpts holds every input of a candidate search. The search is
// deterministic for a given seed, so the result can be reused.
type CandidatesKeyOpts struct {
	From         [3]int `json:"from"`
	Step         int    `json:"step"`
	OccupiedHash string `json:"occupied_hash"`
	Seed         uint64 `json:"seed"`
	MaxAttempts  int    `json:"max_attempts"`
	TargetCount  int    `json:"target_count"`
}

// DefaultKeyer produces "kind:sha256" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard key scheme.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) LatticeKey(pathsHash string) string {
	return hashKey("lattice", pathsHash)
}

func (DefaultKeyer) ArtifactKey(latticeHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", latticeHash, opts)
}

func (DefaultKeyer) CandidatesKey(opts CandidatesKeyOpts) string {
	return hashKey("candidates", opts)
}

var _ Keyer = DefaultKeyer{}
