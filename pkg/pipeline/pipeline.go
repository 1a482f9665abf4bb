// Package pipeline runs lattice assembly, rendering and candidate searches
// with caching, logging and observability hooks.
//
// The CLI and the HTTP API both go through a [Runner] so that cache keys,
// defaults and log output are identical regardless of entry point.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{Formats: []string{"json", "svg"}}
//	result, err := runner.Execute(ctx, paths, opts)
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
//
// Candidate searches are reproducible for a given seed and are cached on
// their full input:
//
//	res, err := runner.Search(ctx, pipeline.SearchRequest{From: c, Step: 12}, opts)
package pipeline

import (
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/stacklattice/pkg/errors"
	"github.com/matzehuels/stacklattice/pkg/lattice"
	"github.com/matzehuels/stacklattice/pkg/lattice/placement"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultBeamLength is the number of cells an exit beam spans,
	// including the node itself.
	DefaultBeamLength = placement.DefaultBeamLength

	// MinBeamLength is the shortest beam that still projects a cell.
	MinBeamLength = 2

	// DefaultMaxAttempts bounds random splits for long candidate moves.
	DefaultMaxAttempts = placement.DefaultMaxAttempts

	// DefaultTargetCount is the early-exit candidate count for long moves.
	DefaultTargetCount = placement.DefaultTargetCount

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures assembly, rendering and candidate search. It decodes
// from JSON request bodies and from TOML config files.
type Options struct {
	BeamLength  int      `json:"beam_length,omitempty" toml:"beam_length"`
	MaxAttempts int      `json:"max_attempts,omitempty" toml:"max_attempts"`
	TargetCount int      `json:"target_count,omitempty" toml:"target_count"`
	Seed        uint64   `json:"seed,omitempty" toml:"seed"`
	Formats     []string `json:"formats,omitempty" toml:"formats"`
	Detailed    bool     `json:"detailed,omitempty" toml:"detailed"` // coordinates in diagram labels

	// Refresh bypasses cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty" toml:"-"`
}

// ValidateAndSetDefaults rejects negative settings, beams shorter than two
// cells and unknown formats, and fills zero values with defaults. Calling it
// more than once is harmless.
func (o *Options) ValidateAndSetDefaults() error {
	if o.BeamLength < 0 || o.MaxAttempts < 0 || o.TargetCount < 0 {
		return errors.New(errors.ErrCodeInvalidInput,
			"beam_length, max_attempts and target_count must not be negative")
	}
	o.SetDefaults()
	// A beam of length n holds n-1 cells; length 1 yields empty beams.
	if o.BeamLength < MinBeamLength {
		return errors.New(errors.ErrCodeInvalidInput,
			"beam_length must be at least %d, got %d", MinBeamLength, o.BeamLength)
	}
	if err := errors.ValidateFormats(o.Formats, ValidFormats); err != nil {
		return err
	}
	return nil
}

// SetDefaults fills zero-valued fields.
func (o *Options) SetDefaults() {
	if o.BeamLength == 0 {
		o.BeamLength = DefaultBeamLength
	}
	if o.MaxAttempts == 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	if o.TargetCount == 0 {
		o.TargetCount = DefaultTargetCount
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
}

// GeneratorOptions returns the candidate generator settings.
func (o *Options) GeneratorOptions() *placement.Options {
	return &placement.Options{
		MaxAttempts: o.MaxAttempts,
		TargetCount: o.TargetCount,
	}
}

// LoadOptionsFile reads options from a TOML file. Unknown keys are
// rejected so that typos do not silently fall back to defaults.
//
//	beam_length  = 9
//	max_attempts = 500
//	target_count = 12
//	seed         = 7
//	formats      = ["json", "svg"]
func LoadOptionsFile(path string) (Options, error) {
	var opts Options
	md, err := toml.DecodeFile(path, &opts)
	if err != nil {
		return Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Options{}, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown key %q", path, undecoded[0].String())
	}
	return opts, nil
}

// =============================================================================
// Results
// =============================================================================

// Result contains the outputs of an assembly run.
type Result struct {
	// RunID identifies this run in logs and API responses.
	RunID string

	Lattice *lattice.Lattice

	// LatticeHash is the content hash of the serialized lattice.
	LatticeHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains execution statistics.
type Stats struct {
	PathCount    int
	NodeCount    int
	EdgeCount    int
	AssembleTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each stage.
type CacheInfo struct {
	AssembleHit bool
	RenderHit   bool // all artifacts came from cache
}

// SearchRequest is the input of a candidate search.
type SearchRequest struct {
	From     lattice.Coord   `json:"from"`
	Step     int             `json:"step"`
	Occupied []lattice.Coord `json:"occupied,omitempty"`
}

// SearchResult is the outcome of a candidate search.
type SearchResult struct {
	RunID      string          `json:"run_id"`
	Candidates []lattice.Coord `json:"candidates"`
	Attempts   int             `json:"attempts"`
	CacheHit   bool            `json:"cache_hit"`
}

// ExitsRequest asks how many exits of a node are still usable.
type ExitsRequest struct {
	At       lattice.Coord   `json:"at"`
	Kind     lattice.Kind    `json:"kind"`
	Occupied []lattice.Coord `json:"occupied,omitempty"`
	Beams    lattice.Beams   `json:"beams,omitempty"`
}

// ExitsResult reports the unobstructed exits and their beams.
type ExitsResult struct {
	Count int               `json:"count"`
	Beams lattice.NodeBeams `json:"beams"`
}
