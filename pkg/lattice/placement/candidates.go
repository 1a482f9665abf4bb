package placement

import (
	"math/rand/v2"

	"github.com/matzehuels/stacklattice/pkg/errors"
	"github.com/matzehuels/stacklattice/pkg/lattice"
)

const (
	// DefaultMaxAttempts bounds the random splits tried for long moves.
	DefaultMaxAttempts = 500

	// DefaultTargetCount is the number of long-move candidates after which
	// the search stops early.
	DefaultTargetCount = 12
)

// IsMoveAllowed reports whether the Manhattan distance from src to dst is a
// positive multiple of [lattice.GridUnit]. This is necessary, not
// sufficient, for dst to host the next block.
func IsMoveAllowed(src, dst lattice.Coord) bool {
	d := src.Manhattan(dst)
	return d > 0 && d%lattice.GridUnit == 0
}

// Options configures a [Generator].
type Options struct {
	// MaxAttempts caps the random splits drawn for a long move. Default: 500.
	MaxAttempts int

	// TargetCount stops a long-move search once this many distinct
	// candidates are found. Default: 12.
	TargetCount int
}

var defaultOpts = Options{
	MaxAttempts: DefaultMaxAttempts,
	TargetCount: DefaultTargetCount,
}

// Generator proposes target positions for a new block. It owns its random
// source and is not safe for concurrent use.
type Generator struct {
	rng  *rand.Rand
	opts Options
}

// NewGenerator returns a generator seeded with seed. Pass nil for opts to
// use defaults; non-positive fields fall back to their defaults.
func NewGenerator(seed uint64, opts *Options) *Generator {
	o := defaultOpts
	if opts != nil {
		if opts.MaxAttempts > 0 {
			o.MaxAttempts = opts.MaxAttempts
		}
		if opts.TargetCount > 0 {
			o.TargetCount = opts.TargetCount
		}
	}
	return &Generator{
		rng:  rand.New(rand.NewPCG(seed, seed^0xdeadbeef)),
		opts: o,
	}
}

// Options returns the effective configuration.
func (g *Generator) Options() Options { return g.opts }

// SearchResult is the outcome of [Generator.Search].
type SearchResult struct {
	Candidates []lattice.Coord
	// Attempts is the number of random splits drawn. It is zero for steps
	// handled in closed form.
	Attempts int
}

// Candidates returns unoccupied positions at Manhattan distance step from
// src. See [Generator.Search].
func (g *Generator) Candidates(src lattice.Coord, step int, occupied *lattice.OccupiedSet) ([]lattice.Coord, error) {
	res, err := g.Search(src, step, occupied)
	return res.Candidates, err
}

// Search proposes positions at Manhattan distance step from src, skipping
// occupied ones. step must be a positive multiple of [lattice.GridUnit].
//
//   - 3: the six axis neighbours.
//   - 6: the twelve ±3 offsets on exactly two axes.
//   - 9: the eight ±3 offsets on all three axes.
//   - larger: random per-axis splits of the distance and all their axis
//     permutations, until TargetCount distinct positions are found or
//     MaxAttempts splits are drawn. Fewer results, even none, are normal.
func (g *Generator) Search(src lattice.Coord, step int, occupied *lattice.OccupiedSet) (SearchResult, error) {
	if step <= 0 || step%lattice.GridUnit != 0 {
		return SearchResult{}, errors.New(errors.ErrCodeInvalidStep, "step %d is not a positive multiple of %d", step, lattice.GridUnit)
	}

	switch step {
	case 3:
		return SearchResult{Candidates: free(src, singleMoves, occupied)}, nil
	case 6:
		return SearchResult{Candidates: free(src, doubleMoves, occupied)}, nil
	case 9:
		return SearchResult{Candidates: free(src, tripleMoves, occupied)}, nil
	}
	return g.searchFar(src, step, occupied), nil
}

func (g *Generator) searchFar(src lattice.Coord, step int, occupied *lattice.OccupiedSet) SearchResult {
	seen := make(map[lattice.Coord]struct{}, g.opts.TargetCount)
	var res SearchResult

	for len(res.Candidates) < g.opts.TargetCount && res.Attempts < g.opts.MaxAttempts {
		res.Attempts++
		x, y, z := g.split(step)
		for _, m := range permutations(x, y, z) {
			if len(res.Candidates) == g.opts.TargetCount {
				break
			}
			c := src.Add(m)
			if _, dup := seen[c]; dup || occupied.Contains(c) {
				continue
			}
			seen[c] = struct{}{}
			res.Candidates = append(res.Candidates, c)
		}
	}
	return res
}

// split divides step into three signed grid-aligned components whose
// absolute values sum to step: x from the whole budget, y from what x left,
// and z takes the remainder with a random sign.
//
// This departs from the classic split, which hands z the remainder unsigned.
// There every permutation keeps one component non-negative, so targets with
// all three offsets negative are never proposed. Signing z reaches all eight
// octants.
func (g *Generator) split(step int) (x, y, z int) {
	remaining := step
	x = g.signedUpTo(remaining)
	remaining -= abs(x)
	y = g.signedUpTo(remaining)
	remaining -= abs(y)
	z = remaining
	if g.rng.IntN(2) == 0 {
		z = -z
	}
	return x, y, z
}

// signedUpTo draws uniformly from -budget, -budget+3, ..., budget.
func (g *Generator) signedUpTo(budget int) int {
	n := 2*budget/lattice.GridUnit + 1
	return g.rng.IntN(n)*lattice.GridUnit - budget
}

func permutations(x, y, z int) [6]lattice.Coord {
	return [6]lattice.Coord{
		{X: x, Y: y, Z: z},
		{X: x, Y: z, Z: y},
		{X: y, Y: x, Z: z},
		{X: y, Y: z, Z: x},
		{X: z, Y: x, Z: y},
		{X: z, Y: y, Z: x},
	}
}

var singleMoves = []lattice.Coord{
	{X: 3}, {X: -3},
	{Y: 3}, {Y: -3},
	{Z: 3}, {Z: -3},
}

var doubleMoves = func() []lattice.Coord {
	var out []lattice.Coord
	for _, a := range []int{-3, 3} {
		for _, b := range []int{-3, 3} {
			out = append(out,
				lattice.Coord{X: a, Y: b},
				lattice.Coord{X: a, Z: b},
				lattice.Coord{Y: a, Z: b},
			)
		}
	}
	return out
}()

var tripleMoves = func() []lattice.Coord {
	var out []lattice.Coord
	for _, a := range []int{-3, 3} {
		for _, b := range []int{-3, 3} {
			for _, c := range []int{-3, 3} {
				out = append(out, lattice.Coord{X: a, Y: b, Z: c})
			}
		}
	}
	return out
}()

func free(src lattice.Coord, offsets []lattice.Coord, occupied *lattice.OccupiedSet) []lattice.Coord {
	out := make([]lattice.Coord, 0, len(offsets))
	for _, o := range offsets {
		if c := src.Add(o); !occupied.Contains(c) {
			out = append(out, c)
		}
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
