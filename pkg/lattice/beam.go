package lattice

import (
	"slices"

	"github.com/matzehuels/stacklattice/pkg/errors"
)

// Beam is the straight corridor of cells an exit projects outward, ordered
// from the cell next to its origin. Beams reserve space a neighbour that has
// not been placed yet may still need.
type Beam []Coord

// NodeBeams holds the beams of one block or pipe, one per unobstructed exit.
type NodeBeams []Beam

// Beams is the running beam collection maintained by a placement driver.
type Beams []NodeBeams

// Contains reports whether c lies on any beam in the collection.
func (b Beams) Contains(c Coord) bool {
	for _, nb := range b {
		for _, beam := range nb {
			if slices.Contains(beam, c) {
				return true
			}
		}
	}
	return false
}

// CellCount returns the total number of beam cells, counting overlaps.
func (b Beams) CellCount() int {
	n := 0
	for _, nb := range b {
		for _, beam := range nb {
			n += len(beam)
		}
	}
	return n
}

// Validate checks that the beam is non-empty and advances by the same unit
// step (every component -1, 0 or 1, not all zero) between consecutive cells.
func (b Beam) Validate() error {
	if len(b) == 0 {
		return errors.New(errors.ErrCodeInvalidBeam, "beam is empty")
	}
	if len(b) == 1 {
		return nil
	}
	step := b[1].Sub(b[0])
	if step == (Coord{}) || step.Sign() != step {
		return errors.New(errors.ErrCodeInvalidBeam, "beam step %s is not a unit step", step)
	}
	for i := 2; i < len(b); i++ {
		if b[i].Sub(b[i-1]) != step {
			return errors.New(errors.ErrCodeInvalidBeam, "beam bends at cell %d %s", i, b[i])
		}
	}
	return nil
}

// OccupiedSet records every cell claimed by placed blocks and pipes.
// Cells are only ever added. The zero value is not usable; use [NewOccupiedSet].
type OccupiedSet struct {
	cells map[Coord]struct{}
	order []Coord
}

// NewOccupiedSet returns a set holding coords.
func NewOccupiedSet(coords ...Coord) *OccupiedSet {
	s := &OccupiedSet{cells: make(map[Coord]struct{}, len(coords))}
	s.Add(coords...)
	return s
}

// Add claims coords. Cells already present are ignored.
func (s *OccupiedSet) Add(coords ...Coord) {
	for _, c := range coords {
		if _, ok := s.cells[c]; ok {
			continue
		}
		s.cells[c] = struct{}{}
		s.order = append(s.order, c)
	}
}

// Contains reports whether c is occupied. A nil set contains nothing.
func (s *OccupiedSet) Contains(c Coord) bool {
	if s == nil {
		return false
	}
	_, ok := s.cells[c]
	return ok
}

// Len returns the number of occupied cells. A nil set is empty.
func (s *OccupiedSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.cells)
}

// Coords returns the occupied cells in insertion order.
func (s *OccupiedSet) Coords() []Coord {
	if s == nil {
		return nil
	}
	return slices.Clone(s.order)
}
