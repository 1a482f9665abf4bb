package placement

import (
	"github.com/matzehuels/stacklattice/pkg/lattice"
)

// DefaultBeamLength is the beam length used when a State does not set one.
const DefaultBeamLength = 9

// State holds the mutable placement state a driver threads between calls:
// the occupied cells and the beams reserved by placed elements.
//
// The zero value is not usable; use [NewState].
type State struct {
	Occupied   *lattice.OccupiedSet
	Beams      lattice.Beams
	BeamLength int
}

// NewState returns an empty state. A non-positive beamLength selects
// [DefaultBeamLength].
func NewState(beamLength int) *State {
	if beamLength <= 0 {
		beamLength = DefaultBeamLength
	}
	return &State{
		Occupied:   lattice.NewOccupiedSet(),
		BeamLength: beamLength,
	}
}

// Exits counts the unobstructed exits an element of kind k would have at
// node given the current state.
func (s *State) Exits(node lattice.Coord, k lattice.Kind) (int, lattice.NodeBeams) {
	return CheckForExits(node, k, s.Occupied, s.Beams, s.BeamLength)
}

// Commit places an element of kind k at node. node and any extra cells
// (typically the pipes routed to reach it) become occupied, stale beams are
// pruned, and the element's own unobstructed beams are reserved.
//
// If pruning fails the beam collection is left as it was and the error is
// returned; the occupied cells are still recorded.
func (s *State) Commit(node lattice.Coord, k lattice.Kind, cells ...lattice.Coord) error {
	s.Occupied.Add(node)
	s.Occupied.Add(cells...)

	pruned, err := PruneBeams(s.Beams, s.Occupied)
	if err != nil {
		return err
	}
	s.Beams = pruned

	if _, nb := s.Exits(node, k); len(nb) > 0 {
		s.Beams = append(s.Beams, nb)
	}
	return nil
}
