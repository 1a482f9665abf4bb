package placement

import (
	"slices"

	"github.com/matzehuels/stacklattice/pkg/errors"
	"github.com/matzehuels/stacklattice/pkg/lattice"
)

// PruneBeams returns a new collection without the beams that cross an
// occupied cell. Per-node lists left empty are dropped. The input is not
// modified.
//
// If any beam is malformed the input collection is returned unchanged along
// with an INVALID_BEAM error. Callers choose whether to continue with the
// stale collection or abort.
func PruneBeams(beams lattice.Beams, occupied *lattice.OccupiedSet) (lattice.Beams, error) {
	for i, nb := range beams {
		for j, beam := range nb {
			if err := beam.Validate(); err != nil {
				return beams, errors.Wrap(errors.ErrCodeInvalidBeam, err, "node %d beam %d", i, j)
			}
		}
	}

	pruned := make(lattice.Beams, 0, len(beams))
	for _, nb := range beams {
		var kept lattice.NodeBeams
		for _, beam := range nb {
			if !slices.ContainsFunc(beam, occupied.Contains) {
				kept = append(kept, beam)
			}
		}
		if len(kept) > 0 {
			pruned = append(pruned, kept)
		}
	}
	return pruned, nil
}
