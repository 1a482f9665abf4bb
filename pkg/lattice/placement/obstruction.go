package placement

import (
	"github.com/matzehuels/stacklattice/pkg/lattice"
)

// CheckUnobstructed projects a beam from src towards dst and reports whether
// it is free. The beam holds beamLength-1 cells, cell i being
// src + i*direction where direction is the per-axis sign of dst-src.
//
// With nothing occupied the beam is always free, so the very first placement
// never fails here. Otherwise the beam is obstructed if any cell is occupied
// or lies on a beam in beams. The beam is returned either way.
func CheckUnobstructed(src, dst lattice.Coord, occupied *lattice.OccupiedSet, beams lattice.Beams, beamLength int) (bool, lattice.Beam) {
	dir := dst.Sub(src).Sign()

	beam := make(lattice.Beam, 0, max(beamLength-1, 0))
	for i := 1; i < beamLength; i++ {
		beam = append(beam, src.Add(dir.Scale(i)))
	}

	if occupied.Len() == 0 {
		return true, beam
	}

	for _, c := range beam {
		if occupied.Contains(c) || beams.Contains(c) {
			return false, beam
		}
	}
	return true, beam
}

// CheckForExits counts the unobstructed exits of an element of kind k at
// node and collects their beams. Faces are visited in the order +X, -X, +Y,
// -Y, +Z, -Z.
func CheckForExits(node lattice.Coord, k lattice.Kind, occupied *lattice.OccupiedSet, beams lattice.Beams, beamLength int) (int, lattice.NodeBeams) {
	var (
		n         int
		nodeBeams lattice.NodeBeams
	)
	for _, step := range lattice.UnitSteps {
		target := node.Add(step)
		if !IsExit(node, k, target) {
			continue
		}
		if free, beam := CheckUnobstructed(node, target, occupied, beams, beamLength); free {
			n++
			nodeBeams = append(nodeBeams, beam)
		}
	}
	return n, nodeBeams
}
