// Package lattice provides the data model of a space-time block lattice and
// assembles routed edge paths into a single indexed lattice.
//
// # Overview
//
// A compiled lattice-surgery computation is a set of blocks joined by pipes
// on a 3D grid. Blocks sit [GridUnit] cells apart; the pipe between two
// neighbouring blocks occupies the cell next to its source block. Each block
// and pipe carries a [Kind], a three character role label (one per axis)
// with an optional Hadamard suffix:
//
//	zxz   block, exits along x and z (the doubled role)
//	zxo   pipe along z
//	zxoh  Hadamard pipe along z
//
// # Placement State
//
// Placement works against two pieces of driver-owned state: an
// [OccupiedSet] of claimed cells, which only ever grows, and a [Beams]
// collection of corridors reserved in front of unconnected exits. The
// [placement] subpackage checks candidate moves against both.
//
// # Assembly
//
// Once every graph edge has been routed, [Assemble] merges the resulting
// [EdgePath] values into a [Lattice]:
//
//	paths := []lattice.EdgePath{{
//	    SrcTgtIDs: [2]int{0, 1},
//	    PathNodes: []lattice.PathNode{
//	        {Coord: lattice.C(0, 0, 0), Kind: lattice.MustKind("zxz")},
//	        {Coord: lattice.C(1, 0, 0), Kind: lattice.MustKind("oxz")},
//	        {Coord: lattice.C(3, 0, 0), Kind: lattice.MustKind("zxz")},
//	    },
//	}}
//	l, err := lattice.Assemble(paths)
//
// Endpoint ids survive unchanged. Intermediate entries draw fresh ids from a
// counter that starts above the largest endpoint id and is shared by every
// path; [AssembleFrom] threads that counter explicitly.
//
// # Concurrency
//
// Values in this package are plain data. A [Lattice] is not modified after
// assembly and may be read concurrently. [OccupiedSet] is not safe for
// concurrent mutation.
//
// [placement]: github.com/matzehuels/stacklattice/pkg/lattice/placement
package lattice
