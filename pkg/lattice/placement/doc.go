// Package placement implements the feasibility checks a greedy lattice
// placement driver runs before committing a block or pipe.
//
// # Components
//
//   - [IsExit] decides whether a face of a block or pipe can carry a
//     connection, from its [lattice.Kind].
//   - [CheckUnobstructed] and [CheckForExits] project beams out of exits and
//     test them against occupied cells and the beams of other elements.
//   - [Generator] proposes target positions at a given Manhattan distance,
//     in closed form for short moves and by bounded random search beyond.
//   - [PruneBeams] drops beams that placed geometry has since crossed.
//   - [State] bundles the occupied set and beam collection a driver owns.
//
// # Typical Step
//
//	gen := placement.NewGenerator(seed, nil)
//	targets, err := gen.Candidates(src, 6, st.Occupied)
//	if err != nil { ... }
//	for _, target := range targets {
//	    n, _ := st.Exits(target, kind)
//	    if n < needed {
//	        continue
//	    }
//	    // route pipes, then
//	    if err := st.Commit(target, kind, cells...); err != nil { ... }
//	}
//
// # Determinism
//
// Every operation except the long-range branch of [Generator.Search] is
// deterministic. The generator draws from an injected PCG source, so a fixed
// seed reproduces the same candidates.
package placement
