// Package pkg holds the libraries behind stacklattice, a placement and
// routing core for compiling ZX diagrams into lattice-surgery layouts.
//
// # Overview
//
// A driver walks the edges of a ZX graph and asks, for each edge, where the
// next block can go and whether a straight pipe can still reach it. The
// packages here answer those questions and assemble the result:
//
//  1. [lattice] - Coordinates, kinds, beams and the lattice assembler
//  2. [placement] - Exit classification, obstruction checks, candidate
//     search and beam pruning
//  3. [symmetry] - Rotation and Hadamard flips of pipe kinds
//  4. [graph] - JSON serialization of edge paths and lattices
//  5. [pipeline] - Cached assembly, rendering and search used by the CLI
//     and API
//
// # Architecture
//
//	edge paths (JSON)
//	         ↓
//	    [graph] package (decode)
//	         ↓
//	    [lattice] package (assemble nodes and edges)
//	         ↓
//	    [render/nodelink] package (DOT, SVG)
//	         ↓
//	    JSON/DOT/SVG/PNG/PDF output
//
// # Quick Start
//
//	paths, err := graph.ReadEdgePathsFile("paths.json")
//	if err != nil {
//	    return err
//	}
//	l, err := lattice.Assemble(paths)
//	if err != nil {
//	    return err
//	}
//	svg, err := nodelink.RenderSVG(ctx, nodelink.ToDOT(l, nodelink.Options{}))
//
// [lattice]: github.com/matzehuels/stacklattice/pkg/lattice
// [placement]: github.com/matzehuels/stacklattice/pkg/lattice/placement
// [symmetry]: github.com/matzehuels/stacklattice/pkg/lattice/symmetry
// [graph]: github.com/matzehuels/stacklattice/pkg/graph
// [pipeline]: github.com/matzehuels/stacklattice/pkg/pipeline
// [render/nodelink]: github.com/matzehuels/stacklattice/pkg/render/nodelink
package pkg
