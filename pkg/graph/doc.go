// Package graph provides the serialization formats for edge paths and
// assembled lattices.
//
// This package defines the wire format used for input files, API payloads,
// cached results and cross-tool interoperability.
//
// # Architecture
//
// The package sits at the serialization boundary:
//
//   - [Graph], [Node], [Edge]: serialized lattice (this package)
//   - pkg/lattice.Lattice: internal lattice representation
//   - pkg/lattice.EdgePath: routed graph edge, serialized as-is
//
// Use [FromLattice]/[ToLattice] to convert between them.
//
// # Edge Path Input
//
// Edge paths are read as a JSON array, one entry per graph edge:
//
//	[
//	  {
//	    "src_tgt_ids": [0, 1],
//	    "path_nodes": [
//	      {"coord": [0, 0, 0], "kind": "zxz"},
//	      {"coord": [1, 0, 0], "kind": "oxz"},
//	      {"coord": [3, 0, 0], "kind": "zxz"}
//	    ]
//	  }
//	]
//
// # Lattice Output
//
// Lattices are written with nodes sorted by id and edges by endpoints:
//
//	{
//	  "nodes": [{"id": 0, "coord": [0, 0, 0], "kind": "zxz"}, ...],
//	  "edges": [{"from": 0, "to": 1, "kind": "oxz"}]
//	}
//
// Output is deterministic, so marshalled lattices can be hashed for caching.
package graph
