package graph

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/stacklattice/pkg/lattice"
)

// =============================================================================
// Graph - Lattice Serialization
// =============================================================================

// Graph is the canonical serialization format for assembled lattices.
//
// The format is designed for round-trip fidelity:
// assemble → export → re-import produces an identical lattice.
type Graph struct {
	RunID string `json:"run_id,omitempty"`
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is a placed block.
type Node struct {
	ID    int           `json:"id"`
	Coord lattice.Coord `json:"coord"`
	Kind  lattice.Kind  `json:"kind"`
}

// Edge is a pipe joining two blocks.
type Edge struct {
	From int          `json:"from"`
	To   int          `json:"to"`
	Kind lattice.Kind `json:"kind"`
}

// =============================================================================
// Lattice ↔ Graph Conversion
// =============================================================================

// FromLattice converts a lattice to its serialization format.
// Nodes are sorted by id and edges by (from, to) for deterministic output.
func FromLattice(l *lattice.Lattice) Graph {
	out := Graph{
		Nodes: make([]Node, 0, len(l.Nodes)),
		Edges: make([]Edge, 0, len(l.Edges)),
	}
	for _, id := range l.NodeIDs() {
		n := l.Nodes[id]
		out.Nodes = append(out.Nodes, Node{ID: id, Coord: n.Coord, Kind: n.Kind})
	}
	for _, k := range l.EdgeKeys() {
		out.Edges = append(out.Edges, Edge{From: k.From, To: k.To, Kind: l.Edges[k]})
	}
	return out
}

// ToLattice converts a Graph back to a lattice.
// Returns an error for duplicate node ids or edges referencing unknown nodes.
func ToLattice(g Graph) (*lattice.Lattice, error) {
	l := &lattice.Lattice{
		Nodes: make(map[int]lattice.PathNode, len(g.Nodes)),
		Edges: make(map[lattice.EdgeKey]lattice.Kind, len(g.Edges)),
	}
	for _, n := range g.Nodes {
		if _, dup := l.Nodes[n.ID]; dup {
			return nil, fmt.Errorf("duplicate node %d", n.ID)
		}
		l.Nodes[n.ID] = lattice.PathNode{Coord: n.Coord, Kind: n.Kind}
	}
	for _, e := range g.Edges {
		if _, ok := l.Nodes[e.From]; !ok {
			return nil, fmt.Errorf("edge %d→%d: unknown source node", e.From, e.To)
		}
		if _, ok := l.Nodes[e.To]; !ok {
			return nil, fmt.Errorf("edge %d→%d: unknown target node", e.From, e.To)
		}
		l.Edges[lattice.EdgeKey{From: e.From, To: e.To}] = e.Kind
	}
	return l, nil
}

// UnmarshalGraph deserializes JSON bytes to a Graph.
func UnmarshalGraph(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, err
	}
	return g, nil
}
