package lattice

import (
	"cmp"
	"maps"
	"slices"

	"github.com/matzehuels/stacklattice/pkg/errors"
)

// PathNode is one element of an edge path: a block or a pipe at a position.
type PathNode struct {
	Coord Coord `json:"coord"`
	Kind  Kind  `json:"kind"`
}

// EdgePath is the routed realisation of one graph edge. PathNodes alternate
// block, pipe, block, ..., pipe, block from the source endpoint to the target
// endpoint named by SrcTgtIDs.
type EdgePath struct {
	SrcTgtIDs [2]int     `json:"src_tgt_ids"`
	PathNodes []PathNode `json:"path_nodes"`
}

// Src returns the id of the path's source endpoint.
func (p EdgePath) Src() int { return p.SrcTgtIDs[0] }

// Tgt returns the id of the path's target endpoint.
func (p EdgePath) Tgt() int { return p.SrcTgtIDs[1] }

// Validate checks endpoint ids and that blocks sit at even positions and
// pipes at odd positions.
func (p EdgePath) Validate() error {
	if p.Src() < 0 || p.Tgt() < 0 {
		return errors.New(errors.ErrCodeInvalidPath, "endpoint ids must be non-negative, got %v", p.SrcTgtIDs)
	}
	for i, n := range p.PathNodes {
		switch {
		case n.Kind.IsZero():
			return errors.New(errors.ErrCodeInvalidPath, "path node %d at %s has no kind", i, n.Coord)
		case i%2 == 0 && !n.Kind.IsBlock():
			return errors.New(errors.ErrCodeInvalidPath, "path node %d at %s: want block, got pipe %s", i, n.Coord, n.Kind)
		case i%2 == 1 && !n.Kind.IsPipe():
			return errors.New(errors.ErrCodeInvalidPath, "path node %d at %s: want pipe, got block %s", i, n.Coord, n.Kind)
		}
	}
	return nil
}

// EdgeKey identifies a lattice edge by the ids of the blocks it joins.
type EdgeKey struct {
	From, To int
}

// Lattice is the assembled space-time diagram: blocks indexed by node id and
// pipes indexed by the pair of blocks they join.
type Lattice struct {
	Nodes map[int]PathNode
	Edges map[EdgeKey]Kind
}

// NodeIDs returns the node ids in ascending order.
func (l *Lattice) NodeIDs() []int {
	return slices.Sorted(maps.Keys(l.Nodes))
}

// EdgeKeys returns the edge keys ordered by From, then To.
func (l *Lattice) EdgeKeys() []EdgeKey {
	return slices.SortedFunc(maps.Keys(l.Edges), func(a, b EdgeKey) int {
		return cmp.Or(cmp.Compare(a.From, b.From), cmp.Compare(a.To, b.To))
	})
}

// MaxEndpointID returns the largest endpoint id across paths, or -1 if there
// are no paths.
func MaxEndpointID(paths []EdgePath) int {
	maxID := -1
	for _, p := range paths {
		maxID = max(maxID, p.Src(), p.Tgt())
	}
	return maxID
}

// Assemble merges edge paths into a single lattice. Endpoint ids are kept;
// intermediate entries receive fresh ids starting above the largest
// endpoint id, in path order. See [AssembleFrom].
func Assemble(paths []EdgePath) (*Lattice, error) {
	l, _, err := AssembleFrom(paths, 0)
	return l, err
}

// AssembleFrom is like [Assemble] but starts minting fresh ids at next, or
// just above the largest endpoint id if that is higher. It returns the next
// unused id so successive assemblies can share one id space.
//
// Every entry strictly between a path's first and last consumes one id,
// pipes included. Even positions are blocks and become nodes; each odd
// position becomes an edge between its neighbouring blocks. Empty paths
// contribute nothing, single-entry paths contribute one node, and a
// trailing pipe with no closing block contributes no edge.
func AssembleFrom(paths []EdgePath, next int) (*Lattice, int, error) {
	for i, p := range paths {
		if err := p.Validate(); err != nil {
			return nil, next, errors.New(errors.ErrCodeInvalidPath, "edge path %d %v: %s", i, p.SrcTgtIDs, errors.UserMessage(err))
		}
	}

	next = max(next, MaxEndpointID(paths)+1)
	l := &Lattice{
		Nodes: make(map[int]PathNode),
		Edges: make(map[EdgeKey]Kind),
	}

	for _, p := range paths {
		n := len(p.PathNodes)
		if n == 0 {
			continue
		}

		ids := make([]int, n)
		ids[0] = p.Src()
		for i := 1; i < n-1; i++ {
			ids[i] = next
			next++
		}
		if n > 1 {
			ids[n-1] = p.Tgt()
		}

		for i := 0; i < n; i += 2 {
			l.Nodes[ids[i]] = p.PathNodes[i]
		}
		for i := 1; i+1 < n; i += 2 {
			l.Edges[EdgeKey{From: ids[i-1], To: ids[i+1]}] = p.PathNodes[i].Kind
		}
	}

	return l, next, nil
}
