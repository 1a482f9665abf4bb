package lattice_test

import (
	"fmt"

	"github.com/matzehuels/stacklattice/pkg/lattice"
)

func ExampleAssemble() {
	paths := []lattice.EdgePath{{
		SrcTgtIDs: [2]int{0, 1},
		PathNodes: []lattice.PathNode{
			{Coord: lattice.C(0, 0, 0), Kind: lattice.MustKind("zxz")},
			{Coord: lattice.C(1, 0, 0), Kind: lattice.MustKind("oxz")},
			{Coord: lattice.C(3, 0, 0), Kind: lattice.MustKind("zxz")},
			{Coord: lattice.C(3, 0, 1), Kind: lattice.MustKind("zxo")},
			{Coord: lattice.C(3, 0, 3), Kind: lattice.MustKind("zxz")},
		},
	}}

	l, err := lattice.Assemble(paths)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	for _, id := range l.NodeIDs() {
		n := l.Nodes[id]
		fmt.Println("node", id, n.Coord, n.Kind)
	}
	for _, k := range l.EdgeKeys() {
		fmt.Println("edge", k.From, k.To, l.Edges[k])
	}
	// Output:
	// node 0 (0, 0, 0) zxz
	// node 1 (3, 0, 3) zxz
	// node 3 (3, 0, 0) zxz
	// edge 0 3 oxz
	// edge 3 1 zxo
}

func ExampleParseKind() {
	k, err := lattice.ParseKind("zxz")
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println(k, k.IsBlock(), k.ExitAxes())

	p, _ := lattice.ParseKind("zxoh")
	fmt.Println(p, p.IsPipe(), p.IsHadamard(), p.ExitAxes())

	_, err = lattice.ParseKind("xxx")
	fmt.Println(err)
	// Output:
	// zxz true [x z]
	// zxoh true true [z]
	// INVALID_KIND: kind "xxx": no unique exit marker
}
