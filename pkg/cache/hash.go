package cache

import (
	"cmp"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"slices"

	"github.com/matzehuels/stacklattice/pkg/lattice"
)

// Keys have the form "<entry>:<digest>", the digest covering the JSON
// encoding of the key parts. Coordinates encode as [x, y, z] and kinds as
// their wire strings, so keys are stable across processes.
func hashKey(entry string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return entry + ":" + Hash(data)
}

// Hash returns the hex SHA-256 digest of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashCells digests a set of cells. Order and repeats do not matter, so
// two searches around the same occupied set share a cache entry.
func HashCells(cells []lattice.Coord) string {
	set := slices.Clone(cells)
	slices.SortFunc(set, func(a, b lattice.Coord) int {
		return cmp.Or(cmp.Compare(a.X, b.X), cmp.Compare(a.Y, b.Y), cmp.Compare(a.Z, b.Z))
	})
	set = slices.Compact(set)
	if set == nil {
		set = []lattice.Coord{}
	}
	data, _ := json.Marshal(set)
	return Hash(data)
}
