package placement

import (
	"github.com/matzehuels/stacklattice/pkg/errors"
	"github.com/matzehuels/stacklattice/pkg/lattice"
)

// IsExit reports whether the face of the element at src facing dst is an
// exit of kind k. dst must differ from src along exactly one axis; any other
// displacement is never an exit.
func IsExit(src lattice.Coord, k lattice.Kind, dst lattice.Coord) bool {
	axis, ok := src.AxisTo(dst)
	if !ok {
		return false
	}
	return k.IsExitAxis(axis)
}

// IsExitName is like [IsExit] but takes the kind in wire form.
// Malformed kinds return an INVALID_KIND error.
func IsExitName(src lattice.Coord, kind string, dst lattice.Coord) (bool, error) {
	k, err := lattice.ParseKind(kind)
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeInvalidKind, err, "classify exit at %s", src)
	}
	return IsExit(src, k, dst), nil
}
