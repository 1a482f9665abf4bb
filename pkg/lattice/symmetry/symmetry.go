// Package symmetry provides stateless transforms that reorient block and
// pipe kinds.
package symmetry

import (
	"github.com/matzehuels/stacklattice/pkg/errors"
	"github.com/matzehuels/stacklattice/pkg/lattice"
)

// Rotate turns a pipe a quarter turn about its own axis: the roles of the
// two other axes swap and the open axis and Hadamard flag are kept.
// Applying Rotate twice returns the original kind. Blocks return a NOT_PIPE
// error.
func Rotate(k lattice.Kind) (lattice.Kind, error) {
	open, ok := k.OpenAxis()
	if !ok {
		return lattice.Kind{}, errors.New(errors.ErrCodeNotPipe, "cannot rotate %q: not a pipe", k)
	}

	var others []lattice.Axis
	for _, a := range lattice.Axes {
		if a != open {
			others = append(others, a)
		}
	}

	roles := []byte(k.Roles())
	roles[others[0]], roles[others[1]] = roles[others[1]], roles[others[0]]
	return lattice.ParseKind(wire(string(roles), k.IsHadamard()))
}

// RotateName is like [Rotate] but takes and returns the wire form.
func RotateName(kind string) (string, error) {
	k, err := lattice.ParseKind(kind)
	if err != nil {
		return "", err
	}
	r, err := Rotate(k)
	if err != nil {
		return "", err
	}
	return r.String(), nil
}

// hadamardPairs maps each canonical Hadamard pipe to the pipe with the same
// open axis that carries it in the opposite direction.
var hadamardPairs = map[string]string{
	"zxoh": "xzoh",
	"xozh": "zoxh",
	"oxzh": "ozxh",
}

var hadamardFlips = func() map[lattice.Kind]lattice.Kind {
	m := make(map[lattice.Kind]lattice.Kind, 2*len(hadamardPairs))
	for fwd, inv := range hadamardPairs {
		f, i := lattice.MustKind(fwd), lattice.MustKind(inv)
		m[f] = i
		m[i] = f
	}
	return m
}()

// FlipHadamard returns the Hadamard pipe equivalent to k with its direction
// reversed. Only the six kinds zxoh, xzoh, xozh, zoxh, oxzh and ozxh are
// accepted; anything else is an INVALID_KIND error. FlipHadamard is its own
// inverse.
func FlipHadamard(k lattice.Kind) (lattice.Kind, error) {
	f, ok := hadamardFlips[k]
	if !ok {
		return lattice.Kind{}, errors.New(errors.ErrCodeInvalidKind, "no Hadamard equivalent for %q", k)
	}
	return f, nil
}

// FlipHadamardName is like [FlipHadamard] but takes and returns the wire
// form. The lookup is exact: case matters.
func FlipHadamardName(kind string) (string, error) {
	if fwd, ok := hadamardPairs[kind]; ok {
		return fwd, nil
	}
	for fwd, inv := range hadamardPairs {
		if inv == kind {
			return fwd, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidKind, "no Hadamard equivalent for %q", kind)
}

func wire(roles string, hadamard bool) string {
	if hadamard {
		return roles + lattice.HadamardSuffix
	}
	return roles
}
