package lattice

import (
	"strings"

	"github.com/matzehuels/stacklattice/pkg/errors"
)

const (
	// RoleOpen marks the axis a pipe extends along.
	RoleOpen byte = 'o'

	// HadamardSuffix is appended to the wire form of Hadamard pipes.
	HadamardSuffix = "h"
)

// Kind is the symbolic identity of a block or pipe: one role character per
// axis plus an optional Hadamard flag. Valid kinds carry exactly one exit
// marker. For a pipe that marker is the single 'o' and its position is the
// exit axis. For a block it is the one character occurring exactly twice and
// both positions carrying it are exit axes.
//
// The zero Kind is invalid; construct kinds with [ParseKind] or [MustKind].
type Kind struct {
	roles    [3]byte
	hadamard bool
}

// ParseKind validates s and returns the corresponding Kind. Input is
// case-insensitive. Malformed strings return an INVALID_KIND error.
func ParseKind(s string) (Kind, error) {
	raw := strings.ToLower(s)
	var k Kind

	switch len(raw) {
	case 3:
	case 4:
		if raw[3:] != HadamardSuffix {
			return Kind{}, errors.New(errors.ErrCodeInvalidKind, "kind %q: unexpected suffix %q", s, raw[3:])
		}
		k.hadamard = true
	default:
		return Kind{}, errors.New(errors.ErrCodeInvalidKind, "kind %q: want 3 role characters plus optional %q", s, HadamardSuffix)
	}

	for i := range 3 {
		switch c := raw[i]; c {
		case 'x', 'y', 'z', RoleOpen:
			k.roles[i] = c
		default:
			return Kind{}, errors.New(errors.ErrCodeInvalidKind, "kind %q: unknown role %q", s, c)
		}
	}

	marker, ok := k.marker()
	if !ok {
		return Kind{}, errors.New(errors.ErrCodeInvalidKind, "kind %q: no unique exit marker", s)
	}
	if k.hadamard && marker != RoleOpen {
		return Kind{}, errors.New(errors.ErrCodeInvalidKind, "kind %q: only pipes carry a Hadamard", s)
	}
	return k, nil
}

// MustKind is like [ParseKind] but panics on malformed input.
// It is intended for literals in tables and tests.
func MustKind(s string) Kind {
	k, err := ParseKind(s)
	if err != nil {
		panic(err)
	}
	return k
}

// marker returns the exit marker character. A single 'o' always wins;
// otherwise exactly one role must repeat exactly twice.
func (k Kind) marker() (byte, bool) {
	opens := strings.Count(string(k.roles[:]), string(RoleOpen))
	switch {
	case opens == 1:
		return RoleOpen, true
	case opens > 1:
		return 0, false
	}
	var found byte
	for _, c := range k.roles {
		if strings.Count(string(k.roles[:]), string(c)) == 2 {
			found = c
		}
	}
	return found, found != 0
}

// String returns the wire form, e.g. "zxz" or "zxoh".
func (k Kind) String() string {
	if k.IsZero() {
		return ""
	}
	s := string(k.roles[:])
	if k.hadamard {
		s += HadamardSuffix
	}
	return s
}

// IsZero reports whether k is the zero (invalid) Kind.
func (k Kind) IsZero() bool { return k.roles == [3]byte{} }

// IsPipe reports whether k describes a pipe.
func (k Kind) IsPipe() bool {
	m, _ := k.marker()
	return m == RoleOpen
}

// IsBlock reports whether k describes a block.
func (k Kind) IsBlock() bool { return !k.IsZero() && !k.IsPipe() }

// IsHadamard reports whether k carries the Hadamard flag.
func (k Kind) IsHadamard() bool { return k.hadamard }

// Role returns the role character along a.
func (k Kind) Role(a Axis) byte { return k.roles[a] }

// Roles returns the three role characters without the Hadamard suffix.
func (k Kind) Roles() string { return string(k.roles[:]) }

// ExitAxes returns the axes k may connect along, in index order.
func (k Kind) ExitAxes() []Axis {
	m, ok := k.marker()
	if !ok {
		return nil
	}
	var out []Axis
	for _, a := range Axes {
		if k.roles[a] == m {
			out = append(out, a)
		}
	}
	return out
}

// IsExitAxis reports whether a is one of k's exit axes.
func (k Kind) IsExitAxis(a Axis) bool {
	m, ok := k.marker()
	return ok && k.roles[a] == m
}

// OpenAxis returns the axis a pipe extends along.
// ok is false for blocks.
func (k Kind) OpenAxis() (Axis, bool) {
	for _, a := range Axes {
		if k.roles[a] == RoleOpen {
			return a, true
		}
	}
	return 0, false
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
