package cli

import (
	"strconv"
	"strings"

	"github.com/matzehuels/stacklattice/pkg/errors"
	"github.com/matzehuels/stacklattice/pkg/lattice"
)

// parseCoord parses "x,y,z" (spaces and surrounding parentheses allowed).
func parseCoord(s string) (lattice.Coord, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return lattice.Coord{}, errors.New(errors.ErrCodeInvalidInput, "coordinate %q: want x,y,z", s)
	}
	var v [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return lattice.Coord{}, errors.New(errors.ErrCodeInvalidInput, "coordinate %q: %q is not an integer", s, p)
		}
		v[i] = n
	}
	return lattice.C(v[0], v[1], v[2]), nil
}

// parseCoords parses a semicolon-separated list of coordinates. An empty
// string yields no coordinates.
func parseCoords(s string) ([]lattice.Coord, error) {
	var out []lattice.Coord
	for _, part := range strings.Split(s, ";") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		c, err := parseCoord(part)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
