package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/stacklattice/pkg/errors"
	"github.com/matzehuels/stacklattice/pkg/lattice"
)

// =============================================================================
// Lattice Serialization API
// =============================================================================

// MarshalGraph converts a serialized lattice to indented JSON bytes.
func MarshalGraph(g Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTo(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalLattice converts a lattice to JSON bytes.
func MarshalLattice(l *lattice.Lattice) ([]byte, error) {
	return MarshalGraph(FromLattice(l))
}

// WriteGraph writes a serialized lattice as JSON to an io.Writer.
func WriteGraph(g Graph, w io.Writer) error {
	return writeTo(g, w)
}

// WriteGraphFile writes a serialized lattice to a JSON file.
// The file is created with 0644 permissions.
func WriteGraphFile(g Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeTo(g, f)
}

// ReadLattice decodes a JSON lattice from an io.Reader.
func ReadLattice(r io.Reader) (*lattice.Lattice, error) {
	var g Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToLattice(g)
}

// =============================================================================
// Edge Path Input
// =============================================================================

// ReadEdgePaths decodes a JSON array of edge paths from an io.Reader.
// Kinds are validated while decoding; path structure is checked by
// [lattice.Assemble].
func ReadEdgePaths(r io.Reader) ([]lattice.EdgePath, error) {
	var paths []lattice.EdgePath
	if err := json.NewDecoder(r).Decode(&paths); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return paths, nil
}

// ReadEdgePathsFile reads edge paths from a JSON file.
func ReadEdgePathsFile(path string) ([]lattice.EdgePath, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "edge path file %s not found", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadEdgePaths(f)
}

// MarshalEdgePaths encodes edge paths as compact JSON.
// The encoding is stable and is used to derive cache keys.
func MarshalEdgePaths(paths []lattice.EdgePath) ([]byte, error) {
	return json.Marshal(paths)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeTo(g Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
