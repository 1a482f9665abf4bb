package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/stacklattice/pkg/graph"
	"github.com/matzehuels/stacklattice/pkg/lattice"
	"github.com/matzehuels/stacklattice/pkg/render/nodelink"
)

// pngScale renders PNGs at 2x for high-DPI displays.
const pngScale = 2.0

// Render generates output artifacts for l in the requested formats.
// The DOT source is built once and shared by the diagram formats.
func Render(ctx context.Context, l *lattice.Lattice, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	var dot string
	diagram := func() string {
		if dot == "" {
			dot = nodelink.ToDOT(l, nodelink.Options{Detailed: opts.Detailed})
		}
		return dot
	}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatJSON:
			data, err = graph.MarshalLattice(l)
		case FormatDOT:
			data = []byte(diagram())
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, diagram())
		case FormatPNG:
			data, err = nodelink.RenderPNG(ctx, diagram(), pngScale)
		case FormatPDF:
			data, err = nodelink.RenderPDF(ctx, diagram())
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
