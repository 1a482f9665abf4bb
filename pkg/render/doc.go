// Package render converts lattice drawings between output formats.
//
// The [nodelink] subpackage draws an assembled lattice as a Graphviz diagram
// and renders it to SVG. [ToPDF] and [ToPNG] convert that SVG further using
// the external rsvg-convert tool (from librsvg):
//
//	dot := nodelink.ToDOT(l, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//
// [nodelink]: github.com/matzehuels/stacklattice/pkg/render/nodelink
package render
