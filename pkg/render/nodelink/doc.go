// Package nodelink draws assembled lattices as node-link diagrams.
//
// # Overview
//
// Blocks become boxes labelled with their id and kind; each edge carries the
// kind of the pipe that connects the two blocks. Hadamard pipes are drawn
// dashed so that basis changes stand out.
//
// # Usage
//
//	dot := nodelink.ToDOT(l, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, use the wrappers:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
