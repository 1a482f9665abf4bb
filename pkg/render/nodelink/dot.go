package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/stacklattice/pkg/lattice"
	"github.com/matzehuels/stacklattice/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the block coordinate to each node label.
	Detailed bool
}

// fill colours keyed by the block's exit role.
var roleColors = map[byte]string{
	'x': "#f4a6a6",
	'y': "#a6d8a6",
	'z': "#a6c8f4",
}

// ToDOT converts a lattice to Graphviz DOT source. Nodes and edges are
// emitted in ascending id order so the output is stable.
func ToDOT(l *lattice.Lattice, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph L {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, fontname=\"monospace\"];\n")
	buf.WriteString("  edge [fontsize=11, fontname=\"monospace\"];\n")
	buf.WriteString("\n")

	for _, id := range l.NodeIDs() {
		n := l.Nodes[id]
		fmt.Fprintf(&buf, "  %d [%s];\n", id, strings.Join(nodeAttrs(id, n, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	for _, key := range l.EdgeKeys() {
		k := l.Edges[key]
		attrs := []string{fmt.Sprintf("label=%q", k.String())}
		if k.IsHadamard() {
			attrs = append(attrs, "style=dashed", "color=\"#d4a017\"")
		}
		fmt.Fprintf(&buf, "  %d -- %d [%s];\n", key.From, key.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(id int, n lattice.PathNode, detailed bool) []string {
	label := fmt.Sprintf("%d\n%s", id, n.Kind)
	if detailed {
		label += "\n" + n.Coord.String()
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if axes := n.Kind.ExitAxes(); len(axes) > 0 {
		if c, ok := roleColors[n.Kind.Role(axes[0])]; ok {
			attrs = append(attrs, fmt.Sprintf("fillcolor=%q", c))
		}
	}
	return attrs
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the drawing scales with its
// container instead of using Graphviz's point-based size.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders DOT source as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders DOT source as PNG via SVG conversion at the given scale.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
