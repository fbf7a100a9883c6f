package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/nestedheaders/pkg/headers"
)

// Options configures forest diagram rendering.
type Options struct {
	// Detailed includes spans, hidden columns and metadata in node labels.
	// When false, only the header label is shown.
	Detailed bool
}

// ToDOT converts a header forest to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
//
// Fully hidden headers are drawn dashed and grey, collapsed headers bold.
func ToDOT(f headers.Forest, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	f.WalkDown(func(n *headers.Node) {
		label := fmtLabel(n.Data, opts.Detailed)
		attrs := fmtAttrs(n.Data, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(n.Data), strings.Join(attrs, ", "))
	})

	buf.WriteString("\n")
	f.WalkDown(func(n *headers.Node) {
		for _, c := range n.Children() {
			fmt.Fprintf(&buf, "  %q -> %q;\n", nodeID(n.Data), nodeID(c.Data))
		}
	})

	buf.WriteString("}\n")
	return buf.String()
}

// nodeID is unique within a forest: no two headers share a level and first column.
func nodeID(d headers.NodeData) string {
	return fmt.Sprintf("L%dC%d", d.HeaderLevel, d.ColumnIndex)
}

func fmtLabel(d headers.NodeData, detailed bool) string {
	label := d.Label
	if label == "" {
		label = " "
	}
	if !detailed {
		return label
	}

	parts := []string{fmt.Sprintf("columns: %d-%d", d.ColumnIndex, d.End()-1)}
	if len(d.CrossHiddenColumns) > 0 {
		parts = append(parts, fmt.Sprintf("hidden: %v", d.CrossHiddenColumns))
	}
	for _, k := range slices.Sorted(maps.Keys(d.Meta)) {
		parts = append(parts, fmt.Sprintf("%s: %v", k, d.Meta[k]))
	}

	return label + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(d headers.NodeData, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch {
	case d.IsHidden:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	case d.IsCollapsed:
		attrs = append(attrs, "penwidth=3")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
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

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
