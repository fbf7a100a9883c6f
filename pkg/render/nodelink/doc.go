// Package nodelink renders header forests as node-link diagrams.
//
// # Usage
//
// Convert a forest to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(forest, nodelink.Options{Detailed: false})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Each header becomes a box with an edge to each of its children, top level
// first. Node IDs have the form L<level>C<column>, the header's level and
// first column.
//
// # Options
//
//   - Detailed: When true, node labels include the column range, hidden
//     columns and metadata.
//
// # Dependencies
//
// [RenderSVG] uses github.com/goccy/go-graphviz, which embeds Graphviz as
// WebAssembly, so no system installation is needed.
package nodelink
