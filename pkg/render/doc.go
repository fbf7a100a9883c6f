// Package render turns header matrices and forests into output formats.
//
// # Overview
//
// A [matrix.Matrix] is already a rendering plan: one row per level, one root
// cell per visible header, placeholders everywhere else. The sinks in this
// package only differ in how they lay that plan out:
//
//   - [Text]: terminal table via lipgloss, used by the CLI and the browser TUI
//   - [HTML]: a thead with one th per root cell and a colspan attribute
//   - [XLSX]: an Excel workbook with merged header cells and hidden columns
//   - [JSON]: the matrix itself, indented
//
// The graph formats (dot, svg) draw the header forest instead; see the
// [nodelink] subpackage.
//
// # Dispatch
//
// [Render] selects a sink by format name:
//
//	data, err := render.Render(ctx, render.FormatHTML, forest, m, render.Options{})
//
// Format names are listed in [ValidFormats]; [ContentType] and [Extension]
// map them to MIME types and file extensions.
//
// [nodelink]: github.com/matzehuels/nestedheaders/pkg/render/nodelink
package render
