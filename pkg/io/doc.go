// Package io reads and writes header definitions.
//
// # Overview
//
// A definition describes the nested column headers of a table: one row per
// header level, top level first, plus optional view state. The same document
// can be written as JSON, TOML or YAML:
//
//	{
//	  "columns": 4,
//	  "rows": [
//	    [{"label": "Sales", "colspan": 3, "collapsible": true}, "Notes"],
//	    [{"label": "H1", "colspan": 2}, "H2", ""],
//	    ["Jan", "Feb", "Mar", ""]
//	  ],
//	  "hidden": [1],
//	  "collapsed": [{"level": 0, "column": 0}]
//	}
//
// # Header Fields
//
// A header is either a bare string (a single-column header with that label)
// or an object with:
//
//   - label: Display text, at most 256 characters
//   - colspan: Number of columns of the next level it spans (default 1)
//   - collapsible: Whether the header can be collapsed to its first child
//   - meta: Freeform object carried through to the generated cells
//
// # Definition Fields
//
//   - columns: Leaf column count; inferred from the widest row when omitted
//   - rows: Header rows, top level first
//   - hidden: Leaf column indices hidden by the user
//   - collapsed: Positions (level, column) of collapsed headers
//
// # Import
//
// Use [Import] to read a definition from a file path, dispatching on the
// extension (.json, .toml, .yaml, .yml), or [ReadJSON], [ReadTOML] and
// [ReadYAML] to read from any io.Reader. Every reader validates the decoded
// definition; failures carry errors.ErrCodeInvalidFormat for syntax problems
// and errors.ErrCodeInvalidInput for constraint violations.
//
// # Export
//
// Use [Export] or [WriteJSON], [WriteTOML] and [WriteYAML]. Headers are always
// written in object form, which re-imports identically.
package io
