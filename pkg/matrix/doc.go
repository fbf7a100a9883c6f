// Package matrix projects a header forest onto a matrix of per-cell settings.
//
// # Overview
//
// A nested header is a forest: every node is a labeled group spanning a
// contiguous range of leaf columns. Renderers, however, draw one cell per
// (level, column) slot. [Generate] bridges the two by walking the forest once
// and emitting, for every node, one [Cell] per column of its nominal span into
// the row of the node's level:
//
//	  level 0 │ Sales (root, colspan 3) │ placeholder │ placeholder │
//	  level 1 │ Q1 (root, colspan 2)    │ placeholder │ Q2 (root)   │
//
// Within a span exactly one cell is the root: the leftmost column that is not
// hidden. It carries the label and the effective colspan. The other cells are
// placeholders that keep the row index-addressable; a placeholder's IsHidden
// reports whether its own column is hidden. A span whose columns are all
// hidden has no root at all.
//
// # Contract
//
// The generator never mutates the forest and never validates it: spans are
// assumed contiguous and children are assumed to partition their parent.
// [GenerateStrict] runs [headers.Forest.Validate] first and fails fast on a
// malformed forest.
//
// The generator consumes only the [HeaderTree] capability, a pre-order walk
// over node data, so any tree representation can be projected.
package matrix
