// Package headers models nested column headers: the source definition a user
// writes, the header forest built from it, and the settings records handed to
// the matrix generator.
//
// # Source Definition
//
// A definition is a list of header rows, shallowest first. Each row lists
// headers left to right; a header covers Colspan leaf columns (default 1):
//
//	rows := [][]headers.Header{
//	    {{Label: "Sales", Colspan: 3}},
//	    {{Label: "Q1", Colspan: 2}, {Label: "Q2"}},
//	}
//
// [Normalize] fixes up user input: non-positive spans become 1, rows are
// trimmed to the column count, short rows are padded with blank single-column
// headers, and headers crossing their parent's right edge are clipped.
//
// # Forest
//
// [Build] turns normalized rows into a [Forest], one tree per top-level header.
// Every node carries [NodeData]: its first column, nominal span, level and the
// hidden columns crossing it. [Forest.Validate] checks the structural contract
// the matrix generator relies on (contiguous spans, children partitioning
// their parent, hidden columns inside the span).
//
// # Hiding and Collapsing
//
// The forest itself never changes. [ApplyHidden] and [ApplyState] return new
// forests whose node data reflects a set of hidden columns and collapsed
// headers. A collapsed header hides every column of its span except those of
// its first child.
//
// # Settings Factory
//
// [Factory] produces the per-cell settings records the generator emits.
// [DefaultFactory] is a pair of pure functions: [DefaultFactory.Default] for
// the cell that carries a header's label and [DefaultFactory.Placeholder] for
// the filler cells behind it.
package headers
