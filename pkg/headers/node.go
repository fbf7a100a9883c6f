package headers

import (
	"maps"
	"slices"

	"github.com/matzehuels/nestedheaders/pkg/tree"
)

// Metadata stores arbitrary renderer fields attached to a header (CSS class,
// tooltip, alignment). The core passes it through untouched.
type Metadata map[string]any

// NodeData is the payload of a header forest node.
type NodeData struct {
	Label       string
	ColumnIndex int // first leaf column covered, 0-based
	OrigColspan int // nominal number of leaf columns covered
	Colspan     int // OrigColspan minus hidden columns
	HeaderLevel int // depth in the forest, roots are 0

	// CrossHiddenColumns lists, in ascending order, the hidden columns inside
	// [ColumnIndex, ColumnIndex+OrigColspan).
	CrossHiddenColumns []int

	IsHidden    bool // every spanned column is hidden
	Collapsible bool
	IsCollapsed bool
	Meta        Metadata
}

// End returns the column just past the node's nominal span.
func (d NodeData) End() int { return d.ColumnIndex + d.OrigColspan }

// Covers reports whether column lies within the node's nominal span.
func (d NodeData) Covers(column int) bool {
	return column >= d.ColumnIndex && column < d.End()
}

// IsColumnHidden reports whether column is one of the node's hidden columns.
func (d NodeData) IsColumnHidden(column int) bool {
	_, found := slices.BinarySearch(d.CrossHiddenColumns, column)
	return found
}

func (d NodeData) clone() NodeData {
	d.CrossHiddenColumns = slices.Clone(d.CrossHiddenColumns)
	d.Meta = maps.Clone(d.Meta)
	return d
}

// Node is a header forest node.
type Node = tree.Node[NodeData]

// Forest is an ordered list of header trees, left to right.
type Forest []*Node

// Position addresses a header by level and any column inside its span.
type Position struct {
	Level  int `json:"level" toml:"level" yaml:"level" validate:"gte=0"`
	Column int `json:"column" toml:"column" yaml:"column" validate:"gte=0"`
}

// Columns returns the number of leaf columns covered by the forest.
func (f Forest) Columns() int {
	total := 0
	for _, root := range f {
		total += root.Data.OrigColspan
	}
	return total
}

// Levels returns the number of header levels, i.e. the deepest level plus one.
func (f Forest) Levels() int {
	levels := 0
	f.WalkDown(func(n *Node) {
		if n.Data.HeaderLevel+1 > levels {
			levels = n.Data.HeaderLevel + 1
		}
	})
	return levels
}

// Len returns the total number of nodes.
func (f Forest) Len() int {
	total := 0
	for _, root := range f {
		total += root.Len()
	}
	return total
}

// WalkDown visits every node of every tree in pre-order, trees in order.
func (f Forest) WalkDown(visit func(*Node)) {
	for _, root := range f {
		root.WalkDown(visit)
	}
}

// NodeAt returns the node at level whose span contains column.
func (f Forest) NodeAt(level, column int) (*Node, bool) {
	for _, root := range f {
		if !root.Data.Covers(column) {
			continue
		}
		return root.Find(func(n *Node) bool {
			return n.Data.HeaderLevel == level && n.Data.Covers(column)
		})
	}
	return nil, false
}

// Clone returns a deep copy of the forest.
func (f Forest) Clone() Forest {
	return f.mapData(func(n *Node) NodeData { return n.Data.clone() })
}

func (f Forest) mapData(fn func(*Node) NodeData) Forest {
	out := make(Forest, len(f))
	for i, root := range f {
		out[i] = tree.Map(root, fn)
	}
	return out
}
