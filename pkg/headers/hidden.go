package headers

import (
	"slices"

	"github.com/matzehuels/nestedheaders/pkg/errors"
)

// ApplyHidden returns a copy of f whose node data reflects the hidden columns.
//
// Each node gets the hidden columns inside its span, an effective Colspan of
// OrigColspan minus that count, and IsHidden when nothing of it stays visible.
// Columns outside the forest are ignored. f is not modified.
func ApplyHidden(f Forest, hidden []int) Forest {
	set := sortedUnique(hidden)
	return f.mapData(func(n *Node) NodeData {
		d := n.Data.clone()
		d.CrossHiddenColumns = crossing(set, d.ColumnIndex, d.End())
		d.Colspan = d.OrigColspan - len(d.CrossHiddenColumns)
		d.IsHidden = d.Colspan == 0
		return d
	})
}

// ApplyState applies collapsed headers and hidden columns to f.
//
// Collapsed headers are marked IsCollapsed and contribute the columns returned
// by [CollapsedColumns] to the hidden set.
func ApplyState(f Forest, hidden []int, collapsed []Position) (Forest, error) {
	extra, err := CollapsedColumns(f, collapsed)
	if err != nil {
		return nil, err
	}

	marked := f.mapData(func(n *Node) NodeData {
		d := n.Data.clone()
		d.IsCollapsed = false
		for _, p := range collapsed {
			if d.HeaderLevel == p.Level && d.Covers(p.Column) {
				d.IsCollapsed = true
				break
			}
		}
		return d
	})
	return ApplyHidden(marked, append(slices.Clone(hidden), extra...)), nil
}

// CollapsedColumns returns the columns hidden by collapsing the headers at the
// given positions: every column of the header's span outside its first child.
// A collapsed header without children keeps only its first column.
//
// It fails with ErrCodeNotFound when no header sits at a position and with
// ErrCodeInvalidInput when the header is not collapsible.
func CollapsedColumns(f Forest, collapsed []Position) ([]int, error) {
	var out []int
	for _, p := range collapsed {
		n, ok := f.NodeAt(p.Level, p.Column)
		if !ok {
			return nil, errors.New(errors.ErrCodeNotFound, "no header at level %d, column %d", p.Level, p.Column)
		}
		if !n.Data.Collapsible {
			return nil, errors.New(errors.ErrCodeInvalidInput, "header %q at level %d is not collapsible", n.Data.Label, p.Level)
		}

		keepEnd := n.Data.ColumnIndex + 1
		if children := n.Children(); len(children) > 0 {
			keepEnd = children[0].Data.End()
		}
		for c := keepEnd; c < n.Data.End(); c++ {
			out = append(out, c)
		}
	}
	return sortedUnique(out), nil
}

func sortedUnique(cols []int) []int {
	out := slices.Clone(cols)
	slices.Sort(out)
	return slices.Compact(out)
}

// crossing returns the members of the sorted set within [start, end).
func crossing(set []int, start, end int) []int {
	lo, _ := slices.BinarySearch(set, start)
	hi, _ := slices.BinarySearch(set, end)
	if lo == hi {
		return nil
	}
	return slices.Clone(set[lo:hi])
}
