package headers

import (
	"slices"

	"github.com/matzehuels/nestedheaders/pkg/errors"
)

// Validate checks the structural contract the matrix generator relies on:
//
//   - roots sit on level 0 and tile [0, Columns()) left to right
//   - every node spans at least one column
//   - a child sits exactly one level below its parent
//   - children tile their parent's span without gaps or overlap
//   - CrossHiddenColumns is sorted, unique and inside the node's span
//   - Colspan equals OrigColspan minus the hidden column count
//
// The first violation is returned as an *errors.Error with ErrCodeInvalidHeader.
func (f Forest) Validate() error {
	col := 0
	for i, root := range f {
		d := root.Data
		if d.HeaderLevel != 0 {
			return invalid(d, "root %d must be on level 0", i)
		}
		if d.ColumnIndex != col {
			return invalid(d, "root %d starts at column %d, want %d", i, d.ColumnIndex, col)
		}
		if err := validateSubtree(root); err != nil {
			return err
		}
		col = d.End()
	}
	return nil
}

func validateSubtree(n *Node) error {
	d := n.Data
	if err := validateData(d); err != nil {
		return err
	}

	children := n.Children()
	if len(children) == 0 {
		return nil
	}
	col := d.ColumnIndex
	for _, c := range children {
		cd := c.Data
		if cd.HeaderLevel != d.HeaderLevel+1 {
			return invalid(cd, "level %d under a parent on level %d", cd.HeaderLevel, d.HeaderLevel)
		}
		if cd.ColumnIndex != col {
			return invalid(cd, "starts at column %d, want %d", cd.ColumnIndex, col)
		}
		if err := validateSubtree(c); err != nil {
			return err
		}
		col = cd.End()
	}
	if col != d.End() {
		return invalid(d, "children cover columns up to %d, want %d", col, d.End())
	}
	return nil
}

func validateData(d NodeData) error {
	if d.ColumnIndex < 0 {
		return invalid(d, "negative column index %d", d.ColumnIndex)
	}
	if d.OrigColspan < 1 {
		return invalid(d, "origColspan %d, must be at least 1", d.OrigColspan)
	}
	if !slices.IsSorted(d.CrossHiddenColumns) {
		return invalid(d, "hidden columns %v are not sorted", d.CrossHiddenColumns)
	}
	for i, c := range d.CrossHiddenColumns {
		if !d.Covers(c) {
			return invalid(d, "hidden column %d outside span [%d, %d)", c, d.ColumnIndex, d.End())
		}
		if i > 0 && d.CrossHiddenColumns[i-1] == c {
			return invalid(d, "hidden column %d listed twice", c)
		}
	}
	if want := d.OrigColspan - len(d.CrossHiddenColumns); d.Colspan != want {
		return invalid(d, "colspan %d, want %d", d.Colspan, want)
	}
	return nil
}

func invalid(d NodeData, format string, args ...any) error {
	prefix := []any{d.Label, d.HeaderLevel, d.ColumnIndex}
	return errors.New(errors.ErrCodeInvalidHeader, "header %q at level %d, column %d: "+format, append(prefix, args...)...)
}
