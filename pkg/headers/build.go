package headers

import (
	"github.com/matzehuels/nestedheaders/pkg/errors"
	"github.com/matzehuels/nestedheaders/pkg/tree"
)

// Build normalizes rows against columns (see [Normalize]) and builds the header forest.
//
// Top-level headers become roots. Every header on a lower level is attached to
// the header one level up whose span contains the header's first column.
// Build fails when a label is rejected by [errors.ValidateLabel] or when the
// definition exceeds [errors.MaxColumns] or [errors.MaxLevels].
func Build(rows [][]Header, columns int) (Forest, error) {
	if err := checkBounds(rows, columns); err != nil {
		return nil, err
	}
	normalized, columns := Normalize(rows, columns)
	if len(normalized) == 0 || columns == 0 {
		return Forest{}, nil
	}

	var forest Forest
	var above []*Node // nodes of the previous level, left to right
	for level, row := range normalized {
		current := make([]*Node, 0, len(row))
		col, parent := 0, 0
		for _, h := range row {
			if err := errors.ValidateLabel(h.Label); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidHeader, err, "level %d, column %d", level, col)
			}
			data := NodeData{
				Label:       h.Label,
				ColumnIndex: col,
				OrigColspan: h.Colspan,
				Colspan:     h.Colspan,
				HeaderLevel: level,
				Collapsible: h.Collapsible,
				Meta:        h.Meta,
			}

			var node *Node
			if level == 0 {
				node = tree.New(data)
				forest = append(forest, node)
			} else {
				for !above[parent].Data.Covers(col) {
					parent++
				}
				node = above[parent].AddChild(data)
			}
			current = append(current, node)
			col += h.Colspan
		}
		above = current
	}
	return forest, nil
}

// checkBounds rejects oversized definitions before Normalize allocates per
// column. Widths are summed against the remaining budget so huge colspans
// cannot overflow.
func checkBounds(rows [][]Header, columns int) error {
	if err := errors.ValidateDepth(len(rows)); err != nil {
		return err
	}
	if columns > 0 {
		return errors.ValidateWidth(columns)
	}
	for _, row := range rows {
		width := 0
		for _, h := range row {
			if h.span() > errors.MaxColumns-width {
				return errors.New(errors.ErrCodeInvalidInput, "row too wide (max %d columns)", errors.MaxColumns)
			}
			width += h.span()
		}
	}
	return nil
}
