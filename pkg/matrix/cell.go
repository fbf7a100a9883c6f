package matrix

import (
	"maps"

	"github.com/matzehuels/nestedheaders/pkg/headers"
)

// Cell is the rendering descriptor of one (level, column) slot.
//
// It holds every field of [headers.Settings] except CrossHiddenColumns, which
// is internal to the forest, plus IsRoot.
type Cell struct {
	Label         string           `json:"label"`
	Colspan       int              `json:"colspan"`
	OrigColspan   int              `json:"origColspan"`
	HeaderLevel   int              `json:"headerLevel"`
	ColumnIndex   int              `json:"columnIndex"`
	IsHidden      bool             `json:"isHidden"`
	IsRoot        bool             `json:"isRoot"`
	IsPlaceholder bool             `json:"isPlaceholder"`
	Collapsible   bool             `json:"collapsible"`
	IsCollapsed   bool             `json:"isCollapsed"`
	Meta          headers.Metadata `json:"meta,omitempty"`
}

// newCell copies the allow-listed fields of s. Meta is cloned so cells never
// share a map with each other or with the factory.
func newCell(s headers.Settings) Cell {
	return Cell{
		Label:         s.Label,
		Colspan:       s.Colspan,
		OrigColspan:   s.OrigColspan,
		HeaderLevel:   s.HeaderLevel,
		ColumnIndex:   s.ColumnIndex,
		IsHidden:      s.IsHidden,
		IsPlaceholder: s.IsPlaceholder,
		Collapsible:   s.Collapsible,
		IsCollapsed:   s.IsCollapsed,
		Meta:          maps.Clone(s.Meta),
	}
}

// Matrix holds one row per header level; row[i] describes visual column i.
type Matrix [][]Cell

// Levels returns the number of rows.
func (m Matrix) Levels() int { return len(m) }

// Width returns the number of cells on level, or 0 for an unknown level.
func (m Matrix) Width(level int) int {
	if level < 0 || level >= len(m) {
		return 0
	}
	return len(m[level])
}

// At returns the cell at (level, column).
func (m Matrix) At(level, column int) (Cell, bool) {
	if column < 0 || column >= m.Width(level) {
		return Cell{}, false
	}
	return m[level][column], true
}

// RootAt returns the root cell whose span covers column on level, together
// with the column the root sits in. It reports false when the slot does not
// exist or belongs to a span without a visible root.
//
// Cells emitted for one header share its ColumnIndex, so the span is the run
// of cells starting at that column with the same ColumnIndex.
func (m Matrix) RootAt(level, column int) (Cell, int, bool) {
	cell, ok := m.At(level, column)
	if !ok {
		return Cell{}, 0, false
	}
	row := m[level]
	for c := cell.ColumnIndex; c >= 0 && c < len(row) && row[c].ColumnIndex == cell.ColumnIndex; c++ {
		if row[c].IsRoot {
			return row[c], c, true
		}
	}
	return Cell{}, 0, false
}

// Roots returns the root cells of level, left to right.
func (m Matrix) Roots(level int) []Cell {
	var out []Cell
	for _, c := range m.row(level) {
		if c.IsRoot {
			out = append(out, c)
		}
	}
	return out
}

// Columns returns the widest row length.
func (m Matrix) Columns() int {
	width := 0
	for _, row := range m {
		width = max(width, len(row))
	}
	return width
}

func (m Matrix) row(level int) []Cell {
	if level < 0 || level >= len(m) {
		return nil
	}
	return m[level]
}

// ColumnHidden reports whether leaf column is hidden. A column is hidden when
// any level holds a hidden placeholder for it.
func (m Matrix) ColumnHidden(column int) bool {
	for level := range m {
		if c, ok := m.At(level, column); ok && c.IsPlaceholder && c.IsHidden {
			return true
		}
	}
	return false
}

// HiddenColumns returns the hidden leaf columns, sorted.
func (m Matrix) HiddenColumns() []int {
	var out []int
	for col := range m.Columns() {
		if m.ColumnHidden(col) {
			out = append(out, col)
		}
	}
	return out
}
