package render

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/nestedheaders/pkg/headers"
	"github.com/matzehuels/nestedheaders/pkg/matrix"
)

var (
	colorCyan = lipgloss.Color("36")
	colorGray = lipgloss.Color("245")
	colorDim  = lipgloss.Color("240")

	styleRoot   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	styleCell   = lipgloss.NewStyle().Padding(0, 1)
	styleHidden = lipgloss.NewStyle().Foreground(colorDim).Padding(0, 1)
	styleIndex  = lipgloss.NewStyle().Foreground(colorGray).Padding(0, 1)
	styleCursor = lipgloss.NewStyle().Reverse(true).Foreground(colorCyan).Padding(0, 1)
)

// Markers prefixed to collapsible root labels.
const (
	MarkerExpanded  = "▾ "
	MarkerCollapsed = "▸ "
	MarkerHidden    = "·"
)

// TextOptions configures [Text].
type TextOptions struct {
	// Cursor highlights one slot, addressed by level and leaf column.
	Cursor *headers.Position
	// ShowHidden keeps hidden columns, drawn with [MarkerHidden].
	ShowHidden bool
	// ShowIndex appends a row with the leaf column numbers.
	ShowIndex bool
}

// Text renders m as a terminal table, one table row per level. Root cells
// show their label in the leftmost visible column of their span; the rest of
// the span is left blank.
func Text(m matrix.Matrix, opts TextOptions) string {
	cols := textColumns(m, opts.ShowHidden)
	if m.Levels() == 0 || len(cols) == 0 {
		return ""
	}

	rows := make([][]string, 0, m.Levels()+1)
	for level := range m.Levels() {
		row := make([]string, len(cols))
		for i, col := range cols {
			row[i] = textCell(m, level, col)
		}
		rows = append(rows, row)
	}
	if opts.ShowIndex {
		row := make([]string, len(cols))
		for i, col := range cols {
			row[i] = strconv.Itoa(col)
		}
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		BorderRow(true).
		Rows(rows...).
		StyleFunc(func(row, i int) lipgloss.Style {
			if row < 0 || i >= len(cols) {
				return styleCell
			}
			col := cols[i]
			if row >= m.Levels() {
				return styleIndex
			}
			if c := opts.Cursor; c != nil && c.Level == row && c.Column == col {
				return styleCursor
			}
			cell, _ := m.At(row, col)
			switch {
			case cell.IsRoot:
				return styleRoot
			case m.ColumnHidden(col):
				return styleHidden
			default:
				return styleCell
			}
		})
	return t.Render()
}

func textColumns(m matrix.Matrix, showHidden bool) []int {
	var cols []int
	for col := range m.Columns() {
		if showHidden || !m.ColumnHidden(col) {
			cols = append(cols, col)
		}
	}
	return cols
}

func textCell(m matrix.Matrix, level, col int) string {
	cell, ok := m.At(level, col)
	switch {
	case !ok:
		return ""
	case cell.IsRoot:
		return marker(cell) + cell.Label
	case cell.IsHidden:
		return MarkerHidden
	default:
		return ""
	}
}

func marker(c matrix.Cell) string {
	switch {
	case c.IsCollapsed:
		return MarkerCollapsed
	case c.Collapsible:
		return MarkerExpanded
	default:
		return ""
	}
}
