package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/nestedheaders/pkg/errors"
	"github.com/matzehuels/nestedheaders/pkg/headers"
	pkgio "github.com/matzehuels/nestedheaders/pkg/io"
	"github.com/matzehuels/nestedheaders/pkg/render"
	"github.com/matzehuels/nestedheaders/pkg/state"
)

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
	listErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// BrowseModel - Interactive header state editing
// =============================================================================

// BrowseModel is the bubbletea model of the browse command. The cursor
// addresses one slot of the header matrix by level and leaf column.
type BrowseModel struct {
	State  *state.Manager
	Path   string
	Cursor headers.Position
	Status string
	Err    error
	Saved  bool
}

// NewBrowseModel creates a browse model over s. path is where "w" saves the
// definition; an empty path disables saving.
func NewBrowseModel(s *state.Manager, path string) BrowseModel {
	return BrowseModel{State: s, Path: path}
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	m.Status, m.Err = "", nil

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor.Level > 0 {
			m.Cursor.Level--
		}
	case "down", "j":
		if m.Cursor.Level < m.State.Levels()-1 {
			m.Cursor.Level++
		}
	case "left", "h":
		if m.Cursor.Column > 0 {
			m.Cursor.Column--
		}
	case "right", "l":
		if m.Cursor.Column < m.State.Columns()-1 {
			m.Cursor.Column++
		}
	case " ":
		hidden, err := m.State.ToggleColumn(m.Cursor.Column)
		if err != nil {
			m.Err = err
			break
		}
		if hidden {
			m.Status = fmt.Sprintf("column %d hidden", m.Cursor.Column)
		} else {
			m.Status = fmt.Sprintf("column %d shown", m.Cursor.Column)
		}
	case "enter":
		collapsed, err := m.State.ToggleCollapse(m.Cursor.Level, m.Cursor.Column)
		if err != nil {
			m.Err = err
			break
		}
		if collapsed {
			m.Status = "collapsed"
		} else {
			m.Status = "expanded"
		}
	case "w":
		if m.Path == "" {
			m.Err = errors.New(errors.ErrCodeUnsupported, "no file to save to")
			break
		}
		if err := pkgio.Export(m.State.Definition(), m.Path); err != nil {
			m.Err = err
			break
		}
		m.Saved = true
		m.Status = "saved " + m.Path
	}
	return m, nil
}

func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Header Matrix"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("arrows: move  space: hide/show column  enter: collapse/expand  w: save  q: quit"))
	b.WriteString("\n\n")

	mat, err := m.State.Matrix()
	if err != nil {
		b.WriteString(listErrorStyle.Render(errors.UserMessage(err)))
		b.WriteString("\n")
		return b.String()
	}
	cursor := m.Cursor
	b.WriteString(render.Text(mat, render.TextOptions{
		Cursor:     &cursor,
		ShowHidden: true,
		ShowIndex:  true,
	}))
	b.WriteString("\n\n")

	hidden := m.State.Hidden()
	summary := fmt.Sprintf("  [level %d, column %d]  hidden: %s", m.Cursor.Level, m.Cursor.Column, formatColumns(hidden))
	b.WriteString(listDimStyle.Render(summary))
	b.WriteString("\n")

	switch {
	case m.Err != nil:
		b.WriteString("  " + listErrorStyle.Render(errors.UserMessage(m.Err)))
		b.WriteString("\n")
	case m.Status != "":
		b.WriteString("  " + listStatusStyle.Render(m.Status))
		b.WriteString("\n")
	}
	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

func formatColumns(cols []int) string {
	if len(cols) == 0 {
		return "none"
	}
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = fmt.Sprint(c)
	}
	return strings.Join(parts, ", ")
}

func formatPositions(positions []headers.Position) string {
	if len(positions) == 0 {
		return "none"
	}
	parts := make([]string, len(positions))
	for i, p := range positions {
		parts[i] = fmt.Sprintf("%d:%d", p.Level, p.Column)
	}
	return strings.Join(parts, ", ")
}
