// Package state tracks the view state of a header definition: which leaf
// columns the user hid and which collapsible headers are collapsed.
//
// A [Manager] owns the unmodified source forest and rebuilds the derived
// forest on every change, so the matrix it reports always reflects the
// current state. All methods are safe for concurrent use.
package state

import (
	"slices"
	"sync"

	"github.com/matzehuels/nestedheaders/pkg/errors"
	"github.com/matzehuels/nestedheaders/pkg/headers"
	pkgio "github.com/matzehuels/nestedheaders/pkg/io"
	"github.com/matzehuels/nestedheaders/pkg/matrix"
)

// Manager holds a header forest and its hidden and collapsed state.
type Manager struct {
	mu        sync.RWMutex
	def       pkgio.Definition
	source    headers.Forest
	hidden    []int
	collapsed []headers.Position
	view      headers.Forest
}

// New builds the forest of def and applies the hidden and collapsed state
// recorded in it.
func New(def pkgio.Definition) (*Manager, error) {
	source, err := def.Forest()
	if err != nil {
		return nil, err
	}
	m := &Manager{def: def, source: source}
	if err := m.checkColumns(def.Hidden); err != nil {
		return nil, err
	}
	m.hidden = sortedUnique(def.Hidden)
	for _, p := range def.Collapsed {
		if err := m.addCollapsed(p); err != nil {
			return nil, err
		}
	}
	if err := m.rebuild(); err != nil {
		return nil, err
	}
	return m, nil
}

// Columns returns the number of leaf columns.
func (m *Manager) Columns() int { return m.source.Columns() }

// Levels returns the number of header levels.
func (m *Manager) Levels() int { return m.source.Levels() }

// HideColumns adds columns to the hidden set.
func (m *Manager) HideColumns(cols ...int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkColumns(cols); err != nil {
		return err
	}
	m.hide(cols)
	return m.rebuild()
}

// ShowColumns removes columns from the hidden set. Columns hidden by a
// collapsed header stay hidden until it is expanded.
func (m *Manager) ShowColumns(cols ...int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkColumns(cols); err != nil {
		return err
	}
	m.show(cols)
	return m.rebuild()
}

// ToggleColumn hides a visible column or shows a hidden one and reports
// whether it is hidden afterwards.
func (m *Manager) ToggleColumn(col int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkColumns([]int{col}); err != nil {
		return false, err
	}
	hidden := slices.Contains(m.hidden, col)
	if hidden {
		m.show([]int{col})
	} else {
		m.hide([]int{col})
	}
	return !hidden, m.rebuild()
}

func (m *Manager) hide(cols []int) {
	m.hidden = sortedUnique(append(slices.Clone(m.hidden), cols...))
}

func (m *Manager) show(cols []int) {
	m.hidden = slices.DeleteFunc(slices.Clone(m.hidden), func(c int) bool {
		return slices.Contains(cols, c)
	})
}

// Hidden returns the columns hidden by the user, sorted.
func (m *Manager) Hidden() []int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.hidden)
}

// Collapsed returns the positions of collapsed headers, normalized to each
// header's first column.
func (m *Manager) Collapsed() []headers.Position {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.collapsed)
}

// Collapse collapses the collapsible header at (level, column).
func (m *Manager) Collapse(level, column int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.addCollapsed(headers.Position{Level: level, Column: column}); err != nil {
		return err
	}
	return m.rebuild()
}

// Expand reverts [Manager.Collapse]. Expanding a header that is not
// collapsed is a no-op.
func (m *Manager) Expand(level, column int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, err := m.locate(level, column)
	if err != nil {
		return err
	}
	m.collapsed = slices.DeleteFunc(m.collapsed, func(q headers.Position) bool { return q == p })
	return m.rebuild()
}

// ToggleCollapse collapses an expanded header or expands a collapsed one.
// It reports whether the header is collapsed afterwards.
func (m *Manager) ToggleCollapse(level, column int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, err := m.locate(level, column)
	if err != nil {
		return false, err
	}
	if i := slices.Index(m.collapsed, p); i >= 0 {
		m.collapsed = slices.Delete(m.collapsed, i, i+1)
		return false, m.rebuild()
	}
	if err := m.addCollapsed(p); err != nil {
		return false, err
	}
	return true, m.rebuild()
}

// Forest returns a copy of the forest with the current state applied.
func (m *Manager) Forest() headers.Forest {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.view.Clone()
}

// Matrix validates the current forest and generates its header matrix.
func (m *Manager) Matrix(opts ...matrix.Option) (matrix.Matrix, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return matrix.GenerateStrict(m.view, opts...)
}

// Definition returns the source definition with the current state recorded
// in its Hidden and Collapsed fields.
func (m *Manager) Definition() pkgio.Definition {
	m.mu.RLock()
	defer m.mu.RUnlock()
	def := m.def
	def.Hidden = slices.Clone(m.hidden)
	def.Collapsed = slices.Clone(m.collapsed)
	return def
}

// locate resolves a position to the header's own first column.
func (m *Manager) locate(level, column int) (headers.Position, error) {
	if column < 0 || column >= m.source.Columns() {
		return headers.Position{}, errors.New(errors.ErrCodeInvalidInput, "column %d out of range [0, %d)", column, m.source.Columns())
	}
	n, ok := m.source.NodeAt(level, column)
	if !ok {
		return headers.Position{}, errors.New(errors.ErrCodeNotFound, "no header at level %d, column %d", level, column)
	}
	return headers.Position{Level: level, Column: n.Data.ColumnIndex}, nil
}

func (m *Manager) addCollapsed(p headers.Position) error {
	p, err := m.locate(p.Level, p.Column)
	if err != nil {
		return err
	}
	if n, _ := m.source.NodeAt(p.Level, p.Column); !n.Data.Collapsible {
		return errors.New(errors.ErrCodeInvalidInput, "header %q at level %d is not collapsible", n.Data.Label, p.Level)
	}
	if !slices.Contains(m.collapsed, p) {
		m.collapsed = append(m.collapsed, p)
	}
	return nil
}

func (m *Manager) checkColumns(cols []int) error {
	return errors.ValidateColumns(cols, m.source.Columns())
}

func (m *Manager) rebuild() error {
	view, err := headers.ApplyState(m.source, m.hidden, m.collapsed)
	if err != nil {
		return err
	}
	m.view = view
	return nil
}

func sortedUnique(cols []int) []int {
	out := slices.Clone(cols)
	slices.Sort(out)
	return slices.Compact(out)
}
