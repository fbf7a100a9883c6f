package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/nestedheaders/pkg/errors"
	"github.com/matzehuels/nestedheaders/pkg/headers"
	pkgio "github.com/matzehuels/nestedheaders/pkg/io"
)

// sales is a four-column definition:
//
//	| Sales          | Notes |
//	| H1      | H2   |       |
//	| Jan | Feb | Mar |       |
func sales() pkgio.Definition {
	return pkgio.Definition{
		Rows: [][]headers.Header{
			{{Label: "Sales", Colspan: 3, Collapsible: true}, {Label: "Notes"}},
			{{Label: "H1", Colspan: 2, Collapsible: true}, {Label: "H2"}, {}},
			{{Label: "Jan"}, {Label: "Feb"}, {Label: "Mar"}, {}},
		},
	}
}

func newManager(t *testing.T, def pkgio.Definition) *Manager {
	t.Helper()
	m, err := New(def)
	require.NoError(t, err)
	return m
}

func TestNew(t *testing.T) {
	m := newManager(t, sales())
	assert.Equal(t, 4, m.Columns())
	assert.Equal(t, 3, m.Levels())
	assert.Empty(t, m.Hidden())
	assert.Empty(t, m.Collapsed())

	mx, err := m.Matrix()
	require.NoError(t, err)
	assert.Len(t, mx.Roots(2), 4)
}

func TestNewAppliesRecordedState(t *testing.T) {
	def := sales()
	def.Hidden = []int{3, 1, 3}
	def.Collapsed = []headers.Position{{Level: 0, Column: 2}}

	m := newManager(t, def)
	assert.Equal(t, []int{1, 3}, m.Hidden())
	assert.Equal(t, []headers.Position{{Level: 0, Column: 0}}, m.Collapsed())

	root := m.Forest()[0].Data
	assert.True(t, root.IsCollapsed)
	assert.Equal(t, []int{1, 2}, root.CrossHiddenColumns)
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*pkgio.Definition)
		code   errors.Code
	}{
		{"hidden out of range", func(d *pkgio.Definition) { d.Hidden = []int{4} }, errors.ErrCodeInvalidInput},
		{"collapse not collapsible", func(d *pkgio.Definition) { d.Collapsed = []headers.Position{{Level: 0, Column: 3}} }, errors.ErrCodeInvalidInput},
		{"collapse missing level", func(d *pkgio.Definition) { d.Collapsed = []headers.Position{{Level: 7, Column: 0}} }, errors.ErrCodeNotFound},
		{"label too long", func(d *pkgio.Definition) { d.Rows[0][1].Label = string(make([]byte, 300)) }, errors.ErrCodeInvalidHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := sales()
			tt.modify(&def)
			_, err := New(def)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.code), "got %v", err)
		})
	}
}

func TestHideAndShowColumns(t *testing.T) {
	m := newManager(t, sales())

	require.NoError(t, m.HideColumns(1, 0, 1))
	assert.Equal(t, []int{0, 1}, m.Hidden())

	mx, err := m.Matrix()
	require.NoError(t, err)
	sales, _, ok := mx.RootAt(0, 0)
	require.True(t, ok)
	assert.Equal(t, "Sales", sales.Label)
	assert.Equal(t, 1, sales.Colspan)
	assert.Equal(t, 3, sales.OrigColspan)

	h1, _ := mx.At(1, 0)
	assert.False(t, h1.IsRoot, "fully hidden header has no root cell")
	assert.True(t, h1.IsHidden)

	require.NoError(t, m.ShowColumns(0))
	assert.Equal(t, []int{1}, m.Hidden())

	err = m.HideColumns(-1)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
	assert.Equal(t, []int{1}, m.Hidden(), "failed calls leave the state untouched")
}

func TestToggleColumn(t *testing.T) {
	m := newManager(t, sales())

	hidden, err := m.ToggleColumn(2)
	require.NoError(t, err)
	assert.True(t, hidden)
	assert.Equal(t, []int{2}, m.Hidden())

	hidden, err = m.ToggleColumn(2)
	require.NoError(t, err)
	assert.False(t, hidden)
	assert.Empty(t, m.Hidden())

	_, err = m.ToggleColumn(9)
	assert.Error(t, err)
}

func TestCollapse(t *testing.T) {
	m := newManager(t, sales())

	// Any column inside the span addresses the header.
	require.NoError(t, m.Collapse(0, 1))
	assert.Equal(t, []headers.Position{{Level: 0, Column: 0}}, m.Collapsed())
	assert.Empty(t, m.Hidden(), "collapsing does not touch the user's hidden set")

	mx, err := m.Matrix()
	require.NoError(t, err)
	root, _, _ := mx.RootAt(0, 0)
	assert.True(t, root.IsCollapsed)
	assert.Equal(t, 2, root.Colspan)

	mar, _ := mx.At(2, 2)
	assert.True(t, mar.IsHidden)

	// Collapsing twice is idempotent.
	require.NoError(t, m.Collapse(0, 0))
	assert.Len(t, m.Collapsed(), 1)

	require.NoError(t, m.Collapse(1, 1))
	h1 := m.Forest()[0].Children()[0].Data
	assert.True(t, h1.IsCollapsed)
	assert.Equal(t, []int{1}, h1.CrossHiddenColumns)

	require.NoError(t, m.Expand(0, 2))
	require.NoError(t, m.Expand(0, 2), "expanding twice is a no-op")
	assert.Equal(t, []headers.Position{{Level: 1, Column: 0}}, m.Collapsed())
	assert.Equal(t, []int{1}, m.Forest()[0].Data.CrossHiddenColumns)
}

func TestCollapseErrors(t *testing.T) {
	m := newManager(t, sales())

	tests := []struct {
		name          string
		level, column int
		code          errors.Code
	}{
		{"not collapsible", 0, 3, errors.ErrCodeInvalidInput},
		{"leaf not collapsible", 2, 0, errors.ErrCodeInvalidInput},
		{"column out of range", 0, 4, errors.ErrCodeInvalidInput},
		{"negative column", 0, -1, errors.ErrCodeInvalidInput},
		{"no such level", 3, 0, errors.ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.Collapse(tt.level, tt.column)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.code), "got %v", err)
		})
	}
	assert.Empty(t, m.Collapsed())
}

func TestToggleCollapse(t *testing.T) {
	m := newManager(t, sales())

	collapsed, err := m.ToggleCollapse(1, 1)
	require.NoError(t, err)
	assert.True(t, collapsed)

	collapsed, err = m.ToggleCollapse(1, 0)
	require.NoError(t, err)
	assert.False(t, collapsed)
	assert.Empty(t, m.Collapsed())

	_, err = m.ToggleCollapse(0, 3)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestDefinitionRecordsState(t *testing.T) {
	m := newManager(t, sales())
	require.NoError(t, m.HideColumns(3))
	require.NoError(t, m.Collapse(0, 0))

	def := m.Definition()
	assert.Equal(t, []int{3}, def.Hidden)
	assert.Equal(t, []headers.Position{{Level: 0, Column: 0}}, def.Collapsed)

	restored := newManager(t, def)
	assert.Equal(t, m.Forest(), restored.Forest())
}

func TestForestIsACopy(t *testing.T) {
	m := newManager(t, sales())
	f := m.Forest()
	f[0].Data.Label = "changed"
	assert.Equal(t, "Sales", m.Forest()[0].Data.Label)
}

func TestConcurrentAccess(t *testing.T) {
	m := newManager(t, sales())

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for range 50 {
				_, _ = m.ToggleColumn(i % 4)
				_, _ = m.ToggleCollapse(0, 0)
			}
		}()
		go func() {
			defer wg.Done()
			for range 50 {
				_, err := m.Matrix()
				assert.NoError(t, err)
				_ = m.Definition()
			}
		}()
	}
	wg.Wait()
}
