package matrix

import (
	"slices"

	"github.com/matzehuels/nestedheaders/pkg/headers"
)

// HeaderTree is a header tree root that can be walked in pre-order: each
// node's data is visited before its children's, siblings in order, every node
// exactly once. *headers.Node satisfies it.
type HeaderTree interface {
	WalkDownData(visit func(headers.NodeData))
}

// Option configures [Generate].
type Option func(*generator)

type generator struct {
	factory headers.Factory
}

// WithFactory replaces the settings factory. A nil factory is ignored.
func WithFactory(f headers.Factory) Option {
	return func(g *generator) {
		if f != nil {
			g.factory = f
		}
	}
}

// Generate projects the trees, in order, onto a header matrix.
//
// Rows are created on first use; for every visited node one cell per column of
// its nominal span is appended to the row of its level. The leftmost column
// that is not hidden becomes the root cell, every other column a placeholder.
//
// Generate does not validate the forest; see [GenerateStrict].
func Generate(roots []HeaderTree, opts ...Option) Matrix {
	g := generator{factory: headers.DefaultFactory{}}
	for _, opt := range opts {
		opt(&g)
	}

	var m Matrix
	for _, root := range roots {
		root.WalkDownData(func(d headers.NodeData) {
			m = g.appendSpan(m, d)
		})
	}
	return m
}

// GenerateForest is [Generate] over a [headers.Forest].
func GenerateForest(f headers.Forest, opts ...Option) Matrix {
	roots := make([]HeaderTree, len(f))
	for i, n := range f {
		roots[i] = n
	}
	return Generate(roots, opts...)
}

// GenerateStrict validates f and then generates its matrix.
// Validation errors carry errors.ErrCodeInvalidHeader.
func GenerateStrict(f headers.Forest, opts ...Option) (Matrix, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return GenerateForest(f, opts...), nil
}

func (g generator) appendSpan(m Matrix, d headers.NodeData) Matrix {
	for len(m) <= d.HeaderLevel {
		m = append(m, nil)
	}

	row := m[d.HeaderLevel]
	rootFound := false
	for i := d.ColumnIndex; i < d.ColumnIndex+d.OrigColspan; i++ {
		hidden := slices.Contains(d.CrossHiddenColumns, i)
		if hidden || rootFound {
			cell := newCell(g.factory.Placeholder(d))
			cell.IsHidden = hidden
			row = append(row, cell)
			continue
		}
		cell := newCell(g.factory.Default(d))
		cell.IsRoot = true
		row = append(row, cell)
		rootFound = true
	}
	m[d.HeaderLevel] = row
	return m
}
