package headers

import (
	"maps"
	"slices"
)

// Settings is the fully populated settings record for one header cell.
type Settings struct {
	Label              string
	Colspan            int
	OrigColspan        int
	HeaderLevel        int
	ColumnIndex        int
	CrossHiddenColumns []int
	IsHidden           bool
	IsPlaceholder      bool
	Collapsible        bool
	IsCollapsed        bool
	Meta               Metadata
}

// Factory creates the settings records for the cells of a header's span.
// Implementations must be pure: the result depends only on d.
type Factory interface {
	// Default returns the settings of the cell carrying d's label and colspan.
	Default(d NodeData) Settings
	// Placeholder returns the settings of a non-rendering filler cell for d.
	Placeholder(d NodeData) Settings
}

// DefaultFactory is the stock [Factory].
type DefaultFactory struct{}

// Default copies the presentation fields of d. CrossHiddenColumns and Meta are
// copied, never shared with the node.
func (DefaultFactory) Default(d NodeData) Settings {
	return Settings{
		Label:              d.Label,
		Colspan:            d.Colspan,
		OrigColspan:        d.OrigColspan,
		HeaderLevel:        d.HeaderLevel,
		ColumnIndex:        d.ColumnIndex,
		CrossHiddenColumns: slices.Clone(d.CrossHiddenColumns),
		IsHidden:           d.IsHidden,
		Collapsible:        d.Collapsible,
		IsCollapsed:        d.IsCollapsed,
		Meta:               maps.Clone(d.Meta),
	}
}

// Placeholder returns a blank single-column cell that keeps d's level, first
// column and metadata.
func (DefaultFactory) Placeholder(d NodeData) Settings {
	return Settings{
		Colspan:       1,
		OrigColspan:   1,
		HeaderLevel:   d.HeaderLevel,
		ColumnIndex:   d.ColumnIndex,
		IsPlaceholder: true,
		Meta:          maps.Clone(d.Meta),
	}
}

var _ Factory = DefaultFactory{}
