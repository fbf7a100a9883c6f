package pipeline

import (
	"github.com/matzehuels/nestedheaders/pkg/headers"
	pkgio "github.com/matzehuels/nestedheaders/pkg/io"
	"github.com/matzehuels/nestedheaders/pkg/state"
)

// Prepare validates def, builds its forest and applies the recorded hidden
// and collapsed state.
func Prepare(def pkgio.Definition) (headers.Forest, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	m, err := state.New(def)
	if err != nil {
		return nil, err
	}
	return m.Forest(), nil
}
