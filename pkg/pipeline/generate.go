package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/nestedheaders/pkg/headers"
	"github.com/matzehuels/nestedheaders/pkg/matrix"
	"github.com/matzehuels/nestedheaders/pkg/observability"
)

// Generate validates the forest and projects it onto a header matrix.
func Generate(ctx context.Context, f headers.Forest) (matrix.Matrix, error) {
	hooks := observability.Pipeline()
	hooks.OnGenerateStart(ctx, f.Levels(), f.Columns())

	start := time.Now()
	m, err := matrix.GenerateStrict(f)
	cells := 0
	for _, row := range m {
		cells += len(row)
	}
	hooks.OnGenerateComplete(ctx, cells, time.Since(start), err)
	return m, err
}
