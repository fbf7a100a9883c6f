package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/nestedheaders/pkg/headers"
	"github.com/matzehuels/nestedheaders/pkg/matrix"
	"github.com/matzehuels/nestedheaders/pkg/observability"
	"github.com/matzehuels/nestedheaders/pkg/render"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, f headers.Forest, m matrix.Matrix, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderFormat(ctx, format, f, m, opts)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, format string, f headers.Forest, m matrix.Matrix, opts Options) ([]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, format)

	start := time.Now()
	data, err := render.Render(ctx, format, f, m, opts.RenderOptions())
	hooks.OnRenderComplete(ctx, format, len(data), time.Since(start), err)
	return data, err
}
