package render

import (
	"context"
	"encoding/json"

	"github.com/matzehuels/nestedheaders/pkg/errors"
	"github.com/matzehuels/nestedheaders/pkg/headers"
	"github.com/matzehuels/nestedheaders/pkg/matrix"
	"github.com/matzehuels/nestedheaders/pkg/render/nodelink"
)

// Options configures [Render].
type Options struct {
	Text     TextOptions
	Detailed bool // include spans and hidden columns in DOT/SVG node labels
}

// Render produces format from a forest and the matrix generated from it.
// Matrix formats read m; the graph formats (dot, svg) read f.
func Render(ctx context.Context, format string, f headers.Forest, m matrix.Matrix, opts Options) ([]byte, error) {
	if err := errors.ValidateFormat(format, ValidFormats); err != nil {
		return nil, err
	}

	switch format {
	case FormatText:
		return []byte(Text(m, opts.Text) + "\n"), nil
	case FormatHTML:
		return []byte(HTML(m)), nil
	case FormatXLSX:
		return XLSX(m)
	case FormatJSON:
		return JSON(m)
	case FormatDOT:
		return []byte(nodelink.ToDOT(f, nodelink.Options{Detailed: opts.Detailed})), nil
	default:
		svg, err := nodelink.RenderSVG(ctx, nodelink.ToDOT(f, nodelink.Options{Detailed: opts.Detailed}))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render svg")
		}
		return svg, nil
	}
}

// JSON encodes m as indented JSON.
func JSON(m matrix.Matrix) ([]byte, error) {
	if m == nil {
		m = matrix.Matrix{}
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode matrix")
	}
	return append(data, '\n'), nil
}
