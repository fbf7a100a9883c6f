package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/nestedheaders/pkg/io"
	"github.com/matzehuels/nestedheaders/pkg/pipeline"
	"github.com/matzehuels/nestedheaders/pkg/render"
)

// matrixOpts holds the command-line flags for the matrix command.
type matrixOpts struct {
	output     string   // output file (single format) or base path (multiple)
	formats    []string // output formats
	hide       []int    // extra columns to hide
	collapse   []string // extra headers to collapse, as level:column
	showHidden bool     // keep hidden columns in text output
	showIndex  bool     // print column numbers under the table
	noCache    bool     // disable caching
	refresh    bool     // bypass cache lookups
}

// matrixCommand creates the matrix command.
func (c *CLI) matrixCommand() *cobra.Command {
	var formatsStr, hideStr string
	var opts matrixOpts

	cmd := &cobra.Command{
		Use:   "matrix [file]",
		Short: "Build the header matrix of a definition",
		Long: `Build the header matrix of a JSON, TOML or YAML header definition.

With a single format and no --output the result goes to stdout. With several
formats each one is written next to the input (or --output) with its own
extension.`,
		Example: `  nestedheaders matrix headers.yaml
  nestedheaders matrix headers.json --hide 1,3 --collapse 0:0
  nestedheaders matrix headers.toml -f html,xlsx -o report`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def := c.Config.Render.Format
			if f, ok := formatFromOutput(opts.output); ok && formatsStr == "" {
				def = f
			}
			opts.formats = parseFormats(formatsStr, def)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			hide, err := parseColumns(hideStr)
			if err != nil {
				return err
			}
			opts.hide = hide
			return c.runMatrix(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): text, html, xlsx, json, dot, svg (comma-separated)")
	cmd.Flags().StringVar(&hideStr, "hide", "", "leaf columns to hide (comma-separated)")
	cmd.Flags().StringSliceVar(&opts.collapse, "collapse", nil, "collapse the header at level:column (repeatable)")
	cmd.Flags().BoolVar(&opts.showHidden, "show-hidden", false, "keep hidden columns in text output")
	cmd.Flags().BoolVar(&opts.showIndex, "index", false, "print column numbers in text output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")

	return cmd
}

// runMatrix imports the definition, applies the flag state and writes every
// requested format.
func (c *CLI) runMatrix(ctx context.Context, input string, opts matrixOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	def, err := loadDefinition(input, opts.hide, opts.collapse)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	result, err := runner.Execute(ctx, pipeline.Options{
		Definition: def,
		Formats:    opts.formats,
		ShowHidden: opts.showHidden,
		ShowIndex:  opts.showIndex,
		Refresh:    opts.refresh,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	if len(opts.formats) == 1 && (opts.output != "" || !render.IsBinary(opts.formats[0])) {
		if err := writeArtifact(opts.output, result.Artifacts[opts.formats[0]]); err != nil {
			return err
		}
	} else {
		base := basePath(opts.output, input)
		for _, format := range opts.formats {
			path := base + render.Extension(format)
			if err := writeArtifact(path, result.Artifacts[format]); err != nil {
				return err
			}
			printFile(path)
		}
	}

	if opts.output != "" || len(opts.formats) > 1 {
		printStats(result.Stats.Levels, result.Stats.Columns, result.Stats.Hidden, result.CacheInfo.RenderHit)
	}
	prog.done(fmt.Sprintf("Built %d-level matrix", result.Stats.Levels))
	return nil
}

// loadDefinition imports path and adds the hidden columns and collapsed
// positions given on the command line.
func loadDefinition(path string, hide []int, collapse []string) (pkgio.Definition, error) {
	def, err := pkgio.Import(path)
	if err != nil {
		return pkgio.Definition{}, err
	}
	positions, err := parsePositions(collapse)
	if err != nil {
		return pkgio.Definition{}, err
	}
	for _, col := range hide {
		if !slices.Contains(def.Hidden, col) {
			def.Hidden = append(def.Hidden, col)
		}
	}
	for _, p := range positions {
		if !slices.Contains(def.Collapsed, p) {
			def.Collapsed = append(def.Collapsed, p)
		}
	}
	return def, nil
}

func writeArtifact(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = out.Write(data)
	return err
}
