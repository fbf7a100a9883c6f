package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/nestedheaders/pkg/pipeline"
	"github.com/matzehuels/nestedheaders/pkg/render"
)

// treeOpts holds the command-line flags for the tree command.
type treeOpts struct {
	output   string
	format   string
	detailed bool
	hide     []int
	collapse []string
	noCache  bool
}

// treeCommand creates the tree command, which draws the header forest.
func (c *CLI) treeCommand() *cobra.Command {
	var hideStr string
	var opts treeOpts

	cmd := &cobra.Command{
		Use:   "tree [file]",
		Short: "Draw the header forest as Graphviz DOT or SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format == "" {
				opts.format = render.FormatDOT
				if f, ok := formatFromOutput(opts.output); ok {
					opts.format = f
				}
			}
			if opts.format != render.FormatDOT && opts.format != render.FormatSVG {
				return fmt.Errorf("invalid format: %s (must be 'dot' or 'svg')", opts.format)
			}
			hide, err := parseColumns(hideStr)
			if err != nil {
				return err
			}
			opts.hide = hide
			return c.runTree(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: dot (default), svg")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label nodes with spans, hidden columns and metadata")
	cmd.Flags().StringVar(&hideStr, "hide", "", "leaf columns to hide (comma-separated)")
	cmd.Flags().StringSliceVar(&opts.collapse, "collapse", nil, "collapse the header at level:column (repeatable)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runTree(ctx context.Context, input string, opts treeOpts) error {
	logger := loggerFromContext(ctx)

	def, err := loadDefinition(input, opts.hide, opts.collapse)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	var spinner *Spinner
	if opts.format == render.FormatSVG && opts.output != "" {
		spinner = newSpinner(ctx, "Laying out header forest...")
		spinner.Start()
	}

	result, err := runner.Execute(ctx, pipeline.Options{
		Definition: def,
		Formats:    []string{opts.format},
		Detailed:   opts.detailed,
		Logger:     logger,
	})
	if spinner != nil {
		if err != nil {
			spinner.StopWithError("Rendering failed")
		} else {
			spinner.Stop()
		}
	}
	if err != nil {
		return err
	}

	if err := writeArtifact(opts.output, result.Artifacts[opts.format]); err != nil {
		return err
	}
	if opts.output != "" {
		printSuccess("Drew %d headers", result.Forest.Len())
		printFile(opts.output)
	}
	return nil
}
