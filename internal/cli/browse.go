package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/nestedheaders/pkg/state"
)

// browseCommand creates the browse command, an interactive view of the
// header matrix in which columns can be hidden and headers collapsed.
func (c *CLI) browseCommand() *cobra.Command {
	var hideStr string
	var collapse []string
	var readOnly bool

	cmd := &cobra.Command{
		Use:   "browse [file]",
		Short: "Interactively hide columns and collapse headers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hide, err := parseColumns(hideStr)
			if err != nil {
				return err
			}
			path := args[0]
			if readOnly {
				path = ""
			}
			return c.runBrowse(cmd.Context(), args[0], path, hide, collapse)
		},
	}

	cmd.Flags().StringVar(&hideStr, "hide", "", "leaf columns to hide initially (comma-separated)")
	cmd.Flags().StringSliceVar(&collapse, "collapse", nil, "collapse the header at level:column initially (repeatable)")
	cmd.Flags().BoolVar(&readOnly, "read-only", false, "disable saving the state back to the file")

	return cmd
}

func (c *CLI) runBrowse(ctx context.Context, input, savePath string, hide []int, collapse []string) error {
	logger := loggerFromContext(ctx)

	def, err := loadDefinition(input, hide, collapse)
	if err != nil {
		return err
	}
	s, err := state.New(def)
	if err != nil {
		return err
	}
	logger.Debug("loaded definition", "levels", s.Levels(), "columns", s.Columns())

	final, err := tea.NewProgram(NewBrowseModel(s, savePath), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(BrowseModel); ok && m.Saved {
		printSuccess("Saved state to %s", m.Path)
	}
	printKeyValue("Hidden", formatColumns(s.Hidden()))
	printKeyValue("Collapsed", formatPositions(s.Collapsed()))
	return nil
}
