package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/nestedheaders/internal/server"
	"github.com/matzehuels/nestedheaders/pkg/observability"
)

// serveCommand creates the serve command, which runs the HTTP API until
// interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config.Server
			if addr != "" {
				cfg.Addr = addr
			}

			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			metrics := observability.NewMetrics()
			metrics.Register()

			srv := server.New(cfg, runner, metrics, loggerFromContext(cmd.Context()))
			printInfo("Serving on %s", StyleHighlight.Render(cfg.Addr))
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
