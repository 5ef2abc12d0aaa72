package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/roomgrid/internal/server"
	"github.com/matzehuels/roomgrid/pkg/session"
)

// serveCommand starts the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr string
		lo   loaderOpts
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve layout workspaces over HTTP",
		Long: `Serve the roomgrid JSON API. Each workspace holds one layout; workspaces
expire after [server] session_ttl of inactivity.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			loader, ch, err := c.newLoader(ctx, cfg, lo)
			if err != nil {
				return err
			}
			defer ch.Close()

			srv := server.New(server.Options{
				Addr:     cfg.Server.Addr,
				Defaults: cfg.LayoutOptions(),
				Store:    session.NewMemoryStore(cfg.Server.SessionTTL.Duration),
				Loader:   loader,
				Logger:   loggerFromContext(ctx),
			})
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from [server] addr)")
	lo.bind(cmd)

	return cmd
}
