package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// catalogCommand lists the items of the configured catalog.
func (c *CLI) catalogCommand() *cobra.Command {
	var (
		lo      loaderOpts
		refresh bool
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the items of the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			loader, ch, err := c.newLoader(ctx, cfg, lo)
			if err != nil {
				return err
			}
			defer ch.Close()

			prog := newProgress(loggerFromContext(ctx))
			load := loader.Load
			if refresh {
				load = loader.Reload
			}
			cat, err := load(ctx)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Loaded %d items from %s", cat.Len(), loader.Source))

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), cat.Items())
			}
			if cat.Len() == 0 {
				printInfo("Catalog is empty")
				return nil
			}
			printTable(cmd.OutOrStdout(), catalogTable(cat.Items()))
			return nil
		},
	}

	lo.bind(cmd)
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the catalog cache")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print items as JSON")
	return cmd
}
