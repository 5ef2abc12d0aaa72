package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/roomgrid/pkg/grid"
)

// coverageCommand prints the coverage report of a saved snapshot.
func (c *CLI) coverageCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "coverage [snapshot.json|-]",
		Short: "Report how many grid cells a layout covers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sn, err := readSnapshot(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			report, err := sn.Coverage()
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), struct {
					grid.Report
					Rows []grid.Row `json:"rows"`
				}{report, report.Rows()})
			}

			printTable(cmd.OutOrStdout(), coverageTable(report))
			if out := sn.OutOfBounds(); len(out) > 0 {
				printWarning("%d placement(s) extend past the canvas after a resize", len(out))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}
