package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	layoutio "github.com/matzehuels/roomgrid/pkg/io"
	"github.com/matzehuels/roomgrid/pkg/layout"
)

// editOpts holds the flags of the edit command.
type editOpts struct {
	columns  int
	rows     int
	noSnap   bool
	snapshot string // write the final layout here on exit
	loader   loaderOpts
}

// editCommand runs the terminal layout editor.
func (c *CLI) editCommand() *cobra.Command {
	var opts editOpts

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Lay out items interactively in the terminal",
		Long: `Open the terminal layout editor. Each character is one grid cell.

Pick an item with tab, move the pointer with the arrow keys (HJKL for quarter
cells), and press enter to drop the item. Press c for the coverage report.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			lopts := cfg.LayoutOptions()
			if cmd.Flags().Changed("columns") {
				lopts.Columns = opts.columns
			}
			if cmd.Flags().Changed("rows") {
				lopts.Rows = opts.rows
			}
			if opts.noSnap {
				lopts.Snap = false
			}
			st, err := layout.New(lopts)
			if err != nil {
				return err
			}

			loader, ch, err := c.newLoader(ctx, cfg, opts.loader)
			if err != nil {
				return err
			}
			defer ch.Close()
			cat := loader.LoadOrEmpty(ctx)
			if cat.Len() == 0 {
				printWarning("No catalog items from %s", loader.Source)
			}

			final, err := tea.NewProgram(
				NewEditorModel(ctx, st, cat.Items()),
				tea.WithAltScreen(),
				tea.WithContext(ctx),
			).Run()
			if err != nil {
				return err
			}

			st = final.(EditorModel).State()
			printSuccess("Layout has %d placements", st.Len())
			if opts.snapshot != "" {
				if err := layoutio.ExportJSON(st.Snapshot(), opts.snapshot); err != nil {
					return err
				}
				printFile(opts.snapshot)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.columns, "columns", 0, "grid columns (default from [grid] columns)")
	cmd.Flags().IntVar(&opts.rows, "rows", 0, "grid rows (default from [grid] rows)")
	cmd.Flags().BoolVar(&opts.noSnap, "no-snap", false, "start with snapping disabled")
	cmd.Flags().StringVar(&opts.snapshot, "snapshot", "", "write the final layout snapshot to this file")
	opts.loader.bind(cmd)

	return cmd
}
