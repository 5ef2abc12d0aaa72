package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/roomgrid/pkg/errors"
	"github.com/matzehuels/roomgrid/pkg/grid"
)

// mapOpts holds the flags of the map command.
type mapOpts struct {
	x, y       float64 // pointer position in the viewport
	offX, offY float64 // canvas origin in the viewport
	item       string  // item size in cells, "WxH"
	noSnap     bool
	columns    int
	rows       int
	width      float64 // viewport width
	height     float64 // viewport height
}

// mapCommand runs the coordinate mapper once and prints the item origin.
func (c *CLI) mapCommand() *cobra.Command {
	var opts mapOpts

	cmd := &cobra.Command{
		Use:   "map",
		Short: "Map a pointer position to an item origin on the canvas",
		Long: `Map a pointer position to the origin an item would get when dropped there.
The grid and viewport default to the configured values.`,
		Example: `  roomgrid map --x 137 --y 88 --offset-x 100 --offset-y 50 --item 2x2`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("columns") {
				opts.columns = cfg.Grid.Columns
			}
			if !cmd.Flags().Changed("rows") {
				opts.rows = cfg.Grid.Rows
			}
			if !cmd.Flags().Changed("width") {
				opts.width = cfg.Viewport.Width
			}
			if !cmd.Flags().Changed("height") {
				opts.height = cfg.Viewport.Height
			}
			budget := grid.Budget{WidthFactor: cfg.Viewport.WidthFactor, HeightFactor: cfg.Viewport.HeightFactor}
			snap := cfg.Grid.Snap && !opts.noSnap
			return runMap(opts, budget, snap)
		},
	}

	cmd.Flags().Float64Var(&opts.x, "x", 0, "pointer x in the viewport")
	cmd.Flags().Float64Var(&opts.y, "y", 0, "pointer y in the viewport")
	cmd.Flags().Float64Var(&opts.offX, "offset-x", 0, "canvas left edge in the viewport")
	cmd.Flags().Float64Var(&opts.offY, "offset-y", 0, "canvas top edge in the viewport")
	cmd.Flags().StringVar(&opts.item, "item", "1x1", "item size in cells (WxH)")
	cmd.Flags().BoolVar(&opts.noSnap, "no-snap", false, "do not snap to grid cells")
	cmd.Flags().IntVar(&opts.columns, "columns", 0, "grid columns")
	cmd.Flags().IntVar(&opts.rows, "rows", 0, "grid rows")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "viewport width in pixels")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "viewport height in pixels")

	return cmd
}

func runMap(opts mapOpts, budget grid.Budget, snap bool) error {
	cells, err := parseCells(opts.item)
	if err != nil {
		return err
	}
	spec, err := grid.Recalculate(grid.Viewport{WidthPx: opts.width, HeightPx: opts.height}, budget, opts.columns, opts.rows)
	if err != nil {
		return err
	}

	origin, err := grid.MapPointer(grid.MapInput{
		Client:   grid.Point{X: opts.x, Y: opts.y},
		Offset:   grid.Point{X: opts.offX, Y: opts.offY},
		Item:     spec.ItemSize(cells),
		CellSize: spec.CellSizePx,
		Snap:     snap,
		Canvas:   spec.Canvas(),
	})
	if err != nil {
		return err
	}

	printKeyValue("Origin", origin.String())
	printKeyValue("Cell", grid.CellAt(origin, spec.CellSizePx).String())
	printKeyValue("Cell size", fmt.Sprintf("%gpx", spec.CellSizePx))
	printKeyValue("Canvas", spec.Canvas().String())
	printKeyValue("Snap", strconv.FormatBool(snap))
	return nil
}

// parseCells parses an item size such as "2x3".
func parseCells(s string) (grid.Cells, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return grid.Cells{}, errors.New(errors.ErrCodeInvalidInput, "item size %q is not WxH", s)
	}
	cw, errW := strconv.Atoi(w)
	ch, errH := strconv.Atoi(h)
	if errW != nil || errH != nil || cw <= 0 || ch <= 0 {
		return grid.Cells{}, errors.New(errors.ErrCodeInvalidInput, "item size %q must be two positive integers", s)
	}
	return grid.Cells{W: cw, H: ch}, nil
}
