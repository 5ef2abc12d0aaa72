package grid

import (
	"math"

	"github.com/matzehuels/roomgrid/pkg/errors"
)

// Default grid dimensions and viewport budget.
const (
	DefaultColumns = 60
	DefaultRows    = 40

	// DefaultWidthFactor is the share of the viewport width given to the canvas.
	DefaultWidthFactor = 0.7
	// DefaultHeightFactor is the share of the viewport height given to the canvas.
	DefaultHeightFactor = 0.8

	// MinCellSizePx is the smallest cell Recalculate accepts.
	MinCellSizePx = 1.0
)

// Spec describes a grid: its dimensions and the derived pixel size of one
// square cell.
type Spec struct {
	Columns    int     `json:"columns"`
	Rows       int     `json:"rows"`
	CellSizePx float64 `json:"cell_size_px"`
}

// Validate checks that s describes a usable grid.
func (s Spec) Validate() error {
	if err := errors.ValidateGridDimensions(s.Columns, s.Rows); err != nil {
		return err
	}
	return errors.ValidatePositive("cell size", s.CellSizePx)
}

// Canvas returns the pixel size of the whole grid.
func (s Spec) Canvas() Size {
	return Size{W: s.CellSizePx * float64(s.Columns), H: s.CellSizePx * float64(s.Rows)}
}

// TotalCells returns columns*rows.
func (s Spec) TotalCells() int { return s.Columns * s.Rows }

// ItemSize converts an item's cell extent into pixels on this grid.
func (s Spec) ItemSize(c Cells) Size { return c.Px(s.CellSizePx) }

// Viewport is the pixel area available to the rendering layer.
type Viewport struct {
	WidthPx  float64 `json:"width"`
	HeightPx float64 `json:"height"`
}

// Budget is the fraction of the viewport the canvas may occupy.
type Budget struct {
	WidthFactor  float64 `json:"width_factor"`
	HeightFactor float64 `json:"height_factor"`
}

// DefaultBudget returns the 70% by 80% viewport budget.
func DefaultBudget() Budget {
	return Budget{WidthFactor: DefaultWidthFactor, HeightFactor: DefaultHeightFactor}
}

// Recalculate derives the cell size for a columns by rows grid shown in vp.
// The cell is the largest square that fits both the width and the height
// budget, so the canvas is exactly CellSizePx*columns by CellSizePx*rows.
// A cell smaller than [MinCellSizePx] fails with INVARIANT_VIOLATION.
func Recalculate(vp Viewport, b Budget, columns, rows int) (Spec, error) {
	if err := errors.ValidateGridDimensions(columns, rows); err != nil {
		return Spec{}, err
	}
	if err := errors.ValidatePositive("viewport", vp.WidthPx, vp.HeightPx); err != nil {
		return Spec{}, err
	}
	if err := errors.ValidatePositive("viewport budget", b.WidthFactor, b.HeightFactor); err != nil {
		return Spec{}, err
	}

	cellW := vp.WidthPx * b.WidthFactor / float64(columns)
	cellH := vp.HeightPx * b.HeightFactor / float64(rows)
	cell := math.Min(cellW, cellH)
	if cell < MinCellSizePx {
		return Spec{}, errors.Invariant("viewport %gx%g gives %g px cells for a %dx%d grid, minimum is %g px",
			vp.WidthPx, vp.HeightPx, cell, columns, rows, MinCellSizePx)
	}

	return Spec{
		Columns:    columns,
		Rows:       rows,
		CellSizePx: cell,
	}, nil
}
