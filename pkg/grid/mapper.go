package grid

import (
	"math"

	"github.com/matzehuels/roomgrid/pkg/errors"
)

// MapInput carries everything needed to turn a pointer position into a
// placement origin.
type MapInput struct {
	// Client is the pointer position in viewport coordinates.
	Client Point `json:"client"`
	// Offset is the canvas origin in viewport coordinates.
	Offset Point `json:"offset"`
	// Item is the pixel size of the item being placed.
	Item Size `json:"item"`
	// CellSize is the current pixel size of one cell.
	CellSize float64 `json:"cell_size"`
	// Snap quantizes the origin down to the nearest cell boundary.
	Snap bool `json:"snap"`
	// Canvas is the pixel size of the grid canvas.
	Canvas Size `json:"canvas"`
}

// Validate fails fast on out-of-domain geometry.
func (in MapInput) Validate() error {
	if err := errors.ValidateFinite("pointer", in.Client.X, in.Client.Y); err != nil {
		return err
	}
	if err := errors.ValidateFinite("canvas offset", in.Offset.X, in.Offset.Y); err != nil {
		return err
	}
	if err := errors.ValidatePositive("cell size", in.CellSize); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("item size", in.Item.W, in.Item.H); err != nil {
		return err
	}
	return errors.ValidateNonNegative("canvas size", in.Canvas.W, in.Canvas.H)
}

// MapPointer converts a pointer position into the origin of an item on the
// canvas. The result satisfies 0 <= x <= Canvas.W-Item.W (and likewise for y),
// or is 0 in any dimension where the item is larger than the canvas.
//
// MapPointer is stateless: the same input always yields the same origin.
func MapPointer(in MapInput) (Point, error) {
	if err := in.Validate(); err != nil {
		return Point{}, err
	}

	p := in.Client.Sub(in.Offset)
	if in.Snap {
		p = Point{X: Snap(p.X, in.CellSize), Y: Snap(p.Y, in.CellSize)}
	}

	return Point{
		X: clamp(p.X, 0, in.Canvas.W-in.Item.W),
		Y: clamp(p.Y, 0, in.Canvas.H-in.Item.H),
	}, nil
}

// Snap rounds v down to the nearest multiple of cellSize. Values within 1e-9
// of a cell below a boundary are returned on that boundary, so Snap is
// idempotent under float rounding. cellSize must be positive.
func Snap(v, cellSize float64) float64 {
	return math.Floor(v/cellSize+tolerance) * cellSize
}

// CellAt returns the cell containing the canvas-local pixel position p.
func CellAt(p Point, cellSize float64) Cell {
	return Cell{X: cellFloor(p.X, cellSize), Y: cellFloor(p.Y, cellSize)}
}

// CellOrigin returns the canvas-local pixel origin of c.
func CellOrigin(c Cell, cellSize float64) Point {
	return Point{X: float64(c.X) * cellSize, Y: float64(c.Y) * cellSize}
}

// isSnapped reports whether v lies on a cell boundary.
func isSnapped(v, cellSize float64) bool {
	return math.Abs(Snap(v, cellSize)-v) <= tolerance*cellSize
}

// IsAligned reports whether p lies on a cell corner.
func IsAligned(p Point, cellSize float64) bool {
	return isSnapped(p.X, cellSize) && isSnapped(p.Y, cellSize)
}
