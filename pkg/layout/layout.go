// Package layout holds the state of one layout editing session: the grid,
// the viewport it is drawn in, the snap setting, and the live placements.
//
// A [State] is the single owner of its placements. Rendering front-ends (the
// HTTP API, the terminal editor) translate user gestures into calls on it and
// redraw from [State.Snapshot]. All geometry is delegated to package grid.
//
// A State is not safe for concurrent use; callers serialize access.
package layout

import (
	"slices"

	"github.com/google/uuid"

	"github.com/matzehuels/roomgrid/pkg/catalog"
	"github.com/matzehuels/roomgrid/pkg/errors"
	"github.com/matzehuels/roomgrid/pkg/grid"
)

// DefaultViewport is used when a front-end does not report its size.
var DefaultViewport = grid.Viewport{WidthPx: 1280, HeightPx: 800}

// Placement is an item instance positioned on the canvas.
type Placement struct {
	ID     uuid.UUID    `json:"id"`
	Item   catalog.Item `json:"item"`
	Origin grid.Point   `json:"origin"`
	// Size is fixed when the item is dropped: SizeCells times the cell size
	// at that moment.
	Size grid.Size `json:"size"`
}

// Rect returns the pixel rectangle of p.
func (p Placement) Rect() grid.Rect {
	return grid.Rect{Origin: p.Origin, Size: p.Size}
}

// Footprint converts p for the coverage calculator.
func (p Placement) Footprint() grid.Footprint {
	return grid.Footprint{Name: p.Item.Name, Origin: p.Origin, Size: p.Size}
}

// Options configures a new State.
type Options struct {
	Columns  int
	Rows     int
	Viewport grid.Viewport
	Budget   grid.Budget
	Snap     bool
}

// DefaultOptions returns a 60x40 grid with snapping enabled.
func DefaultOptions() Options {
	return Options{
		Columns:  grid.DefaultColumns,
		Rows:     grid.DefaultRows,
		Viewport: DefaultViewport,
		Budget:   grid.DefaultBudget(),
		Snap:     true,
	}
}

// State is one layout editing session.
type State struct {
	grid       grid.Spec
	viewport   grid.Viewport
	budget     grid.Budget
	snap       bool
	placements []Placement
}

// New creates a State and computes the initial cell size.
func New(opts Options) (*State, error) {
	spec, err := grid.Recalculate(opts.Viewport, opts.Budget, opts.Columns, opts.Rows)
	if err != nil {
		return nil, err
	}
	return &State{
		grid:     spec,
		viewport: opts.Viewport,
		budget:   opts.Budget,
		snap:     opts.Snap,
	}, nil
}

// Grid returns the current grid spec.
func (s *State) Grid() grid.Spec { return s.grid }

// Canvas returns the current canvas pixel size.
func (s *State) Canvas() grid.Size { return s.grid.Canvas() }

// Viewport returns the last reported viewport.
func (s *State) Viewport() grid.Viewport { return s.viewport }

// Snap reports whether snapping is enabled.
func (s *State) Snap() bool { return s.snap }

// Placements returns a copy of the live placements in drop order.
func (s *State) Placements() []Placement { return slices.Clone(s.placements) }

// Len returns the number of live placements.
func (s *State) Len() int { return len(s.placements) }

// SetGrid replaces the grid dimensions, recomputes the cell size and clears
// every placement. Non-positive dimensions fail with CONFIGURATION_ERROR and
// leave the state unchanged.
func (s *State) SetGrid(columns, rows int) error {
	spec, err := grid.Recalculate(s.viewport, s.budget, columns, rows)
	if err != nil {
		return err
	}
	s.grid = spec
	s.placements = nil
	return nil
}

// Resize records a new viewport size and recomputes the cell size.
//
// Existing placements keep their pixel origin and size; they are neither
// rescaled nor re-clamped, so after a shrink they may extend past the canvas.
func (s *State) Resize(vp grid.Viewport) error {
	spec, err := grid.Recalculate(vp, s.budget, s.grid.Columns, s.grid.Rows)
	if err != nil {
		return err
	}
	s.grid = spec
	s.viewport = vp
	return nil
}

// SetSnap turns grid snapping on or off.
func (s *State) SetSnap(enabled bool) { s.snap = enabled }

// ToggleSnap flips grid snapping and returns the new setting.
func (s *State) ToggleSnap() bool {
	s.snap = !s.snap
	return s.snap
}

// Pointer is a pointer event: its viewport position and the canvas origin in
// the same coordinate system.
type Pointer struct {
	Client grid.Point `json:"client"`
	Offset grid.Point `json:"offset"`
}

// mapInput builds the mapper input for an item of the given pixel size.
func (s *State) mapInput(size grid.Size, ptr Pointer) grid.MapInput {
	return grid.MapInput{
		Client:   ptr.Client,
		Offset:   ptr.Offset,
		Item:     size,
		CellSize: s.grid.CellSizePx,
		Snap:     s.snap,
		Canvas:   s.grid.Canvas(),
	}
}

// Drop places a new instance of item at the mapped pointer position and
// returns it.
func (s *State) Drop(item catalog.Item, ptr Pointer) (Placement, error) {
	if item.SizeCells.W <= 0 || item.SizeCells.H <= 0 {
		return Placement{}, errors.Invariant("item %q has non-positive size %s", item.Name, item.SizeCells)
	}
	size := s.grid.ItemSize(item.SizeCells)
	origin, err := grid.MapPointer(s.mapInput(size, ptr))
	if err != nil {
		return Placement{}, err
	}

	p := Placement{ID: uuid.New(), Item: item, Origin: origin, Size: size}
	s.placements = append(s.placements, p)
	return p, nil
}

// Move repositions a placement to the mapped pointer position. Each axis is
// updated only if the placement stays within the canvas along it; otherwise
// that coordinate keeps its previous value.
func (s *State) Move(id uuid.UUID, ptr Pointer) (Placement, error) {
	i, err := s.index(id)
	if err != nil {
		return Placement{}, err
	}
	p := &s.placements[i]

	origin, err := grid.MapPointer(s.mapInput(p.Size, ptr))
	if err != nil {
		return Placement{}, err
	}

	canvas := s.grid.Canvas()
	if grid.Fits(origin.X, p.Size.W, canvas.W) {
		p.Origin.X = origin.X
	}
	if grid.Fits(origin.Y, p.Size.H, canvas.H) {
		p.Origin.Y = origin.Y
	}
	return *p, nil
}

// Remove deletes a placement and returns it.
func (s *State) Remove(id uuid.UUID) (Placement, error) {
	i, err := s.index(id)
	if err != nil {
		return Placement{}, err
	}
	p := s.placements[i]
	s.placements = slices.Delete(s.placements, i, i+1)
	return p, nil
}

// Get returns a placement by ID.
func (s *State) Get(id uuid.UUID) (Placement, error) {
	i, err := s.index(id)
	if err != nil {
		return Placement{}, err
	}
	return s.placements[i], nil
}

// Clear removes every placement.
func (s *State) Clear() { s.placements = nil }

// Coverage computes the coverage report for the live placements.
func (s *State) Coverage() (grid.Report, error) {
	fps := make([]grid.Footprint, len(s.placements))
	for i, p := range s.placements {
		fps[i] = p.Footprint()
	}
	return grid.ComputeCoverage(s.grid, fps)
}

func (s *State) index(id uuid.UUID) (int, error) {
	i := slices.IndexFunc(s.placements, func(p Placement) bool { return p.ID == id })
	if i < 0 {
		return -1, errors.New(errors.ErrCodePlacementNotFound, "no placement with id %s", id)
	}
	return i, nil
}
