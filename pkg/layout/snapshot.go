package layout

import (
	"github.com/matzehuels/roomgrid/pkg/grid"
)

// Snapshot is a read-only copy of a State for rendering.
type Snapshot struct {
	Grid       grid.Spec     `json:"grid"`
	Canvas     grid.Size     `json:"canvas"`
	Viewport   grid.Viewport `json:"viewport"`
	Snap       bool          `json:"snap"`
	Placements []Placement   `json:"placements"`
}

// Snapshot copies the current state.
func (s *State) Snapshot() Snapshot {
	ps := s.Placements()
	if ps == nil {
		ps = []Placement{}
	}
	return Snapshot{
		Grid:       s.grid,
		Canvas:     s.grid.Canvas(),
		Viewport:   s.viewport,
		Snap:       s.snap,
		Placements: ps,
	}
}

// Coverage computes the coverage report of the snapshot's placements.
func (sn Snapshot) Coverage() (grid.Report, error) {
	fps := make([]grid.Footprint, len(sn.Placements))
	for i, p := range sn.Placements {
		fps[i] = p.Footprint()
	}
	return grid.ComputeCoverage(sn.Grid, fps)
}

// OutOfBounds returns the placements that no longer fit the canvas, which
// happens after the viewport shrinks.
func (sn Snapshot) OutOfBounds() []Placement {
	var out []Placement
	for _, p := range sn.Placements {
		if !p.Rect().Within(sn.Canvas) {
			out = append(out, p)
		}
	}
	return out
}
