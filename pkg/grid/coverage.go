package grid

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"github.com/matzehuels/roomgrid/pkg/errors"
)

// Cell identifies one grid cell by column (X) and row (Y).
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (c Cell) String() string { return fmt.Sprintf("(%d,%d)", c.X, c.Y) }

// CellSet is a set of cells.
type CellSet map[Cell]struct{}

// Add inserts c.
func (s CellSet) Add(c Cell) { s[c] = struct{}{} }

// Has reports whether c is in the set.
func (s CellSet) Has(c Cell) bool {
	_, ok := s[c]
	return ok
}

// Len returns the number of distinct cells.
func (s CellSet) Len() int { return len(s) }

// Sorted returns the cells in row-major order.
func (s CellSet) Sorted() []Cell {
	return slices.SortedFunc(maps.Keys(s), func(a, b Cell) int {
		if c := cmp.Compare(a.Y, b.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.X, b.X)
	})
}

// Footprint is the part of a placement the coverage calculator needs.
type Footprint struct {
	Name   string `json:"name"`
	Origin Point  `json:"origin"`
	Size   Size   `json:"size"`
}

// Span returns the half-open cell range [start, end) that f touches.
func (f Footprint) Span(cellSize float64) (start, end Cell) {
	start = Cell{X: cellFloor(f.Origin.X, cellSize), Y: cellFloor(f.Origin.Y, cellSize)}
	end = Cell{
		X: cellCeil(f.Origin.X+f.Size.W, cellSize),
		Y: cellCeil(f.Origin.Y+f.Size.H, cellSize),
	}
	return start, end
}

// maxSpanFactor bounds the cells a single footprint may touch, as a multiple
// of the grid's total cells.
const maxSpanFactor = 64

// checkSpan rejects footprints whose cell span cannot be enumerated on spec:
// edges beyond the int-convertible cell range, or spans far larger than the
// grid, as left behind by a drastic viewport shrink.
func checkSpan(f Footprint, spec Spec) error {
	cell := spec.CellSizePx
	for _, v := range []float64{f.Origin.X, f.Origin.Y, f.Origin.X + f.Size.W, f.Origin.Y + f.Size.H} {
		if !inCellRange(v, cell) {
			return errors.Invariant("placement %q edge %g px is out of range for %g px cells", f.Name, v, cell)
		}
	}
	start, end := f.Span(cell)
	w, h := max(end.X-start.X, 0), max(end.Y-start.Y, 0)
	limit := MaxSpanCells(spec)
	if n := int64(w) * int64(h); n > limit {
		return errors.Invariant("placement %q spans %d cells, limit is %d for a %dx%d grid",
			f.Name, n, limit, spec.Columns, spec.Rows)
	}
	return nil
}

// MaxSpanCells returns the most cells one footprint may touch on spec.
func MaxSpanCells(spec Spec) int64 {
	return int64(maxSpanFactor) * int64(spec.TotalCells())
}

// Report is the result of a coverage computation.
type Report struct {
	TotalCells    int            `json:"total_cells"`
	CoveredCells  int            `json:"covered_cells"`
	PerItemCounts map[string]int `json:"per_item_counts"`

	// Occupied holds the distinct covered cells.
	Occupied CellSet `json:"-"`
}

// Row is one line of the tabular coverage view.
type Row struct {
	Label string `json:"label"`
	Value int    `json:"value"`
	Item  bool   `json:"item"`
}

// Labels used for the summary rows of a report.
const (
	LabelTotal   = "Total Grid Spaces"
	LabelCovered = "Grid Spaces Covered"
)

// Rows returns the report as a table: total cells, covered cells, then one
// row per item name in lexical order.
func (r Report) Rows() []Row {
	rows := []Row{
		{Label: LabelTotal, Value: r.TotalCells},
		{Label: LabelCovered, Value: r.CoveredCells},
	}
	for _, name := range slices.Sorted(maps.Keys(r.PerItemCounts)) {
		rows = append(rows, Row{Label: name, Value: r.PerItemCounts[name], Item: true})
	}
	return rows
}

// Placements returns the total number of placements counted.
func (r Report) Placements() int {
	n := 0
	for _, c := range r.PerItemCounts {
		n += c
	}
	return n
}

// ComputeCoverage returns the occupancy statistics of placements on spec.
// It does not modify its arguments. A footprint whose span cannot be
// enumerated on spec fails with INVARIANT_VIOLATION; see [MaxSpanCells].
func ComputeCoverage(spec Spec, placements []Footprint) (Report, error) {
	if err := spec.Validate(); err != nil {
		return Report{}, err
	}

	occupied := make(CellSet)
	counts := make(map[string]int)

	for _, p := range placements {
		if err := errors.ValidateFinite("placement origin", p.Origin.X, p.Origin.Y); err != nil {
			return Report{}, err
		}
		if err := errors.ValidateNonNegative("placement size", p.Size.W, p.Size.H); err != nil {
			return Report{}, err
		}

		if err := checkSpan(p, spec); err != nil {
			return Report{}, err
		}

		counts[p.Name]++

		start, end := p.Span(spec.CellSizePx)
		for x := start.X; x < end.X; x++ {
			for y := start.Y; y < end.Y; y++ {
				occupied.Add(Cell{X: x, Y: y})
			}
		}
	}

	return Report{
		TotalCells:    spec.TotalCells(),
		CoveredCells:  occupied.Len(),
		PerItemCounts: counts,
		Occupied:      occupied,
	}, nil
}
