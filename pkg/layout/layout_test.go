package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/matzehuels/roomgrid/pkg/catalog"
	"github.com/matzehuels/roomgrid/pkg/errors"
	"github.com/matzehuels/roomgrid/pkg/grid"
)

var (
	table = catalog.Item{Name: "Table", ImageRef: "img/table.png", SizeCells: grid.Cells{W: 2, H: 2}}
	sofa  = catalog.Item{Name: "Sofa", ImageRef: "img/sofa.png", SizeCells: grid.Cells{W: 3, H: 2}}
	piano = catalog.Item{Name: "Piano", ImageRef: "img/piano.png", SizeCells: grid.Cells{W: 70, H: 2}}
)

// newTestState returns a 60x40 grid with 10px cells and a 600x400 canvas.
func newTestState(t *testing.T) *State {
	t.Helper()
	opts := DefaultOptions()
	opts.Viewport = grid.Viewport{WidthPx: 1200, HeightPx: 500}
	s, err := New(opts)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if s.Grid().CellSizePx != 10 {
		t.Fatalf("cell size = %v, want 10", s.Grid().CellSizePx)
	}
	return s
}

func at(x, y float64) Pointer {
	return Pointer{Client: grid.Point{X: x, Y: y}}
}

func TestNewDefaults(t *testing.T) {
	s, err := New(DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if g := s.Grid(); g.Columns != 60 || g.Rows != 40 {
		t.Errorf("grid = %dx%d, want 60x40", g.Columns, g.Rows)
	}
	if !s.Snap() {
		t.Error("snap should default to enabled")
	}
	if s.Len() != 0 {
		t.Errorf("new state has %d placements", s.Len())
	}
}

func TestNewRejectsBadGrid(t *testing.T) {
	opts := DefaultOptions()
	opts.Columns = 0
	if _, err := New(opts); !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Errorf("New() error = %v, want CONFIGURATION_ERROR", err)
	}
}

func TestDropAndCoverage(t *testing.T) {
	s := newTestState(t)

	p, err := s.Drop(table, at(3, 7))
	if err != nil {
		t.Fatalf("Drop() error: %v", err)
	}
	if p.Origin != (grid.Point{}) {
		t.Errorf("origin = %v, want (0, 0)", p.Origin)
	}
	if p.Size != (grid.Size{W: 20, H: 20}) {
		t.Errorf("size = %v, want 20x20", p.Size)
	}
	if p.ID == uuid.Nil {
		t.Error("placement should get an ID")
	}

	report, err := s.Coverage()
	if err != nil {
		t.Fatal(err)
	}
	want := []grid.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}
	if diff := cmp.Diff(want, report.Occupied.Sorted()); diff != "" {
		t.Errorf("occupied mismatch (-want +got):\n%s", diff)
	}
	if report.TotalCells != 2400 || report.CoveredCells != 4 {
		t.Errorf("report = %d/%d, want 4/2400", report.CoveredCells, report.TotalCells)
	}
}

func TestDropWithCanvasOffset(t *testing.T) {
	s := newTestState(t)
	p, err := s.Drop(sofa, Pointer{Client: grid.Point{X: 237, Y: 118}, Offset: grid.Point{X: 100, Y: 50}})
	if err != nil {
		t.Fatal(err)
	}
	if p.Origin != (grid.Point{X: 130, Y: 60}) {
		t.Errorf("origin = %v, want (130, 60)", p.Origin)
	}
}

func TestDropOversizedItem(t *testing.T) {
	s := newTestState(t)
	p, err := s.Drop(piano, at(450, 120))
	if err != nil {
		t.Fatal(err)
	}
	if p.Origin.X != 0 {
		t.Errorf("oversized item x = %v, want 0", p.Origin.X)
	}
	if p.Origin.Y != 120 {
		t.Errorf("oversized item y = %v, want 120", p.Origin.Y)
	}
}

func TestDropUnsnapped(t *testing.T) {
	s := newTestState(t)
	s.SetSnap(false)
	p, err := s.Drop(table, at(33.5, 41.25))
	if err != nil {
		t.Fatal(err)
	}
	if p.Origin != (grid.Point{X: 33.5, Y: 41.25}) {
		t.Errorf("origin = %v, want (33.5, 41.25)", p.Origin)
	}

	report, err := s.Coverage()
	if err != nil {
		t.Fatal(err)
	}
	// x spans [33.5, 53.5) -> cells 3..5, y spans [41.25, 61.25) -> cells 4..6
	if report.CoveredCells != 9 {
		t.Errorf("CoveredCells = %d, want 9", report.CoveredCells)
	}
}

func TestSnapToggleIsStateless(t *testing.T) {
	s := newTestState(t)
	first, err := s.Drop(table, at(257.3, 119.8))
	if err != nil {
		t.Fatal(err)
	}

	if s.ToggleSnap() {
		t.Fatal("ToggleSnap should disable snapping")
	}
	if !s.ToggleSnap() {
		t.Fatal("ToggleSnap should re-enable snapping")
	}

	second, err := s.Drop(table, at(257.3, 119.8))
	if err != nil {
		t.Fatal(err)
	}
	if first.Origin != second.Origin {
		t.Errorf("origins differ after toggling snap: %v vs %v", first.Origin, second.Origin)
	}
}

func TestMove(t *testing.T) {
	s := newTestState(t)
	p, err := s.Drop(sofa, at(0, 0))
	if err != nil {
		t.Fatal(err)
	}

	moved, err := s.Move(p.ID, at(125, 77))
	if err != nil {
		t.Fatalf("Move() error: %v", err)
	}
	if moved.Origin != (grid.Point{X: 120, Y: 70}) {
		t.Errorf("moved origin = %v, want (120, 70)", moved.Origin)
	}

	moved, err = s.Move(p.ID, at(9999, 9999))
	if err != nil {
		t.Fatal(err)
	}
	if moved.Origin != (grid.Point{X: 570, Y: 380}) {
		t.Errorf("clamped origin = %v, want (570, 380)", moved.Origin)
	}

	got, _ := s.Get(p.ID)
	if got.Origin != moved.Origin {
		t.Error("Move should update the stored placement")
	}

	if _, err := s.Move(uuid.New(), at(0, 0)); !errors.Is(err, errors.ErrCodePlacementNotFound) {
		t.Errorf("Move(unknown) error = %v, want PLACEMENT_NOT_FOUND", err)
	}
}

func TestRemove(t *testing.T) {
	s := newTestState(t)
	a, _ := s.Drop(table, at(0, 0))
	b, _ := s.Drop(sofa, at(100, 100))

	removed, err := s.Remove(a.ID)
	if err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	if removed.ID != a.ID {
		t.Errorf("Remove returned %s, want %s", removed.ID, a.ID)
	}
	if s.Len() != 1 || s.Placements()[0].ID != b.ID {
		t.Errorf("remaining placements = %+v", s.Placements())
	}
	if _, err := s.Remove(a.ID); !errors.Is(err, errors.ErrCodePlacementNotFound) {
		t.Errorf("second Remove() error = %v, want PLACEMENT_NOT_FOUND", err)
	}

	report, _ := s.Coverage()
	if diff := cmp.Diff(map[string]int{"Sofa": 1}, report.PerItemCounts); diff != "" {
		t.Errorf("PerItemCounts mismatch (-want +got):\n%s", diff)
	}
}

func TestSetGridClearsPlacements(t *testing.T) {
	s := newTestState(t)
	for i := range 3 {
		if _, err := s.Drop(table, at(float64(i*50), 0)); err != nil {
			t.Fatal(err)
		}
	}

	if err := s.SetGrid(30, 20); err != nil {
		t.Fatalf("SetGrid() error: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("SetGrid should clear placements, %d left", s.Len())
	}
	if g := s.Grid(); g.Columns != 30 || g.Rows != 20 || g.CellSizePx != 20 {
		t.Errorf("grid = %+v, want 30x20 with 20px cells", g)
	}

	report, err := s.Coverage()
	if err != nil {
		t.Fatal(err)
	}
	if report.CoveredCells != 0 || report.TotalCells != 600 {
		t.Errorf("report after SetGrid = %d/%d, want 0/600", report.CoveredCells, report.TotalCells)
	}
}

func TestSetGridRejectsNonPositive(t *testing.T) {
	s := newTestState(t)
	if _, err := s.Drop(table, at(0, 0)); err != nil {
		t.Fatal(err)
	}

	for _, dims := range [][2]int{{0, 10}, {10, 0}, {-5, 5}} {
		if err := s.SetGrid(dims[0], dims[1]); !errors.Is(err, errors.ErrCodeConfiguration) {
			t.Errorf("SetGrid(%d, %d) error = %v, want CONFIGURATION_ERROR", dims[0], dims[1], err)
		}
	}
	if s.Len() != 1 || s.Grid().Columns != 60 {
		t.Error("rejected SetGrid must leave the state unchanged")
	}
}

func TestResizeKeepsPlacements(t *testing.T) {
	s := newTestState(t)
	p, err := s.Drop(sofa, at(9999, 9999))
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Resize(grid.Viewport{WidthPx: 600, HeightPx: 250}); err != nil {
		t.Fatalf("Resize() error: %v", err)
	}
	if s.Grid().CellSizePx != 5 {
		t.Errorf("cell size after resize = %v, want 5", s.Grid().CellSizePx)
	}

	got, _ := s.Get(p.ID)
	if got.Origin != p.Origin || got.Size != p.Size {
		t.Errorf("placement changed on resize: %+v -> %+v", p, got)
	}

	snap := s.Snapshot()
	if oob := snap.OutOfBounds(); len(oob) != 1 || oob[0].ID != p.ID {
		t.Errorf("OutOfBounds() = %+v, want the sofa", oob)
	}
}

func TestResizeRejectsSubPixelCells(t *testing.T) {
	s := newTestState(t)
	if _, err := s.Drop(table, at(30, 30)); err != nil {
		t.Fatal(err)
	}

	err := s.Resize(grid.Viewport{WidthPx: 0.01, HeightPx: 0.01})
	if !errors.Is(err, errors.ErrCodeInvariant) {
		t.Fatalf("Resize() error = %v, want %s", err, errors.ErrCodeInvariant)
	}
	if s.Grid().CellSizePx != 10 {
		t.Errorf("cell size = %v after rejected resize, want 10", s.Grid().CellSizePx)
	}
	if _, err := s.Coverage(); err != nil {
		t.Errorf("Coverage() error after rejected resize: %v", err)
	}
}

func TestCoverageAfterDrasticShrinkFails(t *testing.T) {
	opts := DefaultOptions()
	opts.Viewport = grid.Viewport{WidthPx: 1e6, HeightPx: 1e6}
	s, err := New(opts)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Drop(table, at(0, 0)); err != nil {
		t.Fatal(err)
	}

	// 1.25px cells: the stale table now spans thousands of cells per axis.
	if err := s.Resize(grid.Viewport{WidthPx: 1200, HeightPx: 62.5}); err != nil {
		t.Fatalf("Resize() error: %v", err)
	}
	if _, err := s.Coverage(); !errors.Is(err, errors.ErrCodeInvariant) {
		t.Errorf("Coverage() error = %v, want %s", err, errors.ErrCodeInvariant)
	}
	if _, err := s.Snapshot().Coverage(); !errors.Is(err, errors.ErrCodeInvariant) {
		t.Errorf("Snapshot().Coverage() error = %v, want %s", err, errors.ErrCodeInvariant)
	}
}

func TestSnapshot(t *testing.T) {
	s := newTestState(t)
	empty := s.Snapshot()
	if empty.Placements == nil {
		t.Error("empty snapshot should have a non-nil placement slice")
	}

	p, _ := s.Drop(table, at(580, 380))
	snap := s.Snapshot()
	if snap.Canvas != (grid.Size{W: 600, H: 400}) {
		t.Errorf("canvas = %v, want 600x400", snap.Canvas)
	}
	if len(snap.OutOfBounds()) != 0 {
		t.Error("placement at the bottom-right corner should be in bounds")
	}

	snap.Placements[0].Origin = grid.Point{X: 1, Y: 1}
	if got, _ := s.Get(p.ID); got.Origin == snap.Placements[0].Origin {
		t.Error("mutating a snapshot must not change the state")
	}

	fromSnap, err := snap.Coverage()
	if err != nil {
		t.Fatal(err)
	}
	if fromSnap.CoveredCells != 4 {
		t.Errorf("snapshot coverage = %d, want 4", fromSnap.CoveredCells)
	}
}

func TestDropInvalidItem(t *testing.T) {
	s := newTestState(t)
	if _, err := s.Drop(catalog.Item{Name: "ghost"}, at(0, 0)); !errors.Is(err, errors.ErrCodeInvariant) {
		t.Errorf("Drop(zero-size) error = %v, want INVARIANT_VIOLATION", err)
	}
}
