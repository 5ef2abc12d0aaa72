package render

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/matzehuels/roomgrid/pkg/catalog"
	"github.com/matzehuels/roomgrid/pkg/grid"
	"github.com/matzehuels/roomgrid/pkg/layout"
)

func testSnapshot(t *testing.T) (layout.Snapshot, layout.Placement) {
	t.Helper()
	st, err := layout.New(layout.Options{
		Columns:  60,
		Rows:     40,
		Viewport: grid.Viewport{WidthPx: 1200, HeightPx: 500},
		Budget:   grid.DefaultBudget(),
		Snap:     true,
	})
	if err != nil {
		t.Fatalf("layout.New: %v", err)
	}
	sofa := catalog.Item{Name: "Sofa", SizeCells: grid.Cells{W: 2, H: 1}}
	p, err := st.Drop(sofa, layout.Pointer{Client: grid.Point{X: 33, Y: 31}})
	if err != nil {
		t.Fatalf("Drop: %v", err)
	}
	return st.Snapshot(), p
}

func TestToDOT(t *testing.T) {
	sn, p := testSnapshot(t)
	dot := ToDOT(sn, Options{})

	for _, want := range []string{
		"graph G {",
		`"canvas" [label="", pos="300,200!"`,
		`"` + p.ID.String() + `" [label="Sofa", pos="40,365!"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "dashed") {
		t.Errorf("ToDOT() marks an in-bounds placement as outside:\n%s", dot)
	}
}

func TestToDOTDetailed(t *testing.T) {
	sn, _ := testSnapshot(t)
	dot := ToDOT(sn, Options{Detailed: true})
	if !strings.Contains(dot, `label="Sofa\ncell: (3,3)\nsize: 2x1"`) {
		t.Errorf("ToDOT(Detailed) label missing cell info:\n%s", dot)
	}
}

func TestToDOTOutOfBounds(t *testing.T) {
	sn := layout.Snapshot{
		Grid:   grid.Spec{Columns: 4, Rows: 4, CellSizePx: 10},
		Canvas: grid.Size{W: 40, H: 40},
		Placements: []layout.Placement{{
			ID:     uuid.New(),
			Item:   catalog.Item{Name: "Bed", SizeCells: grid.Cells{W: 2, H: 2}},
			Origin: grid.Point{X: 30, Y: 0},
			Size:   grid.Size{W: 20, H: 20},
		}},
	}
	dot := ToDOT(sn, Options{})
	if !strings.Contains(dot, `style="filled,dashed", color=red`) {
		t.Errorf("ToDOT() should mark overflowing placement:\n%s", dot)
	}
}

func TestToDOTEmpty(t *testing.T) {
	sn := layout.Snapshot{
		Grid:   grid.Spec{Columns: 2, Rows: 2, CellSizePx: 10},
		Canvas: grid.Size{W: 20, H: 20},
	}
	dot := ToDOT(sn, Options{})
	if got := strings.Count(dot, "pos="); got != 1 {
		t.Errorf("empty snapshot should only draw the canvas, got %d nodes:\n%s", got, dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="44pt" viewBox="0.00 0.00 62.00 44.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 44.00" width="62" height="44"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}

	plain := []byte("<svg><g/></svg>")
	if got := normalizeViewBox(plain); string(got) != string(plain) {
		t.Errorf("normalizeViewBox() without viewBox = %s, want unchanged", got)
	}
}
