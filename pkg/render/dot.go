package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/roomgrid/pkg/grid"
	"github.com/matzehuels/roomgrid/pkg/layout"
)

// pointsPerInch converts Graphviz node sizes, which are given in inches.
const pointsPerInch = 72.0

// Options configures DOT export.
type Options struct {
	// Detailed adds the origin and size in cells to each label.
	// When false, only the item name is shown.
	Detailed bool
}

// ToDOT converts a snapshot to a Graphviz DOT document for the neato engine.
// The canvas is drawn as a frame node behind the placements. Placements that
// no longer fit the canvas are drawn dashed in red.
func ToDOT(sn layout.Snapshot, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  node [shape=box, style=filled, fillcolor=white, fixedsize=true, fontsize=10, margin=0];\n")
	buf.WriteString("\n")

	canvas := grid.Rect{Size: sn.Canvas}
	fmt.Fprintf(&buf, "  \"canvas\" [%s];\n", strings.Join([]string{
		`label=""`,
		fmtGeometry(canvas, sn.Canvas),
		"fillcolor=\"#f4f4f4\"",
		"color=\"#999999\"",
	}, ", "))

	outside := make(map[uuid.UUID]bool)
	for _, p := range sn.OutOfBounds() {
		outside[p.ID] = true
	}

	for _, p := range sn.Placements {
		attrs := []string{
			fmt.Sprintf("label=%q", fmtLabel(p, sn.Grid.CellSizePx, opts.Detailed)),
			fmtGeometry(p.Rect(), sn.Canvas),
		}
		if outside[p.ID] {
			attrs = append(attrs, "style=\"filled,dashed\"", "color=red")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", p.ID.String(), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// fmtGeometry pins a node's center and size. Graphviz positions are in points
// with y growing upwards.
func fmtGeometry(r grid.Rect, canvas grid.Size) string {
	cx := r.Origin.X + r.Size.W/2
	cy := canvas.H - (r.Origin.Y + r.Size.H/2)
	return fmt.Sprintf("pos=\"%g,%g!\", width=%g, height=%g",
		cx, cy, r.Size.W/pointsPerInch, r.Size.H/pointsPerInch)
}

func fmtLabel(p layout.Placement, cellSize float64, detailed bool) string {
	if !detailed || cellSize <= 0 {
		return p.Item.Name
	}
	cell := grid.CellAt(p.Origin, cellSize)
	return fmt.Sprintf("%s\ncell: %s\nsize: %s", p.Item.Name, cell, p.Item.SizeCells)
}
