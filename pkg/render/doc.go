// Package render exports layout snapshots as static diagrams.
//
// [ToDOT] turns a [layout.Snapshot] into a Graphviz document in which every
// placement is a box pinned at its canvas position, so the neato engine draws
// the room as laid out rather than re-arranging it. [RenderSVG] and
// [RenderPNG] run that document through Graphviz:
//
//	dot := render.ToDOT(state.Snapshot(), render.Options{})
//	svg, err := render.RenderSVG(ctx, dot)
//
// Canvas pixels map to Graphviz points one to one. The y axis is flipped
// because Graphviz grows upwards.
//
// [layout.Snapshot]: github.com/matzehuels/roomgrid/pkg/layout.Snapshot
package render
