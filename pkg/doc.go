// Package pkg holds the roomgrid libraries.
//
// # Overview
//
// roomgrid places furniture items of fixed cell size on a grid canvas. The
// packages are layered:
//
//  1. [grid] - the placement engine: pointer mapping with snap and clamp,
//     cell-size recalculation, and coverage computation. Pure functions.
//  2. [layout] - one editing session: grid, viewport, snap flag and the live
//     placements, driven by the front-ends.
//  3. [catalog] - the item catalog, read from files, HTTP or MongoDB.
//  4. [render] and [io] - static export of layout snapshots.
//  5. Infrastructure: [cache], [httputil], [session], [config], [errors],
//     [observability] and [buildinfo].
//
// # Data Flow
//
//	pointer event (viewport coordinates)
//	         ↓
//	    [layout.State.Drop] / [layout.State.Move]
//	         ↓
//	    [grid.MapPointer] (snap, clamp to canvas)
//	         ↓
//	    placement stored in the State
//	         ↓
//	    [grid.ComputeCoverage] → report table
//
// # Quick Start
//
//	st, _ := layout.New(layout.DefaultOptions())
//	sofa := catalog.Item{Name: "Sofa", SizeCells: grid.Cells{W: 2, H: 1}}
//	st.Drop(sofa, layout.Pointer{Client: grid.Point{X: 137, Y: 88}})
//	report, _ := st.Coverage()
//	for _, row := range report.Rows() {
//	    fmt.Println(row.Label, row.Value)
//	}
//
// [grid]: github.com/matzehuels/roomgrid/pkg/grid
// [layout]: github.com/matzehuels/roomgrid/pkg/layout
// [catalog]: github.com/matzehuels/roomgrid/pkg/catalog
// [render]: github.com/matzehuels/roomgrid/pkg/render
// [io]: github.com/matzehuels/roomgrid/pkg/io
// [cache]: github.com/matzehuels/roomgrid/pkg/cache
// [httputil]: github.com/matzehuels/roomgrid/pkg/httputil
// [session]: github.com/matzehuels/roomgrid/pkg/session
// [config]: github.com/matzehuels/roomgrid/pkg/config
// [errors]: github.com/matzehuels/roomgrid/pkg/errors
// [observability]: github.com/matzehuels/roomgrid/pkg/observability
// [buildinfo]: github.com/matzehuels/roomgrid/pkg/buildinfo
// [layout.State.Drop]: github.com/matzehuels/roomgrid/pkg/layout.State.Drop
// [layout.State.Move]: github.com/matzehuels/roomgrid/pkg/layout.State.Move
// [grid.MapPointer]: github.com/matzehuels/roomgrid/pkg/grid.MapPointer
// [grid.ComputeCoverage]: github.com/matzehuels/roomgrid/pkg/grid.ComputeCoverage
package pkg
