// Package grid implements the grid placement engine: mapping pointer
// coordinates onto a grid canvas, recomputing the cell size when the grid or
// viewport changes, and computing cell coverage for a set of placements.
//
// Everything in this package is a pure function over its arguments. The
// engine does not own placements; callers (see package layout) keep the live
// collection and hand it to [ComputeCoverage] when a report is needed.
//
// # Coordinate Mapping
//
// [MapPointer] converts a pointer position into a placement origin:
//
//  1. Translate client coordinates into canvas-local coordinates.
//  2. Optionally snap down to the nearest cell boundary ([Snap]).
//  3. Clamp so the whole item stays on the canvas. When an item is larger
//     than the canvas in some dimension, that coordinate is 0.
//
// # Cell Size
//
// [Recalculate] derives the cell size from a viewport and a [Budget]:
//
//	cell = min(viewportW*WidthFactor/columns, viewportH*HeightFactor/rows)
//
// and the canvas is exactly cell*columns by cell*rows pixels.
//
// # Coverage
//
// [ComputeCoverage] walks the half-open cell range each placement spans,
// collects the distinct cells into a [CellSet] and counts placements per item
// name. Covered cells normally stay at or below the total, but overlapping or
// stale placements are not rejected.
//
// # Errors
//
// Out-of-domain geometry (non-positive cell sizes, NaN or infinite
// coordinates, negative sizes) fails with an INVARIANT_VIOLATION and
// non-positive grid dimensions with a CONFIGURATION_ERROR, both from package
// errors.
package grid
