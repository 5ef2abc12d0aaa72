// Package io reads and writes layout snapshots as JSON.
//
// A snapshot file is the same document the HTTP API returns in the "state"
// field of a workspace, so a layout edited in the browser or in the terminal
// editor can be fed to "roomgrid coverage" and "roomgrid export":
//
//	{
//	  "grid": {"columns": 60, "rows": 40, "cell_size_px": 10},
//	  "canvas": {"width": 600, "height": 400},
//	  "viewport": {"width": 1200, "height": 500},
//	  "snap": true,
//	  "placements": [
//	    {
//	      "id": "8c1f0d4e-...",
//	      "item": {"name": "Sofa", "image": "sofa.png", "size": [2, 1]},
//	      "origin": {"x": 30, "y": 30},
//	      "size": {"width": 20, "height": 10}
//	    }
//	  ]
//	}
//
// Reading validates the grid and every item record. A missing canvas is
// derived from the grid.
package io
