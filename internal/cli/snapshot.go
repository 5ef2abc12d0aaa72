package cli

import (
	"encoding/json"
	"io"

	layoutio "github.com/matzehuels/roomgrid/pkg/io"
	"github.com/matzehuels/roomgrid/pkg/layout"
)

// readSnapshot reads a layout snapshot as written by "roomgrid edit
// --snapshot" or returned in the "state" field of the workspace API.
// A path of "-" reads stdin.
func readSnapshot(path string, stdin io.Reader) (layout.Snapshot, error) {
	if path == "-" {
		return layoutio.ReadJSON(stdin)
	}
	return layoutio.ImportJSON(path)
}

// writeJSON writes v as indented JSON to w.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
