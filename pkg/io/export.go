package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/roomgrid/pkg/layout"
)

// WriteJSON encodes sn as indented JSON. The output can be read back with
// [ReadJSON].
func WriteJSON(sn layout.Snapshot, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sn); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes sn to a file at path, replacing any existing file.
func ExportJSON(sn layout.Snapshot, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(sn, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
