package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/roomgrid/pkg/errors"
	"github.com/matzehuels/roomgrid/pkg/layout"
)

// ReadJSON decodes a snapshot from r. It does not close r.
//
// Malformed JSON and invalid item records fail with INVALID_FORMAT; a grid
// with non-positive dimensions fails with CONFIGURATION_ERROR.
func ReadJSON(r io.Reader) (layout.Snapshot, error) {
	var sn layout.Snapshot
	if err := json.NewDecoder(r).Decode(&sn); err != nil {
		return layout.Snapshot{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode snapshot")
	}
	if err := sn.Grid.Validate(); err != nil {
		return layout.Snapshot{}, err
	}
	if sn.Canvas.W == 0 && sn.Canvas.H == 0 {
		sn.Canvas = sn.Grid.Canvas()
	}
	if sn.Placements == nil {
		sn.Placements = []layout.Placement{}
	}
	return sn, nil
}

// ImportJSON reads the snapshot file at path.
func ImportJSON(path string) (layout.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return layout.Snapshot{}, errors.Wrap(errors.ErrCodeNotFound, err, "open snapshot %s", path)
		}
		return layout.Snapshot{}, errors.Wrap(errors.ErrCodeInternal, err, "open snapshot %s", path)
	}
	defer f.Close()

	sn, err := ReadJSON(f)
	if err != nil {
		return layout.Snapshot{}, errors.Wrap(errors.GetCode(err), err, "read %s", path)
	}
	return sn, nil
}
