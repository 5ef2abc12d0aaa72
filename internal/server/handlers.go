package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/roomgrid/pkg/buildinfo"
	"github.com/matzehuels/roomgrid/pkg/catalog"
	"github.com/matzehuels/roomgrid/pkg/errors"
	"github.com/matzehuels/roomgrid/pkg/grid"
	"github.com/matzehuels/roomgrid/pkg/layout"
	"github.com/matzehuels/roomgrid/pkg/observability"
	"github.com/matzehuels/roomgrid/pkg/session"
)

type catalogResponse struct {
	Items []catalog.Item `json:"items"`
}

type workspaceResponse struct {
	ID        uuid.UUID       `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	ExpiresAt time.Time       `json:"expires_at"`
	State     layout.Snapshot `json:"state"`
}

type coverageResponse struct {
	grid.Report
	Rows []grid.Row `json:"rows"`
}

type gridRequest struct {
	Columns int `json:"columns"`
	Rows    int `json:"rows"`
}

type viewportRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type snapRequest struct {
	Enabled *bool `json:"enabled"`
}

// pointerRequest is a pointer event in viewport coordinates.
type pointerRequest struct {
	ClientX float64 `json:"client_x"`
	ClientY float64 `json:"client_y"`
	OffsetX float64 `json:"offset_x"`
	OffsetY float64 `json:"offset_y"`
}

func (p pointerRequest) pointer() layout.Pointer {
	return layout.Pointer{
		Client: grid.Point{X: p.ClientX, Y: p.ClientY},
		Offset: grid.Point{X: p.OffsetX, Y: p.OffsetY},
	}
}

type dropRequest struct {
	Item string `json:"item"`
	pointerRequest
}

type mapRequest struct {
	pointerRequest
	ItemWidth    float64 `json:"item_width"`
	ItemHeight   float64 `json:"item_height"`
	CellSize     float64 `json:"cell_size"`
	CanvasWidth  float64 `json:"canvas_width"`
	CanvasHeight float64 `json:"canvas_height"`
	Snap         bool    `json:"snap"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	c := s.currentCatalog(r.Context())
	writeJSON(w, http.StatusOK, catalogResponse{Items: c.Items()})
}

func (s *Server) handleCatalogReload(w http.ResponseWriter, r *http.Request) {
	c := s.reloadCatalog(r.Context())
	writeJSON(w, http.StatusOK, catalogResponse{Items: c.Items()})
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	var req mapRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	p := req.pointer()
	origin, err := grid.MapPointer(grid.MapInput{
		Client:   p.Client,
		Offset:   p.Offset,
		Item:     grid.Size{W: req.ItemWidth, H: req.ItemHeight},
		CellSize: req.CellSize,
		Snap:     req.Snap,
		Canvas:   grid.Size{W: req.CanvasWidth, H: req.CanvasHeight},
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, origin)
}

func (s *Server) handleCreateWorkspace(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Create(r.Context(), s.opts.Defaults)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Debug("Workspace created", "id", sess.ID)
	s.respondWorkspace(w, r, http.StatusCreated, sess)
}

func (s *Server) handleGetWorkspace(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.workspace(w, r)
	if !ok {
		return
	}
	s.respondWorkspace(w, r, http.StatusOK, sess)
}

func (s *Server) handleDeleteWorkspace(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetGrid(w http.ResponseWriter, r *http.Request) {
	var req gridRequest
	s.mutate(w, r, &req, func(st *layout.State) error {
		return st.SetGrid(req.Columns, req.Rows)
	})
}

func (s *Server) handleSetViewport(w http.ResponseWriter, r *http.Request) {
	var req viewportRequest
	s.mutate(w, r, &req, func(st *layout.State) error {
		return st.Resize(grid.Viewport{WidthPx: req.Width, HeightPx: req.Height})
	})
}

func (s *Server) handleSetSnap(w http.ResponseWriter, r *http.Request) {
	var req snapRequest
	s.mutate(w, r, &req, func(st *layout.State) error {
		if req.Enabled == nil {
			return errors.New(errors.ErrCodeInvalidInput, "enabled is required")
		}
		st.SetSnap(*req.Enabled)
		return nil
	})
}

func (s *Server) handleCoverage(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.workspace(w, r)
	if !ok {
		return
	}
	var report grid.Report
	start := time.Now()
	err := sess.Do(func(st *layout.State) error {
		var err error
		report, err = st.Coverage()
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	observability.Layout().OnCoverage(r.Context(), report.TotalCells, report.CoveredCells, time.Since(start))
	writeJSON(w, http.StatusOK, coverageResponse{Report: report, Rows: report.Rows()})
}

func (s *Server) handleDrop(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.workspace(w, r)
	if !ok {
		return
	}
	var req dropRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	item, err := s.currentCatalog(r.Context()).Get(req.Item)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var placed layout.Placement
	var snapped bool
	err = sess.Do(func(st *layout.State) error {
		var err error
		snapped = st.Snap()
		placed, err = st.Drop(item, req.pointer())
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	observability.Layout().OnPlace(r.Context(), item.Name, snapped)
	writeJSON(w, http.StatusCreated, placed)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.workspace(w, r)
	if !ok {
		return
	}
	pid, err := pathID(r, "pid")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req pointerRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	var moved layout.Placement
	var snapped bool
	err = sess.Do(func(st *layout.State) error {
		var err error
		snapped = st.Snap()
		moved, err = st.Move(pid, req.pointer())
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	observability.Layout().OnPlace(r.Context(), moved.Item.Name, snapped)
	writeJSON(w, http.StatusOK, moved)
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.workspace(w, r)
	if !ok {
		return
	}
	pid, err := pathID(r, "pid")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var removed layout.Placement
	err = sess.Do(func(st *layout.State) error {
		var err error
		removed, err = st.Remove(pid)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	observability.Layout().OnRemove(r.Context(), removed.Item.Name)
	w.WriteHeader(http.StatusNoContent)
}

// workspace resolves the {id} parameter, writing the error response itself
// when the workspace cannot be found.
func (s *Server) workspace(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	sess, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	return sess, true
}

// mutate decodes req, applies fn to the workspace state and responds with
// the updated workspace.
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, req any, fn func(*layout.State) error) {
	sess, ok := s.workspace(w, r)
	if !ok {
		return
	}
	if err := decode(r, req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := sess.Do(fn); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respondWorkspace(w, r, http.StatusOK, sess)
}

func (s *Server) respondWorkspace(w http.ResponseWriter, r *http.Request, status int, sess *session.Session) {
	var snap layout.Snapshot
	_ = sess.Do(func(st *layout.State) error {
		snap = st.Snapshot()
		return nil
	})
	writeJSON(w, status, workspaceResponse{
		ID:        sess.ID,
		CreatedAt: sess.CreatedAt,
		ExpiresAt: sess.ExpiresAt(),
		State:     snap,
	})
}
