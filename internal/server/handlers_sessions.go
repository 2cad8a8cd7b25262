package server

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/exchange"
	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/ordering"
	"github.com/jonathan/resume-builder/internal/preview"
	"github.com/jonathan/resume-builder/internal/types"
	"go.uber.org/zap"
)

// keepAliveInterval is how often an idle event stream gets a comment line.
var keepAliveInterval = 25 * time.Second

// SessionResponse is returned by session routes that change or read state
type SessionResponse struct {
	ID    string       `json:"id"`
	State editor.State `json:"state"`
}

// ItemResponse is returned when an item is added
type ItemResponse struct {
	SessionResponse
	Index int `json:"index"`
}

// session resolves the {id} path value or writes a 404.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*editor.Editor, bool) {
	ed, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		s.fail(w, err)
		return nil, false
	}
	return ed, true
}

func (s *Server) writeState(w http.ResponseWriter, r *http.Request, status int, ed *editor.Editor) {
	s.jsonResponse(w, status, SessionResponse{ID: r.PathValue("id"), State: ed.Snapshot()})
}

// handleCreateSession starts a session from the sample resume, or from an
// exported file when a body is sent.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}

	ed := editor.New()
	if len(bytes.TrimSpace(data)) > 0 {
		imported, err := exchange.Import(data)
		if err != nil {
			s.fail(w, err)
			return
		}
		ed, err = editor.FromBundle(imported.Bundle(types.DefaultOrder(), layout.Defaults()))
		if err != nil {
			s.fail(w, err)
			return
		}
	}

	id := s.sessions.Create(ed)
	s.logger.Debug("session created", zap.Stringer("id", id))
	s.jsonResponse(w, http.StatusCreated, SessionResponse{ID: id.String(), State: ed.Snapshot()})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	ed, ok := s.session(w, r)
	if !ok {
		return
	}
	s.writeState(w, r, http.StatusOK, ed)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.sessions.Delete(id) {
		s.fail(w, &ErrSessionNotFound{ID: id})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// fieldValues checks that a {"name": "value"} body is not empty.
func fieldValues(values map[string]string) error {
	if len(values) == 0 {
		return &ErrValidation{Field: "body", Message: "at least one field is required"}
	}
	return nil
}

// handleUpdateFields sets personal fields, e.g. {"full_name": "Ada"}.
func (s *Server) handleUpdateFields(w http.ResponseWriter, r *http.Request) {
	ed, ok := s.session(w, r)
	if !ok {
		return
	}
	var values map[string]string
	if err := decodeJSON(w, r, &values); err != nil {
		s.fail(w, err)
		return
	}
	if err := fieldValues(values); err != nil {
		s.fail(w, err)
		return
	}
	if err := ed.UpdateFields(values); err != nil {
		s.fail(w, err)
		return
	}
	s.writeState(w, r, http.StatusOK, ed)
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	ed, ok := s.session(w, r)
	if !ok {
		return
	}
	index, err := ed.AddItem(r.PathValue("section"))
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, ItemResponse{
		SessionResponse: SessionResponse{ID: r.PathValue("id"), State: ed.Snapshot()},
		Index:           index,
	})
}

func pathIndex(r *http.Request) (int, error) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		return 0, &ErrValidation{Field: "index", Message: "must be an integer"}
	}
	return index, nil
}

// handleUpdateItem sets keys of one entry, e.g. {"title": "Engineer"}.
func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	ed, ok := s.session(w, r)
	if !ok {
		return
	}
	index, err := pathIndex(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	var values map[string]string
	if err := decodeJSON(w, r, &values); err != nil {
		s.fail(w, err)
		return
	}
	if err := fieldValues(values); err != nil {
		s.fail(w, err)
		return
	}
	if err := ed.UpdateItemFields(r.PathValue("section"), index, values); err != nil {
		s.fail(w, err)
		return
	}
	s.writeState(w, r, http.StatusOK, ed)
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	ed, ok := s.session(w, r)
	if !ok {
		return
	}
	index, err := pathIndex(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	if err := ed.RemoveItem(r.PathValue("section"), index); err != nil {
		s.fail(w, err)
		return
	}
	s.writeState(w, r, http.StatusOK, ed)
}

// handleDrop applies {"source": 0, "destination": 2}. A null destination is a no-op.
func (s *Server) handleDrop(w http.ResponseWriter, r *http.Request) {
	ed, ok := s.session(w, r)
	if !ok {
		return
	}
	var result ordering.DropResult
	if err := decodeJSON(w, r, &result); err != nil {
		s.fail(w, err)
		return
	}
	if err := ed.DragEnd(result); err != nil {
		s.fail(w, err)
		return
	}
	s.writeState(w, r, http.StatusOK, ed)
}

func (s *Server) handleAddSection(w http.ResponseWriter, r *http.Request) {
	ed, ok := s.session(w, r)
	if !ok {
		return
	}
	if err := ed.AddSection(r.PathValue("section")); err != nil {
		s.fail(w, err)
		return
	}
	s.writeState(w, r, http.StatusOK, ed)
}

func (s *Server) handleRemoveSection(w http.ResponseWriter, r *http.Request) {
	ed, ok := s.session(w, r)
	if !ok {
		return
	}
	if err := ed.RemoveSection(r.PathValue("section")); err != nil {
		s.fail(w, err)
		return
	}
	s.writeState(w, r, http.StatusOK, ed)
}

// handleSetLayout replaces the layout. Missing fields keep their current values.
func (s *Server) handleSetLayout(w http.ResponseWriter, r *http.Request) {
	ed, ok := s.session(w, r)
	if !ok {
		return
	}
	settings := ed.Snapshot().Layout
	if err := decodeJSON(w, r, &settings); err != nil {
		s.fail(w, err)
		return
	}
	if err := ed.SetLayout(settings); err != nil {
		s.fail(w, err)
		return
	}
	s.writeState(w, r, http.StatusOK, ed)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	ed, ok := s.session(w, r)
	if !ok {
		return
	}
	if err := ed.Reset(); err != nil {
		s.fail(w, err)
		return
	}
	s.writeState(w, r, http.StatusOK, ed)
}

// handleExport downloads resume.json. ?bundle=true adds order and layout.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	ed, ok := s.session(w, r)
	if !ok {
		return
	}

	export := ed.Export
	if r.URL.Query().Get("bundle") == "true" {
		export = ed.ExportBundle
	}
	data, err := export()
	if err != nil {
		s.fail(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+exchange.ExportFilename+`"`)
	_, _ = w.Write(data)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	ed, ok := s.session(w, r)
	if !ok {
		return
	}
	data, err := readBody(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}
	if err := ed.Import(data); err != nil {
		s.fail(w, err)
		return
	}
	s.writeState(w, r, http.StatusOK, ed)
}

func (s *Server) handleSessionPreview(w http.ResponseWriter, r *http.Request) {
	ed, ok := s.session(w, r)
	if !ok {
		return
	}
	s.writePreview(w, r, ed.Bundle())
}

func (s *Server) handleSessionPDF(w http.ResponseWriter, r *http.Request) {
	ed, ok := s.session(w, r)
	if !ok {
		return
	}
	pdf, err := s.renderPDF(r.Context(), ed.Bundle())
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writePDF(w, r, pdf)
}

// handleSessionEvents streams the preview fragment on connect and after every revision.
func (s *Server) handleSessionEvents(w http.ResponseWriter, r *http.Request) {
	ed, ok := s.session(w, r)
	if !ok {
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	// The stream outlives the server's write timeout.
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
		s.logger.Warn("failed to clear write deadline", zap.Error(err))
	}

	updates, cancel := ed.Subscribe()
	defer cancel()

	send := func(rev uint64) error {
		html, err := preview.Fragment(ed.Bundle())
		if err != nil {
			sse.WriteError(err.Error())
			return nil
		}
		return sse.WriteRevision(rev, html)
	}

	if err := send(ed.Revision()); err != nil {
		return
	}

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case rev, ok := <-updates:
			if !ok {
				return
			}
			if err := send(rev); err != nil {
				return
			}
		case <-keepAlive.C:
			if err := sse.WriteComment("keep-alive"); err != nil {
				return
			}
		}
	}
}
