package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/exchange"
	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/types"
)

// DraftStore persists drafts. *db.DB implements it.
type DraftStore interface {
	CreateDraft(ctx context.Context, ownerID uuid.UUID, title string, bundle types.Bundle) (*db.Draft, error)
	GetDraft(ctx context.Context, ownerID, id uuid.UUID) (*db.Draft, error)
	ListDrafts(ctx context.Context, ownerID uuid.UUID) ([]db.DraftSummary, error)
	UpdateDraft(ctx context.Context, ownerID, id uuid.UUID, title string, bundle types.Bundle) (*db.Draft, error)
	DeleteDraft(ctx context.Context, ownerID, id uuid.UUID) (bool, error)
}

var _ DraftStore = (*db.DB)(nil)

// DraftRequest is the body of draft create and update. The bundle comes
// either inline or from a live session.
type DraftRequest struct {
	Title     string          `json:"title" validate:"max=200"`
	Bundle    json.RawMessage `json:"bundle" validate:"required_without=SessionID"`
	SessionID string          `json:"session_id" validate:"omitempty,uuid"`
}

var requestValidator = validator.New()

// bundle resolves the request into a bundle to store.
func (s *Server) bundle(req DraftRequest) (types.Bundle, error) {
	if err := requestValidator.Struct(req); err != nil {
		if ves, ok := err.(validator.ValidationErrors); ok && len(ves) > 0 {
			return types.Bundle{}, &ErrValidation{Field: ves[0].Field(), Message: "failed " + ves[0].Tag()}
		}
		return types.Bundle{}, &ErrValidation{Field: "body", Message: err.Error()}
	}

	if len(req.Bundle) > 0 {
		imported, err := exchange.Import(req.Bundle)
		if err != nil {
			return types.Bundle{}, err
		}
		return imported.Bundle(types.DefaultOrder(), layout.Defaults()), nil
	}

	ed, err := s.sessions.Get(req.SessionID)
	if err != nil {
		return types.Bundle{}, err
	}
	return ed.Bundle(), nil
}

// owner returns the authenticated owner and the {id} path value when wantID is set.
func (s *Server) owner(w http.ResponseWriter, r *http.Request, wantID bool) (uuid.UUID, uuid.UUID, bool) {
	ownerID, err := middleware.OwnerID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, err.Error())
		return uuid.Nil, uuid.Nil, false
	}
	if !wantID {
		return ownerID, uuid.Nil, true
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.fail(w, &ErrValidation{Field: "id", Message: "must be a UUID"})
		return uuid.Nil, uuid.Nil, false
	}
	return ownerID, id, true
}

func (s *Server) handleCreateDraft(w http.ResponseWriter, r *http.Request) {
	ownerID, _, ok := s.owner(w, r, false)
	if !ok {
		return
	}
	var req DraftRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, err)
		return
	}
	b, err := s.bundle(req)
	if err != nil {
		s.fail(w, err)
		return
	}

	draft, err := s.drafts.CreateDraft(r.Context(), ownerID, req.Title, b)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, draft)
}

func (s *Server) handleListDrafts(w http.ResponseWriter, r *http.Request) {
	ownerID, _, ok := s.owner(w, r, false)
	if !ok {
		return
	}
	drafts, err := s.drafts.ListDrafts(r.Context(), ownerID)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"drafts": drafts})
}

func (s *Server) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	ownerID, id, ok := s.owner(w, r, true)
	if !ok {
		return
	}
	draft, err := s.drafts.GetDraft(r.Context(), ownerID, id)
	if err != nil {
		s.fail(w, err)
		return
	}
	if draft == nil {
		s.fail(w, &ErrDraftNotFound{ID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, draft)
}

func (s *Server) handleUpdateDraft(w http.ResponseWriter, r *http.Request) {
	ownerID, id, ok := s.owner(w, r, true)
	if !ok {
		return
	}
	var req DraftRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, err)
		return
	}
	b, err := s.bundle(req)
	if err != nil {
		s.fail(w, err)
		return
	}

	draft, err := s.drafts.UpdateDraft(r.Context(), ownerID, id, req.Title, b)
	if err != nil {
		s.fail(w, err)
		return
	}
	if draft == nil {
		s.fail(w, &ErrDraftNotFound{ID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, draft)
}

func (s *Server) handleDeleteDraft(w http.ResponseWriter, r *http.Request) {
	ownerID, id, ok := s.owner(w, r, true)
	if !ok {
		return
	}
	deleted, err := s.drafts.DeleteDraft(r.Context(), ownerID, id)
	if err != nil {
		s.fail(w, err)
		return
	}
	if !deleted {
		s.fail(w, &ErrDraftNotFound{ID: id})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleOpenDraft starts an editing session seeded from a saved draft.
func (s *Server) handleOpenDraft(w http.ResponseWriter, r *http.Request) {
	ownerID, id, ok := s.owner(w, r, true)
	if !ok {
		return
	}
	draft, err := s.drafts.GetDraft(r.Context(), ownerID, id)
	if err != nil {
		s.fail(w, err)
		return
	}
	if draft == nil {
		s.fail(w, &ErrDraftNotFound{ID: id})
		return
	}

	ed, err := editor.FromBundle(draft.Bundle)
	if err != nil {
		s.fail(w, err)
		return
	}
	sid := s.sessions.Create(ed)
	s.jsonResponse(w, http.StatusCreated, SessionResponse{ID: sid.String(), State: ed.Snapshot()})
}
