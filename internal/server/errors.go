package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/exchange"
	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/ordering"
	"github.com/jonathan/resume-builder/internal/pdfgen"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

// ErrSessionNotFound indicates an editing session does not exist or has expired
type ErrSessionNotFound struct {
	ID string
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("session not found: %s", e.ID)
}

// ErrDraftNotFound indicates a draft does not exist for the caller
type ErrDraftNotFound struct {
	ID uuid.UUID
}

func (e *ErrDraftNotFound) Error() string {
	return fmt.Sprintf("draft not found: %s", e.ID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrDraftsDisabled is returned by draft routes when no database or JWT secret is configured.
var ErrDraftsDisabled = errors.New("drafts are not configured on this server")

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		sessionNotFound *ErrSessionNotFound
		draftNotFound   *ErrDraftNotFound
		validation      *ErrValidation
		fieldErr        *editor.FieldError
		itemErr         *editor.ItemError
		layoutErr       *layout.Error
		unknownSection  *types.UnknownSectionError
		duplicate       *ordering.DuplicateSectionError
		indexErr        *ordering.IndexError
		importErr       *exchange.ImportError
		payloadErr      *exchange.PayloadError
		schemaErr       *schemas.ValidationError
		unknownEngine   *pdfgen.UnknownEngineError
	)

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &sessionNotFound), errors.As(err, &draftNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDraftsDisabled):
		return http.StatusServiceUnavailable
	case errors.As(err, &validation),
		errors.As(err, &fieldErr),
		errors.As(err, &itemErr),
		errors.As(err, &layoutErr),
		errors.As(err, &unknownSection),
		errors.As(err, &duplicate),
		errors.As(err, &indexErr),
		errors.As(err, &importErr),
		errors.As(err, &payloadErr),
		errors.As(err, &schemaErr),
		errors.As(err, &unknownEngine),
		errors.Is(err, ordering.ErrInvalidTransition):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
