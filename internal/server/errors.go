package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/resume-paginator/internal/db"
	"github.com/jonathan/resume-paginator/internal/pagination"
	"github.com/jonathan/resume-paginator/internal/schemas"
)

// ErrInvalidID indicates a path parameter that is not a UUID
type ErrInvalidID struct {
	Value string
}

func (e *ErrInvalidID) Error() string {
	return fmt.Sprintf("invalid document id: %q", e.Value)
}

// ErrForbidden indicates the caller does not own the document
type ErrForbidden struct {
	DocumentID uuid.UUID
}

func (e *ErrForbidden) Error() string {
	return fmt.Sprintf("access denied to document %s", e.DocumentID)
}

// ErrNoRuns indicates a document that has never been paginated and persisted
type ErrNoRuns struct {
	DocumentID uuid.UUID
}

func (e *ErrNoRuns) Error() string {
	return fmt.Sprintf("no pagination runs for document %s", e.DocumentID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		invalidID  *ErrInvalidID
		forbidden  *ErrForbidden
		validation *ErrValidation
		schemaErr  *schemas.ValidationError
		budgetErr  *pagination.BudgetError
		noRuns     *ErrNoRuns
	)

	switch {
	case errors.Is(err, db.ErrDocumentNotFound), errors.As(err, &noRuns):
		return http.StatusNotFound
	case errors.As(err, &forbidden):
		return http.StatusForbidden
	case errors.As(err, &invalidID), errors.As(err, &validation), errors.As(err, &schemaErr), errors.As(err, &budgetErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
